package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/testutil"
)

func TestRecordPing_Success(t *testing.T) {
	staffRepo := testutil.NewMockStaffPingRepository()
	service := NewStaffService(staffRepo)

	at := date(2026, time.March, 10)
	ping, err := service.RecordPing(1, RecordPingInput{
		StaffName:  "  Suresh  ",
		Latitude:   12.97,
		Longitude:  77.59,
		RecordedAt: &at,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ping.StaffName != "Suresh" {
		t.Errorf("Expected trimmed name 'Suresh', got '%s'", ping.StaffName)
	}
	if !ping.RecordedAt.Equal(at) {
		t.Errorf("Expected recorded at %v, got %v", at, ping.RecordedAt)
	}
}

func TestRecordPing_DefaultsRecordedAt(t *testing.T) {
	service := NewStaffService(testutil.NewMockStaffPingRepository())

	before := time.Now().UTC()
	ping, err := service.RecordPing(1, RecordPingInput{StaffName: "Suresh", Latitude: 12.97, Longitude: 77.59})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ping.RecordedAt.Before(before) || ping.RecordedAt.After(time.Now().UTC()) {
		t.Errorf("Expected RecordedAt to default to now, got %v", ping.RecordedAt)
	}
}

func TestRecordPing_EmptyName(t *testing.T) {
	service := NewStaffService(testutil.NewMockStaffPingRepository())

	_, err := service.RecordPing(1, RecordPingInput{StaffName: "   ", Latitude: 0, Longitude: 0})
	if !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}
}

func TestRecordPing_NameTooLong(t *testing.T) {
	service := NewStaffService(testutil.NewMockStaffPingRepository())

	_, err := service.RecordPing(1, RecordPingInput{
		StaffName: strings.Repeat("x", domain.MaxNameLength+1),
	})
	if !errors.Is(err, domain.ErrNameTooLong) {
		t.Errorf("Expected ErrNameTooLong, got %v", err)
	}
}

func TestRecordPing_InvalidCoordinates(t *testing.T) {
	service := NewStaffService(testutil.NewMockStaffPingRepository())

	cases := []struct {
		name     string
		lat, lon float64
	}{
		{"latitude too high", 91, 0},
		{"latitude too low", -91, 0},
		{"longitude too high", 0, 181},
		{"longitude too low", 0, -181},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.RecordPing(1, RecordPingInput{StaffName: "Suresh", Latitude: tc.lat, Longitude: tc.lon})
			if !errors.Is(err, domain.ErrInvalidCoordinates) {
				t.Errorf("Expected ErrInvalidCoordinates, got %v", err)
			}
		})
	}
}

func TestGetLatestLocations_LatestPerStaff(t *testing.T) {
	staffRepo := testutil.NewMockStaffPingRepository()
	service := NewStaffService(staffRepo)

	for i, at := range []time.Time{date(2026, time.March, 1), date(2026, time.March, 3), date(2026, time.March, 2)} {
		at := at
		name := "Suresh"
		if i == 2 {
			name = "Anil"
		}
		if _, err := service.RecordPing(1, RecordPingInput{StaffName: name, Latitude: 12.9, Longitude: 77.5, RecordedAt: &at}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	locations, err := service.GetLatestLocations(1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(locations) != 2 {
		t.Fatalf("Expected 2 locations, got %d", len(locations))
	}
	if locations[0].StaffName != "Anil" || locations[1].StaffName != "Suresh" {
		t.Errorf("Expected locations sorted by name, got %s then %s", locations[0].StaffName, locations[1].StaffName)
	}
	if !locations[1].RecordedAt.Equal(date(2026, time.March, 3)) {
		t.Errorf("Expected Suresh's newest ping, got %v", locations[1].RecordedAt)
	}
}

func TestGetStaffHistory_NewestFirstWithLimit(t *testing.T) {
	staffRepo := testutil.NewMockStaffPingRepository()
	service := NewStaffService(staffRepo)

	for day := 1; day <= 5; day++ {
		at := date(2026, time.March, day)
		if _, err := service.RecordPing(1, RecordPingInput{StaffName: "Suresh", Latitude: 12.9, Longitude: 77.5, RecordedAt: &at}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	history, err := service.GetStaffHistory(1, "Suresh", 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("Expected 3 pings, got %d", len(history))
	}
	if !history[0].RecordedAt.Equal(date(2026, time.March, 5)) {
		t.Errorf("Expected newest ping first, got %v", history[0].RecordedAt)
	}
}

func TestGetStaffHistory_LimitClamped(t *testing.T) {
	staffRepo := testutil.NewMockStaffPingRepository()
	service := NewStaffService(staffRepo)

	for day := 1; day <= 60; day++ {
		at := date(2026, time.January, 1).AddDate(0, 0, day)
		if _, err := service.RecordPing(1, RecordPingInput{StaffName: "Suresh", Latitude: 12.9, Longitude: 77.5, RecordedAt: &at}); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	history, err := service.GetStaffHistory(1, "Suresh", 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(history) != defaultStaffHistoryLimit {
		t.Errorf("Expected limit to default to %d, got %d", defaultStaffHistoryLimit, len(history))
	}

	history, err = service.GetStaffHistory(1, "Suresh", 10000)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(history) != defaultStaffHistoryLimit {
		t.Errorf("Expected out-of-range limit to default to %d, got %d", defaultStaffHistoryLimit, len(history))
	}
}

func TestGetStaffHistory_EmptyName(t *testing.T) {
	service := NewStaffService(testutil.NewMockStaffPingRepository())

	_, err := service.GetStaffHistory(1, "  ", 10)
	if !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}
}
