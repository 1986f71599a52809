package service

import (
	"strings"
	"time"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/websocket"
)

const defaultStaffHistoryLimit = 50

// StaffService handles staff location check-ins
type StaffService struct {
	staffRepo      domain.StaffPingRepository
	eventPublisher websocket.EventPublisher
}

// NewStaffService creates a new StaffService
func NewStaffService(staffRepo domain.StaffPingRepository) *StaffService {
	return &StaffService{staffRepo: staffRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *StaffService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// RecordPingInput holds the input for recording a staff ping
type RecordPingInput struct {
	StaffName  string
	Latitude   float64
	Longitude  float64
	RecordedAt *time.Time
}

// RecordPing records a staff location check-in with validation
func (s *StaffService) RecordPing(workspaceID int32, input RecordPingInput) (*domain.StaffPing, error) {
	staffName := strings.TrimSpace(input.StaffName)
	if staffName == "" {
		return nil, domain.ErrNameRequired
	}
	if len(staffName) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if input.Latitude < -90 || input.Latitude > 90 || input.Longitude < -180 || input.Longitude > 180 {
		return nil, domain.ErrInvalidCoordinates
	}

	recordedAt := time.Now().UTC()
	if input.RecordedAt != nil {
		recordedAt = *input.RecordedAt
	}

	ping := &domain.StaffPing{
		WorkspaceID: workspaceID,
		StaffName:   staffName,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		RecordedAt:  recordedAt,
	}

	created, err := s.staffRepo.Create(ping)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		s.eventPublisher.Publish(workspaceID, websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypeStaffPing, created))
	}
	return created, nil
}

// GetLatestLocations returns the most recent ping for each staff member
func (s *StaffService) GetLatestLocations(workspaceID int32) ([]*domain.StaffPing, error) {
	return s.staffRepo.GetLatestPerStaff(workspaceID)
}

// GetStaffHistory returns recent pings for one staff member, newest first
func (s *StaffService) GetStaffHistory(workspaceID int32, staffName string, limit int32) ([]*domain.StaffPing, error) {
	staffName = strings.TrimSpace(staffName)
	if staffName == "" {
		return nil, domain.ErrNameRequired
	}
	if limit <= 0 || limit > 500 {
		limit = defaultStaffHistoryLimit
	}
	return s.staffRepo.GetByStaff(workspaceID, staffName, limit)
}
