package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/testutil"
)

func addCashbookPayment(repo *testutil.MockPaymentRepository, id int32, number string, direction domain.PaymentDirection, method domain.PaymentMethod, amount int64, day int) {
	repo.AddPayment(&domain.Payment{
		ID:          id,
		WorkspaceID: 1,
		Number:      number,
		Direction:   direction,
		Method:      method,
		Category:    domain.CategoryOther,
		Amount:      decimal.NewFromInt(amount),
		PaymentDate: date(2026, 3, day),
	})
}

func TestGetCashbook_MixedFlows(t *testing.T) {
	paymentRepo := testutil.NewMockPaymentRepository()
	cashbookService := NewCashbookService(paymentRepo)

	addCashbookPayment(paymentRepo, 1, "RCT-1", domain.DirectionIn, domain.MethodCash, 1000, 1)
	addCashbookPayment(paymentRepo, 2, "VCH-1", domain.DirectionOut, domain.MethodCash, 300, 2)
	addCashbookPayment(paymentRepo, 3, "RCT-2", domain.DirectionIn, domain.MethodCheque, 500, 3)

	summary, err := cashbookService.GetCashbook(1, nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(summary.Entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(summary.Entries))
	}

	if !summary.CashIn.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("Expected cash in 1500, got %s", summary.CashIn)
	}
	if !summary.CashOut.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected cash out 300, got %s", summary.CashOut)
	}
	if !summary.Balance.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("Expected balance 1200, got %s", summary.Balance)
	}

	wantBalances := []int64{1000, 700, 1200}
	for i, want := range wantBalances {
		if !summary.Entries[i].Balance.Equal(decimal.NewFromInt(want)) {
			t.Errorf("Entry %d: expected running balance %d, got %s", i, want, summary.Entries[i].Balance)
		}
	}
}

func TestGetCashbook_ExcludesBankPayments(t *testing.T) {
	paymentRepo := testutil.NewMockPaymentRepository()
	cashbookService := NewCashbookService(paymentRepo)

	addCashbookPayment(paymentRepo, 1, "RCT-1", domain.DirectionIn, domain.MethodCash, 1000, 1)
	addCashbookPayment(paymentRepo, 2, "RCT-2", domain.DirectionIn, domain.MethodBank, 5000, 2)

	summary, err := cashbookService.GetCashbook(1, nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(summary.Entries) != 1 {
		t.Fatalf("Expected bank transfer excluded, got %d entries", len(summary.Entries))
	}
	if !summary.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected balance 1000, got %s", summary.Balance)
	}
}

func TestGetCashbook_WindowCarriesOpeningBalance(t *testing.T) {
	paymentRepo := testutil.NewMockPaymentRepository()
	cashbookService := NewCashbookService(paymentRepo)

	addCashbookPayment(paymentRepo, 1, "RCT-1", domain.DirectionIn, domain.MethodCash, 1000, 1)
	addCashbookPayment(paymentRepo, 2, "VCH-1", domain.DirectionOut, domain.MethodCash, 200, 10)

	start := date(2026, 3, 5)
	summary, err := cashbookService.GetCashbook(1, &start, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(summary.Entries) != 1 {
		t.Fatalf("Expected 1 windowed entry, got %d", len(summary.Entries))
	}
	// The running balance includes the pre-window receipt
	if !summary.Entries[0].Balance.Equal(decimal.NewFromInt(800)) {
		t.Errorf("Expected running balance 800, got %s", summary.Entries[0].Balance)
	}
}

func TestGetCashbook_Empty(t *testing.T) {
	paymentRepo := testutil.NewMockPaymentRepository()
	cashbookService := NewCashbookService(paymentRepo)

	summary, err := cashbookService.GetCashbook(1, nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(summary.Entries) != 0 || !summary.Balance.IsZero() {
		t.Errorf("Expected empty cashbook, got %d entries, balance %s", len(summary.Entries), summary.Balance)
	}
}
