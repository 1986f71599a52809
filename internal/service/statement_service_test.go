package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/ledger"
	"github.com/velobooks/velobooks-backend/internal/testutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newStatementTestFixture() (*StatementService, *testutil.MockCustomerRepository, *testutil.MockInvoiceRepository, *testutil.MockPaymentRepository) {
	customerRepo := testutil.NewMockCustomerRepository()
	invoiceRepo := testutil.NewMockInvoiceRepository()
	paymentRepo := testutil.NewMockPaymentRepository()
	return NewStatementService(customerRepo, invoiceRepo, paymentRepo), customerRepo, invoiceRepo, paymentRepo
}

func TestGetStatement_CustomerNotFound(t *testing.T) {
	statementService, _, _, _ := newStatementTestFixture()

	_, err := statementService.GetStatement(1, 999, nil, nil)
	if err != domain.ErrCustomerNotFound {
		t.Errorf("Expected ErrCustomerNotFound, got %v", err)
	}
}

func TestGetStatement_EmptyHistory(t *testing.T) {
	statementService, customerRepo, _, _ := newStatementTestFixture()
	customerRepo.AddCustomer(&domain.Customer{ID: 1, WorkspaceID: 1, Name: "Ravi"})

	statement, err := statementService.GetStatement(1, 1, nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(statement.Entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(statement.Entries))
	}
	if !statement.ClosingBalance.IsZero() {
		t.Errorf("Expected zero closing balance, got %s", statement.ClosingBalance)
	}
}

func TestGetStatement_RunningBalance(t *testing.T) {
	statementService, customerRepo, invoiceRepo, paymentRepo := newStatementTestFixture()
	customerRepo.AddCustomer(&domain.Customer{ID: 1, WorkspaceID: 1, Name: "Ravi"})

	invoiceRepo.AddInvoice(&domain.Invoice{
		ID: 1, WorkspaceID: 1, CustomerID: 1, Number: "INV-1",
		InvoiceDate: date(2026, 3, 1), Total: decimal.NewFromInt(1000),
	})
	customerID := int32(1)
	paymentRepo.AddPayment(&domain.Payment{
		ID: 1, WorkspaceID: 1, CustomerID: &customerID, Number: "RCT-1",
		Direction: domain.DirectionIn, Method: domain.MethodCash, Category: domain.CategorySale,
		Amount: decimal.NewFromInt(400), PaymentDate: date(2026, 3, 5),
	})
	invoiceRepo.AddInvoice(&domain.Invoice{
		ID: 2, WorkspaceID: 1, CustomerID: 1, Number: "INV-2",
		InvoiceDate: date(2026, 3, 10), Total: decimal.NewFromInt(250),
	})

	statement, err := statementService.GetStatement(1, 1, nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(statement.Entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(statement.Entries))
	}

	wantBalances := []int64{1000, 600, 850}
	for i, want := range wantBalances {
		if !statement.Entries[i].Balance.Equal(decimal.NewFromInt(want)) {
			t.Errorf("Entry %d: expected balance %d, got %s", i, want, statement.Entries[i].Balance)
		}
	}

	if !statement.ClosingBalance.Equal(decimal.NewFromInt(850)) {
		t.Errorf("Expected closing balance 850, got %s", statement.ClosingBalance)
	}
}

func TestGetStatement_WindowKeepsFullHistoryBalances(t *testing.T) {
	statementService, customerRepo, invoiceRepo, paymentRepo := newStatementTestFixture()
	customerRepo.AddCustomer(&domain.Customer{ID: 1, WorkspaceID: 1, Name: "Ravi"})

	invoiceRepo.AddInvoice(&domain.Invoice{
		ID: 1, WorkspaceID: 1, CustomerID: 1, Number: "INV-1",
		InvoiceDate: date(2026, 2, 1), Total: decimal.NewFromInt(1000),
	})
	customerID := int32(1)
	paymentRepo.AddPayment(&domain.Payment{
		ID: 1, WorkspaceID: 1, CustomerID: &customerID, Number: "RCT-1",
		Direction: domain.DirectionIn, Method: domain.MethodCash, Category: domain.CategorySale,
		Amount: decimal.NewFromInt(400), PaymentDate: date(2026, 3, 5),
	})

	start := date(2026, 3, 1)
	end := date(2026, 3, 31)
	statement, err := statementService.GetStatement(1, 1, &start, &end)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !statement.OpeningBalance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Expected opening balance 1000, got %s", statement.OpeningBalance)
	}
	if len(statement.Entries) != 1 {
		t.Fatalf("Expected 1 windowed entry, got %d", len(statement.Entries))
	}
	if !statement.Entries[0].Balance.Equal(decimal.NewFromInt(600)) {
		t.Errorf("Expected windowed entry balance 600, got %s", statement.Entries[0].Balance)
	}
	if !statement.ClosingBalance.Equal(decimal.NewFromInt(600)) {
		t.Errorf("Expected closing balance 600, got %s", statement.ClosingBalance)
	}
}

func TestGetStatement_ReceiptDescriptionPrefersNotes(t *testing.T) {
	statementService, customerRepo, _, paymentRepo := newStatementTestFixture()
	customerRepo.AddCustomer(&domain.Customer{ID: 1, WorkspaceID: 1, Name: "Ravi"})

	customerID := int32(1)
	notes := "UPI transfer"
	paymentRepo.AddPayment(&domain.Payment{
		ID: 1, WorkspaceID: 1, CustomerID: &customerID, Number: "RCT-1",
		Direction: domain.DirectionIn, Method: domain.MethodBank, Category: domain.CategorySale,
		Amount: decimal.NewFromInt(100), PaymentDate: date(2026, 3, 5), Notes: &notes,
	})

	statement, err := statementService.GetStatement(1, 1, nil, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(statement.Entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(statement.Entries))
	}
	if statement.Entries[0].Description != notes {
		t.Errorf("Expected description %q, got %q", notes, statement.Entries[0].Description)
	}
	if statement.Entries[0].Kind != ledger.KindCredit {
		t.Errorf("Expected receipt to be a credit, got %s", statement.Entries[0].Kind)
	}
}

func TestGetStatement_InvalidRange(t *testing.T) {
	statementService, customerRepo, _, _ := newStatementTestFixture()
	customerRepo.AddCustomer(&domain.Customer{ID: 1, WorkspaceID: 1, Name: "Ravi"})

	start := date(2026, 4, 1)
	end := date(2026, 3, 1)
	_, err := statementService.GetStatement(1, 1, &start, &end)
	if err != ledger.ErrInvalidRange {
		t.Errorf("Expected ErrInvalidRange, got %v", err)
	}
}
