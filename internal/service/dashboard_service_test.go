package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/testutil"
)

func newDashboardTestFixture() (*DashboardService, *testutil.MockInvoiceRepository, *testutil.MockPaymentRepository, *testutil.MockCustomerRepository, *testutil.MockItemRepository) {
	invoiceRepo := testutil.NewMockInvoiceRepository()
	paymentRepo := testutil.NewMockPaymentRepository()
	customerRepo := testutil.NewMockCustomerRepository()
	itemRepo := testutil.NewMockItemRepository()
	cashbook := NewCashbookService(paymentRepo)
	return NewDashboardService(invoiceRepo, paymentRepo, customerRepo, itemRepo, cashbook),
		invoiceRepo, paymentRepo, customerRepo, itemRepo
}

func TestGetSummary_EmptyWorkspace(t *testing.T) {
	dashboardService, _, _, _, _ := newDashboardTestFixture()

	summary, err := dashboardService.GetSummary(1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !summary.Receivables.IsZero() || !summary.CashInHand.IsZero() || !summary.StockValue.IsZero() {
		t.Errorf("Expected zero summary, got receivables %s, cash %s, stock %s",
			summary.Receivables, summary.CashInHand, summary.StockValue)
	}
	if summary.InvoiceCount != 0 || summary.CustomerCount != 0 {
		t.Errorf("Expected zero counts, got invoices %d, customers %d", summary.InvoiceCount, summary.CustomerCount)
	}
}

func TestGetSummary_Aggregates(t *testing.T) {
	dashboardService, invoiceRepo, paymentRepo, customerRepo, itemRepo := newDashboardTestFixture()

	customerRepo.AddCustomer(&domain.Customer{ID: 1, WorkspaceID: 1, Name: "Ravi"})
	customerRepo.AddCustomer(&domain.Customer{ID: 2, WorkspaceID: 1, Name: "Anand"})

	invoiceRepo.AddInvoice(&domain.Invoice{
		ID: 1, WorkspaceID: 1, CustomerID: 1, Number: "INV-1",
		InvoiceDate: date(2026, 3, 1), Total: decimal.NewFromInt(1000),
	})
	invoiceRepo.AddInvoice(&domain.Invoice{
		ID: 2, WorkspaceID: 1, CustomerID: 2, Number: "INV-2",
		InvoiceDate: date(2026, 3, 2), Total: decimal.NewFromInt(500),
	})

	customerID := int32(1)
	paymentRepo.AddPayment(&domain.Payment{
		ID: 1, WorkspaceID: 1, CustomerID: &customerID, Number: "RCT-1",
		Direction: domain.DirectionIn, Method: domain.MethodCash, Category: domain.CategorySale,
		Amount: decimal.NewFromInt(600), PaymentDate: date(2026, 3, 3),
	})
	paymentRepo.AddPayment(&domain.Payment{
		ID: 2, WorkspaceID: 1, Number: "VCH-1",
		Direction: domain.DirectionOut, Method: domain.MethodCash, Category: domain.CategoryExpense,
		Amount: decimal.NewFromInt(100), PaymentDate: date(2026, 3, 4),
	})

	itemRepo.AddItem(&domain.Item{
		ID: 1, WorkspaceID: 1, Name: "Chain", Quantity: 4,
		CostPrice: decimal.NewFromInt(300), LowStockThreshold: 2,
	})
	itemRepo.AddItem(&domain.Item{
		ID: 2, WorkspaceID: 1, Name: "Tube", Quantity: 1,
		CostPrice: decimal.NewFromInt(80), LowStockThreshold: 3,
	})

	summary, err := dashboardService.GetSummary(1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !summary.TotalInvoiced.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("Expected total invoiced 1500, got %s", summary.TotalInvoiced)
	}
	if !summary.TotalReceived.Equal(decimal.NewFromInt(600)) {
		t.Errorf("Expected total received 600, got %s", summary.TotalReceived)
	}
	if !summary.Receivables.Equal(decimal.NewFromInt(900)) {
		t.Errorf("Expected receivables 900, got %s", summary.Receivables)
	}
	// Cash receipt minus cash voucher
	if !summary.CashInHand.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected cash in hand 500, got %s", summary.CashInHand)
	}
	// 4*300 + 1*80
	if !summary.StockValue.Equal(decimal.NewFromInt(1280)) {
		t.Errorf("Expected stock value 1280, got %s", summary.StockValue)
	}
	if summary.InvoiceCount != 2 {
		t.Errorf("Expected 2 invoices, got %d", summary.InvoiceCount)
	}
	if summary.CustomerCount != 2 {
		t.Errorf("Expected 2 customers, got %d", summary.CustomerCount)
	}
	if len(summary.LowStockItems) != 1 || summary.LowStockItems[0].Name != "Tube" {
		t.Errorf("Expected low stock alert for Tube, got %v", summary.LowStockItems)
	}
}
