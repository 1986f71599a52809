package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/testutil"
)

func newInvoiceTestFixture() (*InvoiceService, *testutil.MockInvoiceRepository, *testutil.MockCustomerRepository, *testutil.MockItemRepository) {
	invoiceRepo := testutil.NewMockInvoiceRepository()
	customerRepo := testutil.NewMockCustomerRepository()
	itemRepo := testutil.NewMockItemRepository()
	invoiceRepo.Items = itemRepo
	return NewInvoiceService(invoiceRepo, customerRepo, itemRepo), invoiceRepo, customerRepo, itemRepo
}

func addTestCustomer(repo *testutil.MockCustomerRepository, workspaceID int32) *domain.Customer {
	customer := &domain.Customer{ID: 1, WorkspaceID: workspaceID, Name: "Ravi Cycles"}
	repo.AddCustomer(customer)
	return customer
}

func TestCreateInvoice_Success(t *testing.T) {
	invoiceService, _, customerRepo, _ := newInvoiceTestFixture()
	customer := addTestCustomer(customerRepo, 1)

	invoice, err := invoiceService.CreateInvoice(1, CreateInvoiceInput{
		CustomerID: customer.ID,
		Items: []CreateInvoiceLineInput{
			{Description: "Gear tune-up", Quantity: 1, UnitPrice: decimal.NewFromInt(350)},
			{Description: "Brake pads", Quantity: 2, UnitPrice: decimal.NewFromInt(120)},
		},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if invoice.Number != "INV-1" {
		t.Errorf("Expected number INV-1, got %s", invoice.Number)
	}

	expected := decimal.NewFromInt(590)
	if !invoice.Total.Equal(expected) {
		t.Errorf("Expected total %s, got %s", expected, invoice.Total)
	}

	if len(invoice.Items) != 2 {
		t.Errorf("Expected 2 lines, got %d", len(invoice.Items))
	}
}

func TestCreateInvoice_SequentialNumbers(t *testing.T) {
	invoiceService, _, customerRepo, _ := newInvoiceTestFixture()
	customer := addTestCustomer(customerRepo, 1)

	for i, want := range []string{"INV-1", "INV-2", "INV-3"} {
		invoice, err := invoiceService.CreateInvoice(1, CreateInvoiceInput{
			CustomerID: customer.ID,
			Items: []CreateInvoiceLineInput{
				{Description: "Service", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
			},
		})
		if err != nil {
			t.Fatalf("Invoice %d: expected no error, got %v", i+1, err)
		}
		if invoice.Number != want {
			t.Errorf("Invoice %d: expected number %s, got %s", i+1, want, invoice.Number)
		}
	}
}

func TestCreateInvoice_NumberNotReusedAfterDelete(t *testing.T) {
	invoiceService, _, customerRepo, _ := newInvoiceTestFixture()
	customer := addTestCustomer(customerRepo, 1)

	first, err := invoiceService.CreateInvoice(1, CreateInvoiceInput{
		CustomerID: customer.ID,
		Items: []CreateInvoiceLineInput{
			{Description: "Service", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := invoiceService.DeleteInvoice(1, first.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	second, err := invoiceService.CreateInvoice(1, CreateInvoiceInput{
		CustomerID: customer.ID,
		Items: []CreateInvoiceLineInput{
			{Description: "Service", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if second.Number != "INV-2" {
		t.Errorf("Expected INV-2 after deleting INV-1, got %s", second.Number)
	}
}

func TestCreateInvoice_DecrementsStock(t *testing.T) {
	invoiceService, _, customerRepo, itemRepo := newInvoiceTestFixture()
	customer := addTestCustomer(customerRepo, 1)
	itemRepo.AddItem(&domain.Item{ID: 10, WorkspaceID: 1, Name: "Chain", Quantity: 5, UnitPrice: decimal.NewFromInt(450)})

	itemID := int32(10)
	_, err := invoiceService.CreateInvoice(1, CreateInvoiceInput{
		CustomerID: customer.ID,
		Items: []CreateInvoiceLineInput{
			{ItemID: &itemID, Description: "Chain", Quantity: 3, UnitPrice: decimal.NewFromInt(450)},
		},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	item, err := itemRepo.GetByID(1, itemID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if item.Quantity != 2 {
		t.Errorf("Expected quantity 2 after invoicing 3 of 5, got %d", item.Quantity)
	}
}

func TestCreateInvoice_InsufficientStock(t *testing.T) {
	invoiceService, _, customerRepo, itemRepo := newInvoiceTestFixture()
	customer := addTestCustomer(customerRepo, 1)
	itemRepo.AddItem(&domain.Item{ID: 10, WorkspaceID: 1, Name: "Chain", Quantity: 2, UnitPrice: decimal.NewFromInt(450)})

	itemID := int32(10)
	_, err := invoiceService.CreateInvoice(1, CreateInvoiceInput{
		CustomerID: customer.ID,
		Items: []CreateInvoiceLineInput{
			{ItemID: &itemID, Description: "Chain", Quantity: 3, UnitPrice: decimal.NewFromInt(450)},
		},
	})
	if err != domain.ErrInsufficientStock {
		t.Errorf("Expected ErrInsufficientStock, got %v", err)
	}

	item, _ := itemRepo.GetByID(1, itemID)
	if item.Quantity != 2 {
		t.Errorf("Expected stock untouched at 2, got %d", item.Quantity)
	}
}

func TestCreateInvoice_NoItems(t *testing.T) {
	invoiceService, _, customerRepo, _ := newInvoiceTestFixture()
	customer := addTestCustomer(customerRepo, 1)

	_, err := invoiceService.CreateInvoice(1, CreateInvoiceInput{CustomerID: customer.ID})
	if err != domain.ErrNoInvoiceItems {
		t.Errorf("Expected ErrNoInvoiceItems, got %v", err)
	}
}

func TestCreateInvoice_CustomerNotFound(t *testing.T) {
	invoiceService, _, _, _ := newInvoiceTestFixture()

	_, err := invoiceService.CreateInvoice(1, CreateInvoiceInput{
		CustomerID: 999,
		Items: []CreateInvoiceLineInput{
			{Description: "Service", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	if err != domain.ErrCustomerNotFound {
		t.Errorf("Expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCreateInvoice_InvalidQuantity(t *testing.T) {
	invoiceService, _, customerRepo, _ := newInvoiceTestFixture()
	customer := addTestCustomer(customerRepo, 1)

	_, err := invoiceService.CreateInvoice(1, CreateInvoiceInput{
		CustomerID: customer.ID,
		Items: []CreateInvoiceLineInput{
			{Description: "Service", Quantity: 0, UnitPrice: decimal.NewFromInt(100)},
		},
	})
	if err != domain.ErrInvalidQuantity {
		t.Errorf("Expected ErrInvalidQuantity, got %v", err)
	}
}

func TestCreateInvoice_NegativeUnitPrice(t *testing.T) {
	invoiceService, _, customerRepo, _ := newInvoiceTestFixture()
	customer := addTestCustomer(customerRepo, 1)

	_, err := invoiceService.CreateInvoice(1, CreateInvoiceInput{
		CustomerID: customer.ID,
		Items: []CreateInvoiceLineInput{
			{Description: "Service", Quantity: 1, UnitPrice: decimal.NewFromInt(-5)},
		},
	})
	if err != domain.ErrInvalidAmount {
		t.Errorf("Expected ErrInvalidAmount, got %v", err)
	}
}

func TestCreateInvoice_ZeroUnitPriceAllowed(t *testing.T) {
	invoiceService, _, customerRepo, _ := newInvoiceTestFixture()
	customer := addTestCustomer(customerRepo, 1)

	invoice, err := invoiceService.CreateInvoice(1, CreateInvoiceInput{
		CustomerID: customer.ID,
		Items: []CreateInvoiceLineInput{
			{Description: "Warranty rework", Quantity: 1, UnitPrice: decimal.Zero},
		},
	})
	if err != nil {
		t.Fatalf("Expected no error for free line, got %v", err)
	}
	if !invoice.Total.IsZero() {
		t.Errorf("Expected zero total, got %s", invoice.Total)
	}
}

func TestDeleteInvoice_RestoresStock(t *testing.T) {
	invoiceService, _, customerRepo, itemRepo := newInvoiceTestFixture()
	customer := addTestCustomer(customerRepo, 1)
	itemRepo.AddItem(&domain.Item{ID: 10, WorkspaceID: 1, Name: "Chain", Quantity: 5, UnitPrice: decimal.NewFromInt(450)})

	itemID := int32(10)
	invoice, err := invoiceService.CreateInvoice(1, CreateInvoiceInput{
		CustomerID: customer.ID,
		Items: []CreateInvoiceLineInput{
			{ItemID: &itemID, Description: "Chain", Quantity: 3, UnitPrice: decimal.NewFromInt(450)},
		},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := invoiceService.DeleteInvoice(1, invoice.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	item, _ := itemRepo.GetByID(1, itemID)
	if item.Quantity != 5 {
		t.Errorf("Expected quantity restored to 5, got %d", item.Quantity)
	}
}

func TestDeleteInvoice_NotFound(t *testing.T) {
	invoiceService, _, _, _ := newInvoiceTestFixture()

	if err := invoiceService.DeleteInvoice(1, 999); err != domain.ErrInvoiceNotFound {
		t.Errorf("Expected ErrInvoiceNotFound, got %v", err)
	}
}
