package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/service"
	"github.com/velobooks/velobooks-backend/internal/testutil"
)

type invoiceHandlerFixture struct {
	handler      *InvoiceHandler
	customerRepo *testutil.MockCustomerRepository
	itemRepo     *testutil.MockItemRepository
	invoiceRepo  *testutil.MockInvoiceRepository
}

func newInvoiceHandlerFixture() *invoiceHandlerFixture {
	customerRepo := testutil.NewMockCustomerRepository()
	itemRepo := testutil.NewMockItemRepository()
	invoiceRepo := testutil.NewMockInvoiceRepository()
	invoiceRepo.Items = itemRepo
	invoiceService := service.NewInvoiceService(invoiceRepo, customerRepo, itemRepo)
	return &invoiceHandlerFixture{
		handler:      NewInvoiceHandler(invoiceService),
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		invoiceRepo:  invoiceRepo,
	}
}

func TestCreateInvoice_Success(t *testing.T) {
	e := echo.New()
	f := newInvoiceHandlerFixture()

	f.customerRepo.AddCustomer(&domain.Customer{ID: 1, WorkspaceID: 1, Name: "Ravi"})

	reqBody := `{
		"customerId": 1,
		"invoiceDate": "2026-03-01",
		"items": [
			{"description": "Full service", "quantity": 1, "unitPrice": "450.00"},
			{"description": "Brake pads", "quantity": 2, "unitPrice": "70.00"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithWorkspace(c, "auth0|test", "test@example.com", "Test User", "", 1)

	if err := f.handler.CreateInvoice(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response InvoiceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Number != "INV-1" {
		t.Errorf("Expected number 'INV-1', got %s", response.Number)
	}
	if response.Total != "590" {
		t.Errorf("Expected total '590', got %s", response.Total)
	}
	if response.InvoiceDate != "2026-03-01" {
		t.Errorf("Expected invoice date '2026-03-01', got %s", response.InvoiceDate)
	}
	if len(response.Items) != 2 {
		t.Errorf("Expected 2 line items, got %d", len(response.Items))
	}
}

func TestCreateInvoice_CustomerNotFound(t *testing.T) {
	e := echo.New()
	f := newInvoiceHandlerFixture()

	reqBody := `{"customerId": 42, "items": [{"description": "Tune-up", "quantity": 1, "unitPrice": "300"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithWorkspace(c, "auth0|test", "test@example.com", "Test User", "", 1)

	if err := f.handler.CreateInvoice(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestCreateInvoice_NoItems(t *testing.T) {
	e := echo.New()
	f := newInvoiceHandlerFixture()

	f.customerRepo.AddCustomer(&domain.Customer{ID: 1, WorkspaceID: 1, Name: "Ravi"})

	reqBody := `{"customerId": 1, "items": []}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithWorkspace(c, "auth0|test", "test@example.com", "Test User", "", 1)

	if err := f.handler.CreateInvoice(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateInvoice_InsufficientStock(t *testing.T) {
	e := echo.New()
	f := newInvoiceHandlerFixture()

	f.customerRepo.AddCustomer(&domain.Customer{ID: 1, WorkspaceID: 1, Name: "Ravi"})
	f.itemRepo.AddItem(&domain.Item{
		ID: 1, WorkspaceID: 1, Name: "Chain", Quantity: 1,
		UnitPrice: decimal.NewFromInt(850), CostPrice: decimal.NewFromInt(600),
	})

	reqBody := `{"customerId": 1, "items": [{"itemId": 1, "description": "Chain", "quantity": 3, "unitPrice": "850"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithWorkspace(c, "auth0|test", "test@example.com", "Test User", "", 1)

	if err := f.handler.CreateInvoice(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

func TestGetInvoices_FilterByCustomer(t *testing.T) {
	e := echo.New()
	f := newInvoiceHandlerFixture()

	f.invoiceRepo.AddInvoice(&domain.Invoice{ID: 1, WorkspaceID: 1, CustomerID: 1, Number: "INV-1", Total: decimal.NewFromInt(100)})
	f.invoiceRepo.AddInvoice(&domain.Invoice{ID: 2, WorkspaceID: 1, CustomerID: 2, Number: "INV-2", Total: decimal.NewFromInt(200)})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices?customerId=2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContextWithWorkspace(c, "auth0|test", "test@example.com", "Test User", "", 1)

	if err := f.handler.GetInvoices(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response PaginatedInvoicesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Data) != 1 {
		t.Fatalf("Expected 1 invoice, got %d", len(response.Data))
	}
	if response.Data[0].Number != "INV-2" {
		t.Errorf("Expected 'INV-2', got %s", response.Data[0].Number)
	}
}

func TestDeleteInvoice_Success(t *testing.T) {
	e := echo.New()
	f := newInvoiceHandlerFixture()

	f.invoiceRepo.AddInvoice(&domain.Invoice{ID: 1, WorkspaceID: 1, CustomerID: 1, Number: "INV-1", Total: decimal.NewFromInt(100)})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/invoices/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	setupAuthContextWithWorkspace(c, "auth0|test", "test@example.com", "Test User", "", 1)

	if err := f.handler.DeleteInvoice(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
}

func TestDeleteInvoice_NotFound(t *testing.T) {
	e := echo.New()
	f := newInvoiceHandlerFixture()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/invoices/5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("5")

	setupAuthContextWithWorkspace(c, "auth0|test", "test@example.com", "Test User", "", 1)

	if err := f.handler.DeleteInvoice(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
