package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/middleware"
	"github.com/velobooks/velobooks-backend/internal/service"
	"github.com/velobooks/velobooks-backend/internal/util"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// CreateInvoiceLineRequest is one line of the create invoice request
type CreateInvoiceLineRequest struct {
	ItemID      *int32 `json:"itemId,omitempty"`
	Description string `json:"description"`
	Quantity    int32  `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
}

// CreateInvoiceRequest represents the create invoice request body
type CreateInvoiceRequest struct {
	CustomerID  int32                      `json:"customerId"`
	InvoiceDate string                     `json:"invoiceDate,omitempty"`
	Notes       *string                    `json:"notes,omitempty"`
	Items       []CreateInvoiceLineRequest `json:"items"`
}

// InvoiceItemResponse represents an invoice line in API responses
type InvoiceItemResponse struct {
	ID          int32  `json:"id"`
	ItemID      *int32 `json:"itemId,omitempty"`
	Description string `json:"description"`
	Quantity    int32  `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	LineTotal   string `json:"lineTotal"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID          int32                 `json:"id"`
	WorkspaceID int32                 `json:"workspaceId"`
	CustomerID  int32                 `json:"customerId"`
	Number      string                `json:"number"`
	InvoiceDate string                `json:"invoiceDate"`
	Total       string                `json:"total"`
	Notes       *string               `json:"notes,omitempty"`
	Items       []InvoiceItemResponse `json:"items"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

// PaginatedInvoicesResponse is a page of invoices in API responses
type PaginatedInvoicesResponse struct {
	Data       []InvoiceResponse `json:"data"`
	Page       int32             `json:"page"`
	PageSize   int32             `json:"pageSize"`
	TotalItems int64             `json:"totalItems"`
	TotalPages int32             `json:"totalPages"`
}

func newInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, line := range inv.Items {
		items[i] = InvoiceItemResponse{
			ID:          line.ID,
			ItemID:      line.ItemID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice.String(),
			LineTotal:   line.LineTotal().String(),
		}
	}
	return InvoiceResponse{
		ID:          inv.ID,
		WorkspaceID: inv.WorkspaceID,
		CustomerID:  inv.CustomerID,
		Number:      inv.Number,
		InvoiceDate: inv.InvoiceDate.Format(util.DateLayout),
		Total:       inv.Total.String(),
		Notes:       inv.Notes,
		Items:       items,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}

// CreateInvoice godoc
// @Summary Create an invoice
// @Description Create an invoice with line items. The total is computed from
// @Description the lines; lines linked to inventory items decrement stock.
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateInvoiceRequest true "Invoice creation request"
// @Success 201 {object} InvoiceResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /invoices [post]
func (h *InvoiceHandler) CreateInvoice(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req CreateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var invoiceDate *time.Time
	if req.InvoiceDate != "" {
		t, err := util.ParseDate(req.InvoiceDate)
		if err != nil {
			return NewValidationError(c, "Invalid invoice date", []ValidationError{
				{Field: "invoiceDate", Message: "Must be a date in YYYY-MM-DD format"},
			})
		}
		invoiceDate = &t
	}

	lines := make([]service.CreateInvoiceLineInput, len(req.Items))
	for i, line := range req.Items {
		unitPrice, err := decimal.NewFromString(line.UnitPrice)
		if err != nil {
			return NewValidationError(c, "Invalid unit price", []ValidationError{
				{Field: "items.unitPrice", Message: "Must be a valid decimal number"},
			})
		}
		lines[i] = service.CreateInvoiceLineInput{
			ItemID:      line.ItemID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
		}
	}

	input := service.CreateInvoiceInput{
		CustomerID:  req.CustomerID,
		InvoiceDate: invoiceDate,
		Notes:       req.Notes,
		Items:       lines,
	}

	invoice, err := h.invoiceService.CreateInvoice(workspaceID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCustomerNotFound):
			return NewNotFoundError(c, "Customer not found")
		case errors.Is(err, domain.ErrItemNotFound):
			return NewNotFoundError(c, "Inventory item not found")
		case errors.Is(err, domain.ErrNoInvoiceItems):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "items", Message: "At least one line item is required"},
			})
		case errors.Is(err, domain.ErrNameRequired):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "items.description", Message: "Description is required"},
			})
		case errors.Is(err, domain.ErrInvalidQuantity):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "items.quantity", Message: "Quantity must be greater than zero"},
			})
		case errors.Is(err, domain.ErrInvalidAmount):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "items.unitPrice", Message: "Unit price must not be negative"},
			})
		case errors.Is(err, domain.ErrNotesTooLong):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "notes", Message: "Notes must be 1000 characters or less"},
			})
		case errors.Is(err, domain.ErrInsufficientStock):
			return NewConflictError(c, "Not enough stock for one or more line items")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to create invoice")
		return NewInternalError(c, "Failed to create invoice")
	}

	return c.JSON(http.StatusCreated, newInvoiceResponse(invoice))
}

// GetInvoices godoc
// @Summary List invoices
// @Description Get paginated invoices with optional filters
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param customerId query int false "Filter by customer ID"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD), inclusive"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} PaginatedInvoicesResponse
// @Failure 401 {object} ProblemDetails
// @Router /invoices [get]
func (h *InvoiceHandler) GetInvoices(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	start, end, errField := parseDateRangeParams(c)
	if errField != "" {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: errField, Message: "Must be a date in YYYY-MM-DD format"},
		})
	}

	page, pageSize := parsePaginationParams(c)
	filters := &domain.InvoiceFilters{
		StartDate: start,
		EndDate:   end,
		Page:      page,
		PageSize:  pageSize,
	}
	if raw := c.QueryParam("customerId"); raw != "" {
		id, ok := parseQueryID(raw)
		if !ok {
			return NewValidationError(c, "Invalid customer ID", nil)
		}
		filters.CustomerID = &id
	}

	invoices, err := h.invoiceService.GetInvoices(workspaceID, filters)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to get invoices")
		return NewInternalError(c, "Failed to get invoices")
	}

	data := make([]InvoiceResponse, len(invoices.Data))
	for i, inv := range invoices.Data {
		data[i] = newInvoiceResponse(inv)
	}

	return c.JSON(http.StatusOK, PaginatedInvoicesResponse{
		Data:       data,
		Page:       invoices.Page,
		PageSize:   invoices.PageSize,
		TotalItems: invoices.TotalItems,
		TotalPages: invoices.TotalPages,
	})
}

// GetInvoice godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invoice ID"
// @Success 200 {object} InvoiceResponse
// @Failure 404 {object} ProblemDetails
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid invoice ID", nil)
	}

	invoice, err := h.invoiceService.GetInvoiceByID(workspaceID, id)
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return NewNotFoundError(c, "Invoice not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("invoice_id", id).Msg("Failed to get invoice")
		return NewInternalError(c, "Failed to get invoice")
	}

	return c.JSON(http.StatusOK, newInvoiceResponse(invoice))
}

// DeleteInvoice godoc
// @Summary Delete an invoice
// @Description Soft-delete an invoice and restore stock for its linked lines
// @Tags invoices
// @Security BearerAuth
// @Param id path int true "Invoice ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) DeleteInvoice(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid invoice ID", nil)
	}

	if err := h.invoiceService.DeleteInvoice(workspaceID, id); err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return NewNotFoundError(c, "Invoice not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("invoice_id", id).Msg("Failed to delete invoice")
		return NewInternalError(c, "Failed to delete invoice")
	}

	return c.NoContent(http.StatusNoContent)
}
