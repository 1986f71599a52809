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

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreatePaymentRequest represents the create payment request body
type CreatePaymentRequest struct {
	CustomerID  *int32  `json:"customerId,omitempty"`
	Direction   string  `json:"direction"`
	Method      string  `json:"method"`
	Category    string  `json:"category"`
	Amount      string  `json:"amount"`
	PaymentDate string  `json:"paymentDate,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID          int32     `json:"id"`
	WorkspaceID int32     `json:"workspaceId"`
	CustomerID  *int32    `json:"customerId,omitempty"`
	Number      string    `json:"number"`
	Direction   string    `json:"direction"`
	Method      string    `json:"method"`
	Category    string    `json:"category"`
	Amount      string    `json:"amount"`
	PaymentDate string    `json:"paymentDate"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PaginatedPaymentsResponse is a page of payments in API responses
type PaginatedPaymentsResponse struct {
	Data       []PaymentResponse `json:"data"`
	Page       int32             `json:"page"`
	PageSize   int32             `json:"pageSize"`
	TotalItems int64             `json:"totalItems"`
	TotalPages int32             `json:"totalPages"`
}

func newPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		WorkspaceID: p.WorkspaceID,
		CustomerID:  p.CustomerID,
		Number:      p.Number,
		Direction:   string(p.Direction),
		Method:      string(p.Method),
		Category:    string(p.Category),
		Amount:      p.Amount.String(),
		PaymentDate: p.PaymentDate.Format(util.DateLayout),
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// CreatePayment godoc
// @Summary Create a payment
// @Description Record a receipt (direction in) or voucher (direction out)
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePaymentRequest true "Payment creation request"
// @Success 201 {object} PaymentResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /payments [post]
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	var paymentDate *time.Time
	if req.PaymentDate != "" {
		t, err := util.ParseDate(req.PaymentDate)
		if err != nil {
			return NewValidationError(c, "Invalid payment date", []ValidationError{
				{Field: "paymentDate", Message: "Must be a date in YYYY-MM-DD format"},
			})
		}
		paymentDate = &t
	}

	input := service.CreatePaymentInput{
		CustomerID:  req.CustomerID,
		Direction:   domain.PaymentDirection(req.Direction),
		Method:      domain.PaymentMethod(req.Method),
		Category:    domain.PaymentCategory(req.Category),
		Amount:      amount,
		PaymentDate: paymentDate,
		Notes:       req.Notes,
	}

	payment, err := h.paymentService.CreatePayment(workspaceID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCustomerNotFound):
			return NewNotFoundError(c, "Customer not found")
		case errors.Is(err, domain.ErrInvalidDirection):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "direction", Message: "Must be 'in' or 'out'"},
			})
		case errors.Is(err, domain.ErrInvalidMethod):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "method", Message: "Must be 'cash', 'cheque' or 'bank'"},
			})
		case errors.Is(err, domain.ErrInvalidCategory):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "category", Message: "Must be 'sale', 'purchase', 'expense' or 'other'"},
			})
		case errors.Is(err, domain.ErrInvalidAmount):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be greater than zero"},
			})
		case errors.Is(err, domain.ErrNotesTooLong):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "notes", Message: "Notes must be 1000 characters or less"},
			})
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to create payment")
		return NewInternalError(c, "Failed to create payment")
	}

	return c.JSON(http.StatusCreated, newPaymentResponse(payment))
}

// GetPayments godoc
// @Summary List payments
// @Description Get paginated payments with optional filters
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param customerId query int false "Filter by customer ID"
// @Param direction query string false "Filter by direction (in/out)"
// @Param method query string false "Filter by method (cash/cheque/bank)"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD), inclusive"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} PaginatedPaymentsResponse
// @Failure 401 {object} ProblemDetails
// @Router /payments [get]
func (h *PaymentHandler) GetPayments(c echo.Context) error {
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
	filters := &domain.PaymentFilters{
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
	if raw := c.QueryParam("direction"); raw != "" {
		direction := domain.PaymentDirection(raw)
		filters.Direction = &direction
	}
	if raw := c.QueryParam("method"); raw != "" {
		method := domain.PaymentMethod(raw)
		filters.Method = &method
	}

	payments, err := h.paymentService.GetPayments(workspaceID, filters)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to get payments")
		return NewInternalError(c, "Failed to get payments")
	}

	data := make([]PaymentResponse, len(payments.Data))
	for i, p := range payments.Data {
		data[i] = newPaymentResponse(p)
	}

	return c.JSON(http.StatusOK, PaginatedPaymentsResponse{
		Data:       data,
		Page:       payments.Page,
		PageSize:   payments.PageSize,
		TotalItems: payments.TotalItems,
		TotalPages: payments.TotalPages,
	})
}

// GetPayment godoc
// @Summary Get a payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 200 {object} PaymentResponse
// @Failure 404 {object} ProblemDetails
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid payment ID", nil)
	}

	payment, err := h.paymentService.GetPaymentByID(workspaceID, id)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			return NewNotFoundError(c, "Payment not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("payment_id", id).Msg("Failed to get payment")
		return NewInternalError(c, "Failed to get payment")
	}

	return c.JSON(http.StatusOK, newPaymentResponse(payment))
}

// DeletePayment godoc
// @Summary Delete a payment
// @Tags payments
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /payments/{id} [delete]
func (h *PaymentHandler) DeletePayment(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid payment ID", nil)
	}

	if err := h.paymentService.DeletePayment(workspaceID, id); err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			return NewNotFoundError(c, "Payment not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("payment_id", id).Msg("Failed to delete payment")
		return NewInternalError(c, "Failed to delete payment")
	}

	return c.NoContent(http.StatusNoContent)
}
