package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/middleware"
	"github.com/velobooks/velobooks-backend/internal/service"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService  *service.CustomerService
	statementService *service.StatementService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *service.CustomerService, statementService *service.StatementService) *CustomerHandler {
	return &CustomerHandler{
		customerService:  customerService,
		statementService: statementService,
	}
}

// CreateCustomerRequest represents the create customer request body
type CreateCustomerRequest struct {
	Name    string  `json:"name"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// UpdateCustomerRequest represents the update customer request body
type UpdateCustomerRequest struct {
	Name    string  `json:"name"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// CreateCustomer godoc
// @Summary Create a customer
// @Description Create a new customer in the workspace
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCustomerRequest true "Customer creation request"
// @Success 201 {object} domain.Customer
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req CreateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.CreateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Notes:   req.Notes,
	}

	customer, err := h.customerService.CreateCustomer(workspaceID, input)
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 255 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrNotesTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "notes", Message: "Notes must be 1000 characters or less"},
			})
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to create customer")
		return NewInternalError(c, "Failed to create customer")
	}

	return c.JSON(http.StatusCreated, customer)
}

// GetCustomers godoc
// @Summary List customers
// @Description Get paginated customers with optional name/phone/email search
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search by name, phone, or email"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} domain.PaginatedCustomers
// @Failure 401 {object} ProblemDetails
// @Router /customers [get]
func (h *CustomerHandler) GetCustomers(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	page, pageSize := parsePaginationParams(c)
	filters := &domain.CustomerFilters{
		Search:   c.QueryParam("search"),
		Page:     page,
		PageSize: pageSize,
	}

	customers, err := h.customerService.GetCustomers(workspaceID, filters)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to get customers")
		return NewInternalError(c, "Failed to get customers")
	}

	return c.JSON(http.StatusOK, customers)
}

// GetCustomer godoc
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} domain.Customer
// @Failure 404 {object} ProblemDetails
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid customer ID", nil)
	}

	customer, err := h.customerService.GetCustomerByID(workspaceID, id)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return NewNotFoundError(c, "Customer not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("customer_id", id).Msg("Failed to get customer")
		return NewInternalError(c, "Failed to get customer")
	}

	return c.JSON(http.StatusOK, customer)
}

// UpdateCustomer godoc
// @Summary Update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Param request body UpdateCustomerRequest true "Customer update request"
// @Success 200 {object} domain.Customer
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid customer ID", nil)
	}

	var req UpdateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Notes:   req.Notes,
	}

	customer, err := h.customerService.UpdateCustomer(workspaceID, id, input)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return NewNotFoundError(c, "Customer not found")
		}
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 255 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrNotesTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "notes", Message: "Notes must be 1000 characters or less"},
			})
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("customer_id", id).Msg("Failed to update customer")
		return NewInternalError(c, "Failed to update customer")
	}

	return c.JSON(http.StatusOK, customer)
}

// DeleteCustomer godoc
// @Summary Delete a customer
// @Description Soft-delete a customer; their invoices and payments remain
// @Tags customers
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid customer ID", nil)
	}

	if err := h.customerService.DeleteCustomer(workspaceID, id); err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return NewNotFoundError(c, "Customer not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("customer_id", id).Msg("Failed to delete customer")
		return NewInternalError(c, "Failed to delete customer")
	}

	return c.NoContent(http.StatusNoContent)
}

// GetStatement godoc
// @Summary Get a customer statement
// @Description Running-balance statement of invoices against receipts. The
// @Description balance column runs over the full history even when a window
// @Description is requested; the opening balance carries everything before it.
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD), inclusive"
// @Success 200 {object} StatementResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /customers/{id}/statement [get]
func (h *CustomerHandler) GetStatement(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid customer ID", nil)
	}

	start, end, errField := parseDateRangeParams(c)
	if errField != "" {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: errField, Message: "Must be a date in YYYY-MM-DD format"},
		})
	}

	statement, err := h.statementService.GetStatement(workspaceID, id, start, end)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return NewNotFoundError(c, "Customer not found")
		}
		if errors.Is(err, ledgerErrInvalidRange) {
			return NewValidationError(c, "startDate must not be after endDate", nil)
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("customer_id", id).Msg("Failed to build statement")
		return NewInternalError(c, "Failed to build statement")
	}

	return c.JSON(http.StatusOK, newStatementResponse(statement))
}
