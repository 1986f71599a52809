package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/velobooks/velobooks-backend/internal/middleware"
	"github.com/velobooks/velobooks-backend/internal/service"
)

// CashbookHandler handles cashbook HTTP requests
type CashbookHandler struct {
	cashbookService *service.CashbookService
}

// NewCashbookHandler creates a new CashbookHandler
func NewCashbookHandler(cashbookService *service.CashbookService) *CashbookHandler {
	return &CashbookHandler{cashbookService: cashbookService}
}

// GetCashbook godoc
// @Summary Get the cashbook
// @Description Chronological cash and cheque movements with running balance
// @Tags cashbook
// @Produce json
// @Security BearerAuth
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD), inclusive"
// @Success 200 {object} CashbookResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /cashbook [get]
func (h *CashbookHandler) GetCashbook(c echo.Context) error {
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

	summary, err := h.cashbookService.GetCashbook(workspaceID, start, end)
	if err != nil {
		if errors.Is(err, ledgerErrInvalidRange) {
			return NewValidationError(c, "Invalid date range", []ValidationError{
				{Field: "endDate", Message: "End date must not be before start date"},
			})
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to build cashbook")
		return NewInternalError(c, "Failed to build cashbook")
	}

	return c.JSON(http.StatusOK, newCashbookResponse(summary))
}
