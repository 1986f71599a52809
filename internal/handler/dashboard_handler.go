package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/velobooks/velobooks-backend/internal/middleware"
	"github.com/velobooks/velobooks-backend/internal/service"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// DashboardSummaryResponse represents the workshop dashboard summary
type DashboardSummaryResponse struct {
	Receivables   string         `json:"receivables"`
	CashInHand    string         `json:"cashInHand"`
	StockValue    string         `json:"stockValue"`
	TotalInvoiced string         `json:"totalInvoiced"`
	TotalReceived string         `json:"totalReceived"`
	InvoiceCount  int64          `json:"invoiceCount"`
	CustomerCount int64          `json:"customerCount"`
	LowStockItems []ItemResponse `json:"lowStockItems"`
}

// GetSummary godoc
// @Summary Get the dashboard summary
// @Description Workspace-wide totals: receivables, cash in hand, stock value
// @Description and low stock alerts
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardSummaryResponse
// @Failure 401 {object} ProblemDetails
// @Router /dashboard [get]
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	summary, err := h.dashboardService.GetSummary(workspaceID)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to build dashboard summary")
		return NewInternalError(c, "Failed to build dashboard summary")
	}

	return c.JSON(http.StatusOK, DashboardSummaryResponse{
		Receivables:   summary.Receivables.String(),
		CashInHand:    summary.CashInHand.String(),
		StockValue:    summary.StockValue.String(),
		TotalInvoiced: summary.TotalInvoiced.String(),
		TotalReceived: summary.TotalReceived.String(),
		InvoiceCount:  summary.InvoiceCount,
		CustomerCount: summary.CustomerCount,
		LowStockItems: newItemResponses(summary.LowStockItems),
	})
}
