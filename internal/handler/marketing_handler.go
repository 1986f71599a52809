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

// MarketingHandler handles promotional content HTTP requests
type MarketingHandler struct {
	marketingService *service.MarketingService
}

// NewMarketingHandler creates a new MarketingHandler
func NewMarketingHandler(marketingService *service.MarketingService) *MarketingHandler {
	return &MarketingHandler{marketingService: marketingService}
}

// DraftPromotionRequest represents the promotion draft request body
type DraftPromotionRequest struct {
	Topic    string `json:"topic"`
	Audience string `json:"audience,omitempty"`
	Tone     string `json:"tone,omitempty"`
}

// DraftPromotionResponse carries generated promotional copy
type DraftPromotionResponse struct {
	Content string `json:"content"`
}

// DraftPromotion godoc
// @Summary Draft promotional copy
// @Description Generate a short promotional message for the workshop using
// @Description the configured content generator
// @Tags marketing
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DraftPromotionRequest true "Promotion draft request"
// @Success 200 {object} DraftPromotionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /marketing/promotions [post]
func (h *MarketingHandler) DraftPromotion(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	if h.marketingService == nil || !h.marketingService.IsEnabled() {
		return NewServiceUnavailableError(c, "Content generation is not configured")
	}

	var req DraftPromotionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	content, err := h.marketingService.DraftPromotion(c.Request().Context(), workspaceID, service.DraftPromotionInput{
		Topic:    req.Topic,
		Audience: req.Audience,
		Tone:     req.Tone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMarketingNotConfigured):
			return NewServiceUnavailableError(c, "Content generation is not configured")
		case errors.Is(err, domain.ErrInvalidInput):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "topic", Message: "Topic is required and must be 500 characters or less"},
			})
		case errors.Is(err, domain.ErrWorkspaceNotFound):
			return NewNotFoundError(c, "Workspace not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to draft promotion")
		return NewInternalError(c, "Failed to draft promotion")
	}

	return c.JSON(http.StatusOK, DraftPromotionResponse{Content: content})
}
