package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/middleware"
	"github.com/velobooks/velobooks-backend/internal/service"
)

// PreferenceHandler handles workspace preference HTTP requests
type PreferenceHandler struct {
	preferenceService *service.PreferenceService
}

// NewPreferenceHandler creates a new PreferenceHandler
func NewPreferenceHandler(preferenceService *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

// GetPreference godoc
// @Summary Get a workspace preference
// @Tags preferences
// @Produce json
// @Security BearerAuth
// @Param key path string true "Preference key"
// @Success 200 {object} domain.Preference
// @Failure 404 {object} ProblemDetails
// @Router /preferences/{key} [get]
func (h *PreferenceHandler) GetPreference(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	key := c.Param("key")
	pref, err := h.preferenceService.GetPreference(workspaceID, key)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPreferenceNotFound):
			return NewNotFoundError(c, "Preference not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return NewValidationError(c, "Invalid preference key", nil)
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Str("key", key).Msg("Failed to get preference")
		return NewInternalError(c, "Failed to get preference")
	}

	return c.JSON(http.StatusOK, pref)
}

// SetPreference godoc
// @Summary Set a workspace preference
// @Description Store an opaque JSON value under the given key, replacing any
// @Description previous value
// @Tags preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Preference key"
// @Param value body object true "JSON value"
// @Success 200 {object} domain.Preference
// @Failure 400 {object} ProblemDetails
// @Router /preferences/{key} [put]
func (h *PreferenceHandler) SetPreference(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	key := c.Param("key")
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	pref, err := h.preferenceService.SetPreference(workspaceID, key, json.RawMessage(body))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "value", Message: "Body must be valid JSON and the key 100 characters or less"},
			})
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Str("key", key).Msg("Failed to set preference")
		return NewInternalError(c, "Failed to set preference")
	}

	return c.JSON(http.StatusOK, pref)
}

// DeletePreference godoc
// @Summary Delete a workspace preference
// @Tags preferences
// @Security BearerAuth
// @Param key path string true "Preference key"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /preferences/{key} [delete]
func (h *PreferenceHandler) DeletePreference(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	key := c.Param("key")
	if err := h.preferenceService.DeletePreference(workspaceID, key); err != nil {
		switch {
		case errors.Is(err, domain.ErrPreferenceNotFound):
			return NewNotFoundError(c, "Preference not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return NewValidationError(c, "Invalid preference key", nil)
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Str("key", key).Msg("Failed to delete preference")
		return NewInternalError(c, "Failed to delete preference")
	}

	return c.NoContent(http.StatusNoContent)
}
