package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/middleware"
	"github.com/velobooks/velobooks-backend/internal/service"
)

// APITokenHandler handles API token management requests
type APITokenHandler struct {
	tokenService *service.APITokenService
	authService  *service.AuthService
}

// NewAPITokenHandler creates a new APITokenHandler
func NewAPITokenHandler(tokenService *service.APITokenService, authService *service.AuthService) *APITokenHandler {
	return &APITokenHandler{tokenService: tokenService, authService: authService}
}

// CreateAPITokenRequest represents the token creation request body
type CreateAPITokenRequest struct {
	Description string `json:"description"`
}

// resolveUserID finds the acting user. JWT requests carry only the Auth0
// subject, so the user row is looked up from it.
func (h *APITokenHandler) resolveUserID(c echo.Context) (uuid.UUID, error) {
	if id := middleware.GetUserID(c); id != uuid.Nil {
		return id, nil
	}
	auth0ID := middleware.GetAuth0ID(c)
	if auth0ID == "" {
		return uuid.Nil, domain.ErrUnauthorized
	}
	user, err := h.authService.GetUserByAuth0ID(auth0ID)
	if err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

// CreateToken godoc
// @Summary Create an API token
// @Description Create a workspace API token. The full token value is returned
// @Description once and never stored.
// @Tags api-tokens
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAPITokenRequest true "Token creation request"
// @Success 201 {object} domain.CreateAPITokenResponse
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /tokens [post]
func (h *APITokenHandler) CreateToken(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	userID, err := h.resolveUserID(c)
	if err != nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateAPITokenRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description is required"},
		})
	}

	resp, err := h.tokenService.Create(c.Request().Context(), userID, workspaceID, description)
	if err != nil {
		if errors.Is(err, domain.ErrTooManyAPITokens) {
			return NewConflictError(c, "Token limit reached for this workspace")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to create API token")
		return NewInternalError(c, "Failed to create API token")
	}

	return c.JSON(http.StatusCreated, resp)
}

// ListTokens godoc
// @Summary List API tokens
// @Description List active tokens for the workspace. Token values are never
// @Description returned, only display prefixes.
// @Tags api-tokens
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.APITokenResponse
// @Failure 401 {object} ProblemDetails
// @Router /tokens [get]
func (h *APITokenHandler) ListTokens(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	tokens, err := h.tokenService.GetByWorkspace(c.Request().Context(), workspaceID)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to list API tokens")
		return NewInternalError(c, "Failed to list API tokens")
	}

	return c.JSON(http.StatusOK, tokens)
}

// RevokeToken godoc
// @Summary Revoke an API token
// @Tags api-tokens
// @Security BearerAuth
// @Param id path string true "Token ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /tokens/{id} [delete]
func (h *APITokenHandler) RevokeToken(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	tokenID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid token ID", nil)
	}

	if err := h.tokenService.Revoke(c.Request().Context(), workspaceID, tokenID); err != nil {
		if errors.Is(err, domain.ErrAPITokenNotFound) {
			return NewNotFoundError(c, "Token not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Str("token_id", tokenID.String()).Msg("Failed to revoke API token")
		return NewInternalError(c, "Failed to revoke API token")
	}

	return c.NoContent(http.StatusNoContent)
}
