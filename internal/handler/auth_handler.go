package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/middleware"
	"github.com/velobooks/velobooks-backend/internal/service"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// UpdateProfileRequest represents the profile update request body
type UpdateProfileRequest struct {
	Name string `json:"name"`
}

// AuthCallbackResponse is returned after the post-login callback
type AuthCallbackResponse struct {
	User      *domain.User      `json:"user"`
	Workspace *domain.Workspace `json:"workspace"`
	IsNewUser bool              `json:"isNewUser"`
}

// MeResponse describes the authenticated user and their workspace
type MeResponse struct {
	User      *domain.User      `json:"user"`
	Workspace *domain.Workspace `json:"workspace"`
}

// Callback godoc
// @Summary Post-login callback
// @Description Provision the user and their workspace after Auth0 login.
// @Description Creates both on first sight of the Auth0 subject.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AuthCallbackResponse
// @Failure 401 {object} ProblemDetails
// @Router /auth/callback [post]
func (h *AuthHandler) Callback(c echo.Context) error {
	auth0ID := middleware.GetAuth0ID(c)
	if auth0ID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	claims := middleware.GetCustomClaims(c)
	if claims == nil || claims.Email == "" {
		return NewUnauthorizedError(c, "Token is missing an email claim")
	}

	var name, picture *string
	if claims.Name != "" {
		name = &claims.Name
	}
	if claims.Picture != "" {
		picture = &claims.Picture
	}

	result, err := h.authService.AuthenticateUser(auth0ID, claims.Email, name, picture)
	if err != nil {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to authenticate user")
		return NewInternalError(c, "Failed to authenticate user")
	}

	return c.JSON(http.StatusOK, AuthCallbackResponse{
		User:      result.User,
		Workspace: result.Workspace,
		IsNewUser: result.IsNewUser,
	})
}

// Me godoc
// @Summary Get the current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MeResponse
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	auth0ID := middleware.GetAuth0ID(c)
	if auth0ID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	user, err := h.authService.GetUserByAuth0ID(auth0ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to get user")
		return NewInternalError(c, "Failed to get user")
	}

	workspace, err := h.authService.GetWorkspaceByOwnerID(user.ID)
	if err != nil && !errors.Is(err, domain.ErrWorkspaceNotFound) {
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to get workspace")
		return NewInternalError(c, "Failed to get workspace")
	}

	return c.JSON(http.StatusOK, MeResponse{User: user, Workspace: workspace})
}

// UpdateProfile godoc
// @Summary Update the current user's display name
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile update request"
// @Success 200 {object} domain.User
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /auth/me [patch]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	auth0ID := middleware.GetAuth0ID(c)
	if auth0ID == "" {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	}

	user, err := h.authService.UpdateUserName(auth0ID, name)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Str("auth0_id", auth0ID).Msg("Failed to update profile")
		return NewInternalError(c, "Failed to update profile")
	}

	return c.JSON(http.StatusOK, user)
}
