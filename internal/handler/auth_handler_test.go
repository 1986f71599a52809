package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/labstack/echo/v4"

	"github.com/velobooks/velobooks-backend/internal/middleware"
	"github.com/velobooks/velobooks-backend/internal/service"
	"github.com/velobooks/velobooks-backend/internal/testutil"
)

// Helper to set up auth context
func setupAuthContext(c echo.Context, auth0ID string, email, name, picture string) {
	setupAuthContextWithWorkspace(c, auth0ID, email, name, picture, 0)
}

// Helper to set up auth context with workspace ID
func setupAuthContextWithWorkspace(c echo.Context, auth0ID string, email, name, picture string, workspaceID int32) {
	customClaims := &middleware.CustomClaims{
		Email:   email,
		Name:    name,
		Picture: picture,
	}
	claims := &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Subject: auth0ID,
		},
		CustomClaims: customClaims,
	}
	ctx := context.WithValue(c.Request().Context(), middleware.ClaimsKey, claims)
	ctx = context.WithValue(ctx, middleware.Auth0IDKey, auth0ID)
	if workspaceID > 0 {
		ctx = context.WithValue(ctx, middleware.WorkspaceIDKey, workspaceID)
	}
	c.SetRequest(c.Request().WithContext(ctx))
}

func newAuthTestHandler() *AuthHandler {
	userRepo := testutil.NewMockUserRepository()
	workspaceRepo := testutil.NewMockWorkspaceRepository()
	return NewAuthHandler(service.NewAuthService(userRepo, workspaceRepo))
}

func TestCallback_NewUser(t *testing.T) {
	e := echo.New()
	handler := newAuthTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|newuser123", "new@example.com", "New User", "https://example.com/pic.jpg")

	err := handler.Callback(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response AuthCallbackResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if !response.IsNewUser {
		t.Error("Expected isNewUser to be true")
	}
	if response.User == nil || response.User.Email != "new@example.com" {
		t.Errorf("Expected user with email 'new@example.com', got %+v", response.User)
	}
	if response.Workspace == nil {
		t.Fatal("Expected a workspace to be provisioned")
	}
	if response.Workspace.OwnerID != response.User.ID {
		t.Error("Expected workspace owned by the new user")
	}
}

func TestCallback_ReturningUser(t *testing.T) {
	e := echo.New()
	handler := newAuthTestHandler()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		setupAuthContext(c, "auth0|repeat", "repeat@example.com", "Repeat", "")

		if err := handler.Callback(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		var response AuthCallbackResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if i == 1 && response.IsNewUser {
			t.Error("Expected isNewUser to be false on second login")
		}
	}
}

func TestCallback_MissingEmail(t *testing.T) {
	e := echo.New()
	handler := newAuthTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setupAuthContext(c, "auth0|noemail", "", "No Email", "")

	err := handler.Callback(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestCallback_NoAuthContext(t *testing.T) {
	e := echo.New()
	handler := newAuthTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Callback(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestMe_Success(t *testing.T) {
	e := echo.New()
	handler := newAuthTestHandler()

	// provision via callback first
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|me", "me@example.com", "Me", "")
	if err := handler.Callback(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	setupAuthContext(c, "auth0|me", "me@example.com", "Me", "")

	if err := handler.Me(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response MeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.User == nil || response.User.Auth0ID != "auth0|me" {
		t.Errorf("Expected the authenticated user, got %+v", response.User)
	}
	if response.Workspace == nil {
		t.Error("Expected the user's workspace")
	}
}

func TestMe_UserNotFound(t *testing.T) {
	e := echo.New()
	handler := newAuthTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|stranger", "s@example.com", "", "")

	if err := handler.Me(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	e := echo.New()
	handler := newAuthTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/callback", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|rename", "rename@example.com", "Old Name", "")
	if err := handler.Callback(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req = httptest.NewRequest(http.MethodPatch, "/api/v1/auth/me", strings.NewReader(`{"name": "New Name"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	setupAuthContext(c, "auth0|rename", "rename@example.com", "Old Name", "")

	if err := handler.UpdateProfile(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["name"] != "New Name" {
		t.Errorf("Expected name 'New Name', got %v", response["name"])
	}
}

func TestUpdateProfile_EmptyName(t *testing.T) {
	e := echo.New()
	handler := newAuthTestHandler()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/auth/me", strings.NewReader(`{"name": "   "}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "auth0|rename", "rename@example.com", "Old", "")

	if err := handler.UpdateProfile(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
