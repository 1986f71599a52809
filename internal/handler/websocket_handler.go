package handler

import (
	"context"
	"net/http"
	"strings"

	ws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/websocket"
)

// JWTValidator validates JWT tokens and returns the workspace ID
type JWTValidator interface {
	ValidateToken(token string) (workspaceID int32, err error)
}

// APITokenValidator validates workspace API tokens
type APITokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*domain.APIToken, error)
}

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	hub            *websocket.Hub
	jwtValidator   JWTValidator
	tokenValidator APITokenValidator
	allowedOrigins map[string]bool
	upgrader       ws.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *websocket.Hub, jwtValidator JWTValidator, tokenValidator APITokenValidator, allowedOrigins []string) *WebSocketHandler {
	originMap := make(map[string]bool)
	for _, origin := range allowedOrigins {
		originMap[origin] = true
	}

	h := &WebSocketHandler{
		hub:            hub,
		jwtValidator:   jwtValidator,
		tokenValidator: tokenValidator,
		allowedOrigins: originMap,
	}

	h.upgrader = ws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

// checkOrigin validates the request origin against allowed origins. Requests
// without an Origin header (non-browser clients) are allowed through.
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	if h.allowedOrigins[origin] {
		return true
	}

	log.Warn().
		Str("origin", origin).
		Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// resolveWorkspace authenticates the ws token, accepting either an Auth0 JWT
// or a workspace API token
func (h *WebSocketHandler) resolveWorkspace(c echo.Context, token string) (int32, error) {
	if strings.HasPrefix(token, "velo_") && h.tokenValidator != nil {
		apiToken, err := h.tokenValidator.ValidateToken(c.Request().Context(), token)
		if err != nil {
			return 0, err
		}
		return apiToken.WorkspaceID, nil
	}
	return h.jwtValidator.ValidateToken(token)
}

// HandleWS handles WebSocket connection requests at GET /ws. The token rides
// in a query parameter because browsers cannot set headers on ws dials.
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		log.Debug().Msg("WebSocket connection rejected: missing token")
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	workspaceID, err := h.resolveWorkspace(c, token)
	if err != nil {
		log.Debug().Err(err).Msg("WebSocket connection rejected: invalid token")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return err
	}

	client := websocket.NewClient(conn, workspaceID, h.hub)
	h.hub.Register(client)

	log.Info().
		Int32("workspace_id", workspaceID).
		Str("client_id", client.ID()).
		Msg("WebSocket client connected")

	go client.WritePump()
	go client.ReadPump()

	return nil
}
