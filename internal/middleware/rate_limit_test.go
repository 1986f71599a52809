package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func apiTokenContext(e *echo.Echo, rec *httptest.ResponseRecorder, tokenID uuid.UUID) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
	ctx := context.WithValue(req.Context(), IsAPITokenAuthKey, true)
	ctx = context.WithValue(ctx, APITokenIDKey, tokenID)
	return e.NewContext(req.WithContext(ctx), rec)
}

func TestRateLimiter_BurstThenLimited(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 5)
	defer rl.Stop()

	tokenID := uuid.New()

	for i := 0; i < 5; i++ {
		if !rl.Allow(tokenID) {
			t.Errorf("Request %d should be allowed within the burst", i+1)
		}
	}
	if rl.Allow(tokenID) {
		t.Error("Request 6 should be rate limited")
	}
}

func TestRateLimiter_TokensAreIndependent(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 3)
	defer rl.Stop()

	token1 := uuid.New()
	token2 := uuid.New()

	for i := 0; i < 3; i++ {
		if !rl.Allow(token1) {
			t.Errorf("Token1 request %d should be allowed", i+1)
		}
	}
	if rl.Allow(token1) {
		t.Error("Token1 should be rate limited")
	}

	// the second token's bucket is untouched
	for i := 0; i < 3; i++ {
		if !rl.Allow(token2) {
			t.Errorf("Token2 request %d should be allowed", i+1)
		}
	}
}

func TestRateLimitMiddleware_SkipsJWTRequests(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(1, 1)
	defer rl.Stop()

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}

	// no API token markers on the context, so the limiter never engages
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/customers", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := RateLimitMiddleware(rl)(handler)(c); err != nil {
			t.Fatalf("Request %d: Expected no error, got %v", i+1, err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("Request %d: Expected status 200, got %d", i+1, rec.Code)
		}
	}
}

func TestRateLimitMiddleware_LimitsAPITokenRequests(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(10, 2)
	defer rl.Stop()

	tokenID := uuid.New()
	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		c := apiTokenContext(e, rec, tokenID)

		if err := RateLimitMiddleware(rl)(handler)(c); err != nil {
			t.Fatalf("Request %d: Expected no error, got %v", i+1, err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("Request %d: Expected status 200, got %d", i+1, rec.Code)
		}
		if rec.Header().Get("X-RateLimit-Limit") == "" {
			t.Errorf("Request %d: Expected X-RateLimit-Limit header", i+1)
		}
		if rec.Header().Get("X-RateLimit-Remaining") == "" {
			t.Errorf("Request %d: Expected X-RateLimit-Remaining header", i+1)
		}
	}

	rec := httptest.NewRecorder()
	c := apiTokenContext(e, rec, tokenID)

	if err := RateLimitMiddleware(rl)(handler)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("Expected X-RateLimit-Remaining '0', got %s", rec.Header().Get("X-RateLimit-Remaining"))
	}
}
