package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// APIToken authenticates non-browser clients. Only the SHA-256 hash is stored.
type APIToken struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	WorkspaceID int32      `json:"workspaceId"`
	Description string     `json:"description"`
	TokenHash   string     `json:"-"`
	TokenPrefix string     `json:"tokenPrefix"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastUsedAt  *time.Time `json:"lastUsedAt,omitempty"`
	RevokedAt   *time.Time `json:"revokedAt,omitempty"`
}

// APITokenResponse is the list/read shape (no secret material)
type APITokenResponse struct {
	ID          uuid.UUID  `json:"id"`
	Description string     `json:"description"`
	TokenPrefix string     `json:"tokenPrefix"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastUsedAt  *time.Time `json:"lastUsedAt,omitempty"`
}

// CreateAPITokenResponse carries the full token exactly once, at creation
type CreateAPITokenResponse struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	TokenPrefix string    `json:"tokenPrefix"`
	Token       string    `json:"token"`
	CreatedAt   time.Time `json:"createdAt"`
	Warning     string    `json:"warning"`
}

type APITokenRepository interface {
	Create(ctx context.Context, token *APIToken) error
	GetByWorkspace(ctx context.Context, workspaceID int32) ([]*APIToken, error)
	GetByHash(ctx context.Context, hash string) (*APIToken, error)
	Revoke(ctx context.Context, workspaceID int32, id uuid.UUID) error
	UpdateLastUsed(ctx context.Context, id uuid.UUID) error
}
