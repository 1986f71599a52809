package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velobooks/velobooks-backend/internal/domain"
)

// APITokenRepository implements domain.APITokenRepository using PostgreSQL
type APITokenRepository struct {
	pool *pgxpool.Pool
}

// NewAPITokenRepository creates a new APITokenRepository
func NewAPITokenRepository(pool *pgxpool.Pool) *APITokenRepository {
	return &APITokenRepository{pool: pool}
}

const apiTokenColumns = `id, user_id, workspace_id, description, token_hash, token_prefix, created_at, last_used_at, revoked_at`

func scanAPIToken(row pgx.Row) (*domain.APIToken, error) {
	var t domain.APIToken
	err := row.Scan(&t.ID, &t.UserID, &t.WorkspaceID, &t.Description, &t.TokenHash, &t.TokenPrefix,
		&t.CreatedAt, &t.LastUsedAt, &t.RevokedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create creates a new API token and fills in the generated ID and timestamp
func (r *APITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO api_tokens (user_id, workspace_id, description, token_hash, token_prefix)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		token.UserID, token.WorkspaceID, token.Description, token.TokenHash, token.TokenPrefix).
		Scan(&token.ID, &token.CreatedAt)
}

// GetByWorkspace retrieves all active API tokens for a workspace
func (r *APITokenRepository) GetByWorkspace(ctx context.Context, workspaceID int32) ([]*domain.APIToken, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+apiTokenColumns+` FROM api_tokens
		WHERE workspace_id = $1 AND revoked_at IS NULL
		ORDER BY created_at DESC`,
		workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tokens := []*domain.APIToken{}
	for rows.Next() {
		token, err := scanAPIToken(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// GetByHash retrieves an active API token by its hash (for authentication)
func (r *APITokenRepository) GetByHash(ctx context.Context, hash string) (*domain.APIToken, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+apiTokenColumns+` FROM api_tokens
		WHERE token_hash = $1 AND revoked_at IS NULL`,
		hash)

	token, err := scanAPIToken(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAPITokenNotFound
		}
		return nil, err
	}
	return token, nil
}

// Revoke marks an API token as revoked
func (r *APITokenRepository) Revoke(ctx context.Context, workspaceID int32, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE api_tokens SET revoked_at = NOW()
		WHERE workspace_id = $1 AND id = $2 AND revoked_at IS NULL`,
		workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAPITokenNotFound
	}
	return nil
}

// UpdateLastUsed updates the last_used_at timestamp for a token
func (r *APITokenRepository) UpdateLastUsed(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE api_tokens SET last_used_at = NOW() WHERE id = $1`, id)
	return err
}
