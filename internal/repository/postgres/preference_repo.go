package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velobooks/velobooks-backend/internal/domain"
)

// PreferenceRepository implements domain.PreferenceRepository using PostgreSQL
type PreferenceRepository struct {
	pool *pgxpool.Pool
}

// NewPreferenceRepository creates a new PreferenceRepository
func NewPreferenceRepository(pool *pgxpool.Pool) *PreferenceRepository {
	return &PreferenceRepository{pool: pool}
}

// Get retrieves one preference by key
func (r *PreferenceRepository) Get(workspaceID int32, key string) (*domain.Preference, error) {
	var pref domain.Preference
	err := r.pool.QueryRow(context.Background(), `
		SELECT workspace_id, key, value, updated_at FROM preferences
		WHERE workspace_id = $1 AND key = $2`,
		workspaceID, key).Scan(&pref.WorkspaceID, &pref.Key, &pref.Value, &pref.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPreferenceNotFound
		}
		return nil, err
	}
	return &pref, nil
}

// Set upserts a preference value
func (r *PreferenceRepository) Set(workspaceID int32, key string, value json.RawMessage) (*domain.Preference, error) {
	var pref domain.Preference
	err := r.pool.QueryRow(context.Background(), `
		INSERT INTO preferences (workspace_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (workspace_id, key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING workspace_id, key, value, updated_at`,
		workspaceID, key, value).Scan(&pref.WorkspaceID, &pref.Key, &pref.Value, &pref.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

// Delete removes a preference
func (r *PreferenceRepository) Delete(workspaceID int32, key string) error {
	tag, err := r.pool.Exec(context.Background(), `
		DELETE FROM preferences WHERE workspace_id = $1 AND key = $2`,
		workspaceID, key)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPreferenceNotFound
	}
	return nil
}
