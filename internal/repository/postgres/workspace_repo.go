package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velobooks/velobooks-backend/internal/domain"
)

// WorkspaceRepository implements domain.WorkspaceRepository using PostgreSQL
type WorkspaceRepository struct {
	pool *pgxpool.Pool
}

// NewWorkspaceRepository creates a new WorkspaceRepository
func NewWorkspaceRepository(pool *pgxpool.Pool) *WorkspaceRepository {
	return &WorkspaceRepository{pool: pool}
}

const workspaceColumns = `id, owner_id, name, currency, created_at, updated_at`

func scanWorkspace(row pgx.Row) (*domain.Workspace, error) {
	var w domain.Workspace
	err := row.Scan(&w.ID, &w.OwnerID, &w.Name, &w.Currency, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// GetByID retrieves a workspace by its ID
func (r *WorkspaceRepository) GetByID(id int32) (*domain.Workspace, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+workspaceColumns+` FROM workspaces WHERE id = $1`, id)

	workspace, err := scanWorkspace(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWorkspaceNotFound
		}
		return nil, err
	}
	return workspace, nil
}

// GetByOwnerID retrieves the workspace owned by a user
func (r *WorkspaceRepository) GetByOwnerID(ownerID uuid.UUID) (*domain.Workspace, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+workspaceColumns+` FROM workspaces WHERE owner_id = $1`, ownerID)

	workspace, err := scanWorkspace(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWorkspaceNotFound
		}
		return nil, err
	}
	return workspace, nil
}

// Create creates a new workspace
func (r *WorkspaceRepository) Create(workspace *domain.Workspace) (*domain.Workspace, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO workspaces (owner_id, name, currency)
		VALUES ($1, $2, $3)
		RETURNING `+workspaceColumns,
		workspace.OwnerID, workspace.Name, workspace.Currency)

	return scanWorkspace(row)
}
