package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velobooks/velobooks-backend/internal/domain"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, auth0_id, email, name, picture_url, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Auth0ID, &u.Email, &u.Name, &u.PictureURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID retrieves a user by their UUID
func (r *UserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByAuth0ID retrieves a user by their Auth0 ID
func (r *UserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT `+userColumns+` FROM users WHERE auth0_id = $1`, auth0ID)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateOrGetByAuth0ID creates a new user or returns the existing one (upsert on login)
func (r *UserRepository) CreateOrGetByAuth0ID(auth0ID, email string, name, pictureURL *string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO users (auth0_id, email, name, picture_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (auth0_id) DO UPDATE
		SET email = EXCLUDED.email, updated_at = NOW()
		RETURNING `+userColumns,
		auth0ID, email, name, pictureURL)

	return scanUser(row)
}

// UpdateName updates only the user's name by Auth0 ID
func (r *UserRepository) UpdateName(auth0ID string, name string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE users SET name = $2, updated_at = NOW()
		WHERE auth0_id = $1
		RETURNING `+userColumns,
		auth0ID, name)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
