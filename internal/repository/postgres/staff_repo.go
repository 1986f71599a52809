package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velobooks/velobooks-backend/internal/domain"
)

// StaffPingRepository implements domain.StaffPingRepository using PostgreSQL
type StaffPingRepository struct {
	pool *pgxpool.Pool
}

// NewStaffPingRepository creates a new StaffPingRepository
func NewStaffPingRepository(pool *pgxpool.Pool) *StaffPingRepository {
	return &StaffPingRepository{pool: pool}
}

const staffPingColumns = `id, workspace_id, staff_name, latitude, longitude, recorded_at, created_at`

func scanStaffPing(row pgx.Row) (*domain.StaffPing, error) {
	var p domain.StaffPing
	err := row.Scan(&p.ID, &p.WorkspaceID, &p.StaffName, &p.Latitude, &p.Longitude, &p.RecordedAt, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create records a staff location ping
func (r *StaffPingRepository) Create(ping *domain.StaffPing) (*domain.StaffPing, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO staff_pings (workspace_id, staff_name, latitude, longitude, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+staffPingColumns,
		ping.WorkspaceID, ping.StaffName, ping.Latitude, ping.Longitude, ping.RecordedAt)

	return scanStaffPing(row)
}

// GetLatestPerStaff returns the most recent ping for each staff member in a workspace
func (r *StaffPingRepository) GetLatestPerStaff(workspaceID int32) ([]*domain.StaffPing, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT DISTINCT ON (staff_name) `+staffPingColumns+` FROM staff_pings
		WHERE workspace_id = $1
		ORDER BY staff_name, recorded_at DESC`,
		workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStaffPings(rows)
}

// GetByStaff returns the most recent pings for one staff member, newest first
func (r *StaffPingRepository) GetByStaff(workspaceID int32, staffName string, limit int32) ([]*domain.StaffPing, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT `+staffPingColumns+` FROM staff_pings
		WHERE workspace_id = $1 AND staff_name = $2
		ORDER BY recorded_at DESC
		LIMIT $3`,
		workspaceID, staffName, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStaffPings(rows)
}

func collectStaffPings(rows pgx.Rows) ([]*domain.StaffPing, error) {
	pings := []*domain.StaffPing{}
	for rows.Next() {
		ping, err := scanStaffPing(rows)
		if err != nil {
			return nil, err
		}
		pings = append(pings, ping)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return pings, nil
}
