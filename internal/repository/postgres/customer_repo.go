package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velobooks/velobooks-backend/internal/domain"
)

// CustomerRepository implements domain.CustomerRepository using PostgreSQL
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

const customerColumns = `id, workspace_id, name, phone, email, address, notes, created_at, updated_at, deleted_at`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.WorkspaceID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.Notes, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create creates a new customer
func (r *CustomerRepository) Create(customer *domain.Customer) (*domain.Customer, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO customers (workspace_id, name, phone, email, address, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+customerColumns,
		customer.WorkspaceID, customer.Name, customer.Phone, customer.Email, customer.Address, customer.Notes)

	return scanCustomer(row)
}

// GetByID retrieves a customer by its ID within a workspace
func (r *CustomerRepository) GetByID(workspaceID int32, id int32) (*domain.Customer, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT `+customerColumns+` FROM customers
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL`,
		workspaceID, id)

	customer, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

// GetByWorkspace retrieves customers for a workspace with optional search and pagination
func (r *CustomerRepository) GetByWorkspace(workspaceID int32, filters *domain.CustomerFilters) (*domain.PaginatedCustomers, error) {
	ctx := context.Background()

	page := int32(1)
	pageSize := int32(domain.DefaultPageSize)
	search := ""

	if filters != nil {
		if filters.Page > 0 {
			page = filters.Page
		}
		if filters.PageSize > 0 {
			pageSize = filters.PageSize
			if pageSize > domain.MaxPageSize {
				pageSize = domain.MaxPageSize
			}
		}
		search = filters.Search
	}

	offset := (page - 1) * pageSize

	where := `workspace_id = $1 AND deleted_at IS NULL`
	args := []any{workspaceID}
	if search != "" {
		where += ` AND (name ILIKE $2 OR phone ILIKE $2 OR email ILIKE $2)`
		args = append(args, "%"+search+"%")
	}

	var totalItems int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE `+where, args...).Scan(&totalItems); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM customers WHERE %s ORDER BY name LIMIT $%d OFFSET $%d`,
		customerColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []*domain.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalPages := int32((totalItems + int64(pageSize) - 1) / int64(pageSize))

	return &domain.PaginatedCustomers{
		Data:       customers,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

// Update updates a customer's details
func (r *CustomerRepository) Update(workspaceID int32, id int32, customer *domain.Customer) (*domain.Customer, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		UPDATE customers
		SET name = $3, phone = $4, email = $5, address = $6, notes = $7, updated_at = NOW()
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL
		RETURNING `+customerColumns,
		workspaceID, id, customer.Name, customer.Phone, customer.Email, customer.Address, customer.Notes)

	updated, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return updated, nil
}

// SoftDelete marks a customer as deleted
func (r *CustomerRepository) SoftDelete(workspaceID int32, id int32) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `
		UPDATE customers SET deleted_at = NOW()
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL`,
		workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// Count returns the number of active customers in a workspace
func (r *CustomerRepository) Count(workspaceID int32) (int64, error) {
	ctx := context.Background()

	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM customers WHERE workspace_id = $1 AND deleted_at IS NULL`,
		workspaceID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
