package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velobooks/velobooks-backend/internal/domain"
)

// PaymentRepository implements domain.PaymentRepository using PostgreSQL
type PaymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{pool: pool}
}

const paymentColumns = `id, workspace_id, customer_id, number, direction, method, category, amount, payment_date, notes, created_at, updated_at, deleted_at`

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	var amount pgtype.Numeric
	var paymentDate pgtype.Date
	err := row.Scan(&p.ID, &p.WorkspaceID, &p.CustomerID, &p.Number, &p.Direction, &p.Method, &p.Category, &amount, &paymentDate, &p.Notes, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)
	if err != nil {
		return nil, err
	}
	p.Amount = pgNumericToDecimal(amount)
	p.PaymentDate = paymentDate.Time
	return &p, nil
}

// Create creates a new payment
func (r *PaymentRepository) Create(payment *domain.Payment) (*domain.Payment, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(payment.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO payments (workspace_id, customer_id, number, direction, method, category, amount, payment_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+paymentColumns,
		payment.WorkspaceID, payment.CustomerID, payment.Number, payment.Direction, payment.Method,
		payment.Category, amount, payment.PaymentDate, payment.Notes)

	return scanPayment(row)
}

// GetByID retrieves a payment by its ID within a workspace
func (r *PaymentRepository) GetByID(workspaceID int32, id int32) (*domain.Payment, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL`,
		workspaceID, id)

	payment, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

// GetByWorkspace retrieves payments for a workspace with optional filters and pagination
func (r *PaymentRepository) GetByWorkspace(workspaceID int32, filters *domain.PaymentFilters) (*domain.PaginatedPayments, error) {
	ctx := context.Background()

	page := int32(1)
	pageSize := int32(domain.DefaultPageSize)

	where := `workspace_id = $1 AND deleted_at IS NULL`
	args := []any{workspaceID}

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
		if filters.CustomerID != nil {
			args = append(args, *filters.CustomerID)
			where += fmt.Sprintf(` AND customer_id = $%d`, len(args))
		}
		if filters.Direction != nil {
			args = append(args, *filters.Direction)
			where += fmt.Sprintf(` AND direction = $%d`, len(args))
		}
		if filters.Method != nil {
			args = append(args, *filters.Method)
			where += fmt.Sprintf(` AND method = $%d`, len(args))
		}
		if filters.StartDate != nil {
			args = append(args, *filters.StartDate)
			where += fmt.Sprintf(` AND payment_date >= $%d`, len(args))
		}
		if filters.EndDate != nil {
			args = append(args, *filters.EndDate)
			where += fmt.Sprintf(` AND payment_date <= $%d`, len(args))
		}
	}

	offset := (page - 1) * pageSize

	var totalItems int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE `+where, args...).Scan(&totalItems); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM payments WHERE %s ORDER BY payment_date DESC, id DESC LIMIT $%d OFFSET $%d`,
		paymentColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []*domain.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalPages := int32((totalItems + int64(pageSize) - 1) / int64(pageSize))

	return &domain.PaginatedPayments{
		Data:       payments,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

// GetAllByCustomer retrieves every active payment for a customer in one direction, oldest first
func (r *PaymentRepository) GetAllByCustomer(workspaceID int32, customerID int32, direction domain.PaymentDirection) ([]*domain.Payment, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE workspace_id = $1 AND customer_id = $2 AND direction = $3 AND deleted_at IS NULL
		ORDER BY payment_date, id`,
		workspaceID, customerID, direction)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPayments(rows)
}

// GetAllByMethods retrieves every active payment settled by one of the given methods, oldest first
func (r *PaymentRepository) GetAllByMethods(workspaceID int32, methods []domain.PaymentMethod) ([]*domain.Payment, error) {
	ctx := context.Background()

	methodStrings := make([]string, len(methods))
	for i, m := range methods {
		methodStrings[i] = string(m)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE workspace_id = $1 AND method = ANY($2) AND deleted_at IS NULL
		ORDER BY payment_date, id`,
		workspaceID, methodStrings)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPayments(rows)
}

// SoftDelete marks a payment as deleted
func (r *PaymentRepository) SoftDelete(workspaceID int32, id int32) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `
		UPDATE payments SET deleted_at = NOW()
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL`,
		workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

// NextNumber returns the next sequence number for payment numbering in one
// direction. Soft-deleted payments still count so numbers are never reused.
func (r *PaymentRepository) NextNumber(workspaceID int32, direction domain.PaymentDirection) (int64, error) {
	ctx := context.Background()

	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM payments WHERE workspace_id = $1 AND direction = $2`,
		workspaceID, direction).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count + 1, nil
}

// TotalsByDirection aggregates active payments in one direction across a workspace
func (r *PaymentRepository) TotalsByDirection(workspaceID int32, direction domain.PaymentDirection) (*domain.PaymentTotals, error) {
	ctx := context.Background()

	var totals domain.PaymentTotals
	var total pgtype.Numeric
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM payments
		WHERE workspace_id = $1 AND direction = $2 AND deleted_at IS NULL`,
		workspaceID, direction).Scan(&totals.Count, &total)
	if err != nil {
		return nil, err
	}
	totals.Total = pgNumericToDecimal(total)
	return &totals, nil
}

func collectPayments(rows pgx.Rows) ([]*domain.Payment, error) {
	payments := []*domain.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}
