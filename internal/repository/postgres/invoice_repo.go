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

// InvoiceRepository implements domain.InvoiceRepository using PostgreSQL
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository creates a new InvoiceRepository
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

const invoiceColumns = `id, workspace_id, customer_id, number, invoice_date, total, notes, created_at, updated_at, deleted_at`

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var inv domain.Invoice
	var total pgtype.Numeric
	var invoiceDate pgtype.Date
	err := row.Scan(&inv.ID, &inv.WorkspaceID, &inv.CustomerID, &inv.Number, &invoiceDate, &total, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt, &inv.DeletedAt)
	if err != nil {
		return nil, err
	}
	inv.InvoiceDate = invoiceDate.Time
	inv.Total = pgNumericToDecimal(total)
	return &inv, nil
}

// Create inserts an invoice with its line items and decrements stock for
// linked inventory items, all in one transaction.
func (r *InvoiceRepository) Create(invoice *domain.Invoice) (*domain.Invoice, error) {
	ctx := context.Background()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	total, err := decimalToPgNumeric(invoice.Total)
	if err != nil {
		return nil, fmt.Errorf("invalid total: %w", err)
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO invoices (workspace_id, customer_id, number, invoice_date, total, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+invoiceColumns,
		invoice.WorkspaceID, invoice.CustomerID, invoice.Number, invoice.InvoiceDate, total, invoice.Notes)

	created, err := scanInvoice(row)
	if err != nil {
		return nil, err
	}

	for _, item := range invoice.Items {
		unitPrice, err := decimalToPgNumeric(item.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid unit price: %w", err)
		}

		var line domain.InvoiceItem
		var linePrice pgtype.Numeric
		err = tx.QueryRow(ctx, `
			INSERT INTO invoice_items (invoice_id, item_id, description, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, invoice_id, item_id, description, quantity, unit_price`,
			created.ID, item.ItemID, item.Description, item.Quantity, unitPrice).
			Scan(&line.ID, &line.InvoiceID, &line.ItemID, &line.Description, &line.Quantity, &linePrice)
		if err != nil {
			return nil, err
		}
		line.UnitPrice = pgNumericToDecimal(linePrice)
		created.Items = append(created.Items, line)

		if item.ItemID != nil {
			tag, err := tx.Exec(ctx, `
				UPDATE items SET quantity = quantity - $3, updated_at = NOW()
				WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL AND quantity >= $3`,
				invoice.WorkspaceID, *item.ItemID, item.Quantity)
			if err != nil {
				return nil, err
			}
			if tag.RowsAffected() == 0 {
				return nil, domain.ErrInsufficientStock
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID retrieves an invoice with its line items
func (r *InvoiceRepository) GetByID(workspaceID int32, id int32) (*domain.Invoice, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT `+invoiceColumns+` FROM invoices
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL`,
		workspaceID, id)

	invoice, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}

	if err := r.loadItems(ctx, []*domain.Invoice{invoice}); err != nil {
		return nil, err
	}
	return invoice, nil
}

// GetByWorkspace retrieves invoices for a workspace with optional filters and pagination
func (r *InvoiceRepository) GetByWorkspace(workspaceID int32, filters *domain.InvoiceFilters) (*domain.PaginatedInvoices, error) {
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
		if filters.StartDate != nil {
			args = append(args, *filters.StartDate)
			where += fmt.Sprintf(` AND invoice_date >= $%d`, len(args))
		}
		if filters.EndDate != nil {
			args = append(args, *filters.EndDate)
			where += fmt.Sprintf(` AND invoice_date <= $%d`, len(args))
		}
	}

	offset := (page - 1) * pageSize

	var totalItems int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM invoices WHERE `+where, args...).Scan(&totalItems); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE %s ORDER BY invoice_date DESC, id DESC LIMIT $%d OFFSET $%d`,
		invoiceColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := []*domain.Invoice{}
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, invoices); err != nil {
		return nil, err
	}

	totalPages := int32((totalItems + int64(pageSize) - 1) / int64(pageSize))

	return &domain.PaginatedInvoices{
		Data:       invoices,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

// GetAllByCustomer retrieves every active invoice for a customer, oldest first
func (r *InvoiceRepository) GetAllByCustomer(workspaceID int32, customerID int32) ([]*domain.Invoice, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT `+invoiceColumns+` FROM invoices
		WHERE workspace_id = $1 AND customer_id = $2 AND deleted_at IS NULL
		ORDER BY invoice_date, id`,
		workspaceID, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := []*domain.Invoice{}
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return invoices, nil
}

// SoftDelete marks an invoice as deleted and restores stock for its linked line items
func (r *InvoiceRepository) SoftDelete(workspaceID int32, id int32) error {
	ctx := context.Background()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE invoices SET deleted_at = NOW()
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL`,
		workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvoiceNotFound
	}

	_, err = tx.Exec(ctx, `
		UPDATE items SET quantity = items.quantity + li.quantity, updated_at = NOW()
		FROM invoice_items li
		WHERE li.invoice_id = $2 AND li.item_id = items.id AND items.workspace_id = $1`,
		workspaceID, id)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// NextNumber returns the next sequence number for invoice numbering in a workspace.
// Soft-deleted invoices still count so numbers are never reused.
func (r *InvoiceRepository) NextNumber(workspaceID int32) (int64, error) {
	ctx := context.Background()

	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM invoices WHERE workspace_id = $1`,
		workspaceID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count + 1, nil
}

// Totals aggregates active invoices across a workspace
func (r *InvoiceRepository) Totals(workspaceID int32) (*domain.InvoiceTotals, error) {
	ctx := context.Background()

	var totals domain.InvoiceTotals
	var total pgtype.Numeric
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total), 0) FROM invoices
		WHERE workspace_id = $1 AND deleted_at IS NULL`,
		workspaceID).Scan(&totals.Count, &total)
	if err != nil {
		return nil, err
	}
	totals.Total = pgNumericToDecimal(total)
	return &totals, nil
}

func (r *InvoiceRepository) loadItems(ctx context.Context, invoices []*domain.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	ids := make([]int32, 0, len(invoices))
	byID := make(map[int32]*domain.Invoice, len(invoices))
	for _, inv := range invoices {
		inv.Items = []domain.InvoiceItem{}
		ids = append(ids, inv.ID)
		byID[inv.ID] = inv
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, invoice_id, item_id, description, quantity, unit_price
		FROM invoice_items WHERE invoice_id = ANY($1) ORDER BY id`,
		ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.InvoiceItem
		var unitPrice pgtype.Numeric
		if err := rows.Scan(&line.ID, &line.InvoiceID, &line.ItemID, &line.Description, &line.Quantity, &unitPrice); err != nil {
			return err
		}
		line.UnitPrice = pgNumericToDecimal(unitPrice)
		if inv, ok := byID[line.InvoiceID]; ok {
			inv.Items = append(inv.Items, line)
		}
	}
	return rows.Err()
}
