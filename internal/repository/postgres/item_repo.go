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

// ItemRepository implements domain.ItemRepository using PostgreSQL
type ItemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

const itemColumns = `id, workspace_id, name, sku, unit_price, cost_price, quantity, low_stock_threshold, created_at, updated_at, deleted_at`

func scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item
	var unitPrice, costPrice pgtype.Numeric
	err := row.Scan(&item.ID, &item.WorkspaceID, &item.Name, &item.SKU, &unitPrice, &costPrice,
		&item.Quantity, &item.LowStockThreshold, &item.CreatedAt, &item.UpdatedAt, &item.DeletedAt)
	if err != nil {
		return nil, err
	}
	item.UnitPrice = pgNumericToDecimal(unitPrice)
	item.CostPrice = pgNumericToDecimal(costPrice)
	return &item, nil
}

// Create creates a new inventory item
func (r *ItemRepository) Create(item *domain.Item) (*domain.Item, error) {
	ctx := context.Background()

	unitPrice, err := decimalToPgNumeric(item.UnitPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid unit price: %w", err)
	}
	costPrice, err := decimalToPgNumeric(item.CostPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid cost price: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO items (workspace_id, name, sku, unit_price, cost_price, quantity, low_stock_threshold)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+itemColumns,
		item.WorkspaceID, item.Name, item.SKU, unitPrice, costPrice, item.Quantity, item.LowStockThreshold)

	return scanItem(row)
}

// GetByID retrieves an item by its ID within a workspace
func (r *ItemRepository) GetByID(workspaceID int32, id int32) (*domain.Item, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT `+itemColumns+` FROM items
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL`,
		workspaceID, id)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// GetAllByWorkspace retrieves all active items in a workspace, by name
func (r *ItemRepository) GetAllByWorkspace(workspaceID int32) ([]*domain.Item, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT `+itemColumns+` FROM items
		WHERE workspace_id = $1 AND deleted_at IS NULL
		ORDER BY name`,
		workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*domain.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update updates an item's details and threshold; quantity moves through AdjustQuantity
func (r *ItemRepository) Update(workspaceID int32, id int32, item *domain.Item) (*domain.Item, error) {
	ctx := context.Background()

	unitPrice, err := decimalToPgNumeric(item.UnitPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid unit price: %w", err)
	}
	costPrice, err := decimalToPgNumeric(item.CostPrice)
	if err != nil {
		return nil, fmt.Errorf("invalid cost price: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE items
		SET name = $3, sku = $4, unit_price = $5, cost_price = $6, low_stock_threshold = $7, updated_at = NOW()
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL
		RETURNING `+itemColumns,
		workspaceID, id, item.Name, item.SKU, unitPrice, costPrice, item.LowStockThreshold)

	updated, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return updated, nil
}

// AdjustQuantity moves stock by delta, refusing to go below zero
func (r *ItemRepository) AdjustQuantity(workspaceID int32, id int32, delta int32) (*domain.Item, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		UPDATE items SET quantity = quantity + $3, updated_at = NOW()
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL AND quantity + $3 >= 0
		RETURNING `+itemColumns,
		workspaceID, id, delta)

	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Row exists but the guard blocked it, or the item is gone
			if _, getErr := r.GetByID(workspaceID, id); getErr != nil {
				return nil, getErr
			}
			return nil, domain.ErrInsufficientStock
		}
		return nil, err
	}
	return item, nil
}

// SoftDelete marks an item as deleted
func (r *ItemRepository) SoftDelete(workspaceID int32, id int32) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `
		UPDATE items SET deleted_at = NOW()
		WHERE workspace_id = $1 AND id = $2 AND deleted_at IS NULL`,
		workspaceID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
