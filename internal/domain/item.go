package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a stocked part or consumable
type Item struct {
	ID                int32           `json:"id"`
	WorkspaceID       int32           `json:"workspaceId"`
	Name              string          `json:"name"`
	SKU               *string         `json:"sku,omitempty"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	CostPrice         decimal.Decimal `json:"costPrice"`
	Quantity          int32           `json:"quantity"`
	LowStockThreshold int32           `json:"lowStockThreshold"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
	DeletedAt         *time.Time      `json:"deletedAt,omitempty"`
}

// IsLowStock reports whether the quantity has fallen to the threshold
func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}

// StockValue is quantity times cost price
func (i *Item) StockValue() decimal.Decimal {
	return i.CostPrice.Mul(decimal.NewFromInt32(i.Quantity))
}

type ItemRepository interface {
	Create(item *Item) (*Item, error)
	GetByID(workspaceID int32, id int32) (*Item, error)
	GetAllByWorkspace(workspaceID int32) ([]*Item, error)
	Update(workspaceID int32, id int32, item *Item) (*Item, error)
	AdjustQuantity(workspaceID int32, id int32, delta int32) (*Item, error)
	SoftDelete(workspaceID int32, id int32) error
}
