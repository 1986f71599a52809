package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItem is one line on an invoice. ItemID links the line to an
// inventory item; nil means a free-form service line (labour, etc.)
type InvoiceItem struct {
	ID          int32           `json:"id"`
	InvoiceID   int32           `json:"invoiceId"`
	ItemID      *int32          `json:"itemId,omitempty"`
	Description string          `json:"description"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// LineTotal is quantity times unit price
func (i InvoiceItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt32(i.Quantity))
}

// Invoice bills a customer; it is the debit side of the party ledger
type Invoice struct {
	ID          int32           `json:"id"`
	WorkspaceID int32           `json:"workspaceId"`
	CustomerID  int32           `json:"customerId"`
	Number      string          `json:"number"`
	InvoiceDate time.Time       `json:"invoiceDate"`
	Total       decimal.Decimal `json:"total"`
	Notes       *string         `json:"notes,omitempty"`
	Items       []InvoiceItem   `json:"items"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	DeletedAt   *time.Time      `json:"deletedAt,omitempty"`
}

// InvoiceFilters narrows invoice listings
type InvoiceFilters struct {
	CustomerID *int32
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int32
	PageSize   int32
}

// PaginatedInvoices is a page of invoices plus paging metadata
type PaginatedInvoices struct {
	Data       []*Invoice `json:"data"`
	Page       int32      `json:"page"`
	PageSize   int32      `json:"pageSize"`
	TotalItems int64      `json:"totalItems"`
	TotalPages int32      `json:"totalPages"`
}

// InvoiceTotals aggregates billed amounts across a workspace
type InvoiceTotals struct {
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type InvoiceRepository interface {
	Create(invoice *Invoice) (*Invoice, error)
	GetByID(workspaceID int32, id int32) (*Invoice, error)
	GetByWorkspace(workspaceID int32, filters *InvoiceFilters) (*PaginatedInvoices, error)
	GetAllByCustomer(workspaceID int32, customerID int32) ([]*Invoice, error)
	SoftDelete(workspaceID int32, id int32) error
	NextNumber(workspaceID int32) (int64, error)
	Totals(workspaceID int32) (*InvoiceTotals, error)
}
