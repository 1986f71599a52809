package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentDirection string

const (
	// DirectionIn is money received (a receipt)
	DirectionIn PaymentDirection = "in"
	// DirectionOut is money paid out (a voucher)
	DirectionOut PaymentDirection = "out"
)

type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodCheque PaymentMethod = "cheque"
	MethodBank   PaymentMethod = "bank"
)

type PaymentCategory string

const (
	CategorySale     PaymentCategory = "sale"
	CategoryPurchase PaymentCategory = "purchase"
	CategoryExpense  PaymentCategory = "expense"
	CategoryOther    PaymentCategory = "other"
)

// Payment is a receipt (in) or voucher (out). Receipts against a customer
// form the credit side of that party's ledger; cash and cheque payments of
// either direction feed the cashbook.
type Payment struct {
	ID          int32            `json:"id"`
	WorkspaceID int32            `json:"workspaceId"`
	CustomerID  *int32           `json:"customerId,omitempty"`
	Number      string           `json:"number"`
	Direction   PaymentDirection `json:"direction"`
	Method      PaymentMethod    `json:"method"`
	Category    PaymentCategory  `json:"category"`
	Amount      decimal.Decimal  `json:"amount"`
	PaymentDate time.Time        `json:"paymentDate"`
	Notes       *string          `json:"notes,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
	DeletedAt   *time.Time       `json:"deletedAt,omitempty"`
}

// PaymentFilters narrows payment listings
type PaymentFilters struct {
	CustomerID *int32
	Direction  *PaymentDirection
	Method     *PaymentMethod
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int32
	PageSize   int32
}

// PaginatedPayments is a page of payments plus paging metadata
type PaginatedPayments struct {
	Data       []*Payment `json:"data"`
	Page       int32      `json:"page"`
	PageSize   int32      `json:"pageSize"`
	TotalItems int64      `json:"totalItems"`
	TotalPages int32      `json:"totalPages"`
}

// PaymentTotals aggregates received amounts across a workspace
type PaymentTotals struct {
	Count int64           `json:"count"`
	Total decimal.Decimal `json:"total"`
}

type PaymentRepository interface {
	Create(payment *Payment) (*Payment, error)
	GetByID(workspaceID int32, id int32) (*Payment, error)
	GetByWorkspace(workspaceID int32, filters *PaymentFilters) (*PaginatedPayments, error)
	GetAllByCustomer(workspaceID int32, customerID int32, direction PaymentDirection) ([]*Payment, error)
	GetAllByMethods(workspaceID int32, methods []PaymentMethod) ([]*Payment, error)
	SoftDelete(workspaceID int32, id int32) error
	NextNumber(workspaceID int32, direction PaymentDirection) (int64, error)
	TotalsByDirection(workspaceID int32, direction PaymentDirection) (*PaymentTotals, error)
}
