package domain

import "time"

// Customer is a party the workshop bills and collects from
type Customer struct {
	ID          int32      `json:"id"`
	WorkspaceID int32      `json:"workspaceId"`
	Name        string     `json:"name"`
	Phone       *string    `json:"phone,omitempty"`
	Email       *string    `json:"email,omitempty"`
	Address     *string    `json:"address,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

// CustomerFilters narrows customer listings
type CustomerFilters struct {
	Search   string
	Page     int32
	PageSize int32
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginatedCustomers is a page of customers plus paging metadata
type PaginatedCustomers struct {
	Data       []*Customer `json:"data"`
	Page       int32       `json:"page"`
	PageSize   int32       `json:"pageSize"`
	TotalItems int64       `json:"totalItems"`
	TotalPages int32       `json:"totalPages"`
}

type CustomerRepository interface {
	Create(customer *Customer) (*Customer, error)
	GetByID(workspaceID int32, id int32) (*Customer, error)
	GetByWorkspace(workspaceID int32, filters *CustomerFilters) (*PaginatedCustomers, error)
	Update(workspaceID int32, id int32, customer *Customer) (*Customer, error)
	SoftDelete(workspaceID int32, id int32) error
	Count(workspaceID int32) (int64, error)
}
