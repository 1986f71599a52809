package service

import (
	"strings"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/websocket"
)

// CustomerService handles customer-related business logic
type CustomerService struct {
	customerRepo   domain.CustomerRepository
	eventPublisher websocket.EventPublisher
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo domain.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *CustomerService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *CustomerService) publishEvent(workspaceID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(workspaceID, event)
	}
}

// CreateCustomerInput holds the input for creating a customer
type CreateCustomerInput struct {
	Name    string
	Phone   *string
	Email   *string
	Address *string
	Notes   *string
}

// CreateCustomer creates a new customer with validation
func (s *CustomerService) CreateCustomer(workspaceID int32, input CreateCustomerInput) (*domain.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if input.Notes != nil && len(*input.Notes) > domain.MaxNotesLength {
		return nil, domain.ErrNotesTooLong
	}

	customer := &domain.Customer{
		WorkspaceID: workspaceID,
		Name:        name,
		Phone:       input.Phone,
		Email:       input.Email,
		Address:     input.Address,
		Notes:       input.Notes,
	}

	created, err := s.customerRepo.Create(customer)
	if err != nil {
		return nil, err
	}

	s.publishEvent(workspaceID, websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypeCustomer, created))
	return created, nil
}

// GetCustomers retrieves customers for a workspace with optional search and pagination
func (s *CustomerService) GetCustomers(workspaceID int32, filters *domain.CustomerFilters) (*domain.PaginatedCustomers, error) {
	return s.customerRepo.GetByWorkspace(workspaceID, filters)
}

// GetCustomerByID retrieves a customer by ID within a workspace
func (s *CustomerService) GetCustomerByID(workspaceID int32, id int32) (*domain.Customer, error) {
	return s.customerRepo.GetByID(workspaceID, id)
}

// UpdateCustomerInput holds the input for updating a customer
type UpdateCustomerInput struct {
	Name    string
	Phone   *string
	Email   *string
	Address *string
	Notes   *string
}

// UpdateCustomer updates a customer's details with validation
func (s *CustomerService) UpdateCustomer(workspaceID int32, id int32, input UpdateCustomerInput) (*domain.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if input.Notes != nil && len(*input.Notes) > domain.MaxNotesLength {
		return nil, domain.ErrNotesTooLong
	}

	customer := &domain.Customer{
		Name:    name,
		Phone:   input.Phone,
		Email:   input.Email,
		Address: input.Address,
		Notes:   input.Notes,
	}

	updated, err := s.customerRepo.Update(workspaceID, id, customer)
	if err != nil {
		return nil, err
	}

	s.publishEvent(workspaceID, websocket.NewEvent(websocket.EventTypeUpdated, websocket.EntityTypeCustomer, updated))
	return updated, nil
}

// DeleteCustomer soft-deletes a customer
func (s *CustomerService) DeleteCustomer(workspaceID int32, id int32) error {
	if err := s.customerRepo.SoftDelete(workspaceID, id); err != nil {
		return err
	}

	s.publishEvent(workspaceID, websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypeCustomer, map[string]int32{"id": id}))
	return nil
}
