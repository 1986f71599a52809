package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/websocket"
)

// InvoiceService handles invoice-related business logic
type InvoiceService struct {
	invoiceRepo    domain.InvoiceRepository
	customerRepo   domain.CustomerRepository
	itemRepo       domain.ItemRepository
	eventPublisher websocket.EventPublisher
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo domain.InvoiceRepository, customerRepo domain.CustomerRepository, itemRepo domain.ItemRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *InvoiceService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *InvoiceService) publishEvent(workspaceID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(workspaceID, event)
	}
}

// CreateInvoiceLineInput is one line of a new invoice
type CreateInvoiceLineInput struct {
	ItemID      *int32
	Description string
	Quantity    int32
	UnitPrice   decimal.Decimal
}

// CreateInvoiceInput holds the input for creating an invoice
type CreateInvoiceInput struct {
	CustomerID  int32
	InvoiceDate *time.Time
	Notes       *string
	Items       []CreateInvoiceLineInput
}

// CreateInvoice creates a new invoice. The total is always computed from the
// line items, never taken from the caller. Linked inventory lines decrement
// stock atomically with the insert.
func (s *InvoiceService) CreateInvoice(workspaceID int32, input CreateInvoiceInput) (*domain.Invoice, error) {
	if len(input.Items) == 0 {
		return nil, domain.ErrNoInvoiceItems
	}
	if input.Notes != nil && len(*input.Notes) > domain.MaxNotesLength {
		return nil, domain.ErrNotesTooLong
	}

	// Verify the customer exists in this workspace
	if _, err := s.customerRepo.GetByID(workspaceID, input.CustomerID); err != nil {
		return nil, err
	}

	total := decimal.Zero
	lines := make([]domain.InvoiceItem, 0, len(input.Items))
	for _, line := range input.Items {
		description := strings.TrimSpace(line.Description)
		if description == "" {
			return nil, domain.ErrNameRequired
		}
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidAmount
		}
		if line.ItemID != nil {
			item, err := s.itemRepo.GetByID(workspaceID, *line.ItemID)
			if err != nil {
				return nil, err
			}
			if item.Quantity < line.Quantity {
				return nil, domain.ErrInsufficientStock
			}
		}

		invoiceLine := domain.InvoiceItem{
			ItemID:      line.ItemID,
			Description: description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		}
		total = total.Add(invoiceLine.LineTotal())
		lines = append(lines, invoiceLine)
	}

	seq, err := s.invoiceRepo.NextNumber(workspaceID)
	if err != nil {
		return nil, err
	}

	invoiceDate := time.Now().UTC()
	if input.InvoiceDate != nil {
		invoiceDate = *input.InvoiceDate
	}

	invoice := &domain.Invoice{
		WorkspaceID: workspaceID,
		CustomerID:  input.CustomerID,
		Number:      fmt.Sprintf("INV-%d", seq),
		InvoiceDate: invoiceDate,
		Total:       total,
		Notes:       input.Notes,
		Items:       lines,
	}

	created, err := s.invoiceRepo.Create(invoice)
	if err != nil {
		return nil, err
	}

	s.publishEvent(workspaceID, websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypeInvoice, created))
	return created, nil
}

// GetInvoices retrieves invoices for a workspace with optional filters and pagination
func (s *InvoiceService) GetInvoices(workspaceID int32, filters *domain.InvoiceFilters) (*domain.PaginatedInvoices, error) {
	return s.invoiceRepo.GetByWorkspace(workspaceID, filters)
}

// GetInvoiceByID retrieves an invoice by ID within a workspace
func (s *InvoiceService) GetInvoiceByID(workspaceID int32, id int32) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(workspaceID, id)
}

// DeleteInvoice soft-deletes an invoice and restores stock for its linked lines
func (s *InvoiceService) DeleteInvoice(workspaceID int32, id int32) error {
	if err := s.invoiceRepo.SoftDelete(workspaceID, id); err != nil {
		return err
	}

	s.publishEvent(workspaceID, websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypeInvoice, map[string]int32{"id": id}))
	return nil
}
