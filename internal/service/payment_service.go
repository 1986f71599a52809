package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/websocket"
)

// PaymentService handles receipt and voucher business logic
type PaymentService struct {
	paymentRepo    domain.PaymentRepository
	customerRepo   domain.CustomerRepository
	eventPublisher websocket.EventPublisher
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo domain.PaymentRepository, customerRepo domain.CustomerRepository) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *PaymentService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *PaymentService) publishEvent(workspaceID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(workspaceID, event)
	}
}

// CreatePaymentInput holds the input for creating a payment
type CreatePaymentInput struct {
	CustomerID  *int32
	Direction   domain.PaymentDirection
	Method      domain.PaymentMethod
	Category    domain.PaymentCategory
	Amount      decimal.Decimal
	PaymentDate *time.Time
	Notes       *string
}

// CreatePayment creates a new receipt (in) or voucher (out) with validation.
// Receipts are numbered RCT-<n>, vouchers VCH-<n>, per workspace.
func (s *PaymentService) CreatePayment(workspaceID int32, input CreatePaymentInput) (*domain.Payment, error) {
	switch input.Direction {
	case domain.DirectionIn, domain.DirectionOut:
	default:
		return nil, domain.ErrInvalidDirection
	}

	switch input.Method {
	case domain.MethodCash, domain.MethodCheque, domain.MethodBank:
	default:
		return nil, domain.ErrInvalidMethod
	}

	switch input.Category {
	case domain.CategorySale, domain.CategoryPurchase, domain.CategoryExpense, domain.CategoryOther:
	default:
		return nil, domain.ErrInvalidCategory
	}

	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if input.Notes != nil && len(*input.Notes) > domain.MaxNotesLength {
		return nil, domain.ErrNotesTooLong
	}

	if input.CustomerID != nil {
		if _, err := s.customerRepo.GetByID(workspaceID, *input.CustomerID); err != nil {
			return nil, err
		}
	}

	seq, err := s.paymentRepo.NextNumber(workspaceID, input.Direction)
	if err != nil {
		return nil, err
	}

	prefix := "RCT"
	if input.Direction == domain.DirectionOut {
		prefix = "VCH"
	}

	paymentDate := time.Now().UTC()
	if input.PaymentDate != nil {
		paymentDate = *input.PaymentDate
	}

	payment := &domain.Payment{
		WorkspaceID: workspaceID,
		CustomerID:  input.CustomerID,
		Number:      fmt.Sprintf("%s-%d", prefix, seq),
		Direction:   input.Direction,
		Method:      input.Method,
		Category:    input.Category,
		Amount:      input.Amount,
		PaymentDate: paymentDate,
		Notes:       input.Notes,
	}

	created, err := s.paymentRepo.Create(payment)
	if err != nil {
		return nil, err
	}

	s.publishEvent(workspaceID, websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypePayment, created))
	return created, nil
}

// GetPayments retrieves payments for a workspace with optional filters and pagination
func (s *PaymentService) GetPayments(workspaceID int32, filters *domain.PaymentFilters) (*domain.PaginatedPayments, error) {
	return s.paymentRepo.GetByWorkspace(workspaceID, filters)
}

// GetPaymentByID retrieves a payment by ID within a workspace
func (s *PaymentService) GetPaymentByID(workspaceID int32, id int32) (*domain.Payment, error) {
	return s.paymentRepo.GetByID(workspaceID, id)
}

// DeletePayment soft-deletes a payment
func (s *PaymentService) DeletePayment(workspaceID int32, id int32) error {
	if err := s.paymentRepo.SoftDelete(workspaceID, id); err != nil {
		return err
	}

	s.publishEvent(workspaceID, websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypePayment, map[string]int32{"id": id}))
	return nil
}
