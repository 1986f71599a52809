package service

import (
	"time"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/ledger"
)

// StatementService builds per-customer running-balance statements. Invoices
// are debits against the customer, receipts are credits, and balances run
// over the customer's full history regardless of the requested window.
type StatementService struct {
	customerRepo domain.CustomerRepository
	invoiceRepo  domain.InvoiceRepository
	paymentRepo  domain.PaymentRepository
}

// NewStatementService creates a new StatementService
func NewStatementService(customerRepo domain.CustomerRepository, invoiceRepo domain.InvoiceRepository, paymentRepo domain.PaymentRepository) *StatementService {
	return &StatementService{
		customerRepo: customerRepo,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
	}
}

// Statement is a customer plus their ledger view for the requested window
type Statement struct {
	Customer *domain.Customer `json:"customer"`
	*ledger.View
}

// GetStatement builds the statement for one customer. A nil start or end
// leaves that side of the window unbounded.
func (s *StatementService) GetStatement(workspaceID int32, customerID int32, start, end *time.Time) (*Statement, error) {
	customer, err := s.customerRepo.GetByID(workspaceID, customerID)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.GetAllByCustomer(workspaceID, customerID)
	if err != nil {
		return nil, err
	}

	receipts, err := s.paymentRepo.GetAllByCustomer(workspaceID, customerID, domain.DirectionIn)
	if err != nil {
		return nil, err
	}

	events := make([]ledger.Event, 0, len(invoices)+len(receipts))
	for _, inv := range invoices {
		events = append(events, ledger.Event{
			ID:          inv.Number,
			Date:        inv.InvoiceDate,
			Kind:        ledger.KindDebit,
			Amount:      inv.Total,
			Description: inv.Number,
		})
	}
	for _, rct := range receipts {
		description := rct.Number
		if rct.Notes != nil && *rct.Notes != "" {
			description = *rct.Notes
		}
		events = append(events, ledger.Event{
			ID:          rct.Number,
			Date:        rct.PaymentDate,
			Kind:        ledger.KindCredit,
			Amount:      rct.Amount,
			Description: description,
		})
	}

	view, err := ledger.Build(events, start, end)
	if err != nil {
		return nil, err
	}

	return &Statement{Customer: customer, View: view}, nil
}
