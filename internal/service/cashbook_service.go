package service

import (
	"time"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/ledger"
)

// CashbookService builds the cash and cheque book. Every cash or cheque
// payment of either direction is one cashbook row; bank transfers stay out.
type CashbookService struct {
	paymentRepo domain.PaymentRepository
}

// NewCashbookService creates a new CashbookService
func NewCashbookService(paymentRepo domain.PaymentRepository) *CashbookService {
	return &CashbookService{paymentRepo: paymentRepo}
}

// GetCashbook builds the cashbook summary for a window. The running balance
// carries the full history even when a window is requested.
func (s *CashbookService) GetCashbook(workspaceID int32, start, end *time.Time) (*ledger.CashSummary, error) {
	payments, err := s.paymentRepo.GetAllByMethods(workspaceID, []domain.PaymentMethod{domain.MethodCash, domain.MethodCheque})
	if err != nil {
		return nil, err
	}

	directions := make(map[string]domain.PaymentDirection, len(payments))
	events := make([]ledger.Event, 0, len(payments))
	for _, p := range payments {
		description := p.Number
		if p.Notes != nil && *p.Notes != "" {
			description = *p.Notes
		}
		directions[p.Number] = p.Direction
		events = append(events, ledger.Event{
			ID:          p.Number,
			Date:        p.PaymentDate,
			Kind:        ledger.KindDebit, // Summarize reclassifies by flow
			Amount:      p.Amount,
			Description: description,
		})
	}

	classify := func(e ledger.Event) ledger.Flow {
		if directions[e.ID] == domain.DirectionOut {
			return ledger.FlowOut
		}
		return ledger.FlowIn
	}

	return ledger.Summarize(events, start, end, classify)
}
