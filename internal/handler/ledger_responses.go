package handler

import (
	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/ledger"
	"github.com/velobooks/velobooks-backend/internal/service"
	"github.com/velobooks/velobooks-backend/internal/util"
)

// ledgerErrInvalidRange lets handlers match the engine's range error
var ledgerErrInvalidRange = ledger.ErrInvalidRange

// LedgerEntryResponse is one statement or cashbook row
type LedgerEntryResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
	Balance     string `json:"balance"`
}

// StatementResponse is a customer statement in API responses
type StatementResponse struct {
	Customer          *domain.Customer      `json:"customer"`
	OpeningBalance    string                `json:"openingBalance"`
	PeriodDebitTotal  string                `json:"periodDebitTotal"`
	PeriodCreditTotal string                `json:"periodCreditTotal"`
	ClosingBalance    string                `json:"closingBalance"`
	Entries           []LedgerEntryResponse `json:"entries"`
}

// CashbookResponse is the cash and cheque book in API responses
type CashbookResponse struct {
	CashIn  string                `json:"cashIn"`
	CashOut string                `json:"cashOut"`
	Balance string                `json:"balance"`
	Entries []LedgerEntryResponse `json:"entries"`
}

func newLedgerEntryResponses(entries []ledger.Entry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = LedgerEntryResponse{
			ID:          e.ID,
			Date:        e.Date.Format(util.DateLayout),
			Kind:        string(e.Kind),
			Amount:      e.Amount.String(),
			Description: e.Description,
			Balance:     e.Balance.String(),
		}
	}
	return out
}

func newStatementResponse(s *service.Statement) StatementResponse {
	return StatementResponse{
		Customer:          s.Customer,
		OpeningBalance:    s.OpeningBalance.String(),
		PeriodDebitTotal:  s.PeriodDebit.String(),
		PeriodCreditTotal: s.PeriodCredit.String(),
		ClosingBalance:    s.ClosingBalance.String(),
		Entries:           newLedgerEntryResponses(s.Entries),
	}
}

func newCashbookResponse(s *ledger.CashSummary) CashbookResponse {
	return CashbookResponse{
		CashIn:  s.CashIn.String(),
		CashOut: s.CashOut.String(),
		Balance: s.Balance.String(),
		Entries: newLedgerEntryResponses(s.Entries),
	}
}
