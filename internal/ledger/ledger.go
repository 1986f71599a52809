// Package ledger builds running-balance statements from dated monetary events.
// It is a pure computation layer: callers fetch events (invoices, receipts,
// vouchers) and the engine sorts, walks and windows them.
package ledger

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// EventKind classifies how an event moves the balance
type EventKind string

const (
	// KindDebit increases the party's owed balance (e.g. an invoice)
	KindDebit EventKind = "debit"
	// KindCredit decreases it (e.g. a payment received)
	KindCredit EventKind = "credit"
)

// Engine errors
var (
	ErrInvalidRange   = errors.New("ledger: range start is after range end")
	ErrNegativeAmount = errors.New("ledger: negative amount in event input")
)

// Event is a single dated monetary event for one party
type Event struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Kind        EventKind       `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// Entry is an event annotated with the running balance after applying it.
// The balance is always computed over the full event history, not the
// displayed window.
type Entry struct {
	Event
	Balance decimal.Decimal `json:"balance"`
}

// View is a balance-annotated statement for a requested date window
type View struct {
	Entries        []Entry         `json:"entries"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	PeriodDebit    decimal.Decimal `json:"periodDebit"`
	PeriodCredit   decimal.Decimal `json:"periodCredit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// Build produces the statement for events within [start, end] inclusive.
// Nil bounds mean unbounded on that side; both nil means all time.
// Running balances are computed over the full history before the window is
// applied, so restricting the range never changes a per-event balance, only
// which entries are visible and what the opening balance is.
func Build(events []Event, start, end *time.Time) (*View, error) {
	if start != nil && end != nil && start.After(*end) {
		return nil, ErrInvalidRange
	}
	for _, e := range events {
		if e.Amount.IsNegative() {
			return nil, ErrNegativeAmount
		}
	}

	ordered := sortEvents(events)

	view := &View{
		Entries:        []Entry{},
		OpeningBalance: decimal.Zero,
		PeriodDebit:    decimal.Zero,
		PeriodCredit:   decimal.Zero,
	}

	balance := decimal.Zero
	for _, e := range ordered {
		if e.Kind == KindCredit {
			balance = balance.Sub(e.Amount)
		} else {
			balance = balance.Add(e.Amount)
		}

		if start != nil && e.Date.Before(*start) {
			// Strictly before the window: contributes to the opening balance only
			view.OpeningBalance = balance
			continue
		}
		if end != nil && e.Date.After(*end) {
			continue
		}

		if e.Kind == KindCredit {
			view.PeriodCredit = view.PeriodCredit.Add(e.Amount)
		} else {
			view.PeriodDebit = view.PeriodDebit.Add(e.Amount)
		}
		view.Entries = append(view.Entries, Entry{Event: e, Balance: balance})
	}

	view.ClosingBalance = view.OpeningBalance.Add(view.PeriodDebit).Sub(view.PeriodCredit)
	return view, nil
}

// Flow classifies an event for cash aggregation
type Flow string

const (
	FlowIn  Flow = "in"
	FlowOut Flow = "out"
)

// Classifier maps an event to a cash flow direction
type Classifier func(Event) Flow

// CashSummary is the aggregated cash position for a window
type CashSummary struct {
	Entries []Entry         `json:"entries"`
	CashIn  decimal.Decimal `json:"cashIn"`
	CashOut decimal.Decimal `json:"cashOut"`
	Balance decimal.Decimal `json:"balance"`
}

// Summarize runs the same running-balance walk with a caller-supplied
// classification instead of the events' own debit/credit kind. Events
// classified FlowIn add to the balance, FlowOut subtract.
func Summarize(events []Event, start, end *time.Time, classify Classifier) (*CashSummary, error) {
	reclassified := make([]Event, len(events))
	for i, e := range events {
		kind := KindDebit
		if classify(e) == FlowOut {
			kind = KindCredit
		}
		e.Kind = kind
		reclassified[i] = e
	}

	view, err := Build(reclassified, start, end)
	if err != nil {
		return nil, err
	}

	return &CashSummary{
		Entries: view.Entries,
		CashIn:  view.PeriodDebit,
		CashOut: view.PeriodCredit,
		Balance: view.ClosingBalance,
	}, nil
}

// sortEvents returns a chronologically ordered copy. Ties on the date are
// broken deterministically: debits before credits, then by ID. Source events
// carry only a calendar date, so without the tie-break the order would depend
// on which upstream collection happened to arrive first.
func sortEvents(events []Event) []Event {
	ordered := make([]Event, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Kind != b.Kind {
			return a.Kind == KindDebit
		}
		return a.ID < b.ID
	})
	return ordered
}
