package service

import (
	"github.com/shopspring/decimal"

	"github.com/velobooks/velobooks-backend/internal/domain"
)

// DashboardService aggregates the workspace overview numbers
type DashboardService struct {
	invoiceRepo  domain.InvoiceRepository
	paymentRepo  domain.PaymentRepository
	customerRepo domain.CustomerRepository
	itemRepo     domain.ItemRepository
	cashbook     *CashbookService
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(invoiceRepo domain.InvoiceRepository, paymentRepo domain.PaymentRepository, customerRepo domain.CustomerRepository, itemRepo domain.ItemRepository, cashbook *CashbookService) *DashboardService {
	return &DashboardService{
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		cashbook:     cashbook,
	}
}

// GetSummary computes the dashboard summary for a workspace. Receivables is
// total invoiced minus total received; cash in hand is the all-time cashbook
// balance.
func (s *DashboardService) GetSummary(workspaceID int32) (*domain.DashboardSummary, error) {
	invoiceTotals, err := s.invoiceRepo.Totals(workspaceID)
	if err != nil {
		return nil, err
	}

	receivedTotals, err := s.paymentRepo.TotalsByDirection(workspaceID, domain.DirectionIn)
	if err != nil {
		return nil, err
	}

	cashSummary, err := s.cashbook.GetCashbook(workspaceID, nil, nil)
	if err != nil {
		return nil, err
	}

	customerCount, err := s.customerRepo.Count(workspaceID)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.GetAllByWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}

	stockValue := decimal.Zero
	lowStock := []*domain.Item{}
	for _, item := range items {
		stockValue = stockValue.Add(item.StockValue())
		if item.IsLowStock() {
			lowStock = append(lowStock, item)
		}
	}

	return &domain.DashboardSummary{
		Receivables:   invoiceTotals.Total.Sub(receivedTotals.Total),
		CashInHand:    cashSummary.Balance,
		StockValue:    stockValue,
		TotalInvoiced: invoiceTotals.Total,
		TotalReceived: receivedTotals.Total,
		InvoiceCount:  invoiceTotals.Count,
		CustomerCount: customerCount,
		LowStockItems: lowStock,
	}, nil
}
