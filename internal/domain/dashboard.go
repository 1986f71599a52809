package domain

import "github.com/shopspring/decimal"

// DashboardSummary is the landing-page snapshot for a workspace
type DashboardSummary struct {
	Receivables   decimal.Decimal `json:"receivables"`
	CashInHand    decimal.Decimal `json:"cashInHand"`
	StockValue    decimal.Decimal `json:"stockValue"`
	TotalInvoiced decimal.Decimal `json:"totalInvoiced"`
	TotalReceived decimal.Decimal `json:"totalReceived"`
	InvoiceCount  int64           `json:"invoiceCount"`
	CustomerCount int64           `json:"customerCount"`
	LowStockItems []*Item         `json:"lowStockItems"`
}
