package entity

// Position is a holding enriched with state derived from the ledger.
type Position struct {
	Holding
	Quantity  float64 // Net quantity: sum of buys minus sum of sells
	CostBasis float64 // Cumulative buy-side capital including fees (total invested, not FIFO remaining)
}

// ClosedPosition is the realized result of a fully exited code. Derived on
// demand, never stored.
type ClosedPosition struct {
	Code              string
	Name              string
	TotalCost         float64 // Sum of buy value + fee
	TotalRevenue      float64 // Sum of sell value - fee
	ProfitLoss        float64
	ProfitLossPercent float64
	TransactionCount  int
}

// VirtualPortfolioTerm is one quantity-weighted code in the aggregate chart
// expression.
type VirtualPortfolioTerm struct {
	Quantity float64
	Code     string
}

// VirtualPortfolio is the aggregate "whole portfolio as one chart" model:
// an ordered list of weighted terms plus an optional cash term. It stays a
// typed value internally and is rendered to its display string only at the
// transport boundary.
type VirtualPortfolio struct {
	Terms []VirtualPortfolioTerm
	Cash  float64
}

// Empty reports whether the virtual portfolio has nothing to chart.
func (v VirtualPortfolio) Empty() bool {
	return len(v.Terms) == 0 && v.Cash <= 0
}
