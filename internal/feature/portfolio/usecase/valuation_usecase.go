// Package usecase はポートフォリオ全体の評価額集計とリバランス計算を実装します。
package usecase

import (
	"context"
	"math"

	ledgerentity "portfolio_backend/internal/feature/ledger/domain/entity"
	quotesusecase "portfolio_backend/internal/feature/quotes/usecase"

	"github.com/rs/zerolog"
)

// LedgerService は台帳由来のポジション情報への依存を抽象化します。
type LedgerService interface {
	GetVisibleHoldings(ctx context.Context) ([]ledgerentity.Position, ledgerentity.VirtualPortfolio)
	GetClosedPositions(ctx context.Context) []ledgerentity.ClosedPosition
	CashAmount(ctx context.Context) float64
}

// QuoteService はクオートキャッシュサービスへの依存を抽象化します。
type QuoteService interface {
	GetPortfolioQuotes(ctx context.Context, positions []ledgerentity.Position) []quotesusecase.PortfolioQuote
}

// FxService は為替キャッシュサービスへの依存を抽象化します。
type FxService interface {
	Rate(ctx context.Context, currency string) float64
}

// HoldingValuation は1保有銘柄分の評価結果です。
type HoldingValuation struct {
	quotesusecase.PortfolioQuote
	Weight          float64  // ポートフォリオ全体に占める割合（%）
	WeightDeviation *float64 // Weight - TargetWeight。目標未設定ならnil
}

// Summary はポートフォリオ全体の評価サマリーです。
type Summary struct {
	Holdings             []HoldingValuation
	Cash                 float64
	PortfolioTotal       float64 // Σ時価評価額 + 現金
	DayChangeValue       float64 // Σ(前日比 × 数量)
	TotalWeightDeviation float64 // 目標が設定された銘柄の|乖離|の合計
	TotalGain            float64 // 未実現損益 + 実現損益
	TotalGainPercent     float64
	DisplayCurrency      string
	DisplayRate          float64 // 基軸通貨から表示通貨への換算レート
	DisplayTotal         float64 // PortfolioTotal × DisplayRate
}

// PortfolioUsecase はポジション・クオート・現金・為替を評価サマリーへ集約します。
type PortfolioUsecase struct {
	ledger          LedgerService
	quotes          QuoteService
	fx              FxService
	displayCurrency string
	log             zerolog.Logger
}

// NewPortfolioUsecase はPortfolioUsecaseの新しいインスタンスを生成します。
func NewPortfolioUsecase(ledger LedgerService, quotes QuoteService, fx FxService,
	displayCurrency string, log zerolog.Logger) *PortfolioUsecase {
	if displayCurrency == "" {
		displayCurrency = "USD"
	}
	return &PortfolioUsecase{
		ledger:          ledger,
		quotes:          quotes,
		fx:              fx,
		displayCurrency: displayCurrency,
		log:             log.With().Str("service", "portfolio").Logger(),
	}
}

// GetSummary は表示対象の保有銘柄を評価し、全体サマリーを返します。
// クオート取得に失敗した銘柄は評価額0のまま結果に残ります（部分描画を優先）。
func (u *PortfolioUsecase) GetSummary(ctx context.Context) Summary {
	positions, _ := u.ledger.GetVisibleHoldings(ctx)
	enriched := u.quotes.GetPortfolioQuotes(ctx, positions)
	closed := u.ledger.GetClosedPositions(ctx)
	cash := u.ledger.CashAmount(ctx)
	rate := u.fx.Rate(ctx, u.displayCurrency)

	return u.aggregate(enriched, closed, cash, rate)
}

// aggregate は評価サマリーの純粋な計算部分です。
func (u *PortfolioUsecase) aggregate(enriched []quotesusecase.PortfolioQuote,
	closed []ledgerentity.ClosedPosition, cash, displayRate float64) Summary {

	total := cash
	for _, e := range enriched {
		total += e.MarketValue
	}

	var dayChange, unrealized, investedCost float64
	holdings := make([]HoldingValuation, 0, len(enriched))
	totalDeviation := 0.0
	for _, e := range enriched {
		hv := HoldingValuation{PortfolioQuote: e}
		if total > 0 {
			hv.Weight = e.MarketValue / total * 100
		}
		if e.TargetWeight != nil {
			dev := hv.Weight - *e.TargetWeight
			hv.WeightDeviation = &dev
			totalDeviation += math.Abs(dev)
		}
		if e.Quote != nil {
			dayChange += e.Quote.ChangeAbs * e.Quantity
			unrealized += e.MarketValue - e.CostBasis
			investedCost += e.CostBasis
		}
		holdings = append(holdings, hv)
	}

	var realized, closedAbs float64
	for _, c := range closed {
		realized += c.ProfitLoss
		closedAbs += math.Abs(c.ProfitLoss)
	}

	totalGain := unrealized + realized
	totalGainPercent := 0.0
	if denom := investedCost + closedAbs; denom > 0 {
		totalGainPercent = totalGain / denom * 100
	}

	return Summary{
		Holdings:             holdings,
		Cash:                 cash,
		PortfolioTotal:       total,
		DayChangeValue:       dayChange,
		TotalWeightDeviation: totalDeviation,
		TotalGain:            totalGain,
		TotalGainPercent:     totalGainPercent,
		DisplayCurrency:      u.displayCurrency,
		DisplayRate:          displayRate,
		DisplayTotal:         total * displayRate,
	}
}
