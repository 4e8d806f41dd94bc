package usecase

import (
	"context"
	"math"

	quotesusecase "portfolio_backend/internal/feature/quotes/usecase"
)

// Action はリバランス推奨の売買区分です。
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Recommendation は1銘柄分のリバランス推奨です。株数は整数に丸めます。
type Recommendation struct {
	Code            string
	Name            string
	CurrentQuantity float64
	CurrentPrice    float64
	TargetWeight    float64
	TargetValue     float64 // PortfolioTotal × TargetWeight / 100
	TargetQuantity  int64   // TargetValue / CurrentPrice を整数株に丸めたもの
	QuantityChange  float64 // TargetQuantity - CurrentQuantity
	ValueChange     float64 // QuantityChange × CurrentPrice
	NewWeight       float64 // TargetQuantity × CurrentPrice / PortfolioTotal × 100
	Action          Action
}

// RebalanceResult はリバランス計算の結果一式です。
type RebalanceResult struct {
	Recommendations []Recommendation
	PortfolioTotal  float64
	Cash            float64
	ResultingCash   float64 // Cash - Σ ValueChange
}

// Rebalance は目標配分が設定された表示対象銘柄ごとに目標株数とBUY/SELL/HOLDを
// 計算します。目標配分の合計が100%である必要はありません。数量0でも目標が
// あれば必ず推奨対象に含まれます。クオートが取れなかった銘柄は株数を計算
// できないため対象から外し、ログに記録します。
func (u *PortfolioUsecase) Rebalance(ctx context.Context) RebalanceResult {
	positions, _ := u.ledger.GetVisibleHoldings(ctx)
	enriched := u.quotes.GetPortfolioQuotes(ctx, positions)
	cash := u.ledger.CashAmount(ctx)

	total := cash
	for _, e := range enriched {
		total += e.MarketValue
	}

	result := RebalanceResult{
		Recommendations: make([]Recommendation, 0, len(enriched)),
		PortfolioTotal:  total,
		Cash:            cash,
	}

	var valueChangeSum float64
	for _, e := range enriched {
		if e.TargetWeight == nil {
			continue
		}
		if e.Err != nil || e.Quote == nil || e.Quote.Current <= 0 {
			u.log.Warn().Str("code", e.Code).Msg("skipping rebalance for holding without quote")
			continue
		}

		rec := buildRecommendation(e, total)
		valueChangeSum += rec.ValueChange
		result.Recommendations = append(result.Recommendations, rec)
	}

	result.ResultingCash = cash - valueChangeSum
	return result
}

// buildRecommendation は1銘柄分の推奨を純粋計算します。
func buildRecommendation(e quotesusecase.PortfolioQuote, portfolioTotal float64) Recommendation {
	price := e.Quote.Current
	targetValue := portfolioTotal * *e.TargetWeight / 100
	targetQuantity := int64(math.Round(targetValue / price))
	if targetQuantity < 0 {
		targetQuantity = 0
	}

	quantityChange := float64(targetQuantity) - e.Quantity
	action := ActionHold
	switch {
	case quantityChange > 0:
		action = ActionBuy
	case quantityChange < 0:
		action = ActionSell
	}

	newWeight := 0.0
	if portfolioTotal > 0 {
		newWeight = float64(targetQuantity) * price / portfolioTotal * 100
	}

	return Recommendation{
		Code:            e.Code,
		Name:            e.Name,
		CurrentQuantity: e.Quantity,
		CurrentPrice:    price,
		TargetWeight:    *e.TargetWeight,
		TargetValue:     targetValue,
		TargetQuantity:  targetQuantity,
		QuantityChange:  quantityChange,
		ValueChange:     quantityChange * price,
		NewWeight:       newWeight,
		Action:          action,
	}
}
