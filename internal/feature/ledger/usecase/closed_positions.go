package usecase

import (
	"context"

	"portfolio_backend/internal/feature/ledger/domain/entity"

	"github.com/shopspring/decimal"
)

// GetClosedPositions は完全に手仕舞いされたコード（数量0かつ取引が1件以上）の
// 実現損益を導出します。対象コードは取引台帳のコード一覧（昇順）から取り、
// 表示名は同じコードの保有銘柄行から解決し、なければコードそのものを使います。
// 読み取り失敗時は空スライスへ縮退します。
func (u *LedgerUsecase) GetClosedPositions(ctx context.Context) []entity.ClosedPosition {
	codes, err := u.transactions.DistinctCodes(ctx)
	if err != nil {
		u.degrade("GetClosedPositions", err)
		return []entity.ClosedPosition{}
	}
	holdings, err := u.holdings.List(ctx)
	if err != nil {
		u.degrade("GetClosedPositions", err)
		return []entity.ClosedPosition{}
	}

	nameByCode := make(map[string]string, len(holdings))
	for _, h := range holdings {
		nameByCode[h.Code] = h.Name
	}

	out := make([]entity.ClosedPosition, 0)
	for _, code := range codes {
		group, err := u.transactions.ListByCode(ctx, code)
		if err != nil {
			u.degrade("GetClosedPositions", err)
			return []entity.ClosedPosition{}
		}
		if foldQuantity(group) != 0 {
			continue
		}
		out = append(out, closePosition(code, nameByCode[code], group))
	}
	return out
}

// closePosition は手仕舞い済みコード1件分の実現損益を計算します。
func closePosition(code, name string, txs []entity.Transaction) entity.ClosedPosition {
	cost := decimal.Zero
	revenue := decimal.Zero
	for _, tx := range txs {
		value := decimal.NewFromFloat(tx.GrossValue)
		fee := decimal.NewFromFloat(tx.Fee)
		if tx.Type == entity.TransactionBuy {
			cost = cost.Add(value).Add(fee)
		} else {
			revenue = revenue.Add(value).Sub(fee)
		}
	}

	pl := revenue.Sub(cost)
	// 原価0の場合は0%に固定し、ゼロ除算を避ける
	plPercent := decimal.Zero
	if cost.IsPositive() {
		plPercent = pl.Div(cost).Mul(decimal.NewFromInt(100))
	}

	if name == "" {
		name = code
	}
	totalCost, _ := cost.Float64()
	totalRevenue, _ := revenue.Float64()
	profitLoss, _ := pl.Float64()
	profitLossPercent, _ := plPercent.Float64()
	return entity.ClosedPosition{
		Code:              code,
		Name:              name,
		TotalCost:         totalCost,
		TotalRevenue:      totalRevenue,
		ProfitLoss:        profitLoss,
		ProfitLossPercent: profitLossPercent,
		TransactionCount:  len(txs),
	}
}
