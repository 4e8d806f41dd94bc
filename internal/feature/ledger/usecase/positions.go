package usecase

import (
	"context"
	"strings"

	"portfolio_backend/internal/feature/ledger/domain/entity"

	"github.com/shopspring/decimal"
)

// Quantity はコードの正味保有数量を返します: Σ買い数量 − Σ売り数量。
// 取引の並び順には依存しません。未知のコードは0を返し、エラーにはなりません。
func (u *LedgerUsecase) Quantity(ctx context.Context, code string) float64 {
	txs, err := u.transactions.ListByCode(ctx, code)
	if err != nil {
		u.degrade("Quantity", err)
		return 0
	}
	return foldQuantity(txs)
}

// GetHoldings は全保有銘柄に台帳由来の数量と取得原価を付与して返し、
// あわせて集計チャート用の仮想ポートフォリオを合成します。
// 読み取り失敗時は空の結果へ縮退します。
func (u *LedgerUsecase) GetHoldings(ctx context.Context) ([]entity.Position, entity.VirtualPortfolio) {
	holdings, err := u.holdings.List(ctx)
	if err != nil {
		u.degrade("GetHoldings", err)
		return []entity.Position{}, entity.VirtualPortfolio{}
	}
	txs, err := u.transactions.List(ctx)
	if err != nil {
		u.degrade("GetHoldings", err)
		return []entity.Position{}, entity.VirtualPortfolio{}
	}

	byCode := groupByCode(txs)
	positions := make([]entity.Position, 0, len(holdings))
	for _, h := range holdings {
		positions = append(positions, entity.Position{
			Holding:   h,
			Quantity:  foldQuantity(byCode[h.Code]),
			CostBasis: foldCostBasis(byCode[h.Code]),
		})
	}

	return positions, u.buildVirtualPortfolio(ctx, positions)
}

// GetVisibleHoldings は表示フラグが有効な保有銘柄のみを返します。
func (u *LedgerUsecase) GetVisibleHoldings(ctx context.Context) ([]entity.Position, entity.VirtualPortfolio) {
	positions, vp := u.GetHoldings(ctx)
	return filterVisible(positions, true), vp
}

// GetHiddenHoldings は非表示の保有銘柄のみを返します。
func (u *LedgerUsecase) GetHiddenHoldings(ctx context.Context) ([]entity.Position, entity.VirtualPortfolio) {
	positions, vp := u.GetHoldings(ctx)
	return filterVisible(positions, false), vp
}

// buildVirtualPortfolio は対象取引所の数量>0の保有銘柄から加重項を組み立てます。
// 現金項は残高が正の場合のみ付与します。
func (u *LedgerUsecase) buildVirtualPortfolio(ctx context.Context, positions []entity.Position) entity.VirtualPortfolio {
	if u.virtualExchange == "" {
		return entity.VirtualPortfolio{}
	}

	prefix := u.virtualExchange + ":"
	var vp entity.VirtualPortfolio
	for _, p := range positions {
		if !strings.HasPrefix(p.Code, prefix) || p.Quantity <= 0 {
			continue
		}
		vp.Terms = append(vp.Terms, entity.VirtualPortfolioTerm{
			Quantity: p.Quantity,
			Code:     p.Code,
		})
	}
	if len(vp.Terms) == 0 {
		return entity.VirtualPortfolio{}
	}

	if cash := u.CashAmount(ctx); cash > 0 {
		vp.Cash = cash
	}
	return vp
}

// foldQuantity は取引列を正味数量へ畳み込みます（買い +、売り −）。
func foldQuantity(txs []entity.Transaction) float64 {
	q := decimal.Zero
	for _, tx := range txs {
		d := decimal.NewFromFloat(tx.Quantity)
		if tx.Type == entity.TransactionSell {
			d = d.Neg()
		}
		q = q.Add(d)
	}
	f, _ := q.Float64()
	return f
}

// foldCostBasis は買い側のみを累積した取得原価（投下資本の総額）を返します。
// 売りは原価を減らしません。FIFOの残存原価ではない点に注意。
func foldCostBasis(txs []entity.Transaction) float64 {
	c := decimal.Zero
	for _, tx := range txs {
		if tx.Type != entity.TransactionBuy {
			continue
		}
		c = c.Add(decimal.NewFromFloat(tx.GrossValue)).Add(decimal.NewFromFloat(tx.Fee))
	}
	f, _ := c.Float64()
	return f
}

// groupByCode は取引列をコード別に分配します。
func groupByCode(txs []entity.Transaction) map[string][]entity.Transaction {
	byCode := make(map[string][]entity.Transaction)
	for _, tx := range txs {
		byCode[tx.Code] = append(byCode[tx.Code], tx)
	}
	return byCode
}

// filterVisible は表示フラグで保有銘柄を絞り込みます。
func filterVisible(positions []entity.Position, visible bool) []entity.Position {
	out := make([]entity.Position, 0, len(positions))
	for _, p := range positions {
		if p.Visible == visible {
			out = append(out, p)
		}
	}
	return out
}
