// Package dto はledgerフィーチャーのHTTPリクエスト/レスポンスDTOを定義します。
package dto

import (
	"strconv"
	"strings"
	"time"

	"portfolio_backend/internal/feature/ledger/domain/entity"
)

// PositionResponse は数量・取得原価付きの保有銘柄レスポンスです。
type PositionResponse struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	Code         string   `json:"code"`
	TargetWeight *float64 `json:"targetWeight"`
	Visible      bool     `json:"visible"`
	Quantity     float64  `json:"quantity"`
	CostBasis    float64  `json:"costBasis"`
}

// HoldingsResponse は保有銘柄一覧と集計チャート用の仮想ポートフォリオ式です。
type HoldingsResponse struct {
	Holdings         []PositionResponse `json:"holdings"`
	VirtualPortfolio string             `json:"virtualPortfolio,omitempty"`
}

// ClosedPositionResponse は手仕舞い済みポジションのレスポンスです。
type ClosedPositionResponse struct {
	Code              string  `json:"code"`
	Name              string  `json:"name"`
	TotalCost         float64 `json:"totalCost"`
	TotalRevenue      float64 `json:"totalRevenue"`
	ProfitLoss        float64 `json:"profitLoss"`
	ProfitLossPercent float64 `json:"profitLossPercent"`
	TransactionCount  int     `json:"transactionCount"`
}

// TransactionResponse は取引台帳行のレスポンスです。
type TransactionResponse struct {
	ID         uint    `json:"id"`
	Code       string  `json:"code"`
	Type       string  `json:"type"`
	Date       string  `json:"date"`
	Quantity   float64 `json:"quantity"`
	GrossValue float64 `json:"grossValue"`
	Fee        float64 `json:"fee"`
}

// HoldingPayload は保有銘柄の追加・更新ペイロードです。
type HoldingPayload struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	Code         string   `json:"code"`
	TargetWeight *float64 `json:"targetWeight"`
	Visible      *bool    `json:"visible"`
}

// TransactionPayload は取引の追記ペイロードです。
type TransactionPayload struct {
	Code       string  `json:"code"`
	Type       string  `json:"type"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Quantity   float64 `json:"quantity"`
	GrossValue float64 `json:"grossValue"`
	Fee        float64 `json:"fee"`
}

// SettingsPayload は設定の上書きペイロードです。nilのフィールドは変更しません。
type SettingsPayload struct {
	CashAmount    *float64 `json:"cashAmount"`
	PortfolioName *string  `json:"portfolioName"`
}

// IDPayload は削除・トグル系アクションの対象IDです。
type IDPayload struct {
	ID uint `json:"id"`
}

// ToPositionResponse はドメインのポジションをレスポンスDTOへ変換します。
func ToPositionResponse(p entity.Position) PositionResponse {
	return PositionResponse{
		ID:           p.ID,
		Name:         p.Name,
		Code:         p.Code,
		TargetWeight: p.TargetWeight,
		Visible:      p.Visible,
		Quantity:     p.Quantity,
		CostBasis:    p.CostBasis,
	}
}

// ToTransactionResponse は取引エンティティをレスポンスDTOへ変換します。
func ToTransactionResponse(tx entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:         tx.ID,
		Code:       tx.Code,
		Type:       string(tx.Type),
		Date:       tx.Date.UTC().Format("2006-01-02"),
		Quantity:   tx.Quantity,
		GrossValue: tx.GrossValue,
		Fee:        tx.Fee,
	}
}

// ToClosedPositionResponse は手仕舞い済みポジションをレスポンスDTOへ変換します。
func ToClosedPositionResponse(c entity.ClosedPosition) ClosedPositionResponse {
	return ClosedPositionResponse{
		Code:              c.Code,
		Name:              c.Name,
		TotalCost:         c.TotalCost,
		TotalRevenue:      c.TotalRevenue,
		ProfitLoss:        c.ProfitLoss,
		ProfitLossPercent: c.ProfitLossPercent,
		TransactionCount:  c.TransactionCount,
	}
}

// VirtualPortfolioExpression は仮想ポートフォリオを表示用の式文字列
// 「q1*code1+q2*code2+...+cash」へ変換します。内部では型付きモデルのまま扱い、
// 文字列化はこの表示境界でのみ行います。
func VirtualPortfolioExpression(vp entity.VirtualPortfolio) string {
	if vp.Empty() {
		return ""
	}

	parts := make([]string, 0, len(vp.Terms)+1)
	for _, t := range vp.Terms {
		parts = append(parts, formatNumber(t.Quantity)+"*"+t.Code)
	}
	if vp.Cash > 0 {
		parts = append(parts, formatNumber(vp.Cash))
	}
	return strings.Join(parts, "+")
}

// formatNumber は末尾のゼロを付けない最短の10進表記を返します。
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseDate は取引ペイロードの日付（YYYY-MM-DD）を解釈します。
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
