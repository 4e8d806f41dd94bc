// Package dto はquotesフィーチャーのHTTPレスポンスDTOを定義します。
package dto

import (
	"time"

	ledgerdto "portfolio_backend/internal/feature/ledger/transport/http/dto"
	"portfolio_backend/internal/feature/quotes/domain/entity"
	"portfolio_backend/internal/feature/quotes/usecase"
)

// QuoteResponse はリアルタイムクオートのレスポンスDTOです。
type QuoteResponse struct {
	Symbol        string  `json:"symbol"`
	Current       float64 `json:"current"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previousClose"`
	ChangeAbs     float64 `json:"changeAbs"`
	ChangePct     float64 `json:"changePct"`
	Timestamp     string  `json:"timestamp"`
}

// QuoteResultResponse はバッチ取得の1シンボル分です。失敗したシンボルも
// error付きで結果に残ります。
type QuoteResultResponse struct {
	Symbol string         `json:"symbol"`
	Quote  *QuoteResponse `json:"quote,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// PortfolioQuoteResponse はクオートと評価値付きの保有銘柄です。
type PortfolioQuoteResponse struct {
	ledgerdto.PositionResponse
	Quote       *QuoteResponse `json:"quote,omitempty"`
	MarketValue float64        `json:"marketValue"`
	CostBasis   float64        `json:"costBasis"`
	Gain        float64        `json:"gain"`
	GainPercent float64        `json:"gainPercent"`
	Error       string         `json:"error,omitempty"`
}

// CacheInfoResponse はクオートキャッシュの「最終更新」レポートです。
type CacheInfoResponse struct {
	Entries int      `json:"entries"`
	Symbols []string `json:"symbols"`
	Oldest  string   `json:"oldest,omitempty"`
	Newest  string   `json:"newest,omitempty"`
}

// PortfolioQuotesResponse は評価値付き保有銘柄一覧とキャッシュ概要です。
type PortfolioQuotesResponse struct {
	Holdings []PortfolioQuoteResponse `json:"holdings"`
	Cache    CacheInfoResponse        `json:"cache"`
}

// ToQuoteResponse はクオートエンティティをレスポンスDTOへ変換します。
func ToQuoteResponse(q entity.Quote) QuoteResponse {
	return QuoteResponse{
		Symbol:        q.Symbol,
		Current:       q.Current,
		High:          q.High,
		Low:           q.Low,
		Open:          q.Open,
		PreviousClose: q.PreviousClose,
		ChangeAbs:     q.ChangeAbs,
		ChangePct:     q.ChangePct,
		Timestamp:     q.Timestamp.UTC().Format(time.RFC3339),
	}
}

// ToPortfolioQuoteResponse は評価済みポジションをレスポンスDTOへ変換します。
func ToPortfolioQuoteResponse(pq usecase.PortfolioQuote) PortfolioQuoteResponse {
	out := PortfolioQuoteResponse{
		PositionResponse: ledgerdto.ToPositionResponse(pq.Position),
		MarketValue:      pq.MarketValue,
		CostBasis:        pq.CostBasis,
		Gain:             pq.Gain,
		GainPercent:      pq.GainPercent,
	}
	if pq.Quote != nil {
		q := ToQuoteResponse(*pq.Quote)
		out.Quote = &q
	}
	if pq.Err != nil {
		out.Error = pq.Err.Error()
	}
	return out
}

// ToCacheInfoResponse はキャッシュ概要をレスポンスDTOへ変換します。
func ToCacheInfoResponse(info usecase.CacheInfo) CacheInfoResponse {
	out := CacheInfoResponse{Entries: info.Entries, Symbols: info.Symbols}
	if !info.Oldest.IsZero() {
		out.Oldest = info.Oldest.UTC().Format(time.RFC3339)
	}
	if !info.Newest.IsZero() {
		out.Newest = info.Newest.UTC().Format(time.RFC3339)
	}
	return out
}
