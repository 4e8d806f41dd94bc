// Package handler はquotesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/api"
	ledgerentity "portfolio_backend/internal/feature/ledger/domain/entity"
	"portfolio_backend/internal/feature/quotes/transport/http/dto"
	"portfolio_backend/internal/feature/quotes/usecase"
)

// QuotesUsecase はクオートキャッシュサービスのインターフェースを定義します。
type QuotesUsecase interface {
	GetMany(ctx context.Context, symbols []string) []usecase.QuoteResult
	GetPortfolioQuotes(ctx context.Context, positions []ledgerentity.Position) []usecase.PortfolioQuote
	CacheInfo(ctx context.Context) (usecase.CacheInfo, error)
}

// PositionSource はポートフォリオクオートの対象ポジションを提供します。
type PositionSource interface {
	GetVisibleHoldings(ctx context.Context) ([]ledgerentity.Position, ledgerentity.VirtualPortfolio)
}

// QuotesHandler はクオートのHTTPリクエストを処理します。
type QuotesHandler struct {
	uc        QuotesUsecase
	positions PositionSource
}

// NewQuotesHandler はQuotesHandlerの新しいインスタンスを生成します。
func NewQuotesHandler(uc QuotesUsecase, positions PositionSource) *QuotesHandler {
	return &QuotesHandler{uc: uc, positions: positions}
}

// GetQuotesHandler は複数シンボルのクオートを一括で返します。
// 取得に失敗したシンボルもerror付きの要素として結果に残ります。
//
// エンドポイント例:
// GET /api/quotes?symbols=AAPL,MSFT
func (h *QuotesHandler) GetQuotesHandler(c *gin.Context) {
	raw := c.Query("symbols")
	if strings.TrimSpace(raw) == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "symbols query parameter is required"})
		return
	}

	symbols := make([]string, 0)
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}

	results := h.uc.GetMany(c.Request.Context(), symbols)

	out := make([]dto.QuoteResultResponse, 0, len(results))
	for _, r := range results {
		item := dto.QuoteResultResponse{Symbol: r.Symbol}
		if r.Quote != nil {
			q := dto.ToQuoteResponse(*r.Quote)
			item.Quote = &q
		}
		if r.Err != nil {
			item.Error = r.Err.Error()
		}
		out = append(out, item)
	}
	c.JSON(http.StatusOK, out)
}

// GetPortfolioQuotesHandler は表示対象の保有銘柄にクオートと評価値を付与して返します。
// あわせてキャッシュの概要（最終更新の表示用）も返します。
func (h *QuotesHandler) GetPortfolioQuotesHandler(c *gin.Context) {
	ctx := c.Request.Context()

	positions, _ := h.positions.GetVisibleHoldings(ctx)
	enriched := h.uc.GetPortfolioQuotes(ctx, positions)

	out := dto.PortfolioQuotesResponse{
		Holdings: make([]dto.PortfolioQuoteResponse, 0, len(enriched)),
	}
	for _, pq := range enriched {
		out.Holdings = append(out.Holdings, dto.ToPortfolioQuoteResponse(pq))
	}
	if info, err := h.uc.CacheInfo(ctx); err == nil {
		out.Cache = dto.ToCacheInfoResponse(info)
	}

	c.JSON(http.StatusOK, out)
}
