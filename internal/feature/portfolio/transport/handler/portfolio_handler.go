// Package handler はportfolioフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/feature/portfolio/transport/http/dto"
	"portfolio_backend/internal/feature/portfolio/usecase"
)

// PortfolioUsecase はポートフォリオ評価のユースケースインターフェースを定義します。
type PortfolioUsecase interface {
	GetSummary(ctx context.Context) usecase.Summary
	Rebalance(ctx context.Context) usecase.RebalanceResult
}

// PortfolioHandler はポートフォリオ評価のHTTPリクエストを処理します。
type PortfolioHandler struct {
	uc PortfolioUsecase
}

// NewPortfolioHandler はPortfolioHandlerの新しいインスタンスを生成します。
func NewPortfolioHandler(uc PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

// GetSummaryHandler はポートフォリオ全体の評価サマリーをJSONで返します。
// 部分的な失敗（個別銘柄のクオート欠落等）は結果に含めたまま200で返します。
func (h *PortfolioHandler) GetSummaryHandler(c *gin.Context) {
	summary := h.uc.GetSummary(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

// GetRebalanceHandler はリバランス推奨の一覧をJSONで返します。
func (h *PortfolioHandler) GetRebalanceHandler(c *gin.Context) {
	result := h.uc.Rebalance(c.Request.Context())
	c.JSON(http.StatusOK, dto.ToRebalanceResponse(result))
}
