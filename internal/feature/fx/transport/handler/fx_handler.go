// Package handler はfxフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	fxusecase "portfolio_backend/internal/feature/fx/usecase"
)

// defaultCurrencies は currencies パラメータ未指定時の既定の通貨集合です。
var defaultCurrencies = []string{"AUD", "EUR", "GBP", "JPY", "SGD"}

// FxUsecase は為替キャッシュサービスのインターフェースを定義します。
type FxUsecase interface {
	GetLatestRates(ctx context.Context, currencies []string) map[string]float64
}

// FxHandler は為替レートのHTTPリクエストを処理します。
type FxHandler struct {
	uc FxUsecase
}

// NewFxHandler はFxHandlerの新しいインスタンスを生成します。
func NewFxHandler(uc FxUsecase) *FxHandler {
	return &FxHandler{uc: uc}
}

// ratesResponse は /api/rates のレスポンスです。
type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// GetRatesHandler は要求された通貨集合のレートを返します。
// 為替サービスは段階的縮退で必ずレートを返すため、このエンドポイントが
// エラーになることはありません。
//
// エンドポイント例:
// GET /api/rates?currencies=SGD,EUR
func (h *FxHandler) GetRatesHandler(c *gin.Context) {
	currencies := defaultCurrencies
	if raw := c.Query("currencies"); strings.TrimSpace(raw) != "" {
		currencies = make([]string, 0)
		for _, s := range strings.Split(raw, ",") {
			if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
				currencies = append(currencies, s)
			}
		}
	}

	rates := h.uc.GetLatestRates(c.Request.Context(), currencies)
	c.JSON(http.StatusOK, ratesResponse{Base: fxusecase.BaseCurrency, Rates: rates})
}
