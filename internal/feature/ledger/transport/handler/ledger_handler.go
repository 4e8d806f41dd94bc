// Package handler はledgerフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/api"
	"portfolio_backend/internal/feature/ledger/domain/entity"
	"portfolio_backend/internal/feature/ledger/transport/http/dto"
	"portfolio_backend/internal/feature/ledger/usecase"
)

// LedgerUsecase は台帳操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースはコンシューマー（handler）側で定義します。
type LedgerUsecase interface {
	GetHoldings(ctx context.Context) ([]entity.Position, entity.VirtualPortfolio)
	GetVisibleHoldings(ctx context.Context) ([]entity.Position, entity.VirtualPortfolio)
	GetHiddenHoldings(ctx context.Context) ([]entity.Position, entity.VirtualPortfolio)
	GetClosedPositions(ctx context.Context) []entity.ClosedPosition
	GetTransactions(ctx context.Context) []entity.Transaction
	AddHolding(ctx context.Context, h entity.Holding) (*entity.Holding, error)
	UpdateHolding(ctx context.Context, h entity.Holding) (*entity.Holding, error)
	DeleteHolding(ctx context.Context, id uint) error
	ToggleVisibility(ctx context.Context, id uint) (*entity.Holding, error)
	AddTransaction(ctx context.Context, tx entity.Transaction) (*entity.Transaction, error)
	DeleteTransaction(ctx context.Context, id uint) error
	SetSetting(ctx context.Context, key, value string) error
}

// LedgerHandler は台帳のHTTPリクエストを処理します。
type LedgerHandler struct {
	uc LedgerUsecase
}

// NewLedgerHandler はLedgerHandlerの新しいインスタンスを生成します。
func NewLedgerHandler(uc LedgerUsecase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// GetHoldingsHandler は保有銘柄一覧をJSONで返します。
//
// エンドポイント例:
// GET /api/holdings?filter=visible
func (h *LedgerHandler) GetHoldingsHandler(c *gin.Context) {
	ctx := c.Request.Context()

	var positions []entity.Position
	var vp entity.VirtualPortfolio
	switch c.DefaultQuery("filter", "all") {
	case "visible":
		positions, vp = h.uc.GetVisibleHoldings(ctx)
	case "hidden":
		positions, vp = h.uc.GetHiddenHoldings(ctx)
	default:
		positions, vp = h.uc.GetHoldings(ctx)
	}

	out := dto.HoldingsResponse{
		Holdings:         make([]dto.PositionResponse, 0, len(positions)),
		VirtualPortfolio: dto.VirtualPortfolioExpression(vp),
	}
	for _, p := range positions {
		out.Holdings = append(out.Holdings, dto.ToPositionResponse(p))
	}

	c.JSON(http.StatusOK, out)
}

// GetClosedPositionsHandler は手仕舞い済みポジションの一覧をJSONで返します。
func (h *LedgerHandler) GetClosedPositionsHandler(c *gin.Context) {
	closed := h.uc.GetClosedPositions(c.Request.Context())

	out := make([]dto.ClosedPositionResponse, 0, len(closed))
	for _, cp := range closed {
		out = append(out, dto.ToClosedPositionResponse(cp))
	}
	c.JSON(http.StatusOK, out)
}

// GetTransactionsHandler は取引台帳の全行をJSONで返します。
func (h *LedgerHandler) GetTransactionsHandler(c *gin.Context) {
	txs := h.uc.GetTransactions(c.Request.Context())

	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, dto.ToTransactionResponse(tx))
	}
	c.JSON(http.StatusOK, out)
}

// actionRequest は変更系の単一ディスパッチエンドポイントのリクエストです。
type actionRequest struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// ActionHandler は台帳への変更アクションをディスパッチします。
// 未知のアクションは汎用メッセージの400で応答し、クラッシュさせません。
//
// エンドポイント例:
// POST /api/action {"action":"add_transaction","payload":{...}}
func (h *LedgerHandler) ActionHandler(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	ctx := c.Request.Context()
	switch req.Action {
	case "add_holding":
		h.addHolding(c, ctx, req.Payload)
	case "update_holding":
		h.updateHolding(c, ctx, req.Payload)
	case "delete_holding":
		h.deleteByID(c, req.Payload, func(id uint) error { return h.uc.DeleteHolding(ctx, id) })
	case "toggle_visibility":
		h.toggleVisibility(c, ctx, req.Payload)
	case "add_transaction":
		h.addTransaction(c, ctx, req.Payload)
	case "delete_transaction":
		h.deleteByID(c, req.Payload, func(id uint) error { return h.uc.DeleteTransaction(ctx, id) })
	case "update_settings":
		h.updateSettings(c, ctx, req.Payload)
	default:
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "unknown action"})
	}
}

func (h *LedgerHandler) addHolding(c *gin.Context, ctx context.Context, payload json.RawMessage) {
	var p dto.HoldingPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid payload"})
		return
	}
	visible := true
	if p.Visible != nil {
		visible = *p.Visible
	}
	created, err := h.uc.AddHolding(ctx, entity.Holding{
		Name:         p.Name,
		Code:         p.Code,
		TargetWeight: p.TargetWeight,
		Visible:      visible,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPositionResponse(entity.Position{Holding: *created}))
}

func (h *LedgerHandler) updateHolding(c *gin.Context, ctx context.Context, payload json.RawMessage) {
	var p dto.HoldingPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid payload"})
		return
	}
	visible := true
	if p.Visible != nil {
		visible = *p.Visible
	}
	updated, err := h.uc.UpdateHolding(ctx, entity.Holding{
		ID:           p.ID,
		Name:         p.Name,
		Code:         p.Code,
		TargetWeight: p.TargetWeight,
		Visible:      visible,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPositionResponse(entity.Position{Holding: *updated}))
}

func (h *LedgerHandler) toggleVisibility(c *gin.Context, ctx context.Context, payload json.RawMessage) {
	var p dto.IDPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid payload"})
		return
	}
	toggled, err := h.uc.ToggleVisibility(ctx, p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPositionResponse(entity.Position{Holding: *toggled}))
}

func (h *LedgerHandler) addTransaction(c *gin.Context, ctx context.Context, payload json.RawMessage) {
	var p dto.TransactionPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid payload"})
		return
	}
	date, err := dto.ParseDate(p.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid date, expected YYYY-MM-DD"})
		return
	}
	created, err := h.uc.AddTransaction(ctx, entity.Transaction{
		Code:       p.Code,
		Type:       entity.TransactionType(p.Type),
		Date:       date,
		Quantity:   p.Quantity,
		GrossValue: p.GrossValue,
		Fee:        p.Fee,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*created))
}

func (h *LedgerHandler) updateSettings(c *gin.Context, ctx context.Context, payload json.RawMessage) {
	var p dto.SettingsPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid payload"})
		return
	}
	if p.CashAmount != nil {
		if *p.CashAmount < 0 {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "cash amount must not be negative"})
			return
		}
		value := strconv.FormatFloat(*p.CashAmount, 'f', -1, 64)
		if err := h.uc.SetSetting(ctx, entity.SettingCashAmount, value); err != nil {
			respondError(c, err)
			return
		}
	}
	if p.PortfolioName != nil {
		if err := h.uc.SetSetting(ctx, entity.SettingPortfolioName, *p.PortfolioName); err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

func (h *LedgerHandler) deleteByID(c *gin.Context, payload json.RawMessage, del func(id uint) error) {
	var p dto.IDPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid payload"})
		return
	}
	if err := del(p.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// respondError はユースケースのエラーをHTTPステータスへ写像します。
// 想定外のエラーは詳細を公開せず、汎用メッセージの500で応答します。
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrHoldingNotFound), errors.Is(err, usecase.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}
