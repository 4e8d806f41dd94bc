package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"portfolio_backend/internal/feature/ledger/domain/entity"

	"github.com/rs/zerolog"
)

// HoldingRepository は保有銘柄の永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type HoldingRepository interface {
	List(ctx context.Context) ([]entity.Holding, error)
	FindByID(ctx context.Context, id uint) (*entity.Holding, error)
	Create(ctx context.Context, h *entity.Holding) error
	Update(ctx context.Context, h *entity.Holding) error
	Delete(ctx context.Context, id uint) error
}

// TransactionRepository は取引台帳の永続化層を抽象化します。
// 取引は追記と削除のみで、更新操作は設計上存在しません。
type TransactionRepository interface {
	List(ctx context.Context) ([]entity.Transaction, error)
	ListByCode(ctx context.Context, code string) ([]entity.Transaction, error)
	DistinctCodes(ctx context.Context) ([]string, error)
	FindByID(ctx context.Context, id uint) (*entity.Transaction, error)
	Create(ctx context.Context, tx *entity.Transaction) error
	Delete(ctx context.Context, id uint) error
}

// SettingsRepository は名前付き設定値の永続化層を抽象化します。
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// LedgerUsecase は台帳の参照・変更と、そこから導出されるポジション計算を提供します。
//
// 読み取り系の公開メソッドは永続化エラーを伝播しません: エラーはこの境界で
// ログに記録され、空のスライス・ゼロ値へ縮退します（部分的な画面描画を
// クラッシュより優先する明示的なポリシー）。変更系メソッドはエラーを返します。
type LedgerUsecase struct {
	holdings     HoldingRepository
	transactions TransactionRepository
	settings     SettingsRepository

	// virtualExchange は仮想ポートフォリオ集計の対象となる取引所プレフィックスです。
	// 空の場合、仮想ポートフォリオは生成されません。
	virtualExchange string

	log zerolog.Logger
}

// NewLedgerUsecase はLedgerUsecaseの新しいインスタンスを生成します。
func NewLedgerUsecase(h HoldingRepository, t TransactionRepository, s SettingsRepository,
	virtualExchange string, log zerolog.Logger) *LedgerUsecase {
	return &LedgerUsecase{
		holdings:        h,
		transactions:    t,
		settings:        s,
		virtualExchange: virtualExchange,
		log:             log.With().Str("service", "ledger").Logger(),
	}
}

// degrade は読み取り境界の縮退ポリシーを記録します。
func (u *LedgerUsecase) degrade(op string, err error) {
	u.log.Warn().Err(err).Str("op", op).Msg("persistence error degraded to empty result")
}

// AddHolding は検証済みの保有銘柄を追加します。
func (u *LedgerUsecase) AddHolding(ctx context.Context, h entity.Holding) (*entity.Holding, error) {
	if err := validateHolding(h); err != nil {
		return nil, err
	}
	h.ID = 0
	if err := u.holdings.Create(ctx, &h); err != nil {
		return nil, fmt.Errorf("create holding: %w", err)
	}
	return &h, nil
}

// UpdateHolding は既存の保有銘柄を上書きします。
func (u *LedgerUsecase) UpdateHolding(ctx context.Context, h entity.Holding) (*entity.Holding, error) {
	if h.ID == 0 {
		return nil, fmt.Errorf("%w: holding id is required", ErrValidation)
	}
	if err := validateHolding(h); err != nil {
		return nil, err
	}
	if _, err := u.holdings.FindByID(ctx, h.ID); err != nil {
		return nil, ErrHoldingNotFound
	}
	if err := u.holdings.Update(ctx, &h); err != nil {
		return nil, fmt.Errorf("update holding: %w", err)
	}
	return &h, nil
}

// DeleteHolding は保有銘柄を削除します。取引履歴は残ります。
func (u *LedgerUsecase) DeleteHolding(ctx context.Context, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: holding id is required", ErrValidation)
	}
	if _, err := u.holdings.FindByID(ctx, id); err != nil {
		return ErrHoldingNotFound
	}
	return u.holdings.Delete(ctx, id)
}

// ToggleVisibility は保有銘柄の表示フラグを反転します。
func (u *LedgerUsecase) ToggleVisibility(ctx context.Context, id uint) (*entity.Holding, error) {
	h, err := u.holdings.FindByID(ctx, id)
	if err != nil {
		return nil, ErrHoldingNotFound
	}
	h.Visible = !h.Visible
	if err := u.holdings.Update(ctx, h); err != nil {
		return nil, fmt.Errorf("update holding: %w", err)
	}
	return h, nil
}

// AddTransaction は検証済みの取引を台帳へ追記します。
func (u *LedgerUsecase) AddTransaction(ctx context.Context, tx entity.Transaction) (*entity.Transaction, error) {
	if err := validateTransaction(tx); err != nil {
		return nil, err
	}
	tx.ID = 0
	if err := u.transactions.Create(ctx, &tx); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return &tx, nil
}

// DeleteTransaction は取引を台帳から削除します（訂正は削除と再追記で行います）。
func (u *LedgerUsecase) DeleteTransaction(ctx context.Context, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: transaction id is required", ErrValidation)
	}
	if _, err := u.transactions.FindByID(ctx, id); err != nil {
		return ErrTransactionNotFound
	}
	return u.transactions.Delete(ctx, id)
}

// GetTransactions は全取引を新しい順に返します。読み取り失敗時は空スライスへ縮退します。
func (u *LedgerUsecase) GetTransactions(ctx context.Context) []entity.Transaction {
	txs, err := u.transactions.List(ctx)
	if err != nil {
		u.degrade("GetTransactions", err)
		return []entity.Transaction{}
	}
	return txs
}

// GetSetting は名前付き設定値を返します。読み取り失敗時は空文字へ縮退します。
func (u *LedgerUsecase) GetSetting(ctx context.Context, key string) string {
	v, err := u.settings.Get(ctx, key)
	if err != nil {
		u.degrade("GetSetting", err)
		return ""
	}
	return v
}

// SetSetting は名前付き設定値を上書きします。
func (u *LedgerUsecase) SetSetting(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: setting key is required", ErrValidation)
	}
	return u.settings.Set(ctx, key, value)
}

// CashAmount は設定された現金残高を返します。未設定・不正値は0へ縮退します。
func (u *LedgerUsecase) CashAmount(ctx context.Context) float64 {
	v := u.GetSetting(ctx, entity.SettingCashAmount)
	if v == "" {
		return 0
	}
	cash, err := strconv.ParseFloat(v, 64)
	if err != nil {
		u.log.Warn().Str("value", v).Msg("cash_amount setting is not a number, using 0")
		return 0
	}
	return cash
}

// validateHolding は保有銘柄の変更リクエストを検証します。
func validateHolding(h entity.Holding) error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("%w: holding name is required", ErrValidation)
	}
	if strings.TrimSpace(h.Code) == "" {
		return fmt.Errorf("%w: holding code is required", ErrValidation)
	}
	if h.TargetWeight != nil && (*h.TargetWeight < 0 || *h.TargetWeight > 100) {
		return fmt.Errorf("%w: target weight must be between 0 and 100", ErrValidation)
	}
	return nil
}

// validateTransaction は取引の追記リクエストを検証します。
func validateTransaction(tx entity.Transaction) error {
	if tx.Type != entity.TransactionBuy && tx.Type != entity.TransactionSell {
		return fmt.Errorf("%w: transaction type must be buy or sell", ErrValidation)
	}
	if strings.TrimSpace(tx.Code) == "" {
		return fmt.Errorf("%w: transaction code is required", ErrValidation)
	}
	if tx.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if tx.GrossValue < 0 {
		return fmt.Errorf("%w: gross value must not be negative", ErrValidation)
	}
	if tx.Fee < 0 {
		return fmt.Errorf("%w: fee must not be negative", ErrValidation)
	}
	if tx.Date.IsZero() {
		return fmt.Errorf("%w: transaction date is required", ErrValidation)
	}
	return nil
}
