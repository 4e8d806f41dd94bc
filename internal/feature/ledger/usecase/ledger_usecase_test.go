package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio_backend/internal/feature/ledger/domain/entity"
	"portfolio_backend/internal/feature/ledger/usecase"

	"github.com/rs/zerolog"
)

// ErrDB はモックと期待値の間で共有されるセンチネルエラーです。
var ErrDB = errors.New("database error")

// mockHoldingRepository はHoldingRepositoryインターフェースのモック実装です。
type mockHoldingRepository struct {
	ListFunc     func(ctx context.Context) ([]entity.Holding, error)
	FindByIDFunc func(ctx context.Context, id uint) (*entity.Holding, error)
	CreateFunc   func(ctx context.Context, h *entity.Holding) error
	UpdateFunc   func(ctx context.Context, h *entity.Holding) error
	DeleteFunc   func(ctx context.Context, id uint) error
}

func (m *mockHoldingRepository) List(ctx context.Context) ([]entity.Holding, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []entity.Holding{}, nil
}

func (m *mockHoldingRepository) FindByID(ctx context.Context, id uint) (*entity.Holding, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, errors.New("FindByIDFunc is not implemented")
}

func (m *mockHoldingRepository) Create(ctx context.Context, h *entity.Holding) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, h)
	}
	return errors.New("CreateFunc is not implemented")
}

func (m *mockHoldingRepository) Update(ctx context.Context, h *entity.Holding) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, h)
	}
	return errors.New("UpdateFunc is not implemented")
}

func (m *mockHoldingRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return errors.New("DeleteFunc is not implemented")
}

// mockTransactionRepository はTransactionRepositoryインターフェースのモック実装です。
type mockTransactionRepository struct {
	ListFunc          func(ctx context.Context) ([]entity.Transaction, error)
	ListByCodeFunc    func(ctx context.Context, code string) ([]entity.Transaction, error)
	DistinctCodesFunc func(ctx context.Context) ([]string, error)
	FindByIDFunc      func(ctx context.Context, id uint) (*entity.Transaction, error)
	CreateFunc        func(ctx context.Context, tx *entity.Transaction) error
	DeleteFunc        func(ctx context.Context, id uint) error
}

func (m *mockTransactionRepository) FindByID(ctx context.Context, id uint) (*entity.Transaction, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, errors.New("FindByIDFunc is not implemented")
}

func (m *mockTransactionRepository) List(ctx context.Context) ([]entity.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []entity.Transaction{}, nil
}

func (m *mockTransactionRepository) ListByCode(ctx context.Context, code string) ([]entity.Transaction, error) {
	if m.ListByCodeFunc != nil {
		return m.ListByCodeFunc(ctx, code)
	}
	return []entity.Transaction{}, nil
}

func (m *mockTransactionRepository) DistinctCodes(ctx context.Context) ([]string, error) {
	if m.DistinctCodesFunc != nil {
		return m.DistinctCodesFunc(ctx)
	}
	return []string{}, nil
}

func (m *mockTransactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx)
	}
	return errors.New("CreateFunc is not implemented")
}

func (m *mockTransactionRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return errors.New("DeleteFunc is not implemented")
}

// mockSettingsRepository はSettingsRepositoryインターフェースのモック実装です。
type mockSettingsRepository struct {
	GetFunc func(ctx context.Context, key string) (string, error)
	SetFunc func(ctx context.Context, key, value string) error
}

func (m *mockSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return "", nil
}

func (m *mockSettingsRepository) Set(ctx context.Context, key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}
	return errors.New("SetFunc is not implemented")
}

// newTestLedger は全リポジトリをモックで差し替えたLedgerUsecaseを構築します。
func newTestLedger(h *mockHoldingRepository, tr *mockTransactionRepository, s *mockSettingsRepository) *usecase.LedgerUsecase {
	if h == nil {
		h = &mockHoldingRepository{}
	}
	if tr == nil {
		tr = &mockTransactionRepository{}
	}
	if s == nil {
		s = &mockSettingsRepository{}
	}
	return usecase.NewLedgerUsecase(h, tr, s, "SGX", zerolog.Nop())
}

func floatPtr(f float64) *float64 { return &f }

// TestLedgerUsecase_AddHolding_Validation は保有銘柄追加時の検証ルールをテストします。
func TestLedgerUsecase_AddHolding_Validation(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name      string
		input     entity.Holding
		expectErr bool
	}{
		{
			name:      "success: valid holding",
			input:     entity.Holding{Name: "Apple", Code: "NASDAQ:AAPL", Visible: true},
			expectErr: false,
		},
		{
			name:      "success: target weight at bounds",
			input:     entity.Holding{Name: "Apple", Code: "NASDAQ:AAPL", TargetWeight: floatPtr(100)},
			expectErr: false,
		},
		{
			name:      "error: empty name",
			input:     entity.Holding{Name: "  ", Code: "NASDAQ:AAPL"},
			expectErr: true,
		},
		{
			name:      "error: empty code",
			input:     entity.Holding{Name: "Apple", Code: ""},
			expectErr: true,
		},
		{
			name:      "error: negative target weight",
			input:     entity.Holding{Name: "Apple", Code: "NASDAQ:AAPL", TargetWeight: floatPtr(-1)},
			expectErr: true,
		},
		{
			name:      "error: target weight above 100",
			input:     entity.Holding{Name: "Apple", Code: "NASDAQ:AAPL", TargetWeight: floatPtr(100.5)},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			created := 0
			repo := &mockHoldingRepository{
				CreateFunc: func(ctx context.Context, h *entity.Holding) error {
					created++
					h.ID = 1
					return nil
				},
			}
			uc := newTestLedger(repo, nil, nil)

			got, err := uc.AddHolding(ctx, tc.input)

			if tc.expectErr {
				if !errors.Is(err, usecase.ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				if created != 0 {
					t.Errorf("Create was called %d times for invalid input", created)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID == 0 {
				t.Error("expected created holding to carry the new id")
			}
		})
	}
}

// TestLedgerUsecase_UpdateHolding_NotFound は存在しないIDの更新が404系エラーになることをテストします。
func TestLedgerUsecase_UpdateHolding_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mockHoldingRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.Holding, error) {
			return nil, ErrDB
		},
	}
	uc := newTestLedger(repo, nil, nil)

	_, err := uc.UpdateHolding(ctx, entity.Holding{ID: 42, Name: "Apple", Code: "NASDAQ:AAPL"})
	if !errors.Is(err, usecase.ErrHoldingNotFound) {
		t.Fatalf("expected ErrHoldingNotFound, got %v", err)
	}
}

// TestLedgerUsecase_UpdateHolding_RequiresID はID未指定の更新が検証エラーになることをテストします。
func TestLedgerUsecase_UpdateHolding_RequiresID(t *testing.T) {
	ctx := context.Background()
	uc := newTestLedger(nil, nil, nil)

	_, err := uc.UpdateHolding(ctx, entity.Holding{Name: "Apple", Code: "NASDAQ:AAPL"})
	if !errors.Is(err, usecase.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// TestLedgerUsecase_ToggleVisibility は表示フラグの反転と保存をテストします。
func TestLedgerUsecase_ToggleVisibility(t *testing.T) {
	ctx := context.Background()
	var saved *entity.Holding
	repo := &mockHoldingRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.Holding, error) {
			return &entity.Holding{ID: id, Name: "Apple", Code: "NASDAQ:AAPL", Visible: true}, nil
		},
		UpdateFunc: func(ctx context.Context, h *entity.Holding) error {
			saved = h
			return nil
		},
	}
	uc := newTestLedger(repo, nil, nil)

	got, err := uc.ToggleVisibility(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Visible {
		t.Error("expected visibility to flip to false")
	}
	if saved == nil || saved.Visible {
		t.Error("expected flipped holding to be persisted")
	}
}

// TestLedgerUsecase_AddTransaction_Validation は取引追記時の検証ルールをテストします。
func TestLedgerUsecase_AddTransaction_Validation(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		input     entity.Transaction
		expectErr bool
	}{
		{
			name:      "success: valid buy",
			input:     entity.Transaction{Code: "SGX:D05", Type: entity.TransactionBuy, Date: date, Quantity: 100, GrossValue: 3500, Fee: 10},
			expectErr: false,
		},
		{
			name:      "success: valid sell with zero fee",
			input:     entity.Transaction{Code: "SGX:D05", Type: entity.TransactionSell, Date: date, Quantity: 50, GrossValue: 1800},
			expectErr: false,
		},
		{
			name:      "error: unknown type",
			input:     entity.Transaction{Code: "SGX:D05", Type: "transfer", Date: date, Quantity: 1, GrossValue: 1},
			expectErr: true,
		},
		{
			name:      "error: empty code",
			input:     entity.Transaction{Code: " ", Type: entity.TransactionBuy, Date: date, Quantity: 1, GrossValue: 1},
			expectErr: true,
		},
		{
			name:      "error: zero quantity",
			input:     entity.Transaction{Code: "SGX:D05", Type: entity.TransactionBuy, Date: date, Quantity: 0, GrossValue: 1},
			expectErr: true,
		},
		{
			name:      "error: negative gross value",
			input:     entity.Transaction{Code: "SGX:D05", Type: entity.TransactionBuy, Date: date, Quantity: 1, GrossValue: -1},
			expectErr: true,
		},
		{
			name:      "error: negative fee",
			input:     entity.Transaction{Code: "SGX:D05", Type: entity.TransactionBuy, Date: date, Quantity: 1, GrossValue: 1, Fee: -0.5},
			expectErr: true,
		},
		{
			name:      "error: zero date",
			input:     entity.Transaction{Code: "SGX:D05", Type: entity.TransactionBuy, Quantity: 1, GrossValue: 1},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockTransactionRepository{
				CreateFunc: func(ctx context.Context, tx *entity.Transaction) error {
					tx.ID = 1
					return nil
				},
			}
			uc := newTestLedger(nil, repo, nil)

			got, err := uc.AddTransaction(ctx, tc.input)

			if tc.expectErr {
				if !errors.Is(err, usecase.ErrValidation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID == 0 {
				t.Error("expected created transaction to carry the new id")
			}
		})
	}
}

// TestLedgerUsecase_GetTransactions_Degrades は読み取り失敗が空スライスへ縮退することをテストします。
func TestLedgerUsecase_GetTransactions_Degrades(t *testing.T) {
	ctx := context.Background()
	repo := &mockTransactionRepository{
		ListFunc: func(ctx context.Context) ([]entity.Transaction, error) {
			return nil, ErrDB
		},
	}
	uc := newTestLedger(nil, repo, nil)

	got := uc.GetTransactions(ctx)
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Errorf("expected empty slice, got %d transactions", len(got))
	}
}

// TestLedgerUsecase_CashAmount は現金残高設定の解釈をテストします。
func TestLedgerUsecase_CashAmount(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		value    string
		getErr   error
		expected float64
	}{
		{name: "success: numeric value", value: "12500.75", expected: 12500.75},
		{name: "degrade: unset", value: "", expected: 0},
		{name: "degrade: not a number", value: "lots", expected: 0},
		{name: "degrade: repository error", getErr: ErrDB, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockSettingsRepository{
				GetFunc: func(ctx context.Context, key string) (string, error) {
					if key != entity.SettingCashAmount {
						t.Errorf("Get called with unexpected key %q", key)
					}
					return tc.value, tc.getErr
				},
			}
			uc := newTestLedger(nil, nil, repo)

			if got := uc.CashAmount(ctx); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

// TestLedgerUsecase_SetSetting_RequiresKey は空キーの設定書き込みが拒否されることをテストします。
func TestLedgerUsecase_SetSetting_RequiresKey(t *testing.T) {
	ctx := context.Background()
	uc := newTestLedger(nil, nil, nil)

	if err := uc.SetSetting(ctx, "  ", "v"); !errors.Is(err, usecase.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// TestLedgerUsecase_DeleteTransaction_NotFound は存在しない取引の削除が
// ErrTransactionNotFoundになることをテストします。
func TestLedgerUsecase_DeleteTransaction_NotFound(t *testing.T) {
	ctx := context.Background()

	txRepo := &mockTransactionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.Transaction, error) {
			return nil, errors.New("record not found")
		},
	}
	uc := newTestLedger(nil, txRepo, nil)

	if err := uc.DeleteTransaction(ctx, 99); !errors.Is(err, usecase.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

// TestLedgerUsecase_DeleteTransaction は既存取引の削除をテストします。
func TestLedgerUsecase_DeleteTransaction(t *testing.T) {
	ctx := context.Background()

	deleted := uint(0)
	txRepo := &mockTransactionRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.Transaction, error) {
			return &entity.Transaction{ID: id, Code: "SGX:D05"}, nil
		},
		DeleteFunc: func(ctx context.Context, id uint) error {
			deleted = id
			return nil
		},
	}
	uc := newTestLedger(nil, txRepo, nil)

	if err := uc.DeleteTransaction(ctx, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 7 {
		t.Errorf("expected transaction 7 deleted, got %d", deleted)
	}
}
