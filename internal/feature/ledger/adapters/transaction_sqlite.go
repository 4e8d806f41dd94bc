package adapters

import (
	"context"
	"time"

	"portfolio_backend/internal/feature/ledger/domain/entity"
	"portfolio_backend/internal/feature/ledger/usecase"

	"gorm.io/gorm"
)

type transactionSQLite struct {
	db *gorm.DB
}

var _ usecase.TransactionRepository = (*transactionSQLite)(nil)

// NewTransactionRepository は指定されたDB接続でtransactionSQLiteリポジトリの新しいインスタンスを生成します。
func NewTransactionRepository(db *gorm.DB) *transactionSQLite {
	return &transactionSQLite{db: db}
}

// TransactionModel は取引台帳行の永続化モデルです。追記と削除のみを想定しています。
type TransactionModel struct {
	ID         uint      `gorm:"primaryKey"`
	Code       string    `gorm:"size:64;not null;index"`
	Type       string    `gorm:"size:8;not null"`
	Date       time.Time `gorm:"not null"`
	Quantity   float64   `gorm:"not null"`
	GrossValue float64   `gorm:"not null"`
	Fee        float64   `gorm:"not null;default:0"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

func toTransactionModel(e entity.Transaction) TransactionModel {
	return TransactionModel{
		ID:         e.ID,
		Code:       e.Code,
		Type:       string(e.Type),
		Date:       e.Date,
		Quantity:   e.Quantity,
		GrossValue: e.GrossValue,
		Fee:        e.Fee,
	}
}

func toTransactionEntity(m TransactionModel) entity.Transaction {
	return entity.Transaction{
		ID:         m.ID,
		Code:       m.Code,
		Type:       entity.TransactionType(m.Type),
		Date:       m.Date,
		Quantity:   m.Quantity,
		GrossValue: m.GrossValue,
		Fee:        m.Fee,
	}
}

// List はすべての取引を日付の新しい順に返します。
func (r *transactionSQLite) List(ctx context.Context) ([]entity.Transaction, error) {
	var rows []TransactionModel
	if err := r.db.WithContext(ctx).Order("date DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toTransactionEntities(rows), nil
}

// ListByCode は指定コードの取引を日付の新しい順に返します。
func (r *transactionSQLite) ListByCode(ctx context.Context, code string) ([]entity.Transaction, error) {
	var rows []TransactionModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		Order("date DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toTransactionEntities(rows), nil
}

// DistinctCodes は取引が存在するコードの一覧を返します。
func (r *transactionSQLite) DistinctCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&TransactionModel{}).
		Distinct("code").
		Order("code ASC").
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// FindByID は指定されたIDの取引を返します。存在しない場合はエラーを返します。
func (r *transactionSQLite) FindByID(ctx context.Context, id uint) (*entity.Transaction, error) {
	var m TransactionModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	e := toTransactionEntity(m)
	return &e, nil
}

// Create は取引を台帳へ追記し、採番されたIDをエンティティへ書き戻します。
func (r *transactionSQLite) Create(ctx context.Context, tx *entity.Transaction) error {
	m := toTransactionModel(*tx)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	tx.ID = m.ID
	return nil
}

// Delete は取引を台帳から削除します。
func (r *transactionSQLite) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&TransactionModel{}, id).Error
}

func toTransactionEntities(rows []TransactionModel) []entity.Transaction {
	out := make([]entity.Transaction, 0, len(rows))
	for _, m := range rows {
		out = append(out, toTransactionEntity(m))
	}
	return out
}
