// Package adapters はledgerフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"portfolio_backend/internal/feature/ledger/domain/entity"
	"portfolio_backend/internal/feature/ledger/usecase"

	"gorm.io/gorm"
)

type holdingSQLite struct {
	db *gorm.DB
}

var _ usecase.HoldingRepository = (*holdingSQLite)(nil)

// NewHoldingRepository は指定されたDB接続でholdingSQLiteリポジトリの新しいインスタンスを生成します。
func NewHoldingRepository(db *gorm.DB) *holdingSQLite {
	return &holdingSQLite{db: db}
}

// HoldingModel は保有銘柄の永続化モデルです。
type HoldingModel struct {
	ID           uint     `gorm:"primaryKey"`
	Name         string   `gorm:"size:128;not null"`
	Code         string   `gorm:"size:64;not null;uniqueIndex"`
	TargetWeight *float64 // 目標配分が未設定の場合はNULL
	Visible      bool     `gorm:"not null;default:true"`
}

func (HoldingModel) TableName() string {
	return "holdings"
}

func toHoldingModel(e entity.Holding) HoldingModel {
	return HoldingModel{
		ID:           e.ID,
		Name:         e.Name,
		Code:         e.Code,
		TargetWeight: e.TargetWeight,
		Visible:      e.Visible,
	}
}

func toHoldingEntity(m HoldingModel) entity.Holding {
	return entity.Holding{
		ID:           m.ID,
		Name:         m.Name,
		Code:         m.Code,
		TargetWeight: m.TargetWeight,
		Visible:      m.Visible,
	}
}

// List はすべての保有銘柄を名前順に返します。
func (r *holdingSQLite) List(ctx context.Context) ([]entity.Holding, error) {
	var rows []HoldingModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Holding, 0, len(rows))
	for _, m := range rows {
		out = append(out, toHoldingEntity(m))
	}
	return out, nil
}

// FindByID は指定されたIDの保有銘柄を返します。存在しない場合はエラーを返します。
func (r *holdingSQLite) FindByID(ctx context.Context, id uint) (*entity.Holding, error) {
	var m HoldingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	e := toHoldingEntity(m)
	return &e, nil
}

// Create は新しい保有銘柄を永続化し、採番されたIDをエンティティへ書き戻します。
func (r *holdingSQLite) Create(ctx context.Context, h *entity.Holding) error {
	m := toHoldingModel(*h)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	h.ID = m.ID
	return nil
}

// Update は保有銘柄の全カラムを上書きします。
// Visible=false やTargetWeight=NULL も確実に保存するためSaveを使います。
func (r *holdingSQLite) Update(ctx context.Context, h *entity.Holding) error {
	m := toHoldingModel(*h)
	return r.db.WithContext(ctx).Save(&m).Error
}

// Delete は保有銘柄を削除します。
func (r *holdingSQLite) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&HoldingModel{}, id).Error
}
