package adapters

import (
	"context"
	"errors"

	"portfolio_backend/internal/feature/ledger/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingsSQLite struct {
	db *gorm.DB
}

var _ usecase.SettingsRepository = (*settingsSQLite)(nil)

// NewSettingsRepository は指定されたDB接続でsettingsSQLiteリポジトリの新しいインスタンスを生成します。
func NewSettingsRepository(db *gorm.DB) *settingsSQLite {
	return &settingsSQLite{db: db}
}

// SettingModel は名前付き設定値の永続化モデルです。
type SettingModel struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string `gorm:"not null"`
}

func (SettingModel) TableName() string {
	return "settings"
}

// Get は設定値を返します。行が存在しない場合は空文字を返し、エラーにはなりません。
func (r *settingsSQLite) Get(ctx context.Context, key string) (string, error) {
	var m SettingModel
	err := r.db.WithContext(ctx).First(&m, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return m.Value, nil
}

// Set は設定値をUPSERTで上書きします。
func (r *settingsSQLite) Set(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&SettingModel{Key: key, Value: value}).Error
}
