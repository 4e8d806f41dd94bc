// Package db はアプリケーションのデータベース接続を初期化します。
package db

import (
	"log"
	"os"

	ledgeradapters "portfolio_backend/internal/feature/ledger/adapters"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DefaultPath は LEDGER_DB_PATH が未設定の場合に使うSQLiteファイルです。
const DefaultPath = "portfolio.db"

// Path は環境変数から台帳データベースのパスを解決します。
func Path() string {
	if p := os.Getenv("LEDGER_DB_PATH"); p != "" {
		return p
	}
	return DefaultPath
}

// Migrate は台帳のテーブル（Holding, Transaction, Setting）を作成・更新します。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ledgeradapters.HoldingModel{},
		&ledgeradapters.TransactionModel{},
		&ledgeradapters.SettingModel{},
	)
}

// OpenDB はSQLiteの台帳データベースを開き、マイグレーションを実行します。
func OpenDB() *gorm.DB {
	path := Path()

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open ledger database %s: %v", path, err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
