package db

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestPath_Default はLEDGER_DB_PATH未設定時にデフォルトのファイル名が返ることを検証します。
func TestPath_Default(t *testing.T) {
	t.Setenv("LEDGER_DB_PATH", "")

	if got := Path(); got != DefaultPath {
		t.Errorf("expected default path %q, got %q", DefaultPath, got)
	}
}

// TestPath_FromEnv は環境変数からデータベースパスが読み込まれることを検証します。
func TestPath_FromEnv(t *testing.T) {
	t.Setenv("LEDGER_DB_PATH", "/tmp/test-ledger.db")

	if got := Path(); got != "/tmp/test-ledger.db" {
		t.Errorf("expected path from env, got %q", got)
	}
}

// TestMigrate は台帳のテーブル一式が作成されることを検証します。
func TestMigrate(t *testing.T) {
	t.Parallel()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	if err := Migrate(gdb); err != nil {
		t.Fatalf("unexpected migration error: %v", err)
	}

	for _, table := range []string{"holdings", "transactions", "settings"} {
		if !gdb.Migrator().HasTable(table) {
			t.Errorf("expected table %q to exist", table)
		}
	}

	// 再実行しても冪等
	if err := Migrate(gdb); err != nil {
		t.Errorf("expected migration to be idempotent, got %v", err)
	}
}
