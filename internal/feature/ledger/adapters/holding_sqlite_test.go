package adapters

import (
	"context"
	"testing"

	"portfolio_backend/internal/feature/ledger/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを準備します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&HoldingModel{}, &TransactionModel{}, &SettingModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// seedHolding はテスト用の保有銘柄をデータベースに作成します。
func seedHolding(t *testing.T, db *gorm.DB, name, code string, visible bool) *entity.Holding {
	t.Helper()

	repo := NewHoldingRepository(db)
	h := &entity.Holding{Name: name, Code: code, Visible: visible}
	require.NoError(t, repo.Create(context.Background(), h), "failed to seed holding")
	return h
}

// TestHoldingSQLite_CreateAndFind は作成した保有銘柄がIDで取得できることを検証します。
func TestHoldingSQLite_CreateAndFind(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewHoldingRepository(db)

	weight := 25.0
	h := &entity.Holding{Name: "DBS Group", Code: "SGX:D05", TargetWeight: &weight, Visible: true}
	require.NoError(t, repo.Create(context.Background(), h))
	assert.NotZero(t, h.ID, "Create should backfill the new id")

	got, err := repo.FindByID(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Equal(t, "DBS Group", got.Name)
	assert.Equal(t, "SGX:D05", got.Code)
	require.NotNil(t, got.TargetWeight)
	assert.Equal(t, 25.0, *got.TargetWeight)
	assert.True(t, got.Visible)
}

// TestHoldingSQLite_List は名前順の一覧を検証します。
func TestHoldingSQLite_List(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewHoldingRepository(db)

	seedHolding(t, db, "OCBC", "SGX:O39", true)
	seedHolding(t, db, "Apple", "NASDAQ:AAPL", true)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Apple", got[0].Name)
	assert.Equal(t, "OCBC", got[1].Name)
}

// TestHoldingSQLite_Update は全カラム上書きを検証します。
// Visible=false とTargetWeight=NULL への戻しが確実に保存されることが重要です。
func TestHoldingSQLite_Update(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewHoldingRepository(db)

	weight := 30.0
	h := &entity.Holding{Name: "DBS Group", Code: "SGX:D05", TargetWeight: &weight, Visible: true}
	require.NoError(t, repo.Create(context.Background(), h))

	h.Name = "DBS"
	h.TargetWeight = nil
	h.Visible = false
	require.NoError(t, repo.Update(context.Background(), h))

	got, err := repo.FindByID(context.Background(), h.ID)
	require.NoError(t, err)
	assert.Equal(t, "DBS", got.Name)
	assert.Nil(t, got.TargetWeight, "cleared target weight should persist as NULL")
	assert.False(t, got.Visible, "visible=false should persist")
}

// TestHoldingSQLite_Delete は削除後にFindByIDが失敗することを検証します。
func TestHoldingSQLite_Delete(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewHoldingRepository(db)

	h := seedHolding(t, db, "DBS Group", "SGX:D05", true)
	require.NoError(t, repo.Delete(context.Background(), h.ID))

	_, err := repo.FindByID(context.Background(), h.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// TestHoldingSQLite_UniqueCode はコードの一意制約を検証します。
func TestHoldingSQLite_UniqueCode(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewHoldingRepository(db)

	seedHolding(t, db, "DBS Group", "SGX:D05", true)

	err := repo.Create(context.Background(), &entity.Holding{Name: "Duplicate", Code: "SGX:D05", Visible: true})
	assert.Error(t, err, "duplicate code should be rejected")
}
