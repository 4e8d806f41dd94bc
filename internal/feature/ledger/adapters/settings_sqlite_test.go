package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSettingsSQLite_GetMissing は未設定キーが空文字とnilエラーになることを検証します。
func TestSettingsSQLite_GetMissing(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSettingsRepository(db)

	got, err := repo.Get(context.Background(), "cash_amount")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

// TestSettingsSQLite_SetAndGet は設定値の書き込みと読み出しを検証します。
func TestSettingsSQLite_SetAndGet(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSettingsRepository(db)

	require.NoError(t, repo.Set(context.Background(), "portfolio_name", "Retirement"))

	got, err := repo.Get(context.Background(), "portfolio_name")
	require.NoError(t, err)
	assert.Equal(t, "Retirement", got)
}

// TestSettingsSQLite_Upsert は同一キーへの再書き込みが上書きになることを検証します。
func TestSettingsSQLite_Upsert(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSettingsRepository(db)

	require.NoError(t, repo.Set(context.Background(), "cash_amount", "1000"))
	require.NoError(t, repo.Set(context.Background(), "cash_amount", "2500.50"))

	got, err := repo.Get(context.Background(), "cash_amount")
	require.NoError(t, err)
	assert.Equal(t, "2500.50", got)
}
