// Package usecase は為替レートのテーブル単位TTLキャッシュサービスを実装します。
package usecase

import (
	"context"
	"encoding/json"
	"time"

	"portfolio_backend/internal/platform/cache"

	"github.com/rs/zerolog"
)

const (
	// BaseCurrency はすべてのレートの基軸通貨です。
	BaseCurrency = "USD"

	// DefaultTTL は為替テーブルのキャッシュ有効期間です。
	DefaultTTL = time.Hour

	// cacheKey は為替テーブルの固定キャッシュキーです。通貨別には分割しません。
	cacheKey = "fx:rates"
)

// fallbackRates はキャッシュが一度も作られていない状態でプロバイダーが落ちた
// 場合の最終手段です。おおよその値で十分: 正確性より可用性を優先します。
var fallbackRates = map[string]float64{
	"USD": 1.0,
	"AUD": 1.52,
	"EUR": 0.92,
	"GBP": 0.79,
	"HKD": 7.80,
	"JPY": 148.0,
	"SGD": 1.35,
}

// FxProvider は外部為替レートプロバイダーを抽象化します。
type FxProvider interface {
	// FetchRates は基軸通貨に対する全通貨のレートテーブルを取得します。
	FetchRates(ctx context.Context) (map[string]float64, error)
}

// FxUsecase は為替プロバイダーをテーブル丸ごとのTTLキャッシュでラップします。
//
// 取得失敗時は優先順に (1) TTL内キャッシュ (2) 期限切れでも残っているキャッシュ
// (3) 固定フォールバックテーブル で縮退し、呼び出し元には決してエラーを返しません。
// この段階的縮退がこのコンポーネントの設計上の要点です。
type FxUsecase struct {
	provider FxProvider
	store    cache.Store
	ttl      time.Duration
	log      zerolog.Logger

	// now はテストで時刻を固定するために差し替え可能にしています。
	now func() time.Time
}

// NewFxUsecase はFxUsecaseの新しいインスタンスを生成します。
// ttlが0以下の場合はDefaultTTLを使います。
func NewFxUsecase(provider FxProvider, store cache.Store, ttl time.Duration, log zerolog.Logger) *FxUsecase {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &FxUsecase{
		provider: provider,
		store:    store,
		ttl:      ttl,
		log:      log.With().Str("service", "fx").Logger(),
		now:      time.Now,
	}
}

// GetLatestRates は要求された通貨集合のレートを基軸通貨(USD)に対して返します。
// 失敗はすべてキャッシュとフォールバックで吸収されるため、エラーは返しません。
func (u *FxUsecase) GetLatestRates(ctx context.Context, currencies []string) map[string]float64 {
	entry, err := u.store.Get(ctx, cacheKey)
	if err != nil {
		u.log.Warn().Err(err).Msg("fx cache read failed")
		entry = nil
	}

	// 第1段階: TTL内のキャッシュ
	if entry != nil && entry.Fresh(u.now(), u.ttl) {
		if table, ok := decodeTable(entry.Value); ok {
			return restrict(table, currencies)
		}
	}

	table, fetchErr := u.provider.FetchRates(ctx)
	if fetchErr == nil {
		if b, err := json.Marshal(table); err == nil {
			if err := u.store.Set(ctx, cacheKey, b, u.now()); err != nil {
				u.log.Warn().Err(err).Msg("failed to cache fx table")
			}
		}
		return restrict(table, currencies)
	}

	// 第2段階: 期限切れでも残っている直近のテーブル
	if entry != nil {
		if table, ok := decodeTable(entry.Value); ok {
			u.log.Warn().Err(fetchErr).
				Time("cached_at", entry.Timestamp).
				Msg("fx provider failed, serving stale table")
			return restrict(table, currencies)
		}
	}

	// 第3段階: 固定フォールバックテーブル
	u.log.Warn().Err(fetchErr).Msg("fx provider failed with empty cache, serving fallback table")
	return restrict(fallbackRates, currencies)
}

// Rate は1通貨分のレートを返します。テーブルに存在しない通貨は1.0を返します。
func (u *FxUsecase) Rate(ctx context.Context, currency string) float64 {
	rates := u.GetLatestRates(ctx, []string{currency})
	if r, ok := rates[currency]; ok {
		return r
	}
	return 1.0
}

// decodeTable はキャッシュ済みバイト列をレートテーブルへ復元します。
func decodeTable(b []byte) (map[string]float64, bool) {
	var table map[string]float64
	if err := json.Unmarshal(b, &table); err != nil || len(table) == 0 {
		return nil, false
	}
	return table, true
}

// restrict はテーブルを要求された通貨集合に絞り込みます。
func restrict(table map[string]float64, currencies []string) map[string]float64 {
	out := make(map[string]float64, len(currencies))
	for _, c := range currencies {
		if r, ok := table[c]; ok {
			out[c] = r
		}
	}
	return out
}
