// Package usecase は株価クオートのTTLキャッシュサービスを実装します。
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	ledgerentity "portfolio_backend/internal/feature/ledger/domain/entity"
	"portfolio_backend/internal/feature/quotes/domain/entity"
	"portfolio_backend/internal/platform/cache"

	"github.com/rs/zerolog"
)

const (
	// DefaultTTL はクオートキャッシュのデフォルト有効期間です。
	DefaultTTL = 60 * time.Second

	// cachePrefix はキャッシュストア上のクオートの名前空間です。
	cachePrefix = "quotes:"
)

// QuoteProvider は外部クオートプロバイダーを抽象化します。
// Goの慣例に従い、インターフェースはコンシューマー（usecase）側で定義します。
type QuoteProvider interface {
	// FetchQuote は正規化済みシンボルのクオートを1件取得します。
	FetchQuote(ctx context.Context, symbol string) (*entity.Quote, error)
}

// QuoteResult はバッチ取得の1シンボル分の結果です。失敗は結果として保持され、
// 他のシンボルの取得を中断しません。
type QuoteResult struct {
	Symbol string
	Quote  *entity.Quote
	Err    error
}

// PortfolioQuote はポジションにクオートと評価値を付与したものです。
// Positionのフィールドは昇格して直接参照できます（pq.Codeなど）。
type PortfolioQuote struct {
	ledgerentity.Position
	Quote       *entity.Quote
	MarketValue float64 // Quantity * Current
	CostBasis   float64 // 台帳由来。なければ PreviousClose * Quantity で代用
	Gain        float64
	GainPercent float64
	Err         error
}

// CacheInfo はキャッシュの内容概要です。「最終更新」表示に使います。
type CacheInfo struct {
	Entries int
	Symbols []string
	Oldest  time.Time
	Newest  time.Time
}

// QuotesUsecase は外部プロバイダーをシンボル単位のTTLキャッシュでラップします。
//
// キャッシュの期限判定は読み取り時にのみ行い（遅延評価）、掃除処理はありません。
// 書き込みは最後の書き込みが勝つ上書きで、ロックはストア側に任せます。
// 同一シンボルへの同時ミスがそれぞれ外部呼び出しになるのは既知の許容制限です。
type QuotesUsecase struct {
	provider QuoteProvider
	store    cache.Store
	ttl      time.Duration
	log      zerolog.Logger

	// now はテストで時刻を固定するために差し替え可能にしています。
	now func() time.Time
}

// NewQuotesUsecase はQuotesUsecaseの新しいインスタンスを生成します。
// ttlが0以下の場合はDefaultTTLを使います。
func NewQuotesUsecase(provider QuoteProvider, store cache.Store, ttl time.Duration, log zerolog.Logger) *QuotesUsecase {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &QuotesUsecase{
		provider: provider,
		store:    store,
		ttl:      ttl,
		log:      log.With().Str("service", "quotes").Logger(),
		now:      time.Now,
	}
}

// NormalizeSymbol は取引所プレフィックスを取り除いたシンボルを返します
// （"NASDAQ:AAPL" → "AAPL"）。プレフィックスがなければそのまま返します。
func NormalizeSymbol(code string) string {
	if i := strings.IndexByte(code, ':'); i >= 0 {
		return code[i+1:]
	}
	return code
}

// Get はシンボルのクオートを返します。TTL内のキャッシュヒットは外部呼び出しなしで
// 返し、ミス・期限切れは1回だけ取得してキャッシュします。
// 取得失敗はそのままエラーとして伝播します（代替クオートは合成しません）。
func (u *QuotesUsecase) Get(ctx context.Context, symbol string) (*entity.Quote, error) {
	normalized := NormalizeSymbol(symbol)
	key := cachePrefix + normalized

	if entry, err := u.store.Get(ctx, key); err == nil && entry != nil && entry.Fresh(u.now(), u.ttl) {
		var q entity.Quote
		if err := json.Unmarshal(entry.Value, &q); err == nil {
			return &q, nil
		}
	}

	q, err := u.provider.FetchQuote(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("fetch quote %s: %w", normalized, err)
	}
	q.Symbol = normalized

	if b, err := json.Marshal(q); err == nil {
		// ベストエフォート: キャッシュ書き込みの失敗で取得結果は捨てない
		if err := u.store.Set(ctx, key, b, u.now()); err != nil {
			u.log.Warn().Err(err).Str("symbol", normalized).Msg("failed to cache quote")
		}
	}
	return q, nil
}

// GetMany は複数シンボルのクオートをシンボルごとに独立して並行取得します。
// 1シンボルの失敗は他のシンボルを中断せず、結果として保持されます。
func (u *QuotesUsecase) GetMany(ctx context.Context, symbols []string) []QuoteResult {
	results := make([]QuoteResult, len(symbols))

	var wg sync.WaitGroup
	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			q, err := u.Get(ctx, symbol)
			results[i] = QuoteResult{Symbol: NormalizeSymbol(symbol), Quote: q, Err: err}
		}(i, symbol)
	}
	wg.Wait()

	return results
}

// GetPortfolioQuotes は各ポジションにクオートと評価値を付与します。
// 銘柄単位の失敗は保持され、バッチ全体は中断しません。
func (u *QuotesUsecase) GetPortfolioQuotes(ctx context.Context, positions []ledgerentity.Position) []PortfolioQuote {
	out := make([]PortfolioQuote, len(positions))

	var wg sync.WaitGroup
	for i, p := range positions {
		wg.Add(1)
		go func(i int, p ledgerentity.Position) {
			defer wg.Done()
			out[i] = u.enrich(ctx, p)
		}(i, p)
	}
	wg.Wait()

	return out
}

// enrich は1ポジション分のクオート取得と評価値計算を行います。
func (u *QuotesUsecase) enrich(ctx context.Context, p ledgerentity.Position) PortfolioQuote {
	q, err := u.Get(ctx, p.Code)
	if err != nil {
		u.log.Warn().Err(err).Str("code", p.Code).Msg("quote unavailable for holding")
		return PortfolioQuote{Position: p, Err: err}
	}

	marketValue := p.Quantity * q.Current
	costBasis := p.CostBasis
	if costBasis == 0 {
		// 台帳に買い取引がない場合は前日終値ベースで代用する
		costBasis = q.PreviousClose * p.Quantity
	}

	gain := marketValue - costBasis
	gainPercent := 0.0
	if costBasis > 0 {
		gainPercent = gain / costBasis * 100
	}

	return PortfolioQuote{
		Position:    p,
		Quote:       q,
		MarketValue: marketValue,
		CostBasis:   costBasis,
		Gain:        gain,
		GainPercent: gainPercent,
	}
}

// ClearCache はクオートキャッシュを空にします。
func (u *QuotesUsecase) ClearCache(ctx context.Context) error {
	return u.store.Clear(ctx, cachePrefix)
}

// CacheInfo はキャッシュ中のエントリ数・シンボル一覧・最古/最新の書き込み時刻を返します。
func (u *QuotesUsecase) CacheInfo(ctx context.Context) (CacheInfo, error) {
	entries, err := u.store.Keys(ctx, cachePrefix)
	if err != nil {
		return CacheInfo{}, err
	}

	info := CacheInfo{Entries: len(entries), Symbols: make([]string, 0, len(entries))}
	for _, e := range entries {
		info.Symbols = append(info.Symbols, strings.TrimPrefix(e.Key, cachePrefix))
		if info.Oldest.IsZero() || e.Timestamp.Before(info.Oldest) {
			info.Oldest = e.Timestamp
		}
		if e.Timestamp.After(info.Newest) {
			info.Newest = e.Timestamp
		}
	}
	return info, nil
}
