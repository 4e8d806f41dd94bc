// Package finnhub はFinnhub APIをQuoteProviderとして適合させます。
package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"portfolio_backend/internal/feature/quotes/adapters/finnhub/dto"
	"portfolio_backend/internal/feature/quotes/domain/entity"
	"portfolio_backend/internal/feature/quotes/usecase"
	"portfolio_backend/internal/shared/ratelimiter"
)

type FinnhubQuoteProvider struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

var _ usecase.QuoteProvider = (*FinnhubQuoteProvider)(nil)

// NewFinnhubQuoteProvider は指定された設定とHTTPクライアントでプロバイダーを生成します。
// limiterはnil可で、設定するとAPIの呼び出し頻度制限（無料プランは60回/分）を守ります。
func NewFinnhubQuoteProvider(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *FinnhubQuoteProvider {
	return &FinnhubQuoteProvider{cfg: cfg, client: client, limiter: limiter}
}

// FetchQuote はFinnhubからシンボル1件のリアルタイムクオートを取得します。
func (f *FinnhubQuoteProvider) FetchQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	if f.limiter != nil {
		f.limiter.WaitIfNeeded()
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("token", f.cfg.APIToken)

	u := fmt.Sprintf("%s/quote?%s", f.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("finnhub http %d", res.StatusCode)
	}

	var body dto.QuoteResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}

	// Finnhubは未知のシンボルでも200とゼロ値を返すため、現在値0はエラー扱いにする
	if body.Current == 0 && body.Timestamp == 0 {
		return nil, fmt.Errorf("finnhub: no quote for symbol %q", symbol)
	}

	return &entity.Quote{
		Symbol:        symbol,
		Current:       body.Current,
		High:          body.High,
		Low:           body.Low,
		Open:          body.Open,
		PreviousClose: body.PreviousClose,
		ChangeAbs:     body.ChangeAbs,
		ChangePct:     body.ChangePct,
		Timestamp:     time.Unix(body.Timestamp, 0).UTC(),
	}, nil
}
