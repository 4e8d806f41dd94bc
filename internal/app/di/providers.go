// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"portfolio_backend/internal/feature/fx/adapters/exchangerate"
	"portfolio_backend/internal/feature/quotes/adapters/finnhub"
	"portfolio_backend/internal/platform/cache"
	infrahttp "portfolio_backend/internal/platform/http"
	"portfolio_backend/internal/shared/ratelimiter"

	"github.com/redis/go-redis/v9"
)

// NewQuoteProvider creates a fully configured Finnhub provider with HTTP client
// and a rate limiter matching the free-tier quota.
func NewQuoteProvider() *finnhub.FinnhubQuoteProvider {
	cfg := finnhub.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	limiter := ratelimiter.NewRateLimiter(60, time.Minute)
	return finnhub.NewFinnhubQuoteProvider(cfg, httpClient, limiter)
}

// NewFxProvider creates a fully configured exchangerate-api client with HTTP client.
func NewFxProvider() *exchangerate.ExchangeRateClient {
	cfg := exchangerate.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return exchangerate.NewExchangeRateClient(cfg, httpClient)
}

// NewCacheStore creates the shared market-data cache store.
// If Redis is available, entries survive restarts; otherwise an in-process
// store is used.
func NewCacheStore(rdb *redis.Client) cache.Store {
	if rdb != nil {
		return cache.NewRedisStore(rdb, "portfolio")
	}
	return cache.NewMemoryStore()
}
