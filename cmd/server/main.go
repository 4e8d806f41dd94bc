package main

import (
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"portfolio_backend/internal/app/di"
	"portfolio_backend/internal/app/router"
	fxhandler "portfolio_backend/internal/feature/fx/transport/handler"
	fxusecase "portfolio_backend/internal/feature/fx/usecase"
	ledgeradapters "portfolio_backend/internal/feature/ledger/adapters"
	ledgerhandler "portfolio_backend/internal/feature/ledger/transport/handler"
	ledgerusecase "portfolio_backend/internal/feature/ledger/usecase"
	portfoliohandler "portfolio_backend/internal/feature/portfolio/transport/handler"
	portfoliousecase "portfolio_backend/internal/feature/portfolio/usecase"
	quoteshandler "portfolio_backend/internal/feature/quotes/transport/handler"
	quotesusecase "portfolio_backend/internal/feature/quotes/usecase"
	infradb "portfolio_backend/internal/platform/db"
	infraredis "portfolio_backend/internal/platform/redis"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// db
	db := infradb.OpenDB()

	// Redis（任意。無ければインプロセスキャッシュで動作する）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(logger); err != nil {
		logger.Warn().Msg("Redis unavailable. Running with in-process cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Error().Err(err).Msg("Failed to close Redis client")
			}
		}()
	}
	store := di.NewCacheStore(rdb)

	// Repository
	holdingRepo := ledgeradapters.NewHoldingRepository(db)
	transactionRepo := ledgeradapters.NewTransactionRepository(db)
	settingsRepo := ledgeradapters.NewSettingsRepository(db)

	// Usecase
	ledgerUC := ledgerusecase.NewLedgerUsecase(holdingRepo, transactionRepo, settingsRepo,
		os.Getenv("VIRTUAL_PORTFOLIO_EXCHANGE"), logger)
	quotesUC := quotesusecase.NewQuotesUsecase(di.NewQuoteProvider(), store,
		quoteTTL(logger), logger)
	fxUC := fxusecase.NewFxUsecase(di.NewFxProvider(), store, 0, logger)
	portfolioUC := portfoliousecase.NewPortfolioUsecase(ledgerUC, quotesUC, fxUC,
		os.Getenv("DISPLAY_CURRENCY"), logger)

	// Handler
	ledgerH := ledgerhandler.NewLedgerHandler(ledgerUC)
	quotesH := quoteshandler.NewQuotesHandler(quotesUC, ledgerUC)
	fxH := fxhandler.NewFxHandler(fxUC)
	portfolioH := portfoliohandler.NewPortfolioHandler(portfolioUC)

	// ルータ生成
	r := router.NewRouter(ledgerH, quotesH, fxH, portfolioH)

	if os.Getenv("FINNHUB_API_TOKEN") == "" {
		logger.Warn().Msg("FINNHUB_API_TOKEN is not set. Quote fetches will fail.")
	}

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

// quoteTTL は QUOTE_CACHE_TTL（Goのduration表記、例 "60s"）を解釈します。
// 未設定・不正値はユースケース側のデフォルトに任せます。
func quoteTTL(logger zerolog.Logger) time.Duration {
	raw := os.Getenv("QUOTE_CACHE_TTL")
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		logger.Warn().Str("value", raw).Msg("invalid QUOTE_CACHE_TTL, using default")
		return 0
	}
	return d
}
