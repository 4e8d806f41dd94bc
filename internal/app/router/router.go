package router

import (
	fxhandler "portfolio_backend/internal/feature/fx/transport/handler"
	ledgerhandler "portfolio_backend/internal/feature/ledger/transport/handler"
	portfoliohandler "portfolio_backend/internal/feature/portfolio/transport/handler"
	quoteshandler "portfolio_backend/internal/feature/quotes/transport/handler"
	"portfolio_backend/internal/platform/http/handler"

	"github.com/gin-gonic/gin"
)

func NewRouter(ledger *ledgerhandler.LedgerHandler, quotes *quoteshandler.QuotesHandler,
	fx *fxhandler.FxHandler, portfolio *portfoliohandler.PortfolioHandler) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", handler.Health)

	api := r.Group("/api")
	{
		// 台帳と派生ポジション
		api.GET("/holdings", ledger.GetHoldingsHandler)
		api.GET("/transactions", ledger.GetTransactionsHandler)
		api.GET("/closed-positions", ledger.GetClosedPositionsHandler)
		// 変更系は単一のアクションディスパッチャに集約
		api.POST("/action", ledger.ActionHandler)

		// 市場データ
		api.GET("/quotes", quotes.GetQuotesHandler)
		api.GET("/rates", fx.GetRatesHandler)

		// 評価とリバランス
		api.GET("/portfolio/quotes", quotes.GetPortfolioQuotesHandler)
		api.GET("/portfolio/summary", portfolio.GetSummaryHandler)
		api.GET("/rebalance", portfolio.GetRebalanceHandler)
	}

	return r
}
