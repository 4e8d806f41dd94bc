// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

// Health は死活監視用の /healthz エンドポイントを処理します。
// ロードバランサや監視ツールがキャッシュされた結果を見ないよう、
// レスポンスには no-store を付与します。
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "portfolio-backend",
			"uptime":  time.Since(startedAt).Round(time.Second).String(),
		})
	}
}
