package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は外部マーケットデータAPI（クオート・為替）呼び出し用の
// HTTPクライアントを作成します。
//
// http.DefaultClientにはタイムアウトがないため、外部呼び出しには常にこの
// クライアントを使用すること。接続タイムアウトとアイドル接続の上限を明示的に
// 設定し、プロバイダー障害時にゴルーチンが無期限に滞留しないようにします。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
