// Package exchangerate はexchangerate-api.comをFxProviderとして適合させます。
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	fxusecase "portfolio_backend/internal/feature/fx/usecase"
)

type ExchangeRateClient struct {
	cfg    Config
	client *http.Client
}

var _ fxusecase.FxProvider = (*ExchangeRateClient)(nil)

// NewExchangeRateClient は指定された設定とHTTPクライアントでクライアントを生成します。
func NewExchangeRateClient(cfg Config, client *http.Client) *ExchangeRateClient {
	return &ExchangeRateClient{cfg: cfg, client: client}
}

// ratesResponse は /latest エンドポイントのレスポンスDTOです。
type ratesResponse struct {
	Result string             `json:"result"`
	Base   string             `json:"base_code"`
	Rates  map[string]float64 `json:"rates"`
}

// FetchRates は基軸通貨に対する全通貨のレートテーブルを取得します。
func (c *ExchangeRateClient) FetchRates(ctx context.Context) (map[string]float64, error) {
	u := fmt.Sprintf("%s/latest/%s", c.cfg.BaseURL, fxusecase.BaseCurrency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("exchangerate http %d", res.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Result != "success" {
		return nil, fmt.Errorf("exchangerate: result %q", body.Result)
	}
	if len(body.Rates) == 0 {
		return nil, fmt.Errorf("exchangerate: empty rate table")
	}

	return body.Rates, nil
}
