package finnhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewFinnhubQuoteProvider(t *testing.T) {
	t.Parallel()

	cfg := Config{
		APIToken: "test-token",
		BaseURL:  "https://api.test.com",
		Timeout:  10 * time.Second,
	}
	provider := NewFinnhubQuoteProvider(cfg, &http.Client{}, nil)

	if provider == nil {
		t.Fatal("expected non-nil provider")
	}
	if provider.cfg.APIToken != cfg.APIToken {
		t.Errorf("expected API token %q, got %q", cfg.APIToken, provider.cfg.APIToken)
	}
}

func TestFinnhubQuoteProvider_FetchQuote_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request parameters
		if r.URL.Path != "/quote" {
			t.Errorf("expected path /quote, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("symbol") != "AAPL" {
			t.Errorf("expected symbol AAPL, got %s", r.URL.Query().Get("symbol"))
		}
		if r.URL.Query().Get("token") != "test-token" {
			t.Errorf("expected token test-token, got %s", r.URL.Query().Get("token"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"c": 190.5,
			"d": 2.5,
			"dp": 1.33,
			"h": 192.0,
			"l": 188.1,
			"o": 189.0,
			"pc": 188.0,
			"t": 1748779200
		}`))
	}))
	defer server.Close()

	cfg := Config{APIToken: "test-token", BaseURL: server.URL}
	provider := NewFinnhubQuoteProvider(cfg, server.Client(), nil)

	q, err := provider.FetchQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.Symbol != "AAPL" {
		t.Errorf("expected symbol AAPL, got %q", q.Symbol)
	}
	if q.Current != 190.5 {
		t.Errorf("expected current 190.5, got %f", q.Current)
	}
	if q.PreviousClose != 188.0 {
		t.Errorf("expected previous close 188.0, got %f", q.PreviousClose)
	}
	if q.ChangeAbs != 2.5 || q.ChangePct != 1.33 {
		t.Errorf("unexpected change fields: %f / %f", q.ChangeAbs, q.ChangePct)
	}
	expectedTime := time.Unix(1748779200, 0).UTC()
	if !q.Timestamp.Equal(expectedTime) {
		t.Errorf("expected timestamp %v, got %v", expectedTime, q.Timestamp)
	}
}

func TestFinnhubQuoteProvider_FetchQuote_HTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"unauthorized", http.StatusUnauthorized},
		{"rate limited", http.StatusTooManyRequests},
		{"internal server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			cfg := Config{APIToken: "test-token", BaseURL: server.URL}
			provider := NewFinnhubQuoteProvider(cfg, server.Client(), nil)

			if _, err := provider.FetchQuote(context.Background(), "AAPL"); err == nil {
				t.Fatal("expected error for HTTP status", tt.statusCode)
			}
		})
	}
}

// Finnhub returns 200 with all-zero fields for unknown symbols; that must be
// reported as an error rather than cached as a real quote.
func TestFinnhubQuoteProvider_FetchQuote_UnknownSymbol(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"c":0,"d":null,"dp":null,"h":0,"l":0,"o":0,"pc":0,"t":0}`))
	}))
	defer server.Close()

	cfg := Config{APIToken: "test-token", BaseURL: server.URL}
	provider := NewFinnhubQuoteProvider(cfg, server.Client(), nil)

	if _, err := provider.FetchQuote(context.Background(), "NOPE"); err == nil {
		t.Fatal("expected error for zero-value quote")
	}
}

func TestFinnhubQuoteProvider_FetchQuote_InvalidJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	cfg := Config{APIToken: "test-token", BaseURL: server.URL}
	provider := NewFinnhubQuoteProvider(cfg, server.Client(), nil)

	if _, err := provider.FetchQuote(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
