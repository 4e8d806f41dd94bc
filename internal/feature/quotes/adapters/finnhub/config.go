package finnhub

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config はFinnhub APIクライアントの設定です。
type Config struct {
	APIToken string
	BaseURL  string
	Timeout  time.Duration
}

// LoadConfig は環境変数（と.envファイル）からFinnhub設定を読み込みます。
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env ファイルが見つかりませんでした")
	}

	baseURL := os.Getenv("FINNHUB_BASE_URL")
	if baseURL == "" {
		baseURL = "https://finnhub.io/api/v1"
	}

	return Config{
		APIToken: os.Getenv("FINNHUB_API_TOKEN"),
		BaseURL:  baseURL,
		Timeout:  10 * time.Second,
	}
}
