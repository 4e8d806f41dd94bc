package exchangerate

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config はExchangeRate APIクライアントの設定です。
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// LoadConfig は環境変数（と.envファイル）からExchangeRate設定を読み込みます。
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env ファイルが見つかりませんでした")
	}

	baseURL := os.Getenv("EXCHANGERATE_BASE_URL")
	if baseURL == "" {
		baseURL = "https://open.er-api.com/v6"
	}

	return Config{
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	}
}
