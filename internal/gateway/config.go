package gateway

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// ErrSecretKeyRequired はSECRET_KEYが設定されていない場合に返る。
var ErrSecretKeyRequired = errors.New("SECRET_KEYが設定されていません")

// Config はGatewayサービスの設定。起動時に環境変数から一度だけ読み込む。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string
	// SecretKey はトークン検証用の共有秘密鍵。
	SecretKey string
	// JWTAlgorithm は受け付ける署名アルゴリズム。
	JWTAlgorithm string
	// DatabasePath はSQLiteデータベースファイルのパス。
	DatabasePath string
	// FrontendURL はCORSで許可するオリジン。
	FrontendURL string
	// EnableDevToken は開発用トークン発行エンドポイントを有効にするかどうか。
	EnableDevToken bool
}

// LoadConfig は環境変数から設定を読み込む。
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:         getEnvOr("PORT", "8080"),
		SecretKey:    os.Getenv("SECRET_KEY"),
		JWTAlgorithm: getEnvOr("JWT_ALGORITHM", "HS256"),
		DatabasePath: getEnvOr("DATABASE_PATH", "/data/gateway.db"),
		FrontendURL:  getEnvOr("FRONTEND_URL", "http://localhost:3000"),
	}
	if cfg.SecretKey == "" {
		return Config{}, ErrSecretKeyRequired
	}

	if v := os.Getenv("ENABLE_DEV_TOKEN"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("ENABLE_DEV_TOKENの値が不正です: %q: %w", v, err)
		}
		cfg.EnableDevToken = enabled
	}

	return cfg, nil
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
