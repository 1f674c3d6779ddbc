package gateway

import (
	"errors"
	"testing"
)

// TestLoadConfig は環境変数からの設定読み込みを検証する。
// t.Setenvを使うため並列実行しない。
func TestLoadConfig(t *testing.T) {
	t.Run("未設定の項目にデフォルト値が使われること", func(t *testing.T) {
		t.Setenv("SECRET_KEY", "secret")
		t.Setenv("PORT", "")
		t.Setenv("JWT_ALGORITHM", "")
		t.Setenv("DATABASE_PATH", "")
		t.Setenv("FRONTEND_URL", "")
		t.Setenv("ENABLE_DEV_TOKEN", "")

		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig()でエラーが発生: %v", err)
		}
		want := Config{
			Port:         "8080",
			SecretKey:    "secret",
			JWTAlgorithm: "HS256",
			DatabasePath: "/data/gateway.db",
			FrontendURL:  "http://localhost:3000",
		}
		if cfg != want {
			t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
		}
	})

	t.Run("環境変数の値が反映されること", func(t *testing.T) {
		t.Setenv("SECRET_KEY", "secret")
		t.Setenv("PORT", "9090")
		t.Setenv("JWT_ALGORITHM", "HS512")
		t.Setenv("DATABASE_PATH", "/tmp/test.db")
		t.Setenv("FRONTEND_URL", "https://example.com")
		t.Setenv("ENABLE_DEV_TOKEN", "true")

		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig()でエラーが発生: %v", err)
		}
		want := Config{
			Port:           "9090",
			SecretKey:      "secret",
			JWTAlgorithm:   "HS512",
			DatabasePath:   "/tmp/test.db",
			FrontendURL:    "https://example.com",
			EnableDevToken: true,
		}
		if cfg != want {
			t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
		}
	})

	t.Run("SECRET_KEYが無い場合エラーになること", func(t *testing.T) {
		t.Setenv("SECRET_KEY", "")

		_, err := LoadConfig()
		if !errors.Is(err, ErrSecretKeyRequired) {
			t.Errorf("err = %v, want %v", err, ErrSecretKeyRequired)
		}
	})

	t.Run("ENABLE_DEV_TOKENが真偽値でない場合エラーになること", func(t *testing.T) {
		t.Setenv("SECRET_KEY", "secret")
		t.Setenv("ENABLE_DEV_TOKEN", "maybe")

		if _, err := LoadConfig(); err == nil {
			t.Error("LoadConfig()がエラーを返さなかった")
		}
	})
}
