// Gatewayサービスのエントリポイント。
// /api/v1 配下のリクエストをBearerトークンで認証し、検証済みのIDをハンドラーに渡す。
package main

import (
	"log"

	"github.com/nao1215/authgate/internal/gateway"
)

func main() {
	cfg, err := gateway.LoadConfig()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	server, err := gateway.NewServer(cfg)
	if err != nil {
		log.Fatalf("Gatewayサーバーの初期化に失敗: %v", err)
	}
	defer server.Close()

	if cfg.EnableDevToken {
		log.Printf("開発用トークン発行エンドポイントが有効です: POST /auth/dev-token")
	}
	log.Printf("Gatewayサービスを起動します: :%s", cfg.Port)
	if err := server.Run(); err != nil {
		log.Fatalf("Gatewayサービスの起動に失敗: %v", err)
	}
}
