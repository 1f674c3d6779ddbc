// Package gateway はBearerトークン認証ゲートを組み込んだAPIサービスの内部実装を提供する。
//
// /api/v1 配下のルートはすべてmiddleware.JWTAuthを通過したリクエストのみを受け付け、
// ハンドラーは検証済みのIdentityを信頼して利用する。
// ユーザー情報はSQLiteに保存し、開発環境では開発用トークンを発行できる。
package gateway
