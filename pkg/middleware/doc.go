// Package middleware はBearerトークンによるリクエスト認証ゲートと、
// GinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// Gateは Authorization: Bearer <token> ヘッダーからトークンを取り出し、
// 共有秘密鍵で署名と有効期限を検証して、認証済みのIdentityをリクエストに付与する。
// トークンが無い場合と検証に失敗した場合はいずれも401で拒否し、
// 検証失敗の原因は呼び出し元に返さない。
//
// Gin向けのJWTAuthとnet/http向けのGate.Handlerの2つのアダプタ、
// パニックリカバリ、CORS設定を含む。
package middleware
