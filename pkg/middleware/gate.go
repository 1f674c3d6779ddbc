package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// bearerScheme はAuthorizationヘッダーで受け付ける唯一のスキーム。大文字小文字を区別する。
const bearerScheme = "Bearer"

var (
	// ErrMissingCredential は利用可能なBearerトークンがリクエストに無い場合に返る。
	ErrMissingCredential = errors.New("token is required")
	// ErrInvalidCredential はトークンの検証に失敗した場合に返る。
	// 失敗の原因（署名不一致、期限切れ、形式不正など）は区別しない。
	ErrInvalidCredential = errors.New("invalid or expired token")
)

// Gate はBearerトークンを検証し、リクエストに認証済みIDを付与するゲート。
// 不変のVerifierのみを保持するため、複数のゴルーチンから同時に使用できる。
type Gate struct {
	verifier Verifier
}

// NewGate は設定からHMAC検証を行うGateを生成する。
func NewGate(cfg Config) (*Gate, error) {
	v, err := NewHMACVerifier(cfg)
	if err != nil {
		return nil, err
	}
	return &Gate{verifier: v}, nil
}

// NewGateWithVerifier は任意のVerifierを使うGateを生成する。
func NewGateWithVerifier(v Verifier) *Gate {
	return &Gate{verifier: v}
}

// ExtractBearerToken はAuthorizationヘッダーからトークンを取り出す。
// スキームが "Bearer" と完全一致しない場合や値が空の場合はfalseを返す。
func ExtractBearerToken(h http.Header) (string, bool) {
	authHeader := h.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || scheme != bearerScheme || token == "" {
		return "", false
	}
	return token, true
}

// Authenticate はヘッダーからトークンを取り出して検証し、正規化したIdentityを返す。
// トークンが無ければErrMissingCredential、検証に失敗すればErrInvalidCredentialを返す。
func (g *Gate) Authenticate(ctx context.Context, h http.Header) (Identity, error) {
	token, ok := ExtractBearerToken(h)
	if !ok {
		return Identity{}, ErrMissingCredential
	}

	claims, err := g.verifier.Verify(ctx, token)
	if err != nil || claims == nil {
		return Identity{}, ErrInvalidCredential
	}

	return Identity{
		SubjectID: claims.Subject,
		Email:     claims.Email,
	}, nil
}

// RejectionMessage は認証エラーに対応するクライアント向けメッセージを返す。
func RejectionMessage(err error) string {
	if errors.Is(err, ErrMissingCredential) {
		return "Token is required"
	}
	return "Invalid or expired token"
}
