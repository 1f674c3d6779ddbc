package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// defaultAlgorithm はConfig.Algorithmが未指定の場合に使用する署名アルゴリズム。
const defaultAlgorithm = "HS256"

// tokenIssuer はGenerateJWTが発行するトークンのissuer。
const tokenIssuer = "authgate"

var (
	// ErrEmptySecret は検証用の秘密鍵が設定されていない場合に返る。
	ErrEmptySecret = errors.New("JWTの秘密鍵が設定されていません")
	// ErrUnsupportedAlgorithm はHMAC系以外の署名アルゴリズムが指定された場合に返る。
	ErrUnsupportedAlgorithm = errors.New("サポートされていない署名アルゴリズムです")
	// errMissingSubject は検証済みトークンにsubクレームが無い場合の内部エラー。
	errMissingSubject = errors.New("subクレームがありません")
)

// Config はトークン検証の設定。起動時に一度だけ生成し、以後は変更しない。
type Config struct {
	// Secret はHMAC署名の検証に使う共有秘密鍵。
	Secret string
	// Algorithm は受け付ける署名アルゴリズム（HS256 / HS384 / HS512）。空ならHS256。
	Algorithm string
}

// JWTClaims はJWTトークンのクレーム（ペイロード）を表す。
// 主体（sub）は必須で、emailは任意。
type JWTClaims struct {
	jwt.RegisteredClaims
	// Email はユーザーのメールアドレス。クレームが無い場合はnil。
	Email *string `json:"email,omitempty"`
}

// Verifier はトークンの署名と有効期限を検証し、デコード済みクレームを返す。
type Verifier interface {
	Verify(ctx context.Context, token string) (*JWTClaims, error)
}

// hmacVerifier はgolang-jwtを使った共有秘密鍵によるVerifier実装。
type hmacVerifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewHMACVerifier は設定からHMAC署名のVerifierを生成する。
func NewHMACVerifier(cfg Config) (Verifier, error) {
	if cfg.Secret == "" {
		return nil, ErrEmptySecret
	}

	alg := cfg.Algorithm
	if alg == "" {
		alg = defaultAlgorithm
	}
	if _, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, alg)
	}

	return &hmacVerifier{
		secret: []byte(cfg.Secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{alg})),
	}, nil
}

// Verify はトークンを検証する。exp/nbfの検証はパーサーに任せる。
func (v *hmacVerifier) Verify(_ context.Context, token string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	parsed, err := v.parser.ParseWithClaims(token, claims, func(_ *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Subject == "" {
		return nil, errMissingSubject
	}
	return claims, nil
}

// GenerateJWT はユーザー情報からHS256のJWTトークンを生成する。
// emailが空の場合はemailクレームを含めない。
// 開発用トークンの発行とテストで使用する。
func GenerateJWT(secret, subjectID, email string) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}
	if email != "" {
		claims.Email = &email
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("JWTトークンの署名に失敗: %w", err)
	}
	return signed, nil
}
