package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Identity は検証済みトークンから得た正規化済みの認証情報。
type Identity struct {
	// SubjectID はトークンのsubクレーム。
	SubjectID string `json:"subjectId"`
	// Email はトークンのemailクレーム。クレームが無い場合はnil。
	Email *string `json:"email,omitempty"`
}

// identityContextKey はcontext.ContextにIdentityを格納するためのキー。
type identityContextKey struct{}

// ginIdentityKey はGinコンテキストにIdentityを格納するためのキー。
const ginIdentityKey = "identity"

// WithIdentity はコンテキストにIdentityを設定する。
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext はコンテキストからIdentityを取得する。
// JWTAuthまたはGate.Handlerを通過していない場合はfalseを返す。
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}

// GetIdentity はGinコンテキストからIdentityを取得する。
func GetIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(ginIdentityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// GetUserID はGinコンテキストからユーザーID（subクレーム）を取得する。
// JWTAuthミドルウェアが事前に適用されている必要がある。
func GetUserID(c *gin.Context) string {
	if id, ok := GetIdentity(c); ok {
		return id.SubjectID
	}
	return ""
}
