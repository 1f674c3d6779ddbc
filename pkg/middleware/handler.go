package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// JWTAuth はGateでBearerトークンを検証するGinミドルウェアを返す。
// 検証に成功した場合、GinコンテキストとリクエストのcontextにIdentityを設定する。
func JWTAuth(g *Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := g.Authenticate(c.Request.Context(), c.Request.Header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": RejectionMessage(err),
			})
			return
		}

		c.Set(ginIdentityKey, id)
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// Handler はnet/http向けのミドルウェア。検証に失敗した場合nextは呼ばれない。
func (g *Gate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := g.Authenticate(r.Context(), r.Header)
		if err != nil {
			writeError(w, http.StatusUnauthorized, RejectionMessage(err))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// writeError はGinのAbortWithStatusJSONと同じ形式のエラーレスポンスを書き込む。
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
