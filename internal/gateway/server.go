package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nao1215/authgate/pkg/middleware"
	_ "modernc.org/sqlite"
)

// 開発用ユーザーの識別情報。
const (
	devProvider       = "dev"
	devProviderUserID = "dev-user"
	devEmail          = "dev@localhost"
	devDisplayName    = "開発ユーザー"
)

// Server はGatewayサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// db はSQLiteデータベース接続。
	db *sql.DB
	// users はusersテーブルへのアクセスを提供する。
	users *userStore
	// gate はBearerトークンの検証を行う認証ゲート。
	gate *middleware.Gate
	// jwtSecret は開発用トークンの署名に使う秘密鍵。
	jwtSecret string
	// devToken は開発用トークン発行エンドポイントを有効にするかどうか。
	devToken bool
}

// NewServer は新しいGatewayサーバーを生成する。
func NewServer(cfg Config) (*Server, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", cfg.DatabasePath)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}

	s, err := newServer(cfg, sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

// newServer は接続済みのデータベースを使ってサーバーを組み立てる。
func newServer(cfg Config, sqlDB *sql.DB) (*Server, error) {
	if cfg.EnableDevToken && cfg.JWTAlgorithm != "" && cfg.JWTAlgorithm != "HS256" {
		return nil, fmt.Errorf("開発用トークンはHS256でのみ利用できます: %s", cfg.JWTAlgorithm)
	}

	if err := initSchema(context.Background(), sqlDB); err != nil {
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}

	gate, err := middleware.NewGate(middleware.Config{
		Secret:    cfg.SecretKey,
		Algorithm: cfg.JWTAlgorithm,
	})
	if err != nil {
		return nil, fmt.Errorf("認証ゲートの初期化に失敗: %w", err)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS([]string{cfg.FrontendURL}))

	s := &Server{
		router:    router,
		port:      cfg.Port,
		db:        sqlDB,
		users:     &userStore{db: sqlDB},
		gate:      gate,
		jwtSecret: cfg.SecretKey,
		devToken:  cfg.EnableDevToken,
	}
	s.setupRoutes()

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// Close はデータベース接続を閉じる。
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	if s.devToken {
		s.router.POST("/auth/dev-token", s.handleDevToken())
	}

	// 認証必須のAPIエンドポイント
	api := s.router.Group("/api/v1")
	api.Use(middleware.JWTAuth(s.gate))
	{
		api.GET("/me", s.handleGetCurrentUser())
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "gateway"})
	})
}

// handleDevToken は開発用JWTトークンを発行するハンドラを返す。
// 本番環境では無効化すべき。
func (s *Server) handleDevToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		u, err := s.users.getUserByProvider(ctx, devProvider, devProviderUserID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			u = user{
				ID:             uuid.New().String(),
				Provider:       devProvider,
				ProviderUserID: devProviderUserID,
				Email:          devEmail,
				DisplayName:    devDisplayName,
			}
			if err := s.users.createUser(ctx, u); err != nil {
				log.Printf("開発ユーザー作成エラー: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "ユーザー作成に失敗しました"})
				return
			}
		case err != nil:
			log.Printf("開発ユーザー取得エラー: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ユーザー取得に失敗しました"})
			return
		default:
			if err := s.users.updateLastLogin(ctx, u.ID); err != nil {
				log.Printf("最終ログイン日時の更新エラー: user=%s, error=%v", u.ID, err)
			}
		}

		token, err := middleware.GenerateJWT(s.jwtSecret, u.ID, u.Email)
		if err != nil {
			log.Printf("JWT生成エラー: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "トークン生成に失敗しました"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":   token,
			"user_id": u.ID,
		})
	}
}

// handleGetCurrentUser は認証済みユーザーの情報を返すハンドラを返す。
// ユーザーが登録されていない場合はトークンから得た情報のみを返す。
func (s *Server) handleGetCurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := middleware.GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "ユーザーIDが取得できません"})
			return
		}

		resp := gin.H{"subjectId": id.SubjectID}
		if id.Email != nil {
			resp["email"] = *id.Email
		}

		u, err := s.users.getUserByID(c.Request.Context(), id.SubjectID)
		switch {
		case err == nil:
			resp["display_name"] = u.DisplayName
		case errors.Is(err, sql.ErrNoRows):
			// 未登録のユーザー
		default:
			log.Printf("ユーザー取得エラー: user=%s, error=%v", id.SubjectID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ユーザー取得に失敗しました"})
			return
		}

		c.JSON(http.StatusOK, resp)
	}
}
