package gateway

import (
	"context"
	"database/sql"
	"fmt"
)

// user はusersテーブルの1行を表す。
type user struct {
	ID             string
	Provider       string
	ProviderUserID string
	Email          string
	DisplayName    string
}

// userStore はusersテーブルへのアクセスを提供する。
type userStore struct {
	db *sql.DB
}

// getUserByID はIDでユーザーを取得する。存在しない場合はsql.ErrNoRowsを返す。
func (s *userStore) getUserByID(ctx context.Context, id string) (user, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, provider, provider_user_id, email, display_name FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// getUserByProvider はプロバイダーとプロバイダー側のIDでユーザーを取得する。
func (s *userStore) getUserByProvider(ctx context.Context, provider, providerUserID string) (user, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, provider, provider_user_id, email, display_name FROM users
		 WHERE provider = ? AND provider_user_id = ?`, provider, providerUserID)
	return scanUser(row)
}

// createUser はユーザーを作成する。
func (s *userStore) createUser(ctx context.Context, u user) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, provider, provider_user_id, email, display_name) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Provider, u.ProviderUserID, u.Email, u.DisplayName)
	if err != nil {
		return fmt.Errorf("ユーザーの作成に失敗: %w", err)
	}
	return nil
}

// updateLastLogin は最終ログイン日時を更新する。
func (s *userStore) updateLastLogin(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = datetime('now') WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("最終ログイン日時の更新に失敗: %w", err)
	}
	return nil
}

func scanUser(row *sql.Row) (user, error) {
	var u user
	if err := row.Scan(&u.ID, &u.Provider, &u.ProviderUserID, &u.Email, &u.DisplayName); err != nil {
		return user{}, err
	}
	return u, nil
}
