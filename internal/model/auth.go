// internal/model/auth.go
package model

import "time"

type contextKey string

// TeacherIDKey は認証済み教師IDをコンテキストに格納するためのキーです
const TeacherIDKey contextKey = "teacher_id"

// JWTのaudienceクレーム。IDトークンとセッショントークンを区別する。
const (
	TokenAudienceLogin   = "login"
	TokenAudienceSession = "session"
)

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse はログイン成功時のレスポンス。
// IDトークンをセッション確立エンドポイントに転送してセッションを開始する。
type LoginResponse struct {
	IDToken string `json:"id_token"`
}

// Session はセッション確立後のサーバー検証可能なセッション情報です
type Session struct {
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}
