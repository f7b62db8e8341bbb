package middleware

import (
	"context"
	"net/http"

	"go_5_teach_board/internal/model"
	"go_5_teach_board/internal/webutil"

	"github.com/google/uuid"
)

// SessionVerifier はセッショントークンをサーバー側で検証します
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (uuid.UUID, error)
}

// SessionGate は保護対象のリクエストごとにセッションクッキーを検証する
// ミドルウェアです。クライアント側の状態は信用せず、毎回署名・有効期限・
// 失効の検証をやり直します。検証できない場合は保護対象の処理に入る前に
// 401を返します。
func SessionGate(cookieName string, verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				logger.Warn("Session gate: session cookie missing")
				appErr := model.NewAppError("UNAUTHENTICATED", "ログインが必要です。", "", model.ErrUnauthenticated)
				webutil.HandleError(w, logger, appErr)
				return
			}

			teacherID, err := verifier.VerifySession(r.Context(), cookie.Value)
			if err != nil {
				logger.Warn("Session gate: session verification failed", "error", err)
				appErr := model.NewAppError("UNAUTHENTICATED", "セッションが無効です。再度ログインしてください。", "", model.ErrUnauthenticated)
				webutil.HandleError(w, logger, appErr)
				return
			}

			ctx := context.WithValue(r.Context(), model.TeacherIDKey, teacherID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetTeacherIDFromContext はコンテキストから認証済み教師IDを取得します
func GetTeacherIDFromContext(ctx context.Context) (uuid.UUID, error) {
	value, ok := ctx.Value(model.TeacherIDKey).(uuid.UUID)
	if !ok {
		// ミドルウェアが正しく適用されていない場合の内部エラー
		return uuid.Nil, model.NewAppError("INTERNAL_SERVER_ERROR", "コンテキストからユーザー情報を取得できませんでした。", "", model.ErrInternalServer)
	}
	return value, nil
}
