// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "TeachBoard"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort        = ":8080"
	DefaultLogLevel          = "info"
	DefaultSessionTTLMinutes = 60 * 12
	DefaultIDTokenTTLMinutes = 5
	DefaultSessionCookieName = "tb_session"
	DefaultDraftTTLMinutes   = 60
	DefaultMongoDatabase     = "teachboard"
)

// ドキュメントストアのコレクション名
const (
	CollectionFlashcards = "flashcards"
	CollectionQuizzes    = "quizzes"
)
