//go:generate mockery --name AuthService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"time"

	"go_5_teach_board/internal/config"
	"go_5_teach_board/internal/middleware"
	"go_5_teach_board/internal/model"
	"go_5_teach_board/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService はログインとセッションの確立・検証・失効を扱います。
// ログインはIDトークンを発行するだけで、セッションはIDトークンを
// EstablishSessionに引き渡して初めて開始されます。
type AuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	EstablishSession(ctx context.Context, idToken string) (*model.Session, error)
	VerifySession(ctx context.Context, token string) (uuid.UUID, error)
	RevokeSession(ctx context.Context, token string) error
}

type authService struct {
	db          *gorm.DB
	teacherRepo repository.TeacherRepository
	revoker     SessionRevoker
	cfg         *config.Config
}

func NewAuthService(db *gorm.DB, teacherRepo repository.TeacherRepository, revoker SessionRevoker, cfg *config.Config) AuthService {
	return &authService{
		db:          db,
		teacherRepo: teacherRepo,
		revoker:     revoker,
		cfg:         cfg,
	}
}

// invalidCredentialsError はメールアドレス不明とパスワード不一致で
// 同一のレスポンスを返すための共通エラーです。どちらだったかを
// 区別できる情報はクライアントに出しません。
func invalidCredentialsError() *model.AppError {
	return model.NewAppError("INVALID_CREDENTIALS", "メールアドレスまたはパスワードが正しくありません。", "", model.ErrUnauthenticated)
}

func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	logger := middleware.GetLogger(ctx)

	teacher, err := s.teacherRepo.FindByEmail(ctx, s.db, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Login failed: unknown email")
			return nil, invalidCredentialsError()
		}
		logger.Error("Failed to look up teacher for login", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(teacher.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Login failed: password mismatch", "teacher_id", teacher.TeacherID.String())
		return nil, invalidCredentialsError()
	}

	idToken, err := s.signToken(teacher.TeacherID, model.TokenAudienceLogin, s.cfg.IDTokenTTL())
	if err != nil {
		logger.Error("Failed to sign id token", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "トークンの発行に失敗しました。", "", err)
	}

	logger.Info("Login succeeded", "teacher_id", teacher.TeacherID.String())
	return &model.LoginResponse{IDToken: idToken}, nil
}

func (s *authService) EstablishSession(ctx context.Context, idToken string) (*model.Session, error) {
	logger := middleware.GetLogger(ctx)

	claims, err := s.parseToken(idToken, model.TokenAudienceLogin)
	if err != nil {
		logger.Warn("Session establishment rejected: invalid id token", "error", err)
		return nil, model.NewAppError("INVALID_ID_TOKEN", "認証情報が無効です。再度ログインしてください。", "", model.ErrUnauthenticated)
	}

	teacherID, err := uuid.Parse(claims.Subject)
	if err != nil {
		logger.Warn("Session establishment rejected: malformed subject", "error", err)
		return nil, model.NewAppError("INVALID_ID_TOKEN", "認証情報が無効です。再度ログインしてください。", "", model.ErrUnauthenticated)
	}

	// アカウントが現在も有効か確認する
	if _, err := s.teacherRepo.FindByID(ctx, s.db, teacherID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Session establishment rejected: teacher no longer exists", "teacher_id", teacherID.String())
			return nil, model.NewAppError("INVALID_ID_TOKEN", "認証情報が無効です。再度ログインしてください。", "", model.ErrUnauthenticated)
		}
		logger.Error("Failed to look up teacher for session establishment", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "サーバー内部でエラーが発生しました。", "", err)
	}

	ttl := s.cfg.SessionTTL()
	token, err := s.signToken(teacherID, model.TokenAudienceSession, ttl)
	if err != nil {
		logger.Error("Failed to sign session token", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "セッションの確立に失敗しました。", "", err)
	}

	logger.Info("Session established", "teacher_id", teacherID.String())
	return &model.Session{
		Token:     token,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

func (s *authService) VerifySession(ctx context.Context, token string) (uuid.UUID, error) {
	claims, err := s.parseToken(token, model.TokenAudienceSession)
	if err != nil {
		return uuid.Nil, err
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return uuid.Nil, err
	}
	if revoked {
		return uuid.Nil, model.ErrUnauthenticated
	}

	teacherID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, model.ErrUnauthenticated
	}
	return teacherID, nil
}

func (s *authService) RevokeSession(ctx context.Context, token string) error {
	logger := middleware.GetLogger(ctx)

	claims, err := s.parseToken(token, model.TokenAudienceSession)
	if err != nil {
		// 既に無効なトークンのログアウトは成功として扱う
		logger.Warn("Logout with invalid session token", "error", err)
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		logger.Error("Failed to revoke session", "error", err)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "ログアウト処理に失敗しました。", "", err)
	}

	logger.Info("Session revoked", "jti", claims.ID)
	return nil
}

func (s *authService) signToken(teacherID uuid.UUID, audience string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   teacherID.String(),
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.SessionSecret))
}

func (s *authService) parseToken(tokenString, audience string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrUnauthenticated
		}
		return []byte(s.cfg.Auth.SessionSecret), nil
	}, jwt.WithAudience(audience), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, model.ErrUnauthenticated
	}
	return claims, nil
}
