// internal/handlers/auth_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go_5_teach_board/internal/config"
	"go_5_teach_board/internal/model"
	"go_5_teach_board/internal/service"
	"go_5_teach_board/internal/webutil"

	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	service service.AuthService
	cfg     *config.Config
	logger  *slog.Logger
}

func NewAuthHandler(s service.AuthService, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		service: s,
		cfg:     cfg,
		logger:  logger,
	}
}

// Login は資格情報を検証し、セッション確立用のIDトークンを返します。
// この時点ではまだセッションは開始されません。
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Login"))

	var req model.LoginRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			firstErr := validationErrors[0]
			appErr := model.NewAppError(
				"VALIDATION_ERROR",
				firstErr.Translate(webutil.Trans),
				firstErr.Field(),
				model.ErrInvalidInput,
			)
			webutil.HandleError(w, logger, appErr)
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

// Session はIDトークンと引き換えにセッションを確立し、
// セッショントークンをHttpOnlyクッキーで配布します。
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Session"))

	idToken := bearerToken(r)
	if idToken == "" {
		logger.Warn("Session request without bearer token")
		appErr := model.NewAppError("UNAUTHENTICATED", "認証情報が見つかりません。", "", model.ErrUnauthenticated)
		webutil.HandleError(w, logger, appErr)
		return
	}

	session, err := h.service.EstablishSession(r.Context(), idToken)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.Auth.CookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cfg.Auth.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	webutil.RespondWithJSON(w, http.StatusOK, session, logger)
}

// Logout はセッションを失効させクッキーを破棄します。
// クッキーが無い場合でも204を返します。
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Logout"))

	if cookie, err := r.Cookie(h.cfg.Auth.CookieName); err == nil && cookie.Value != "" {
		if err := h.service.RevokeSession(r.Context(), cookie.Value); err != nil {
			webutil.HandleError(w, logger, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.Auth.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Auth.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	w.WriteHeader(http.StatusNoContent)
}

// bearerToken はAuthorizationヘッダからBearerトークンを取り出します
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}
