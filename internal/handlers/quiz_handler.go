// internal/handlers/quiz_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_5_teach_board/internal/model"
	"go_5_teach_board/internal/service"
	"go_5_teach_board/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type QuizHandler struct {
	service service.QuizService
	logger  *slog.Logger
}

func NewQuizHandler(s service.QuizService, logger *slog.Logger) *QuizHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuizHandler{
		service: s,
		logger:  logger,
	}
}

// PostQuiz は新しいクイズを作成するためのハンドラ
func (h *QuizHandler) PostQuiz(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostQuiz"))

	var quiz model.Quiz
	if err := webutil.DecodeJSONBody(r, &quiz); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	quiz.ID = ""

	if err := webutil.Validator.Struct(quiz); err != nil {
		handleValidationError(w, logger, err)
		return
	}

	created, err := h.service.CreateQuiz(r.Context(), &quiz)
	if err != nil {
		logger.Error("Error creating quiz in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Quiz created successfully", slog.String("quiz_id", created.ID))
	webutil.RespondWithJSON(w, http.StatusCreated, created, logger)
}

// GetQuiz は単一クイズを取得するためのハンドラ
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetQuiz"))

	quizID := chi.URLParam(r, "quiz_id")
	quiz, err := h.service.GetQuiz(r.Context(), quizID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, quiz, logger)
}

// GetQuizzes はクイズ一覧を取得するためのハンドラ
func (h *QuizHandler) GetQuizzes(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetQuizzes"))

	quizzes, err := h.service.ListQuizzes(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if quizzes == nil {
		quizzes = []*model.Quiz{}
	}

	webutil.RespondWithJSON(w, http.StatusOK, quizzes, logger)
}

// PutQuiz はクイズ全体を上書き更新するためのハンドラ
func (h *QuizHandler) PutQuiz(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutQuiz"))

	quizID := chi.URLParam(r, "quiz_id")

	var quiz model.Quiz
	if err := webutil.DecodeJSONBody(r, &quiz); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(quiz); err != nil {
		handleValidationError(w, logger, err)
		return
	}

	updated, err := h.service.UpdateQuiz(r.Context(), quizID, &quiz)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Quiz updated successfully", slog.String("quiz_id", quizID))
	webutil.RespondWithJSON(w, http.StatusOK, updated, logger)
}

// DeleteQuiz はクイズを削除するためのハンドラ
func (h *QuizHandler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteQuiz"))

	quizID := chi.URLParam(r, "quiz_id")
	if err := h.service.DeleteQuiz(r.Context(), quizID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Quiz deleted successfully", slog.String("quiz_id", quizID))
	w.WriteHeader(http.StatusNoContent)
}
