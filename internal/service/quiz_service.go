//go:generate mockery --name QuizService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"

	"go_5_teach_board/internal/middleware"
	"go_5_teach_board/internal/model"
	"go_5_teach_board/internal/store"
	"go_5_teach_board/internal/webutil"
)

// QuizService は4択クイズのユースケース層です
type QuizService interface {
	CreateQuiz(ctx context.Context, quiz *model.Quiz) (*model.Quiz, error)
	GetQuiz(ctx context.Context, id string) (*model.Quiz, error)
	ListQuizzes(ctx context.Context) ([]*model.Quiz, error)
	UpdateQuiz(ctx context.Context, id string, quiz *model.Quiz) (*model.Quiz, error)
	DeleteQuiz(ctx context.Context, id string) error
	WatchQuizzes(fn func(quizzes []*model.Quiz)) (unsubscribe func())
}

type quizService struct {
	col store.Collection[*model.Quiz]
}

func NewQuizService(col store.Collection[*model.Quiz]) QuizService {
	return &quizService{col: col}
}

func (s *quizService) CreateQuiz(ctx context.Context, quiz *model.Quiz) (*model.Quiz, error) {
	logger := middleware.GetLogger(ctx)

	if err := webutil.Validator.Struct(quiz); err != nil {
		logger.Warn("Quiz rejected by schema validation", "error", err)
		return nil, model.NewAppError("VALIDATION_FAILED", "クイズの内容に誤りがあります。", "", model.ErrInvalidInput)
	}

	id, err := s.col.Create(ctx, quiz)
	if err != nil {
		logger.Error("Failed to create quiz", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズの保存に失敗しました。", "", err)
	}

	logger.Info("Quiz created", "quiz_id", id, "name", quiz.Name)
	return quiz, nil
}

func (s *quizService) GetQuiz(ctx context.Context, id string) (*model.Quiz, error) {
	logger := middleware.GetLogger(ctx)

	quiz, err := s.col.Get(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("QUIZ_NOT_FOUND", "指定されたクイズが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to get quiz", "error", err, "quiz_id", id)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズの取得に失敗しました。", "", err)
	}
	return quiz, nil
}

func (s *quizService) ListQuizzes(ctx context.Context) ([]*model.Quiz, error) {
	logger := middleware.GetLogger(ctx)

	quizzes, err := s.col.Snapshot(ctx)
	if err != nil {
		logger.Error("Failed to list quizzes", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズ一覧の取得に失敗しました。", "", err)
	}
	return quizzes, nil
}

func (s *quizService) UpdateQuiz(ctx context.Context, id string, quiz *model.Quiz) (*model.Quiz, error) {
	logger := middleware.GetLogger(ctx)

	if err := webutil.Validator.Struct(quiz); err != nil {
		logger.Warn("Quiz rejected by schema validation", "error", err, "quiz_id", id)
		return nil, model.NewAppError("VALIDATION_FAILED", "クイズの内容に誤りがあります。", "", model.ErrInvalidInput)
	}

	if err := s.col.Update(ctx, id, quiz); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("QUIZ_NOT_FOUND", "指定されたクイズが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to update quiz", "error", err, "quiz_id", id)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズの更新に失敗しました。", "", err)
	}

	logger.Info("Quiz updated", "quiz_id", id, "name", quiz.Name)
	return quiz, nil
}

func (s *quizService) DeleteQuiz(ctx context.Context, id string) error {
	logger := middleware.GetLogger(ctx)

	if err := s.col.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("QUIZ_NOT_FOUND", "指定されたクイズが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to delete quiz", "error", err, "quiz_id", id)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "クイズの削除に失敗しました。", "", err)
	}

	logger.Info("Quiz deleted", "quiz_id", id)
	return nil
}

func (s *quizService) WatchQuizzes(fn func(quizzes []*model.Quiz)) (unsubscribe func()) {
	return s.col.Subscribe(fn)
}
