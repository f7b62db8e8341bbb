//go:generate mockery --name DeckService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"

	"go_5_teach_board/internal/middleware"
	"go_5_teach_board/internal/model"
	"go_5_teach_board/internal/store"
	"go_5_teach_board/internal/webutil"
)

// DeckService はフラッシュカードデッキのユースケース層です
type DeckService interface {
	CreateDeck(ctx context.Context, deck *model.FlashcardDeck) (*model.FlashcardDeck, error)
	GetDeck(ctx context.Context, id string) (*model.FlashcardDeck, error)
	ListDecks(ctx context.Context) ([]*model.FlashcardDeck, error)
	UpdateDeck(ctx context.Context, id string, deck *model.FlashcardDeck) (*model.FlashcardDeck, error)
	DeleteDeck(ctx context.Context, id string) error
	WatchDecks(fn func(decks []*model.FlashcardDeck)) (unsubscribe func())
}

type deckService struct {
	col store.Collection[*model.FlashcardDeck]
}

func NewDeckService(col store.Collection[*model.FlashcardDeck]) DeckService {
	return &deckService{col: col}
}

func (s *deckService) CreateDeck(ctx context.Context, deck *model.FlashcardDeck) (*model.FlashcardDeck, error) {
	logger := middleware.GetLogger(ctx)

	if err := webutil.Validator.Struct(deck); err != nil {
		logger.Warn("Deck rejected by schema validation", "error", err)
		return nil, model.NewAppError("VALIDATION_FAILED", "デッキの内容に誤りがあります。", "", model.ErrInvalidInput)
	}

	id, err := s.col.Create(ctx, deck)
	if err != nil {
		logger.Error("Failed to create deck", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの保存に失敗しました。", "", err)
	}

	logger.Info("Deck created", "deck_id", id, "name", deck.Name)
	return deck, nil
}

func (s *deckService) GetDeck(ctx context.Context, id string) (*model.FlashcardDeck, error) {
	logger := middleware.GetLogger(ctx)

	deck, err := s.col.Get(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("DECK_NOT_FOUND", "指定されたデッキが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to get deck", "error", err, "deck_id", id)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの取得に失敗しました。", "", err)
	}
	return deck, nil
}

func (s *deckService) ListDecks(ctx context.Context) ([]*model.FlashcardDeck, error) {
	logger := middleware.GetLogger(ctx)

	decks, err := s.col.Snapshot(ctx)
	if err != nil {
		logger.Error("Failed to list decks", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキ一覧の取得に失敗しました。", "", err)
	}
	return decks, nil
}

func (s *deckService) UpdateDeck(ctx context.Context, id string, deck *model.FlashcardDeck) (*model.FlashcardDeck, error) {
	logger := middleware.GetLogger(ctx)

	if err := webutil.Validator.Struct(deck); err != nil {
		logger.Warn("Deck rejected by schema validation", "error", err, "deck_id", id)
		return nil, model.NewAppError("VALIDATION_FAILED", "デッキの内容に誤りがあります。", "", model.ErrInvalidInput)
	}

	if err := s.col.Update(ctx, id, deck); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("DECK_NOT_FOUND", "指定されたデッキが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to update deck", "error", err, "deck_id", id)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの更新に失敗しました。", "", err)
	}

	logger.Info("Deck updated", "deck_id", id, "name", deck.Name)
	return deck, nil
}

func (s *deckService) DeleteDeck(ctx context.Context, id string) error {
	logger := middleware.GetLogger(ctx)

	if err := s.col.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("DECK_NOT_FOUND", "指定されたデッキが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to delete deck", "error", err, "deck_id", id)
		return model.NewAppError("INTERNAL_SERVER_ERROR", "デッキの削除に失敗しました。", "", err)
	}

	logger.Info("Deck deleted", "deck_id", id)
	return nil
}

func (s *deckService) WatchDecks(fn func(decks []*model.FlashcardDeck)) (unsubscribe func()) {
	return s.col.Subscribe(fn)
}
