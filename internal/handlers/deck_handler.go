// internal/handlers/deck_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_5_teach_board/internal/model"
	"go_5_teach_board/internal/service"
	"go_5_teach_board/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type DeckHandler struct {
	service service.DeckService
	logger  *slog.Logger
}

func NewDeckHandler(s service.DeckService, logger *slog.Logger) *DeckHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeckHandler{
		service: s,
		logger:  logger,
	}
}

// PostDeck は新しいデッキを作成するためのハンドラ
func (h *DeckHandler) PostDeck(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostDeck"))

	var deck model.FlashcardDeck
	if err := webutil.DecodeJSONBody(r, &deck); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	deck.ID = ""

	if err := webutil.Validator.Struct(deck); err != nil {
		handleValidationError(w, logger, err)
		return
	}

	created, err := h.service.CreateDeck(r.Context(), &deck)
	if err != nil {
		logger.Error("Error creating deck in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Deck created successfully", slog.String("deck_id", created.ID))
	webutil.RespondWithJSON(w, http.StatusCreated, created, logger)
}

// GetDeck は単一デッキを取得するためのハンドラ
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDeck"))

	deckID := chi.URLParam(r, "deck_id")
	deck, err := h.service.GetDeck(r.Context(), deckID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, deck, logger)
}

// GetDecks はデッキ一覧を取得するためのハンドラ
func (h *DeckHandler) GetDecks(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDecks"))

	decks, err := h.service.ListDecks(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if decks == nil {
		decks = []*model.FlashcardDeck{}
	}

	webutil.RespondWithJSON(w, http.StatusOK, decks, logger)
}

// PutDeck はデッキ全体を上書き更新するためのハンドラ
func (h *DeckHandler) PutDeck(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutDeck"))

	deckID := chi.URLParam(r, "deck_id")

	var deck model.FlashcardDeck
	if err := webutil.DecodeJSONBody(r, &deck); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(deck); err != nil {
		handleValidationError(w, logger, err)
		return
	}

	updated, err := h.service.UpdateDeck(r.Context(), deckID, &deck)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Deck updated successfully", slog.String("deck_id", deckID))
	webutil.RespondWithJSON(w, http.StatusOK, updated, logger)
}

// DeleteDeck はデッキを削除するためのハンドラ
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteDeck"))

	deckID := chi.URLParam(r, "deck_id")
	if err := h.service.DeleteDeck(r.Context(), deckID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Deck deleted successfully", slog.String("deck_id", deckID))
	w.WriteHeader(http.StatusNoContent)
}

// handleValidationError はvalidatorのエラーを日本語メッセージ付きの
// レスポンスに変換します。最初のエラーを代表として返します。
func handleValidationError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))
		firstErr := validationErrors[0]
		appErr := model.NewAppError(
			"VALIDATION_ERROR",
			firstErr.Translate(webutil.Trans),
			firstErr.Field(),
			model.ErrInvalidInput,
		)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger.Error("Unexpected error during validation", slog.Any("error", err))
	webutil.HandleError(w, logger, err)
}
