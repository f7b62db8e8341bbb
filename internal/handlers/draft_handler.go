// internal/handlers/draft_handler.go
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"go_5_teach_board/internal/draft"
	"go_5_teach_board/internal/form"
	"go_5_teach_board/internal/model"
	"go_5_teach_board/internal/service"
	"go_5_teach_board/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// deckDraft は編集中のデッキフォームと編集対象ドキュメントの対応です。
// docIDが空のドラフトは新規作成フォームです。
type deckDraft struct {
	ctrl  *form.DeckController
	docID string
}

type quizDraft struct {
	ctrl  *form.QuizController
	docID string
}

// draftState はフォームの現在状態のレスポンスです
type draftState[H any, Q any] struct {
	DraftID   string         `json:"draft_id"`
	DocID     string         `json:"doc_id,omitempty"`
	Header    H              `json:"header"`
	Questions []form.Row[Q]  `json:"questions"`
	Errors    form.ErrorMap  `json:"errors"`
	Valid     bool           `json:"valid"`
	CanRemove bool           `json:"can_remove"`
}

// validationFailedResponse は送信時の検証エラーレスポンスです
type validationFailedResponse struct {
	Error  model.ErrorDetail `json:"error"`
	Errors form.ErrorMap     `json:"errors"`
}

type createDraftRequest struct {
	DocID string `json:"doc_id,omitempty"`
}

// DraftHandler は編集中フォームのライフサイクルを扱います。
// ドラフトの作成・編集・送信・破棄のすべてのエンドポイントを持ちます。
type DraftHandler struct {
	deckService service.DeckService
	quizService service.QuizService
	deckDrafts  *draft.Registry[*deckDraft]
	quizDrafts  *draft.Registry[*quizDraft]
	logger      *slog.Logger
}

func NewDraftHandler(deckService service.DeckService, quizService service.QuizService, deckDrafts *draft.Registry[*deckDraft], quizDrafts *draft.Registry[*quizDraft], logger *slog.Logger) *DraftHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DraftHandler{
		deckService: deckService,
		quizService: quizService,
		deckDrafts:  deckDrafts,
		quizDrafts:  quizDrafts,
		logger:      logger,
	}
}

// NewDeckDraftRegistry はデッキドラフトの置き場を生成します
func NewDeckDraftRegistry(ttl time.Duration) *draft.Registry[*deckDraft] {
	return draft.NewRegistry[*deckDraft](ttl)
}

// NewQuizDraftRegistry はクイズドラフトの置き場を生成します
func NewQuizDraftRegistry(ttl time.Duration) *draft.Registry[*quizDraft] {
	return draft.NewRegistry[*quizDraft](ttl)
}

// --- デッキドラフト ---

// CreateDeckDraft は編集セッションを開始します。
// doc_idが指定された場合は既存デッキの内容でフォームを初期化します。
// 対象が見つからない場合は新規作成フォームとして開始します。
func (h *DraftHandler) CreateDeckDraft(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateDeckDraft"))

	var req createDraftRequest
	if r.ContentLength > 0 {
		if err := webutil.DecodeJSONBody(r, &req); err != nil {
			logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
			appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
	}

	var existing *model.FlashcardDeck
	docID := req.DocID
	if docID != "" {
		deck, err := h.deckService.GetDeck(r.Context(), docID)
		if err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				webutil.HandleError(w, logger, err)
				return
			}
			// 編集対象が消えている場合は新規作成フォームに切り替える
			logger.Warn("Deck for draft no longer exists, starting blank form", slog.String("doc_id", docID))
			docID = ""
		} else {
			existing = deck
		}
	}

	d := &deckDraft{ctrl: form.NewDeckController(existing), docID: docID}
	draftID := h.deckDrafts.Put(d)

	logger.Info("Deck draft created", slog.String("draft_id", draftID.String()), slog.String("doc_id", docID))
	webutil.RespondWithJSON(w, http.StatusCreated, deckDraftState(draftID, d), logger)
}

// GetDeckDraft はフォームの現在状態を返します
func (h *DraftHandler) GetDeckDraft(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDeckDraft"))

	draftID, d, err := h.lookupDeckDraft(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, deckDraftState(draftID, d), logger)
}

// PutDeckDraftHeader はヘッダ項目を更新します
func (h *DraftHandler) PutDeckDraftHeader(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutDeckDraftHeader"))

	draftID, d, err := h.lookupDeckDraft(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var header form.DeckHeader
	if err := webutil.DecodeJSONBody(r, &header); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	d.ctrl.SetHeader(header)
	webutil.RespondWithJSON(w, http.StatusOK, deckDraftState(draftID, d), logger)
}

// PostDeckDraftQuestion は既定値の質問を1件追加します
func (h *DraftHandler) PostDeckDraftQuestion(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostDeckDraftQuestion"))

	draftID, d, err := h.lookupDeckDraft(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	d.ctrl.Append()
	webutil.RespondWithJSON(w, http.StatusOK, deckDraftState(draftID, d), logger)
}

// PutDeckDraftQuestion は指定位置の質問を更新します
func (h *DraftHandler) PutDeckDraftQuestion(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutDeckDraftQuestion"))

	draftID, d, err := h.lookupDeckDraft(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	index, err := questionIndex(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var question model.DeckQuestion
	if err := webutil.DecodeJSONBody(r, &question); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := d.ctrl.SetRow(index, question); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, deckDraftState(draftID, d), logger)
}

// DeleteDeckDraftQuestion は指定位置の質問を削除します
func (h *DraftHandler) DeleteDeckDraftQuestion(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteDeckDraftQuestion"))

	draftID, d, err := h.lookupDeckDraft(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	index, err := questionIndex(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := d.ctrl.Remove(index); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, deckDraftState(draftID, d), logger)
}

// SubmitDeckDraft は検証に通ったフォームを保存します。
// ドラフトが既存デッキに紐付いていれば上書き、そうでなければ新規作成です。
// 保存に成功したドラフトは破棄されます。
func (h *DraftHandler) SubmitDeckDraft(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SubmitDeckDraft"))

	draftID, d, err := h.lookupDeckDraft(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var saved *model.FlashcardDeck
	errMap, err := d.ctrl.Submit(r.Context(), func(ctx context.Context, df form.DeckDraft) error {
		doc := form.DeckFromDraft(df)
		if d.docID == "" {
			created, err := h.deckService.CreateDeck(ctx, doc)
			if err != nil {
				return err
			}
			saved = created
			return nil
		}
		updated, err := h.deckService.UpdateDeck(ctx, d.docID, doc)
		if err != nil {
			return err
		}
		saved = updated
		return nil
	})
	if len(errMap) > 0 {
		logger.Warn("Deck draft submit blocked by validation", slog.String("draft_id", draftID.String()))
		respondValidationFailed(w, logger, err, errMap)
		return
	}
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	h.deckDrafts.Delete(draftID)
	logger.Info("Deck draft submitted", slog.String("draft_id", draftID.String()), slog.String("deck_id", saved.ID))
	webutil.RespondWithJSON(w, http.StatusOK, saved, logger)
}

// DeleteDeckDraft はドラフトを保存せずに破棄します
func (h *DraftHandler) DeleteDeckDraft(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteDeckDraft"))

	draftID, _, err := h.lookupDeckDraft(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	h.deckDrafts.Delete(draftID)
	w.WriteHeader(http.StatusNoContent)
}

// --- クイズドラフト ---

func (h *DraftHandler) CreateQuizDraft(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "CreateQuizDraft"))

	var req createDraftRequest
	if r.ContentLength > 0 {
		if err := webutil.DecodeJSONBody(r, &req); err != nil {
			logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
			appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
	}

	var existing *model.Quiz
	docID := req.DocID
	if docID != "" {
		quiz, err := h.quizService.GetQuiz(r.Context(), docID)
		if err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				webutil.HandleError(w, logger, err)
				return
			}
			logger.Warn("Quiz for draft no longer exists, starting blank form", slog.String("doc_id", docID))
			docID = ""
		} else {
			existing = quiz
		}
	}

	d := &quizDraft{ctrl: form.NewQuizController(existing), docID: docID}
	draftID := h.quizDrafts.Put(d)

	logger.Info("Quiz draft created", slog.String("draft_id", draftID.String()), slog.String("doc_id", docID))
	webutil.RespondWithJSON(w, http.StatusCreated, quizDraftState(draftID, d), logger)
}

func (h *DraftHandler) GetQuizDraft(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetQuizDraft"))

	draftID, d, err := h.lookupQuizDraft(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, quizDraftState(draftID, d), logger)
}

func (h *DraftHandler) PutQuizDraftHeader(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutQuizDraftHeader"))

	draftID, d, err := h.lookupQuizDraft(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var header form.QuizHeader
	if err := webutil.DecodeJSONBody(r, &header); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	d.ctrl.SetHeader(header)
	webutil.RespondWithJSON(w, http.StatusOK, quizDraftState(draftID, d), logger)
}

func (h *DraftHandler) PostQuizDraftQuestion(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostQuizDraftQuestion"))

	draftID, d, err := h.lookupQuizDraft(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	d.ctrl.Append()
	webutil.RespondWithJSON(w, http.StatusOK, quizDraftState(draftID, d), logger)
}

func (h *DraftHandler) PutQuizDraftQuestion(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutQuizDraftQuestion"))

	draftID, d, err := h.lookupQuizDraft(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	index, err := questionIndex(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var question form.QuizQuestionDraft
	if err := webutil.DecodeJSONBody(r, &question); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := d.ctrl.SetRow(index, question); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, quizDraftState(draftID, d), logger)
}

func (h *DraftHandler) DeleteQuizDraftQuestion(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteQuizDraftQuestion"))

	draftID, d, err := h.lookupQuizDraft(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	index, err := questionIndex(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	if err := d.ctrl.Remove(index); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, quizDraftState(draftID, d), logger)
}

func (h *DraftHandler) SubmitQuizDraft(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "SubmitQuizDraft"))

	draftID, d, err := h.lookupQuizDraft(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var saved *model.Quiz
	errMap, err := d.ctrl.Submit(r.Context(), func(ctx context.Context, df form.QuizDraft) error {
		doc, err := form.QuizFromDraft(df)
		if err != nil {
			return err
		}
		if d.docID == "" {
			created, err := h.quizService.CreateQuiz(ctx, doc)
			if err != nil {
				return err
			}
			saved = created
			return nil
		}
		updated, err := h.quizService.UpdateQuiz(ctx, d.docID, doc)
		if err != nil {
			return err
		}
		saved = updated
		return nil
	})
	if len(errMap) > 0 {
		logger.Warn("Quiz draft submit blocked by validation", slog.String("draft_id", draftID.String()))
		respondValidationFailed(w, logger, err, errMap)
		return
	}
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	h.quizDrafts.Delete(draftID)
	logger.Info("Quiz draft submitted", slog.String("draft_id", draftID.String()), slog.String("quiz_id", saved.ID))
	webutil.RespondWithJSON(w, http.StatusOK, saved, logger)
}

func (h *DraftHandler) DeleteQuizDraft(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteQuizDraft"))

	draftID, _, err := h.lookupQuizDraft(r)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	h.quizDrafts.Delete(draftID)
	w.WriteHeader(http.StatusNoContent)
}

// --- ヘルパー ---

func (h *DraftHandler) lookupDeckDraft(r *http.Request) (uuid.UUID, *deckDraft, error) {
	draftID, err := uuid.Parse(chi.URLParam(r, "draft_id"))
	if err != nil {
		return uuid.Nil, nil, draftNotFoundError()
	}
	d, ok := h.deckDrafts.Get(draftID)
	if !ok {
		return uuid.Nil, nil, draftNotFoundError()
	}
	return draftID, d, nil
}

func (h *DraftHandler) lookupQuizDraft(r *http.Request) (uuid.UUID, *quizDraft, error) {
	draftID, err := uuid.Parse(chi.URLParam(r, "draft_id"))
	if err != nil {
		return uuid.Nil, nil, draftNotFoundError()
	}
	d, ok := h.quizDrafts.Get(draftID)
	if !ok {
		return uuid.Nil, nil, draftNotFoundError()
	}
	return draftID, d, nil
}

func draftNotFoundError() *model.AppError {
	return model.NewAppError("DRAFT_NOT_FOUND", "編集中のドラフトが見つかりません。有効期限が切れた可能性があります。", "", model.ErrNotFound)
}

func questionIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		return 0, model.NewAppError("INVALID_QUESTION_INDEX", "質問の位置指定が正しくありません。", "", model.ErrInvalidInput)
	}
	return index, nil
}

func deckDraftState(draftID uuid.UUID, d *deckDraft) draftState[form.DeckHeader, model.DeckQuestion] {
	return draftState[form.DeckHeader, model.DeckQuestion]{
		DraftID:   draftID.String(),
		DocID:     d.docID,
		Header:    d.ctrl.Header(),
		Questions: d.ctrl.Rows(),
		Errors:    d.ctrl.Errors(),
		Valid:     d.ctrl.Valid(),
		CanRemove: d.ctrl.CanRemove(),
	}
}

func quizDraftState(draftID uuid.UUID, d *quizDraft) draftState[form.QuizHeader, form.QuizQuestionDraft] {
	return draftState[form.QuizHeader, form.QuizQuestionDraft]{
		DraftID:   draftID.String(),
		DocID:     d.docID,
		Header:    d.ctrl.Header(),
		Questions: d.ctrl.Rows(),
		Errors:    d.ctrl.Errors(),
		Valid:     d.ctrl.Valid(),
		CanRemove: d.ctrl.CanRemove(),
	}
}

// respondValidationFailed は送信を止めた検証エラーの全件を返します
func respondValidationFailed(w http.ResponseWriter, logger *slog.Logger, err error, errMap form.ErrorMap) {
	detail := model.ErrorDetail{
		Code:    "VALIDATION_FAILED",
		Message: "入力内容に誤りがあります。",
	}
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		detail = appErr.Detail
	}
	webutil.RespondWithJSON(w, http.StatusBadRequest, validationFailedResponse{
		Error:  detail,
		Errors: errMap,
	}, logger)
}
