// internal/handlers/draft_handler_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_5_teach_board/internal/handlers"
	"go_5_teach_board/internal/model"
	"go_5_teach_board/internal/service"
	"go_5_teach_board/internal/store"
	"go_5_teach_board/internal/webutil"
)

// draftStateJSON はドラフトAPIレスポンスの検証用の読み取り構造体です
type draftStateJSON struct {
	DraftID   string            `json:"draft_id"`
	DocID     string            `json:"doc_id"`
	Header    json.RawMessage   `json:"header"`
	Questions []json.RawMessage `json:"questions"`
	Errors    map[string]string `json:"errors"`
	Valid     bool              `json:"valid"`
	CanRemove bool              `json:"can_remove"`
}

func newDraftTestEnv(t *testing.T) (*chi.Mux, service.DeckService, service.QuizService) {
	t.Helper()

	deckCol := store.NewMemoryCollection("flashcards", func(d *model.FlashcardDeck) bool {
		return webutil.Validator.Struct(d) == nil
	})
	quizCol := store.NewMemoryCollection("quizzes", func(q *model.Quiz) bool {
		return webutil.Validator.Struct(q) == nil
	})
	deckService := service.NewDeckService(deckCol)
	quizService := service.NewQuizService(quizCol)

	handler := handlers.NewDraftHandler(
		deckService,
		quizService,
		handlers.NewDeckDraftRegistry(time.Minute),
		handlers.NewQuizDraftRegistry(time.Minute),
		nil,
	)

	r := chi.NewRouter()
	r.Route("/api/v1/drafts", func(r chi.Router) {
		r.Route("/decks", func(r chi.Router) {
			r.Post("/", handler.CreateDeckDraft)
			r.Route("/{draft_id}", func(r chi.Router) {
				r.Get("/", handler.GetDeckDraft)
				r.Delete("/", handler.DeleteDeckDraft)
				r.Put("/header", handler.PutDeckDraftHeader)
				r.Post("/questions", handler.PostDeckDraftQuestion)
				r.Put("/questions/{index}", handler.PutDeckDraftQuestion)
				r.Delete("/questions/{index}", handler.DeleteDeckDraftQuestion)
				r.Post("/submit", handler.SubmitDeckDraft)
			})
		})
		r.Route("/quizzes", func(r chi.Router) {
			r.Post("/", handler.CreateQuizDraft)
			r.Route("/{draft_id}", func(r chi.Router) {
				r.Get("/", handler.GetQuizDraft)
				r.Delete("/", handler.DeleteQuizDraft)
				r.Put("/header", handler.PutQuizDraftHeader)
				r.Post("/questions", handler.PostQuizDraftQuestion)
				r.Put("/questions/{index}", handler.PutQuizDraftQuestion)
				r.Delete("/questions/{index}", handler.DeleteQuizDraftQuestion)
				r.Post("/submit", handler.SubmitQuizDraft)
			})
		})
	})
	return r, deckService, quizService
}

func doJSON(t *testing.T, router *chi.Mux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func parseDraftState(t *testing.T, rec *httptest.ResponseRecorder) draftStateJSON {
	t.Helper()
	var state draftStateJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	return state
}

// 新規デッキ編集の一連の流れ: ドラフト作成 → 入力 → 行追加 → 送信
func TestDraftHandler_DeckLifecycle(t *testing.T) {
	router, deckService, _ := newDraftTestEnv(t)

	// ドラフト作成: 既定値の行が1件入った新規フォーム
	rec := doJSON(t, router, http.MethodPost, "/api/v1/drafts/decks/", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	state := parseDraftState(t, rec)
	require.NotEmpty(t, state.DraftID)
	assert.Len(t, state.Questions, 1)
	assert.False(t, state.Valid)
	assert.False(t, state.CanRemove)

	base := "/api/v1/drafts/decks/" + state.DraftID

	// ヘッダ入力
	rec = doJSON(t, router, http.MethodPut, base+"/header", map[string]string{
		"name": "Unit 1",
		"type": "english",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	state = parseDraftState(t, rec)
	assert.NotContains(t, state.Errors, "name")

	// 1行目入力
	rec = doJSON(t, router, http.MethodPut, base+"/questions/0", map[string]string{
		"question":   "apple",
		"answer":     "りんご",
		"difficulty": "easy",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	state = parseDraftState(t, rec)
	assert.True(t, state.Valid)

	// 行追加: 空行が増えて検証エラーに戻る
	rec = doJSON(t, router, http.MethodPost, base+"/questions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	state = parseDraftState(t, rec)
	assert.Len(t, state.Questions, 2)
	assert.True(t, state.CanRemove)
	assert.False(t, state.Valid)
	assert.Contains(t, state.Errors, "questions[1].question")

	// 検証エラーのまま送信すると拒否される
	rec = doJSON(t, router, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var failed struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &failed))
	assert.Contains(t, failed.Errors, "questions[1].question")

	// 2行目を埋めて送信
	rec = doJSON(t, router, http.MethodPut, base+"/questions/1", map[string]string{
		"question": "banana",
		"answer":   "バナナ",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var saved model.FlashcardDeck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	require.NotEmpty(t, saved.ID)
	assert.Equal(t, "Unit 1", saved.Name)
	require.Len(t, saved.Questions, 2)

	// ストアにも保存されている
	got, err := deckService.GetDeck(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Unit 1", got.Name)

	// 送信済みドラフトは破棄されている
	rec = doJSON(t, router, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDraftHandler_DeckEditExisting(t *testing.T) {
	router, deckService, _ := newDraftTestEnv(t)

	created, err := deckService.CreateDeck(context.Background(), &model.FlashcardDeck{
		Name: "Unit 1",
		Questions: []model.DeckQuestion{
			{Question: "apple", Answer: "りんご"},
		},
	})
	require.NoError(t, err)

	// 既存デッキの内容でドラフトが始まる
	rec := doJSON(t, router, http.MethodPost, "/api/v1/drafts/decks/", map[string]string{"doc_id": created.ID})
	require.Equal(t, http.StatusCreated, rec.Code)
	state := parseDraftState(t, rec)
	assert.Equal(t, created.ID, state.DocID)
	assert.Len(t, state.Questions, 1)
	assert.True(t, state.Valid)

	base := "/api/v1/drafts/decks/" + state.DraftID

	// 名前を変えて送信すると同じドキュメントが上書きされる
	rec = doJSON(t, router, http.MethodPut, base+"/header", map[string]string{"name": "Unit 1 (改)"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := deckService.GetDeck(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Unit 1 (改)", got.Name)

	decks, err := deckService.ListDecks(context.Background())
	require.NoError(t, err)
	assert.Len(t, decks, 1, "update should not create a second document")
}

func TestDraftHandler_DeckRemoveGuard(t *testing.T) {
	router, _, _ := newDraftTestEnv(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/drafts/decks/", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	state := parseDraftState(t, rec)
	base := "/api/v1/drafts/decks/" + state.DraftID

	// 最後の1行は削除できない
	rec = doJSON(t, router, http.MethodDelete, base+"/questions/0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// 行を増やせば削除できる
	rec = doJSON(t, router, http.MethodPost, base+"/questions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodDelete, base+"/questions/0", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	state = parseDraftState(t, rec)
	assert.Len(t, state.Questions, 1)
	assert.False(t, state.CanRemove)
}

func TestDraftHandler_UnknownDraft(t *testing.T) {
	router, _, _ := newDraftTestEnv(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/drafts/decks/"+"0b5f9c1e-9f9e-4f0f-8d3a-1234567890ab", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/drafts/decks/not-a-uuid", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// クイズの答えは編集中は文字列、保存時は数値
func TestDraftHandler_QuizAnswerCoercion(t *testing.T) {
	router, _, quizService := newDraftTestEnv(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/drafts/quizzes/", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	state := parseDraftState(t, rec)
	base := "/api/v1/drafts/quizzes/" + state.DraftID

	rec = doJSON(t, router, http.MethodPut, base+"/header", map[string]string{"name": "Chapter 3"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPut, base+"/questions/0", map[string]any{
		"question": "2+2は?",
		"options":  []string{"3", "4", "5", "6"},
		"answer":   "1",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	state = parseDraftState(t, rec)
	require.True(t, state.Valid)

	rec = doJSON(t, router, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var saved model.Quiz
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	require.Len(t, saved.Questions, 1)
	assert.Equal(t, 1, saved.Questions[0].Answer)

	got, err := quizService.GetQuiz(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Questions[0].Answer)

	// 編集で読み直すと答えは文字列に戻る
	rec = doJSON(t, router, http.MethodPost, "/api/v1/drafts/quizzes/", map[string]string{"doc_id": saved.ID})
	require.Equal(t, http.StatusCreated, rec.Code)
	state = parseDraftState(t, rec)
	require.Len(t, state.Questions, 1)
	var row struct {
		Value struct {
			Answer string `json:"answer"`
		} `json:"value"`
	}
	require.NoError(t, json.Unmarshal(state.Questions[0], &row))
	assert.Equal(t, "1", row.Value.Answer)
}
