// internal/handlers/watch_handler_test.go
package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_5_teach_board/internal/handlers"
	"go_5_teach_board/internal/model"
	"go_5_teach_board/internal/service"
	"go_5_teach_board/internal/store"
	"go_5_teach_board/internal/webutil"
)

type watchFrame struct {
	Collection string          `json:"collection"`
	Documents  json.RawMessage `json:"documents"`
}

func newWatchTestServer(t *testing.T) (*httptest.Server, service.DeckService, service.QuizService) {
	t.Helper()

	deckCol := store.NewMemoryCollection("flashcards", func(d *model.FlashcardDeck) bool {
		return webutil.Validator.Struct(d) == nil
	})
	quizCol := store.NewMemoryCollection("quizzes", func(q *model.Quiz) bool {
		return webutil.Validator.Struct(q) == nil
	})
	deckService := service.NewDeckService(deckCol)
	quizService := service.NewQuizService(quizCol)

	handler := handlers.NewWatchHandler(deckService, quizService, nil)

	r := chi.NewRouter()
	r.Get("/api/v1/flashcards/watch", handler.WatchDecks)
	r.Get("/api/v1/quizzes/watch", handler.WatchQuizzes)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, deckService, quizService
}

func dialWatch(t *testing.T, server *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	wsURL := strings.Replace(server.URL, "http://", "ws://", 1) + path
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) watchFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame watchFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestWatchHandler_InitialSnapshot(t *testing.T) {
	server, deckService, _ := newWatchTestServer(t)

	_, err := deckService.CreateDeck(context.Background(), &model.FlashcardDeck{
		Name:      "Unit 1",
		Questions: []model.DeckQuestion{{Question: "apple", Answer: "りんご"}},
	})
	require.NoError(t, err)

	conn := dialWatch(t, server, "/api/v1/flashcards/watch")

	// 接続直後に現在のスナップショットが届く
	frame := readFrame(t, conn)
	assert.Equal(t, "flashcards", frame.Collection)

	var decks []*model.FlashcardDeck
	require.NoError(t, json.Unmarshal(frame.Documents, &decks))
	require.Len(t, decks, 1)
	assert.Equal(t, "Unit 1", decks[0].Name)
}

func TestWatchHandler_EmptyInitialSnapshot(t *testing.T) {
	server, _, _ := newWatchTestServer(t)

	conn := dialWatch(t, server, "/api/v1/quizzes/watch")

	frame := readFrame(t, conn)
	assert.Equal(t, "quizzes", frame.Collection)
	assert.JSONEq(t, "[]", string(frame.Documents))
}

func TestWatchHandler_PushesOnChange(t *testing.T) {
	server, deckService, _ := newWatchTestServer(t)

	conn := dialWatch(t, server, "/api/v1/flashcards/watch")

	// 初回スナップショット (空)
	frame := readFrame(t, conn)
	assert.JSONEq(t, "[]", string(frame.Documents))

	// サーバー側の購読登録が済むのを待つ
	time.Sleep(50 * time.Millisecond)

	// 変更のたびにスナップショット全体が届く
	created, err := deckService.CreateDeck(context.Background(), &model.FlashcardDeck{
		Name:      "Unit 1",
		Questions: []model.DeckQuestion{{Question: "apple", Answer: "りんご"}},
	})
	require.NoError(t, err)

	frame = readFrame(t, conn)
	var decks []*model.FlashcardDeck
	require.NoError(t, json.Unmarshal(frame.Documents, &decks))
	require.Len(t, decks, 1)
	assert.Equal(t, created.ID, decks[0].ID)

	require.NoError(t, deckService.DeleteDeck(context.Background(), created.ID))
	frame = readFrame(t, conn)
	assert.JSONEq(t, "[]", string(frame.Documents))
}

func TestWatchHandler_RejectsPlainHTTP(t *testing.T) {
	server, _, _ := newWatchTestServer(t)

	resp, err := http.Get(server.URL + "/api/v1/flashcards/watch")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
