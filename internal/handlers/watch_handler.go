// internal/handlers/watch_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"sync"

	"go_5_teach_board/internal/config"
	"go_5_teach_board/internal/model"
	"go_5_teach_board/internal/service"

	"github.com/gorilla/websocket"
)

// WatchHandler は一覧のライブ購読をWebSocketで提供します。
// 接続直後に現在のスナップショットを1回送り、以降はコレクションに
// 変更があるたびに最新スナップショット全体を送ります。差分配信は
// 行いません。
type WatchHandler struct {
	deckService service.DeckService
	quizService service.QuizService
	upgrader    websocket.Upgrader
	logger      *slog.Logger
}

// snapshotFrame はクライアントへ送る1メッセージです
type snapshotFrame struct {
	Collection string `json:"collection"`
	Documents  any    `json:"documents"`
}

func NewWatchHandler(deckService service.DeckService, quizService service.QuizService, logger *slog.Logger) *WatchHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WatchHandler{
		deckService: deckService,
		quizService: quizService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// 購読自体はSessionGateで保護済みのため、オリジンは
			// ここでは制限しない
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// WatchDecks はデッキ一覧のライブ購読エンドポイントです
func (h *WatchHandler) WatchDecks(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "WatchDecks"))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("Failed to upgrade connection", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	sender := newFrameSender(conn, config.CollectionFlashcards)

	decks, err := h.deckService.ListDecks(r.Context())
	if err != nil {
		logger.Error("Failed to take initial snapshot", slog.Any("error", err))
		return
	}
	if decks == nil {
		decks = []*model.FlashcardDeck{}
	}
	if err := sender.send(decks); err != nil {
		logger.Warn("Failed to send initial snapshot", slog.String("error", err.Error()))
		return
	}

	unsubscribe := h.deckService.WatchDecks(func(docs []*model.FlashcardDeck) {
		if err := sender.send(docs); err != nil {
			logger.Warn("Failed to push snapshot, dropping subscriber", slog.String("error", err.Error()))
		}
	})
	defer unsubscribe()

	logger.Info("Deck watch started", slog.String("remote_addr", r.RemoteAddr))
	waitForClose(conn)
	logger.Info("Deck watch closed", slog.String("remote_addr", r.RemoteAddr))
}

// WatchQuizzes はクイズ一覧のライブ購読エンドポイントです
func (h *WatchHandler) WatchQuizzes(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "WatchQuizzes"))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("Failed to upgrade connection", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	sender := newFrameSender(conn, config.CollectionQuizzes)

	quizzes, err := h.quizService.ListQuizzes(r.Context())
	if err != nil {
		logger.Error("Failed to take initial snapshot", slog.Any("error", err))
		return
	}
	if quizzes == nil {
		quizzes = []*model.Quiz{}
	}
	if err := sender.send(quizzes); err != nil {
		logger.Warn("Failed to send initial snapshot", slog.String("error", err.Error()))
		return
	}

	unsubscribe := h.quizService.WatchQuizzes(func(docs []*model.Quiz) {
		if err := sender.send(docs); err != nil {
			logger.Warn("Failed to push snapshot, dropping subscriber", slog.String("error", err.Error()))
		}
	})
	defer unsubscribe()

	logger.Info("Quiz watch started", slog.String("remote_addr", r.RemoteAddr))
	waitForClose(conn)
	logger.Info("Quiz watch closed", slog.String("remote_addr", r.RemoteAddr))
}

// frameSender は1本のWebSocket接続への書き込みを直列化します。
// 購読コールバックとハンドラ本体が同時に書き込むため排他が必要。
type frameSender struct {
	mu         sync.Mutex
	conn       *websocket.Conn
	collection string
}

func newFrameSender(conn *websocket.Conn, collection string) *frameSender {
	return &frameSender{conn: conn, collection: collection}
}

func (s *frameSender) send(docs any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(snapshotFrame{Collection: s.collection, Documents: docs})
}

// waitForClose はクライアントからの切断まで読み取りループを回します。
// クライアントからのメッセージ本文は使いません。
func waitForClose(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
