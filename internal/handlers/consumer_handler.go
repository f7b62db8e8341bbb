// internal/handlers/consumer_handler.go
package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"go_5_teach_board/internal/webutil"
)

// ConsumerHandler は外部システムからの通知をそのまま受け取る
// 汎用エンドポイントです。ボディの形式は検証せず、受領した内容を
// ログに残してエコーバックします。
type ConsumerHandler struct {
	logger *slog.Logger
}

func NewConsumerHandler(logger *slog.Logger) *ConsumerHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsumerHandler{logger: logger}
}

func (h *ConsumerHandler) Consume(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "Consume"))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("Failed to read consumer body", slog.Any("error", err))
		webutil.RespondWithJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Something went wrong",
		}, logger)
		return
	}
	defer r.Body.Close()

	logger.Info("Consumer payload received", slog.Int("bytes", len(body)))

	// JSONとして読める場合は構造を保ったまま返す
	var parsed any
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil {
		webutil.RespondWithJSON(w, http.StatusOK, map[string]any{
			"message": "Success",
			"body":    parsed,
		}, logger)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]any{
		"message": "Success",
		"body":    string(body),
	}, logger)
}
