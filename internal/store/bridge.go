package store

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Bridge はRedisのPub/Subを使ってコレクションの変更を他インスタンスへ
// 伝搬します。メッセージ本文は変更されたコレクション名です。
type Bridge struct {
	rdb     *redis.Client
	channel string
	logger  *slog.Logger
}

func NewBridge(rdb *redis.Client, channel string, logger *slog.Logger) *Bridge {
	return &Bridge{rdb: rdb, channel: channel, logger: logger}
}

// PublishChange は変更通知を発行します。通知は補助的なものなので
// 失敗してもエラーは返さずログに残すだけにします。
func (b *Bridge) PublishChange(ctx context.Context, collection string) {
	if err := b.rdb.Publish(ctx, b.channel, collection).Err(); err != nil {
		b.logger.Warn("Failed to publish change notification", "collection", collection, "error", err)
	}
}

// Run は変更通知を購読し、対象コレクションのスナップショットを再配信
// させます。ctxのキャンセルで停止します。
func (b *Bridge) Run(ctx context.Context, targets map[string]Refresher) {
	sub := b.rdb.Subscribe(ctx, b.channel)
	defer sub.Close()

	b.logger.Info("Change notification subscriber started", "channel", b.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Change notification subscriber stopped")
			return
		case msg, ok := <-ch:
			if !ok {
				b.logger.Warn("Change notification channel closed")
				return
			}
			target, ok := targets[msg.Payload]
			if !ok {
				b.logger.Warn("Received change for unknown collection", "collection", msg.Payload)
				continue
			}
			if err := target.Refresh(ctx); err != nil {
				b.logger.Error("Failed to refresh collection after change", "collection", msg.Payload, "error", err)
			}
		}
	}
}
