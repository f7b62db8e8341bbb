// Package draft は編集中フォームのサーバー側セッション管理を提供します。
// ドラフトはIDで引けるインメモリのエントリで、一定時間操作がないと
// 破棄されます。
package draft

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Registry は有効期限付きのドラフト置き場です。
// Getのたびに有効期限を延長します（スライディング方式）。
type Registry[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[uuid.UUID]entry[T]
}

func NewRegistry[T any](ttl time.Duration) *Registry[T] {
	return &Registry[T]{
		ttl:     ttl,
		entries: make(map[uuid.UUID]entry[T]),
	}
}

// Put はドラフトを登録し、発行したIDを返します
func (r *Registry[T]) Put(value T) uuid.UUID {
	id := uuid.New()
	r.mu.Lock()
	r.entries[id] = entry[T]{value: value, expiresAt: time.Now().Add(r.ttl)}
	r.mu.Unlock()
	return id
}

// Get はドラフトを取得し有効期限を延長します。
// 未登録または期限切れの場合は見つからなかったことを返します。
func (r *Registry[T]) Get(id uuid.UUID) (T, bool) {
	var zero T
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		delete(r.entries, id)
		return zero, false
	}
	e.expiresAt = time.Now().Add(r.ttl)
	r.entries[id] = e
	return e.value, true
}

// Delete はドラフトを破棄します。未登録でもエラーにはなりません。
func (r *Registry[T]) Delete(id uuid.UUID) {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}

// Len は現在保持しているドラフト数を返します
func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep は期限切れのドラフトを破棄し、破棄した件数を返します
func (r *Registry[T]) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.entries {
		if now.After(e.expiresAt) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// StartSweeper は一定間隔で期限切れドラフトを破棄するゴルーチンを
// 起動します。ctxのキャンセルで停止します。
func (r *Registry[T]) StartSweeper(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if removed := r.Sweep(now); removed > 0 {
					logger.Info("Expired drafts swept", "removed", removed, "remaining", r.Len())
				}
			}
		}
	}()
}
