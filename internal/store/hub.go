package store

import (
	"sort"
	"sync"
)

// hub はコレクション単位の購読者管理です。通知は登録順に同期的に行います。
type hub[T Document] struct {
	mu   sync.Mutex
	next int
	subs map[int]func(docs []T)
}

func newHub[T Document]() *hub[T] {
	return &hub[T]{subs: make(map[int]func(docs []T))}
}

func (h *hub[T]) subscribe(fn func(docs []T)) (unsubscribe func()) {
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

func (h *hub[T]) notify(docs []T) {
	// コールバック中の購読解除とデッドロックしないよう、ロック外で呼び出す。
	// mapの走査順は不定なので登録順に並べ直す。
	h.mu.Lock()
	ids := make([]int, 0, len(h.subs))
	for id := range h.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(docs []T), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, h.subs[id])
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(docs)
	}
}

func (h *hub[T]) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
