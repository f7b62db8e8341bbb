package store

import (
	"context"
	"sync"

	"go_5_teach_board/internal/model"

	"github.com/google/uuid"
)

// MemoryCollection はインメモリのCollection実装です。
// 開発時のフォールバックとテストで使用します。スナップショットの順序は
// 作成順で固定です。
type MemoryCollection[T Document] struct {
	mu    sync.Mutex
	name  string
	docs  map[string]T
	order []string
	valid func(doc T) bool
	hub   *hub[T]
	pub   ChangePublisher
}

// NewMemoryCollection はインメモリコレクションを生成します。
// validは読み取り境界のスキーマ検証です。検証に通らないドキュメントは
// 存在しないものとして扱います（フェイルクローズ）。
func NewMemoryCollection[T Document](name string, valid func(doc T) bool) *MemoryCollection[T] {
	if valid == nil {
		valid = func(T) bool { return true }
	}
	return &MemoryCollection[T]{
		name:  name,
		docs:  make(map[string]T),
		valid: valid,
		hub:   newHub[T](),
	}
}

// SetPublisher は他インスタンスへの変更通知先を設定します（任意）
func (c *MemoryCollection[T]) SetPublisher(pub ChangePublisher) {
	c.pub = pub
}

func (c *MemoryCollection[T]) Create(ctx context.Context, doc T) (string, error) {
	id := uuid.NewString()
	doc.SetID(id)

	c.mu.Lock()
	c.docs[id] = doc
	c.order = append(c.order, id)
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.changed(ctx, snapshot)
	return id, nil
}

func (c *MemoryCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	c.mu.Lock()
	doc, ok := c.docs[id]
	c.mu.Unlock()

	if !ok || !c.valid(doc) {
		return zero, model.ErrNotFound
	}
	return doc, nil
}

func (c *MemoryCollection[T]) Update(ctx context.Context, id string, doc T) error {
	c.mu.Lock()
	if _, ok := c.docs[id]; !ok {
		c.mu.Unlock()
		return model.ErrNotFound
	}
	doc.SetID(id)
	c.docs[id] = doc
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.changed(ctx, snapshot)
	return nil
}

func (c *MemoryCollection[T]) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	if _, ok := c.docs[id]; !ok {
		c.mu.Unlock()
		return model.ErrNotFound
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.changed(ctx, snapshot)
	return nil
}

func (c *MemoryCollection[T]) Snapshot(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked(), nil
}

func (c *MemoryCollection[T]) Subscribe(fn func(docs []T)) (unsubscribe func()) {
	return c.hub.subscribe(fn)
}

func (c *MemoryCollection[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.hub.notify(snapshot)
	return nil
}

// snapshotLocked は作成順の有効ドキュメント一覧を返します。要ロック。
func (c *MemoryCollection[T]) snapshotLocked() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		doc, ok := c.docs[id]
		if !ok || !c.valid(doc) {
			continue
		}
		out = append(out, doc)
	}
	return out
}

// changed はローカルの購読者へ通知し、設定されていれば他インスタンスへも
// 変更を伝搬します。
func (c *MemoryCollection[T]) changed(ctx context.Context, snapshot []T) {
	c.hub.notify(snapshot)
	if c.pub != nil {
		c.pub.PublishChange(ctx, c.name)
	}
}
