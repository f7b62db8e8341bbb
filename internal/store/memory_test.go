package store_test

import (
	"context"
	"errors"
	"testing"

	"go_5_teach_board/internal/model"
	"go_5_teach_board/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDeck(d *model.FlashcardDeck) bool {
	return d.Name != "" && len(d.Questions) > 0
}

func newDeck(name string) *model.FlashcardDeck {
	return &model.FlashcardDeck{
		Name: name,
		Questions: []model.DeckQuestion{
			{Question: "q", Answer: "a"},
		},
	}
}

func TestMemoryCollection_CRUD(t *testing.T) {
	ctx := context.Background()
	col := store.NewMemoryCollection("flashcards", validDeck)

	// Create
	id, err := col.Create(ctx, newDeck("Unit 1"))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	// Get
	got, err := col.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Unit 1", got.Name)
	assert.Equal(t, id, got.GetID())

	// Update は全体上書き
	updated := newDeck("Unit 1 (改)")
	require.NoError(t, col.Update(ctx, id, updated))
	got, err = col.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Unit 1 (改)", got.Name)

	// Delete
	require.NoError(t, col.Delete(ctx, id))
	_, err = col.Get(ctx, id)
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestMemoryCollection_NotFound(t *testing.T) {
	ctx := context.Background()
	col := store.NewMemoryCollection("flashcards", validDeck)

	_, err := col.Get(ctx, "missing")
	assert.True(t, errors.Is(err, model.ErrNotFound))

	err = col.Update(ctx, "missing", newDeck("x"))
	assert.True(t, errors.Is(err, model.ErrNotFound))

	err = col.Delete(ctx, "missing")
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestMemoryCollection_SnapshotOrder(t *testing.T) {
	ctx := context.Background()
	col := store.NewMemoryCollection("flashcards", validDeck)

	names := []string{"Unit 1", "Unit 2", "Unit 3"}
	for _, name := range names {
		_, err := col.Create(ctx, newDeck(name))
		require.NoError(t, err)
	}

	snapshot, err := col.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot, 3)
	for i, name := range names {
		assert.Equal(t, name, snapshot[i].Name)
	}
}

// スキーマ検証に通らないドキュメントは存在しないものとして扱う
func TestMemoryCollection_FailClosed(t *testing.T) {
	ctx := context.Background()
	col := store.NewMemoryCollection("flashcards", validDeck)

	// 検証を通らないドキュメントを直接書き込む
	broken := &model.FlashcardDeck{Name: ""}
	id, err := col.Create(ctx, broken)
	require.NoError(t, err)

	_, err = col.Get(ctx, id)
	assert.True(t, errors.Is(err, model.ErrNotFound))

	snapshot, err := col.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot)
}

func TestMemoryCollection_Subscribe(t *testing.T) {
	ctx := context.Background()
	col := store.NewMemoryCollection("flashcards", validDeck)

	var notifications [][]*model.FlashcardDeck
	unsubscribe := col.Subscribe(func(docs []*model.FlashcardDeck) {
		notifications = append(notifications, docs)
	})

	id, err := col.Create(ctx, newDeck("Unit 1"))
	require.NoError(t, err)
	_, err = col.Create(ctx, newDeck("Unit 2"))
	require.NoError(t, err)
	require.NoError(t, col.Delete(ctx, id))

	// 変更ごとに毎回スナップショット全体が届く
	require.Len(t, notifications, 3)
	assert.Len(t, notifications[0], 1)
	assert.Len(t, notifications[1], 2)
	require.Len(t, notifications[2], 1)
	assert.Equal(t, "Unit 2", notifications[2][0].Name)

	// 購読解除後は通知されない (二重解除も安全)
	unsubscribe()
	unsubscribe()
	_, err = col.Create(ctx, newDeck("Unit 3"))
	require.NoError(t, err)
	assert.Len(t, notifications, 3)
}

func TestMemoryCollection_Refresh(t *testing.T) {
	ctx := context.Background()
	col := store.NewMemoryCollection("flashcards", validDeck)

	_, err := col.Create(ctx, newDeck("Unit 1"))
	require.NoError(t, err)

	var notified [][]*model.FlashcardDeck
	defer col.Subscribe(func(docs []*model.FlashcardDeck) {
		notified = append(notified, docs)
	})()

	// 他インスタンスからの変更通知を受けた想定
	require.NoError(t, col.Refresh(ctx))
	require.Len(t, notified, 1)
	assert.Len(t, notified[0], 1)
}

// 複数の購読者には登録順に同じスナップショットが届く
func TestMemoryCollection_MultipleSubscribers(t *testing.T) {
	ctx := context.Background()
	col := store.NewMemoryCollection("flashcards", validDeck)

	var order []string
	defer col.Subscribe(func(docs []*model.FlashcardDeck) {
		order = append(order, "first")
	})()
	defer col.Subscribe(func(docs []*model.FlashcardDeck) {
		order = append(order, "second")
	})()

	_, err := col.Create(ctx, newDeck("Unit 1"))
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, order)
}
