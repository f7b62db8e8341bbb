package draft_test

import (
	"testing"
	"time"

	"go_5_teach_board/internal/draft"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_PutGetDelete(t *testing.T) {
	r := draft.NewRegistry[string](time.Minute)

	id := r.Put("draft-a")
	got, ok := r.Get(id)
	require.True(t, ok)
	assert.Equal(t, "draft-a", got)
	assert.Equal(t, 1, r.Len())

	r.Delete(id)
	_, ok = r.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_UnknownID(t *testing.T) {
	r := draft.NewRegistry[string](time.Minute)

	_, ok := r.Get(uuid.New())
	assert.False(t, ok)

	// 未登録IDの削除は何も起きない
	r.Delete(uuid.New())
}

func TestRegistry_Expiry(t *testing.T) {
	r := draft.NewRegistry[string](10 * time.Millisecond)

	id := r.Put("draft-a")
	time.Sleep(30 * time.Millisecond)

	_, ok := r.Get(id)
	assert.False(t, ok, "expired draft should not be returned")
}

// Getするたびに有効期限が延長されること
func TestRegistry_SlidingExpiry(t *testing.T) {
	r := draft.NewRegistry[string](50 * time.Millisecond)

	id := r.Put("draft-a")
	for i := 0; i < 4; i++ {
		time.Sleep(20 * time.Millisecond)
		_, ok := r.Get(id)
		require.True(t, ok, "draft should stay alive while being touched")
	}
}

func TestRegistry_Sweep(t *testing.T) {
	r := draft.NewRegistry[string](10 * time.Millisecond)

	r.Put("a")
	r.Put("b")
	keep := r.Put("c")

	time.Sleep(30 * time.Millisecond)
	// 1件だけ触って延命する
	_, ok := r.Get(keep)
	require.False(t, ok) // 延命前に期限切れ

	removed := r.Sweep(time.Now())
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, r.Len())
}
