package mirror

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// article is a minimal item shape for mirror tests.
type article struct {
	ID    string
	Title string
	Tag   string
}

func articleID(a article) string {
	return a.ID
}

func newTestList(t *testing.T, items ...article) *List[article] {
	t.Helper()

	l := NewList(articleID, nil)
	l.Reset(items)

	return l
}

func TestReset_ReplacesWholesale(t *testing.T) {
	l := newTestList(t,
		article{ID: "a", Title: "first"},
		article{ID: "b", Title: "second"},
	)

	l.Reset([]article{
		{ID: "c", Title: "third"},
	})

	require.Equal(t, 1, l.Len())

	got, ok := l.Get("c")
	require.True(t, ok)
	assert.Equal(t, "third", got.Title)

	_, ok = l.Get("a")
	assert.False(t, ok)
}

func TestReset_DropsDuplicateIDsFirstWins(t *testing.T) {
	l := newTestList(t)

	l.Reset([]article{
		{ID: "a", Title: "kept"},
		{ID: "b", Title: "other"},
		{ID: "a", Title: "dropped"},
	})

	require.Equal(t, 2, l.Len())

	got, ok := l.Get("a")
	require.True(t, ok)
	assert.Equal(t, "kept", got.Title)
}

func TestCreate_AppendsToEnd(t *testing.T) {
	l := newTestList(t,
		article{ID: "a"},
		article{ID: "b"},
		article{ID: "c"},
	)

	err := l.Create(article{ID: "d", Title: "new"})
	require.NoError(t, err)

	items := l.Items()
	require.Len(t, items, 4)
	assert.Equal(t, "d", items[3].ID)
}

func TestCreate_DuplicateID(t *testing.T) {
	l := newTestList(t, article{ID: "a"})

	err := l.Create(article{ID: "a", Title: "again"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateID)

	// The mirror is untouched by the failed create.
	assert.Equal(t, 1, l.Len())
}

func TestDelete_RemovesPreservingOrder(t *testing.T) {
	l := newTestList(t,
		article{ID: "a"},
		article{ID: "b"},
		article{ID: "c"},
		article{ID: "d"},
		article{ID: "e"},
	)

	l.Delete("c")

	items := l.Items()
	require.Len(t, items, 4)
	assert.Equal(t, []string{"a", "b", "d", "e"}, ids(items))
}

func TestDelete_AbsentIDIsNoOp(t *testing.T) {
	l := newTestList(t, article{ID: "a"}, article{ID: "b"})

	l.Delete("zzz")

	assert.Equal(t, []string{"a", "b"}, ids(l.Items()))
}

func TestUpdate_PatchesOnlyNamedFields(t *testing.T) {
	l := newTestList(t,
		article{ID: "a", Title: "old title", Tag: "city"},
		article{ID: "b", Title: "other", Tag: "sports"},
	)

	err := l.Update("a", func(item *article) {
		item.Title = "new title"
	})
	require.NoError(t, err)

	got, ok := l.Get("a")
	require.True(t, ok)
	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, "city", got.Tag, "fields outside the patch must be untouched")
	assert.Equal(t, 2, l.Len())
}

func TestUpdate_UnknownID(t *testing.T) {
	l := newTestList(t, article{ID: "a"})

	err := l.Update("zzz", func(item *article) {
		item.Title = "never applied"
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestItems_ReturnsIndependentCopy(t *testing.T) {
	l := newTestList(t, article{ID: "a", Title: "orig"})

	items := l.Items()
	items[0].Title = "mutated"

	got, ok := l.Get("a")
	require.True(t, ok)
	assert.Equal(t, "orig", got.Title)
}

func ids(items []article) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}

	return out
}
