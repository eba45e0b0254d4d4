package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneNotes(t *testing.T) {
	updated := time.Date(2024, 3, 6, 10, 30, 0, 0, time.FixedZone("JST", 9*60*60))
	notes := []Note{
		{
			ID:        "a",
			Title:     "Buy milk",
			Todos:     []Todo{{Text: "2 liters"}},
			CreatedAt: time.Date(2024, 3, 5, 9, 7, 0, 0, time.UTC),
			UpdatedAt: &updated,
			Location:  "Kyoto, Japan",
		},
		{ID: "b", Title: "Walk dog", Todos: []Todo{}},
	}

	clone := CloneNotes(notes)
	require.Equal(t, notes, clone)

	clone[0].Todos[0].Done = true
	*clone[0].UpdatedAt = clone[0].UpdatedAt.Add(time.Hour)

	assert.False(t, notes[0].Todos[0].Done)
	assert.Equal(t, updated, *notes[0].UpdatedAt)
	assert.Nil(t, clone[1].UpdatedAt)
}

func TestCloneNotes_NilTodos(t *testing.T) {
	clone := CloneNotes([]Note{{ID: "a"}})
	assert.Equal(t, []Todo{}, clone[0].Todos)
}

func TestCloneNotes_Empty(t *testing.T) {
	assert.Equal(t, []Note{}, CloneNotes(nil))
}

func TestHistory(t *testing.T) {
	h := NewHistory()
	assert.Equal(t, -1, h.Index())

	_, ok := h.Back()
	assert.False(t, ok)

	a := []Note{{ID: "a", Todos: []Todo{}}}
	ab := []Note{{ID: "a", Todos: []Todo{}}, {ID: "b", Todos: []Todo{}}}

	h.Push(a)
	h.Push(ab)
	assert.Equal(t, 1, h.Index())
	assert.Equal(t, Digest(ab), h.Entries()[1].Sum)

	notes, ok := h.Back()
	require.True(t, ok)
	assert.Equal(t, a, notes)

	_, ok = h.Back()
	assert.False(t, ok)

	notes, ok = h.Forward()
	require.True(t, ok)
	assert.Equal(t, ab, notes)

	_, ok = h.Forward()
	assert.False(t, ok)

	h.Back()
	h.Push([]Note{{ID: "c"}})
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Index())
	assert.Equal(t, ab, h.Entries()[1].Notes)
	assert.Equal(t, []Note{{ID: "c", Todos: []Todo{}}}, h.Entries()[2].Notes)
}

func TestHistory_PushCopies(t *testing.T) {
	h := NewHistory()
	notes := []Note{{ID: "a", Todos: []Todo{{Text: "x"}}}}

	h.Push(notes)
	notes[0].Todos[0].Text = "y"

	assert.Equal(t, "x", h.Entries()[0].Notes[0].Todos[0].Text)
	assert.NotEqual(t, Digest(notes), h.Entries()[0].Sum)
}
