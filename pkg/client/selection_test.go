package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionToggleIdempotence(t *testing.T) {
	s := NewSelection()

	s.Toggle("a")
	assert.True(t, s.Has("a"))
	assert.Equal(t, 1, s.Count())

	// Toggling the same id again restores the original state
	s.Toggle("a")
	assert.False(t, s.Has("a"))
	assert.Equal(t, 0, s.Count())
}

func TestSelectionSelectAllAndClear(t *testing.T) {
	s := NewSelection()
	ids := []string{"a", "b", "c", "d"}

	s.SelectAll(ids)
	assert.Equal(t, len(ids), s.Count())
	for _, id := range ids {
		assert.True(t, s.Has(id))
	}

	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.False(t, s.Has("a"))
}

func TestSelectionSelectAllIsIdempotent(t *testing.T) {
	s := NewSelection()
	s.Toggle("b")
	s.SelectAll([]string{"a", "b"})

	assert.Equal(t, 2, s.Count())
}

func TestSelectionIDsDeterministicOrder(t *testing.T) {
	s := NewSelection()
	s.SelectAll([]string{"c", "a", "b"})

	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
}
