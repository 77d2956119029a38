package rooms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnown(t *testing.T) {
	for _, id := range All() {
		assert.True(t, Known(id), "room %q should be in the catalog", id)
	}
	assert.False(t, Known("broom-closet"))
	assert.False(t, Known(""))
}

func TestReactionsFor(t *testing.T) {
	kinds := ReactionsFor(BookClub)
	assert.NotEmpty(t, kinds)
	assert.Contains(t, kinds, "heart")

	t.Run("unknown room falls back to the default room", func(t *testing.T) {
		assert.Equal(t, ReactionsFor(DefaultRoom), ReactionsFor("nope"))
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		first := ReactionsFor(MusicRoom)
		first[0] = "tampered"
		assert.NotEqual(t, "tampered", ReactionsFor(MusicRoom)[0])
	})
}

func TestValidKind(t *testing.T) {
	assert.True(t, ValidKind(ScreeningRoom, "popcorn"))
	assert.False(t, ValidKind(ScreeningRoom, "note"))
	assert.False(t, ValidKind(BookClub, ""))
}
