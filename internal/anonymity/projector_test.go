package anonymity

import (
	"testing"

	"sunflowerpost/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestProject(t *testing.T) {
	user := &models.User{
		ID:       1,
		Username: "jamie",
		Alias:    "GoldenWren07",
		Avatar:   "https://example.com/a.png",
	}

	t.Run("named post shows the real identity", func(t *testing.T) {
		id := Project(user, false)
		assert.Equal(t, "jamie", id.DisplayName)
		assert.Equal(t, user.Avatar, id.Avatar)
		assert.False(t, id.HideAvatar)
	})

	t.Run("anonymous post shows the alias and hides the avatar", func(t *testing.T) {
		id := Project(user, true)
		assert.Equal(t, "GoldenWren07", id.DisplayName)
		assert.Empty(t, id.Avatar)
		assert.True(t, id.HideAvatar)
	})

	t.Run("default-anonymous user is always projected as the alias", func(t *testing.T) {
		anon := *user
		anon.DefaultAnonymous = true
		id := Project(&anon, false)
		assert.Equal(t, "GoldenWren07", id.DisplayName)
		assert.True(t, id.HideAvatar)
	})
}

func TestCanView(t *testing.T) {
	assert.True(t, CanView(1, 1, true), "owners always see their own items")
	assert.True(t, CanView(2, 1, false), "named items are visible to everyone")
	assert.False(t, CanView(2, 1, true), "anonymous items stay off the owner's public profile")
}
