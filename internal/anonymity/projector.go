package anonymity

import "sunflowerpost/internal/models"

// Identity is the presentation-layer view of an author.
type Identity struct {
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar,omitempty"`
	HideAvatar  bool   `json:"hide_avatar"`
}

// Project chooses between a user's real name and their alias.
// A user whose DefaultAnonymous flag is set is always projected
// anonymously, regardless of the per-post flag.
func Project(user *models.User, postAnonymous bool) Identity {
	if postAnonymous || user.DefaultAnonymous {
		return Identity{
			DisplayName: user.Alias,
			HideAvatar:  true,
		}
	}
	return Identity{
		DisplayName: user.Username,
		Avatar:      user.Avatar,
	}
}

// CanView reports whether viewerID may see an item authored by ownerID
// with the given anonymity flag. Owners always see their own content;
// anonymous items are hidden from everyone else when browsing the owner's
// profile, since alias and account must never be linkable.
func CanView(viewerID, ownerID uint, isAnonymous bool) bool {
	if viewerID == ownerID {
		return true
	}
	return !isAnonymous
}
