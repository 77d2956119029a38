// Package rooms defines the static catalog of content rooms and the
// reaction kinds each room allows. The catalog is loaded once and
// immutable thereafter.
package rooms

const (
	BookClub      = "book-club"
	ScreeningRoom = "screening-room"
	MusicRoom     = "music-room"
	Journal       = "journal"
	MoodBoard     = "mood-board"
)

// DefaultRoom is used when a room id is not recognized.
const DefaultRoom = BookClub

var catalog = map[string][]string{
	BookClub:      {"sunflower", "bookmark", "tea", "lightbulb", "heart"},
	ScreeningRoom: {"popcorn", "clapper", "star", "laugh", "heart"},
	MusicRoom:     {"note", "headphones", "fire", "wave", "heart"},
	Journal:       {"sunflower", "hug", "rainbow", "heart"},
	MoodBoard:     {"sparkle", "cloud", "sun", "moon", "heart"},
}

// Known reports whether id names a room in the catalog.
func Known(id string) bool {
	_, ok := catalog[id]
	return ok
}

// ReactionsFor returns the ordered reaction kinds valid for the room,
// falling back to the default room's list for unrecognized ids.
func ReactionsFor(id string) []string {
	kinds, ok := catalog[id]
	if !ok {
		kinds = catalog[DefaultRoom]
	}
	out := make([]string, len(kinds))
	copy(out, kinds)
	return out
}

// ValidKind reports whether kind is allow-listed for the room.
func ValidKind(room, kind string) bool {
	for _, k := range ReactionsFor(room) {
		if k == kind {
			return true
		}
	}
	return false
}

// All returns the ids of every room in the catalog.
func All() []string {
	return []string{BookClub, ScreeningRoom, MusicRoom, Journal, MoodBoard}
}
