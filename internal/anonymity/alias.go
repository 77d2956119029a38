// Package anonymity assigns persistent pseudonyms and decides which
// identity to present when content is rendered.
package anonymity

import (
	"fmt"
	"math/rand"
)

// Adjectives and Nouns form the fixed vocabulary aliases are drawn from.
// The lists are append-only: removing a word would orphan existing aliases.
var (
	Adjectives = []string{
		"Amber", "Breezy", "Calm", "Dappled", "Dewy", "Gentle", "Golden",
		"Hazel", "Luminous", "Mellow", "Misty", "Quiet", "Radiant", "Rosy",
		"Serene", "Silver", "Sleepy", "Sunny", "Velvet", "Wandering",
	}
	Nouns = []string{
		"Aster", "Bluebird", "Clover", "Dahlia", "Fern", "Finch", "Heron",
		"Juniper", "Lark", "Lotus", "Maple", "Meadow", "Otter", "Pebble",
		"Poppy", "Sparrow", "Sunflower", "Thistle", "Willow", "Wren",
	}
)

// NewAlias draws a pseudonym from the fixed vocabulary, suffixed with two
// digits so the namespace is large enough to keep collisions rare. Callers
// retry on a unique-constraint conflict.
func NewAlias(r *rand.Rand) string {
	adj := Adjectives[r.Intn(len(Adjectives))]
	noun := Nouns[r.Intn(len(Nouns))]
	return fmt.Sprintf("%s%s%02d", adj, noun, r.Intn(100))
}
