package anonymity

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAlias_DrawsFromVocabulary(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	suffix := regexp.MustCompile(`\d{2}$`)

	for i := 0; i < 200; i++ {
		alias := NewAlias(r)

		require.True(t, suffix.MatchString(alias), "alias %q missing numeric suffix", alias)
		word := suffix.ReplaceAllString(alias, "")

		var adjective string
		for _, a := range Adjectives {
			if strings.HasPrefix(word, a) {
				adjective = a
				break
			}
		}
		require.NotEmpty(t, adjective, "alias %q does not start with a known adjective", alias)
		assert.Contains(t, Nouns, strings.TrimPrefix(word, adjective),
			"alias %q does not end with a known noun", alias)
	}
}

func TestNewAlias_Deterministic(t *testing.T) {
	a := NewAlias(rand.New(rand.NewSource(42)))
	b := NewAlias(rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}
