package cmdopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestSimilar_Commands(t *testing.T) {
	candidates := []string{"install", "remove", "update"}

	assert.Equal(t, "install", suggestSimilar("instal", candidates))
	assert.Equal(t, "update", suggestSimilar("udpate", candidates), "an adjacent transposition is one edit")
	assert.Equal(t, "", suggestSimilar("frobnicate", candidates), "distant words produce no suggestion")
	assert.Equal(t, "", suggestSimilar("", candidates))
	assert.Equal(t, "", suggestSimilar("install", nil))
}

func TestSuggestSimilar_OptionsKeepDashes(t *testing.T) {
	candidates := []string{"--port", "--proxy", "--help"}

	assert.Equal(t, "--port", suggestSimilar("--prot", candidates))
}

func TestSuggestSimilar_TiesSorted(t *testing.T) {
	candidates := []string{"patch", "batch"}

	assert.Equal(t, "batch, patch", suggestSimilar("catch", candidates),
		"equally close candidates are listed alphabetically")
}

func TestSuggestSimilar_ExactAndShortCandidatesSkipped(t *testing.T) {
	assert.Equal(t, "", suggestSimilar("x", []string{"a", "b"}), "one-letter candidates never match")
	assert.Equal(t, "", suggestSimilar("install", []string{"install"}), "an exact match is not a suggestion")
}
