package cmdopt

import (
	"sort"
	"strings"

	"github.com/halloway/cmdopt/internal/util"
)

// suggestSimilar picks the closest candidate names for a misspelled word.
// Candidates within a similarity threshold are returned joined for display;
// "" when nothing is close enough.
func suggestSimilar(word string, candidates []string) string {
	if word == "" || len(candidates) == 0 {
		return ""
	}

	searchingOptions := strings.HasPrefix(word, "--")
	if searchingOptions {
		word = word[2:]
	}

	similar := []string{}
	bestDistance := 3
	const minSimilarity = 0.4

	for _, candidate := range candidates {
		if searchingOptions {
			candidate = strings.TrimPrefix(candidate, "--")
		}
		if len(candidate) <= 1 || candidate == word {
			continue
		}
		distance := util.LevenshteinDistance(word, candidate)
		length := len(word)
		if len(candidate) > length {
			length = len(candidate)
		}
		if float64(length-distance)/float64(length) <= minSimilarity {
			continue
		}
		switch {
		case distance < bestDistance:
			bestDistance = distance
			similar = []string{candidate}
		case distance == bestDistance:
			similar = append(similar, candidate)
		}
	}

	if len(similar) == 0 {
		return ""
	}
	sort.Strings(similar)
	if searchingOptions {
		for i := range similar {
			similar[i] = "--" + similar[i]
		}
	}

	return strings.Join(similar, ", ")
}
