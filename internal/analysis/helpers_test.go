package analysis

import (
	"fmt"
	"strings"
)

// wordsWithGaps builds len(g)+1 words, each 0.25s long, separated by g.
// Durations are exact binary fractions so boundary gaps survive the
// start/end arithmetic unchanged.
func wordsWithGaps(g []float64) []Word {
	words := make([]Word, 0, len(g)+1)
	end := 0.25
	words = append(words, Word{Text: "w0", Start: 0, End: end})
	for i, gap := range g {
		start := end + gap
		end = start + 0.25
		words = append(words, Word{Text: fmt.Sprintf("w%d", i+1), Start: start, End: end})
	}
	return words
}

func constantGaps(n int, gap float64) []float64 {
	g := make([]float64, n)
	for i := range g {
		g[i] = gap
	}
	return g
}

func uniqueText(n int) string {
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("token%02d", i)
	}
	return strings.Join(tokens, " ")
}

func repeatText(token string, n int) string {
	return strings.TrimSpace(strings.Repeat(token+" ", n))
}
