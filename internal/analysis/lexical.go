package analysis

import "strings"

const (
	labelRepetition  = "High word repetition pattern"
	weightRepetition = 15

	minRepetitionTokens = 20
	repetitionRatio     = 0.3
)

// AnalyzeRepetition scores vocabulary diversity of already lower-cased
// text. Tokens are whitespace separated; punctuation stays attached, so
// "now" and "now," count as different words.
func AnalyzeRepetition(text string) Signal {
	sig := newSignal()

	tokens := strings.Fields(text)
	if len(tokens) <= minRepetitionTokens {
		return sig
	}

	unique := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		unique[t] = struct{}{}
	}
	if float64(len(unique))/float64(len(tokens)) < repetitionRatio {
		sig.add(weightRepetition, labelRepetition)
	}
	return sig
}
