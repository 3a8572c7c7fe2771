package analysis

import "strings"

func normalize(text string) string {
	return strings.ToLower(text)
}

// containsPhrase is a plain substring test, so "pinpoint" would match a
// "pin" phrase.
// TODO: switch to word-boundary matching if product signs off on the
// changed scores.
func containsPhrase(text, phrase string) bool {
	return strings.Contains(text, phrase)
}
