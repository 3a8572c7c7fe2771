package analysis

import "strings"

const (
	labelNoBreath = "No breath sounds detected"

	weightNoBreath    = 20
	weightHumanSounds = -30

	// Breath absence is only evidence for utterances longer than this.
	minBreathWords = 20
)

var (
	breathMarkers = []string{"breath", "inhale"}
	laughMarkers  = []string{"laugh"}
	coughMarkers  = []string{"cough"}
)

// AnalyzeAudioEvents scores tagged non-speech sounds. Missing breath in a
// long utterance raises the score; laughter or coughing lowers it once.
func AnalyzeAudioEvents(events []AudioEvent, wordCount int) Signal {
	sig := newSignal()

	if !anyEvent(events, breathMarkers) && wordCount > minBreathWords {
		sig.add(weightNoBreath, labelNoBreath)
	}
	if anyEvent(events, laughMarkers) || anyEvent(events, coughMarkers) {
		sig.add(weightHumanSounds, "")
	}
	return sig
}

func anyEvent(events []AudioEvent, markers []string) bool {
	for _, e := range events {
		t := strings.ToLower(e.Type)
		for _, m := range markers {
			if strings.Contains(t, m) {
				return true
			}
		}
	}
	return false
}
