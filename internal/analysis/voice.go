package analysis

import "math"

const (
	aiThreshold        = 50.0
	uncertainThreshold = 25.0
	uncertainMidpoint  = 37.5
	confidenceCeiling  = 95.0
)

// voiceBand is one row of the voice classification table.
type voiceBand struct {
	matches    func(score float64) bool
	voiceType  VoiceType
	confidence func(score float64) float64
}

// Rows are evaluated in order and the first match wins.
var voiceBands = []voiceBand{
	{
		matches:   func(s float64) bool { return s >= aiThreshold },
		voiceType: VoiceAI,
		confidence: func(s float64) float64 {
			return math.Min(confidenceCeiling, 50+s)
		},
	},
	{
		matches:   func(s float64) bool { return s >= uncertainThreshold },
		voiceType: VoiceUncertain,
		// Peaks at 75 on the band midpoint and decays toward both edges.
		confidence: func(s float64) float64 {
			return 50 + (25 - math.Abs(s-uncertainMidpoint))
		},
	},
	{
		matches:   func(float64) bool { return true },
		voiceType: VoiceHuman,
		// Negative scores are not floored; the ceiling caps them.
		confidence: func(s float64) float64 {
			return math.Min(confidenceCeiling, 70+(25-s))
		},
	},
}

// AggregateVoice sums the timing, audio event and repetition signals.
func AggregateVoice(in Input) Signal {
	sig := newSignal()
	sig.merge(AnalyzeTiming(in.Words))
	sig.merge(AnalyzeAudioEvents(in.AudioEvents, len(in.Words)))
	sig.merge(AnalyzeRepetition(normalize(in.Text)))
	return sig
}

// ClassifyVoice maps an aiScore to a voice type and an unrounded confidence.
func ClassifyVoice(aiScore float64) (VoiceType, float64) {
	for _, b := range voiceBands {
		if b.matches(aiScore) {
			return b.voiceType, b.confidence(aiScore)
		}
	}
	// unreachable: the last band always matches
	return VoiceHuman, 0
}

// percent rounds a confidence for output and keeps it within [0,100].
func percent(c float64) int {
	r := int(math.Round(c))
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return r
}
