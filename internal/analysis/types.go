// Package analysis implements the voice-authenticity and call-risk
// classification engine. Every function in this package is a pure function
// of its input; nothing here performs I/O or keeps state between calls.
package analysis

// Word is a single transcribed word with its timing in seconds.
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// AudioEvent is a tagged non-speech sound (breath, laugh, cough, ...).
type AudioEvent struct {
	Type string `json:"type"`
}

// Input is everything the engine needs from one transcription.
type Input struct {
	Text         string
	LanguageCode string
	Words        []Word
	AudioEvents  []AudioEvent
}

// VoiceType is the voice-authenticity classification.
type VoiceType string

const (
	VoiceHuman     VoiceType = "human"
	VoiceAI        VoiceType = "ai"
	VoiceUncertain VoiceType = "uncertain"
)

// CallClassification is the call-risk tier. The zero value means no risk
// keyword matched at all.
type CallClassification string

const (
	CallNone  CallClassification = ""
	CallSafe  CallClassification = "safe"
	CallSpam  CallClassification = "spam"
	CallFraud CallClassification = "fraud"
)

// Signal is an accumulated score plus the labels explaining it.
type Signal struct {
	Score  float64
	Labels []string
}

func newSignal() Signal {
	return Signal{Labels: []string{}}
}

func (s *Signal) add(weight float64, label string) {
	s.Score += weight
	if label != "" {
		s.Labels = append(s.Labels, label)
	}
}

func (s *Signal) merge(other Signal) {
	s.Score += other.Score
	s.Labels = append(s.Labels, other.Labels...)
}

// Verdict is the final record returned to callers.
type Verdict struct {
	VoiceType          VoiceType          `json:"voiceType"`
	Confidence         int                `json:"confidence"`
	Language           string             `json:"language"`
	Artifacts          []string           `json:"artifacts"`
	RiskIndicators     []string           `json:"riskIndicators,omitempty"`
	CallClassification CallClassification `json:"callClassification,omitempty"`
	Recommendation     string             `json:"recommendation"`
	Transcription      string             `json:"transcription"`
}

// Result is a Verdict together with the raw signals it was derived from.
type Result struct {
	Verdict Verdict
	Voice   Signal
	Risk    Signal
}
