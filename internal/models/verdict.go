// Package models defines the request, response and event payloads.
package models

// AnalyzeRequest is the body of POST /v1/analyze-voice.
type AnalyzeRequest struct {
	Audio    string `json:"audio" validate:"required"`
	MimeType string `json:"mimeType" validate:"omitempty,max=128"`
}

// ErrorResponse is the single-field body returned on any failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// VerdictEventType is the event type of VerdictEvent.
const VerdictEventType = "voice.analysis.completed"

// VerdictEvent is published after every successful analysis. It carries
// scores and labels only; the transcript and audio are never included.
type VerdictEvent struct {
	EventType          string   `json:"eventType"`
	AnalysisID         string   `json:"analysisId"`
	RequestID          string   `json:"requestId,omitempty"`
	Provider           string   `json:"provider"`
	VoiceType          string   `json:"voiceType"`
	Confidence         int      `json:"confidence"`
	Language           string   `json:"language"`
	Artifacts          []string `json:"artifacts"`
	RiskIndicators     []string `json:"riskIndicators"`
	CallClassification string   `json:"callClassification,omitempty"`
	AIScore            float64  `json:"aiScore"`
	ScamScore          float64  `json:"scamScore"`
	AudioBytes         int      `json:"audioBytes"`
	Timestamp          int64    `json:"timestamp"`
}
