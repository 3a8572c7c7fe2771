// Package stt defines the interface for Speech-to-Text adapters.
package stt

import "context"

// Request is one audio clip to transcribe.
type Request struct {
	Audio    []byte
	MimeType string
	Filename string
}

// Word is a transcribed word with timing in seconds.
type Word struct {
	Text  string
	Start float64
	End   float64
}

// AudioEvent is a tagged non-speech sound.
type AudioEvent struct {
	Type string
}

// Transcript is the provider-neutral transcription result. Words and
// AudioEvents are never nil.
type Transcript struct {
	Text         string
	LanguageCode string
	Words        []Word
	AudioEvents  []AudioEvent
}

// Transcriber defines the interface for STT providers (ElevenLabs, Google, ...).
type Transcriber interface {
	// Name returns the provider name used in logs and metrics.
	Name() string

	// Transcribe sends one clip to the provider and returns its transcript.
	// Failures are returned as *apperr.AppError and are never retried here.
	Transcribe(ctx context.Context, req Request) (*Transcript, error)
}

// Normalize replaces nil slices with empty ones.
func (t *Transcript) Normalize() *Transcript {
	if t.Words == nil {
		t.Words = []Word{}
	}
	if t.AudioEvents == nil {
		t.AudioEvents = []AudioEvent{}
	}
	return t
}
