// Package mock provides a mock STT adapter for running without provider credentials.
// It returns canned transcripts with synthesized word timing so the full
// analysis pipeline can be exercised end to end.
package mock

import (
	"context"
	"strings"
	"sync"
	"time"

	"ai-voice-guard-service/internal/service/stt"
)

// ProviderName is the name reported in logs and metrics.
const ProviderName = "mock"

// wordDuration is the synthesized length of every word, in seconds.
const wordDuration = 0.25

// SimulatedCall is a canned transcript.
type SimulatedCall struct {
	Text         string
	LanguageCode string
	Gaps         []float64 // Silence before each word after the first, cycled
	AudioEvents  []string  // Tagged non-speech sounds
}

// DefaultCalls provides sample calls for simulation.
var DefaultCalls = []SimulatedCall{
	{
		Text:         "Hi mom it's me. I'm stuck in traffic so I'll be home a bit late tonight, don't wait for dinner.",
		LanguageCode: "eng",
		Gaps:         []float64{0.12, 0.3, 0.08, 0.9, 0.15, 0.05, 0.4, 1.1, 0.2},
		AudioEvents:  []string{"breath", "laughter"},
	},
	{
		Text:         "This is the security department of your bank. Your account has been suspended. Share the verification code immediately to avoid legal action.",
		LanguageCode: "eng",
		Gaps:         []float64{0.1},
	},
	{
		Text:         "Congratulations you have won a cash prize. Call back within the limited time window to claim it.",
		LanguageCode: "eng",
		Gaps:         []float64{0.2, 0.35, 0.1, 0.6, 0.15},
		AudioEvents:  []string{"inhale"},
	},
	{
		Text:         "Vanakkam, naan naalai kaalai ungalai azhaikkiren.",
		LanguageCode: "tam",
		Gaps:         []float64{0.3, 0.7, 0.2},
		AudioEvents:  []string{"breath"},
	},
}

// Adapter implements stt.Transcriber with canned responses.
type Adapter struct {
	calls []SimulatedCall
	delay time.Duration

	mu   sync.Mutex
	next int // index of the next call, cycles through calls
}

// New creates a mock adapter over DefaultCalls with a short simulated
// processing delay.
func New() *Adapter {
	return &Adapter{calls: DefaultCalls, delay: 50 * time.Millisecond}
}

// NewWithCalls creates a mock adapter over the given calls and no delay.
func NewWithCalls(calls []SimulatedCall) *Adapter {
	return &Adapter{calls: calls}
}

// Name returns the provider name.
func (a *Adapter) Name() string { return ProviderName }

// Transcribe returns the next canned call. The audio content is ignored.
func (a *Adapter) Transcribe(ctx context.Context, req stt.Request) (*stt.Transcript, error) {
	if a.delay > 0 {
		t := time.NewTimer(a.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	if len(a.calls) == 0 {
		return (&stt.Transcript{}).Normalize(), nil
	}

	a.mu.Lock()
	idx := a.next % len(a.calls)
	a.next++
	a.mu.Unlock()

	return build(a.calls[idx]), nil
}

func build(c SimulatedCall) *stt.Transcript {
	t := &stt.Transcript{Text: c.Text, LanguageCode: c.LanguageCode}

	var cursor float64
	for i, w := range strings.Fields(c.Text) {
		if i > 0 && len(c.Gaps) > 0 {
			cursor += c.Gaps[(i-1)%len(c.Gaps)]
		}
		t.Words = append(t.Words, stt.Word{Text: w, Start: cursor, End: cursor + wordDuration})
		cursor += wordDuration
	}
	for _, e := range c.AudioEvents {
		t.AudioEvents = append(t.AudioEvents, stt.AudioEvent{Type: e})
	}
	return t.Normalize()
}
