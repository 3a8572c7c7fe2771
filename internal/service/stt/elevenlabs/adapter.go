// Package elevenlabs provides an ElevenLabs speech-to-text adapter.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ai-voice-guard-service/internal/apperr"
	"ai-voice-guard-service/internal/observability/logging"
	"ai-voice-guard-service/internal/service/stt"
)

// ProviderName is the name reported in logs and metrics.
const ProviderName = "elevenlabs"

const (
	defaultBaseURL = "https://api.elevenlabs.io"
	defaultModelID = "scribe_v2"
	defaultTimeout = 60 * time.Second

	// Provider error bodies are logged truncated to this many bytes.
	maxErrorBody = 512
	// Default upper bound on a provider response body.
	defaultMaxResponseBody = 32 << 20
)

// Config holds ElevenLabs adapter configuration.
type Config struct {
	APIKey         string
	BaseURL        string
	ModelID        string
	TagAudioEvents bool
	Diarize        bool
	Timeout        time.Duration
}

// DefaultConfig returns the configuration the service runs with when only
// an API key is supplied.
func DefaultConfig() Config {
	return Config{
		BaseURL:        defaultBaseURL,
		ModelID:        defaultModelID,
		TagAudioEvents: true,
		Diarize:        true,
		Timeout:        defaultTimeout,
	}
}

// Adapter implements stt.Transcriber using the ElevenLabs REST API.
type Adapter struct {
	cfg     Config
	client  *http.Client
	logger  zerolog.Logger
	maxBody int64
}

// New creates a new ElevenLabs adapter. An API key is required.
func New(cfg Config) (*Adapter, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("ElevenLabs API key not configured")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.ModelID == "" {
		cfg.ModelID = defaultModelID
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Adapter{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logging.WithComponent("stt.elevenlabs"),
		maxBody: defaultMaxResponseBody,
	}, nil
}

// Name returns the provider name.
func (a *Adapter) Name() string { return ProviderName }

type word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Type  string  `json:"type,omitempty"`
}

type audioEvent struct {
	Type string `json:"type"`
}

// response mirrors the fields of the speech-to-text response the service
// uses. Anything missing decodes to its zero value.
type response struct {
	Text         string       `json:"text"`
	LanguageCode string       `json:"language_code"`
	Words        []word       `json:"words"`
	AudioEvents  []audioEvent `json:"audio_events"`
}

// Transcribe uploads the clip as multipart form data and decodes the result.
func (a *Adapter) Transcribe(ctx context.Context, req stt.Request) (*stt.Transcript, error) {
	body, contentType, err := a.buildForm(req)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	url := strings.TrimRight(a.cfg.BaseURL, "/") + "/v1/speech-to-text"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("xi-api-key", a.cfg.APIKey)
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")

	a.logger.Debug().
		Int("bytes", len(req.Audio)).
		Str("mimeType", req.MimeType).
		Str("modelId", a.cfg.ModelID).
		Msg("Sending audio to ElevenLabs")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, apperr.ProviderUnavailable(ProviderName, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, a.maxBody+1))
	if err != nil {
		return nil, apperr.ProviderUnavailable(ProviderName, fmt.Errorf("read response: %w", err))
	}
	if int64(len(raw)) > a.maxBody {
		return nil, apperr.MalformedProviderResponse(ProviderName,
			fmt.Errorf("response body exceeds %d bytes", a.maxBody))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		a.logger.Error().
			Int("status", resp.StatusCode).
			Str("body", truncate(string(raw), maxErrorBody)).
			Msg("ElevenLabs STT error")
		return nil, apperr.ProviderStatus(ProviderName, resp.StatusCode)
	}

	return decode(raw)
}

func (a *Adapter) buildForm(req stt.Request) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	filename := req.Filename
	if filename == "" {
		filename = "audio.webm"
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(req.Audio); err != nil {
		return nil, "", fmt.Errorf("write audio data: %w", err)
	}

	fields := [][2]string{
		{"model_id", a.cfg.ModelID},
		{"tag_audio_events", strconv.FormatBool(a.cfg.TagAudioEvents)},
		{"diarize", strconv.FormatBool(a.cfg.Diarize)},
	}
	for _, f := range fields {
		if err := writer.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write %s: %w", f[0], err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize form: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

// decode converts a response body into a transcript. Only a body that is
// not a JSON object is an error; absent fields become empty values.
func decode(raw []byte) (*stt.Transcript, error) {
	var r *response
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, apperr.MalformedProviderResponse(ProviderName, err)
	}
	if r == nil {
		return nil, apperr.MalformedProviderResponse(ProviderName, errors.New("empty response body"))
	}

	t := &stt.Transcript{
		Text:         r.Text,
		LanguageCode: r.LanguageCode,
		Words:        make([]stt.Word, 0, len(r.Words)),
		AudioEvents:  make([]stt.AudioEvent, 0, len(r.AudioEvents)),
	}
	for _, w := range r.Words {
		t.Words = append(t.Words, stt.Word{Text: w.Text, Start: w.Start, End: w.End})
	}
	for _, e := range r.AudioEvents {
		t.AudioEvents = append(t.AudioEvents, stt.AudioEvent{Type: e.Type})
	}
	return t, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
