// Package audio decodes and bounds the audio payload of an analyze request
// before anything is sent to a transcription provider.
package audio

import (
	"encoding/base64"
	"strings"

	"ai-voice-guard-service/internal/apperr"
)

// DefaultMimeType is assumed when the client does not send one.
const DefaultMimeType = "audio/webm"

// Limits defines safety guardrails for audio payloads.
type Limits struct {
	MaxAudioBytes int64 // Max decoded audio size
}

// DefaultLimits returns the default 5MB ceiling.
func DefaultLimits() Limits {
	return Limits{
		MaxAudioBytes: 5 * 1024 * 1024,
	}
}

// Clip is a decoded audio payload ready for transcription.
type Clip struct {
	Data     []byte
	MimeType string
}

// Extension returns the file extension providers expect for the clip.
func (c *Clip) Extension() string {
	return extensionFor(c.MimeType)
}

// Filename returns a generic upload filename such as "audio.webm".
func (c *Clip) Filename() string {
	return "audio." + c.Extension()
}

// Decode validates and decodes a base64 audio payload. The decoded size is
// estimated from the encoded length and rejected before decoding, then
// checked exactly after decoding.
func Decode(encoded, mimeType string, limits Limits) (*Clip, error) {
	encoded = stripDataURL(strings.TrimSpace(encoded))
	if encoded == "" {
		return nil, apperr.MissingInput()
	}

	if limits.MaxAudioBytes > 0 && EstimateDecodedSize(encoded) > limits.MaxAudioBytes {
		return nil, apperr.PayloadTooLarge(limits.MaxAudioBytes)
	}

	data, err := decodeBase64(encoded)
	if err != nil {
		return nil, apperr.InvalidInput("audio", "must be base64 encoded").WithCause(err)
	}
	if len(data) == 0 {
		return nil, apperr.MissingInput()
	}
	if limits.MaxAudioBytes > 0 && int64(len(data)) > limits.MaxAudioBytes {
		return nil, apperr.PayloadTooLarge(limits.MaxAudioBytes)
	}

	if mimeType == "" {
		mimeType = DefaultMimeType
	}
	return &Clip{Data: data, MimeType: mimeType}, nil
}

// EstimateDecodedSize approximates the decoded size of a base64 string.
func EstimateDecodedSize(encoded string) int64 {
	return int64(len(encoded)) * 3 / 4
}

// stripDataURL removes a "data:<mime>;base64," prefix.
func stripDataURL(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if i := strings.Index(s, "base64,"); i >= 0 {
		return s[i+len("base64,"):]
	}
	return s
}

func decodeBase64(s string) ([]byte, error) {
	if strings.HasSuffix(s, "=") || len(s)%4 == 0 {
		return base64.StdEncoding.DecodeString(s)
	}
	return base64.RawStdEncoding.DecodeString(s)
}

func extensionFor(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "mpeg"):
		return "mp3"
	case strings.Contains(mimeType, "wav"):
		return "wav"
	default:
		return "webm"
	}
}
