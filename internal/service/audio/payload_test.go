package audio

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"ai-voice-guard-service/internal/apperr"
)

func TestDecode_Success(t *testing.T) {
	raw := []byte("RIFF....WAVEfmt ")
	enc := base64.StdEncoding.EncodeToString(raw)

	clip, err := Decode(enc, "audio/wav", DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(clip.Data, raw) {
		t.Errorf("decoded bytes mismatch")
	}
	if clip.Filename() != "audio.wav" {
		t.Errorf("expected audio.wav, got %s", clip.Filename())
	}
}

func TestDecode_DefaultsMimeType(t *testing.T) {
	clip, err := Decode(base64.StdEncoding.EncodeToString([]byte("x")), "", DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clip.MimeType != DefaultMimeType {
		t.Errorf("expected %s, got %s", DefaultMimeType, clip.MimeType)
	}
	if clip.Extension() != "webm" {
		t.Errorf("expected webm, got %s", clip.Extension())
	}
}

func TestDecode_DataURLPrefix(t *testing.T) {
	enc := "data:audio/webm;codecs=opus;base64," + base64.StdEncoding.EncodeToString([]byte("opus"))

	clip, err := Decode(enc, "audio/webm", DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(clip.Data) != "opus" {
		t.Errorf("expected prefix to be stripped, got %q", clip.Data)
	}
}

func TestDecode_UnpaddedBase64(t *testing.T) {
	enc := base64.RawStdEncoding.EncodeToString([]byte("ab"))

	clip, err := Decode(enc, "", DefaultLimits())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(clip.Data) != "ab" {
		t.Errorf("expected 'ab', got %q", clip.Data)
	}
}

func TestDecode_Errors(t *testing.T) {
	limits := Limits{MaxAudioBytes: 100}

	tests := []struct {
		name    string
		encoded string
		want    apperr.Code
	}{
		{"empty", "", apperr.CodeMissingInput},
		{"whitespace", "   ", apperr.CodeMissingInput},
		{"bare data url", "data:audio/webm;base64,", apperr.CodeMissingInput},
		{"not base64", "!!!!", apperr.CodeInvalidInput},
		{"estimated too large", strings.Repeat("A", 140), apperr.CodePayloadTooLarge},
		{"decoded too large", base64.StdEncoding.EncodeToString(make([]byte, 101)), apperr.CodePayloadTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.encoded, "audio/webm", limits)
			if !apperr.IsCode(err, tt.want) {
				t.Errorf("expected %s, got %v", tt.want, err)
			}
		})
	}
}

func TestDecode_ExactlyAtLimit(t *testing.T) {
	enc := base64.StdEncoding.EncodeToString(make([]byte, 99))

	if _, err := Decode(enc, "audio/webm", Limits{MaxAudioBytes: 99}); err != nil {
		t.Errorf("expected payload at the limit to pass, got %v", err)
	}
}

func TestExtensionFor(t *testing.T) {
	tests := map[string]string{
		"audio/mpeg":             "mp3",
		"audio/wav":              "wav",
		"audio/x-wav":            "wav",
		"audio/webm;codecs=opus": "webm",
		"audio/ogg":              "webm",
		"":                       "webm",
	}
	for mime, want := range tests {
		if got := extensionFor(mime); got != want {
			t.Errorf("extensionFor(%q) = %s, want %s", mime, got, want)
		}
	}
}
