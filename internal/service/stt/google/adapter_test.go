package google

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/protobuf/types/known/durationpb"

	"ai-voice-guard-service/internal/apperr"
	"ai-voice-guard-service/internal/service/stt"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LanguageCode != "en-US" {
		t.Errorf("expected default language 'en-US', got %s", cfg.LanguageCode)
	}
	if cfg.SampleRateHz != 16000 {
		t.Errorf("expected default sample rate 16000, got %d", cfg.SampleRateHz)
	}
	if cfg.AudioEncoding != "WEBM_OPUS" {
		t.Errorf("expected default encoding 'WEBM_OPUS', got %s", cfg.AudioEncoding)
	}
}

func TestParseAudioEncoding(t *testing.T) {
	tests := []struct {
		input    string
		expected speechpb.RecognitionConfig_AudioEncoding
	}{
		{"LINEAR16", speechpb.RecognitionConfig_LINEAR16},
		{"MULAW", speechpb.RecognitionConfig_MULAW},
		{"FLAC", speechpb.RecognitionConfig_FLAC},
		{"AMR", speechpb.RecognitionConfig_AMR},
		{"AMR_WB", speechpb.RecognitionConfig_AMR_WB},
		{"OGG_OPUS", speechpb.RecognitionConfig_OGG_OPUS},
		{"SPEEX_WITH_HEADER_BYTE", speechpb.RecognitionConfig_SPEEX_WITH_HEADER_BYTE},
		{"WEBM_OPUS", speechpb.RecognitionConfig_WEBM_OPUS},
		{"webm_opus", speechpb.RecognitionConfig_WEBM_OPUS},
		{"UNKNOWN", speechpb.RecognitionConfig_LINEAR16}, // fallback
		{"", speechpb.RecognitionConfig_LINEAR16},        // fallback
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseAudioEncoding(tt.input); got != tt.expected {
				t.Errorf("parseAudioEncoding(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEncodingForMime(t *testing.T) {
	def := speechpb.RecognitionConfig_MULAW
	tests := []struct {
		mime     string
		expected speechpb.RecognitionConfig_AudioEncoding
	}{
		{"audio/webm;codecs=opus", speechpb.RecognitionConfig_WEBM_OPUS},
		{"audio/ogg", speechpb.RecognitionConfig_OGG_OPUS},
		{"audio/wav", speechpb.RecognitionConfig_ENCODING_UNSPECIFIED},
		{"audio/flac", speechpb.RecognitionConfig_ENCODING_UNSPECIFIED},
		{"audio/basic", def},
	}

	for _, tt := range tests {
		if got := encodingForMime(tt.mime, def); got != tt.expected {
			t.Errorf("encodingForMime(%q) = %v, want %v", tt.mime, got, tt.expected)
		}
	}
}

func TestConvertResponse(t *testing.T) {
	resp := &speechpb.RecognizeResponse{
		Results: []*speechpb.SpeechRecognitionResult{
			{
				LanguageCode: "hi-in",
				Alternatives: []*speechpb.SpeechRecognitionAlternative{
					{
						Transcript: "hello there",
						Words: []*speechpb.WordInfo{
							{Word: "hello", StartTime: durationpb.New(100 * time.Millisecond), EndTime: durationpb.New(400 * time.Millisecond)},
							{Word: "there", StartTime: durationpb.New(900 * time.Millisecond), EndTime: durationpb.New(1200 * time.Millisecond)},
						},
					},
					{Transcript: "hollow there"},
				},
			},
			{Alternatives: nil},
			{
				Alternatives: []*speechpb.SpeechRecognitionAlternative{
					{Transcript: " general kenobi ", Words: []*speechpb.WordInfo{{Word: "general"}}},
				},
			},
		},
	}

	got := convertResponse(resp)

	if got.Text != "hello there general kenobi" {
		t.Errorf("unexpected text %q", got.Text)
	}
	if got.LanguageCode != "hi-in" {
		t.Errorf("expected language from first result, got %q", got.LanguageCode)
	}
	if len(got.Words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(got.Words))
	}
	if got.Words[1].Start != 0.9 || got.Words[1].End != 1.2 {
		t.Errorf("expected offsets in seconds, got %+v", got.Words[1])
	}
	if got.Words[2].Start != 0 || got.Words[2].End != 0 {
		t.Errorf("expected missing offsets to be zero, got %+v", got.Words[2])
	}
	if got.AudioEvents == nil || len(got.AudioEvents) != 0 {
		t.Errorf("expected empty audio events, got %v", got.AudioEvents)
	}
}

func TestConvertResponse_Empty(t *testing.T) {
	got := convertResponse(&speechpb.RecognizeResponse{})
	if got.Text != "" || got.Words == nil || len(got.Words) != 0 {
		t.Errorf("expected empty transcript with non-nil words, got %+v", got)
	}
}

func TestTranscribe(t *testing.T) {
	var captured *speechpb.RecognizeRequest
	a := &Adapter{
		cfg: DefaultConfig(),
		recognize: func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
			captured = req
			return &speechpb.RecognizeResponse{}, nil
		},
	}

	if _, err := a.Transcribe(context.Background(), stt.Request{Audio: []byte("wav"), MimeType: "audio/wav"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !captured.GetConfig().GetEnableWordTimeOffsets() {
		t.Error("expected word time offsets to be requested")
	}
	if captured.GetConfig().GetSampleRateHertz() != 0 {
		t.Error("expected sample rate to be omitted for WAV")
	}
	if string(captured.GetAudio().GetContent()) != "wav" {
		t.Error("expected audio content to be forwarded")
	}

	if _, err := a.Transcribe(context.Background(), stt.Request{Audio: []byte("x"), MimeType: "audio/webm"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.GetConfig().GetSampleRateHertz() != 16000 {
		t.Errorf("expected sample rate for WEBM_OPUS, got %d", captured.GetConfig().GetSampleRateHertz())
	}
}

func TestTranscribe_ProviderError(t *testing.T) {
	a := &Adapter{
		cfg: DefaultConfig(),
		recognize: func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
			return nil, errors.New("permission denied")
		},
	}

	_, err := a.Transcribe(context.Background(), stt.Request{Audio: []byte("x")})
	if !apperr.IsCode(err, apperr.CodeProviderUnavailable) {
		t.Errorf("expected provider unavailable, got %v", err)
	}
}
