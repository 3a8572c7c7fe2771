// Package google provides a Google Cloud Speech-to-Text adapter.
package google

import (
	"context"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/protobuf/types/known/durationpb"

	"ai-voice-guard-service/internal/apperr"
	"ai-voice-guard-service/internal/service/stt"
)

// ProviderName is the name reported in logs and metrics.
const ProviderName = "google"

// Config holds Google STT configuration.
type Config struct {
	LanguageCode  string
	SampleRateHz  int32
	AudioEncoding string
}

// DefaultConfig returns the default Google STT configuration.
func DefaultConfig() Config {
	return Config{
		LanguageCode:  "en-US",
		SampleRateHz:  16000,
		AudioEncoding: "WEBM_OPUS",
	}
}

type recognizeFunc func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error)

// Adapter implements stt.Transcriber using Google Cloud Speech-to-Text.
type Adapter struct {
	client    *speech.Client
	recognize recognizeFunc
	cfg       Config
}

// New creates a new Google STT adapter.
// Requires GOOGLE_APPLICATION_CREDENTIALS environment variable to be set.
func New(ctx context.Context, cfg Config) (*Adapter, error) {
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &Adapter{
		client: c,
		recognize: func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
			return c.Recognize(ctx, req)
		},
		cfg: cfg,
	}, nil
}

// Name returns the provider name.
func (a *Adapter) Name() string { return ProviderName }

// Transcribe runs a synchronous recognition with word time offsets.
// Google does not tag non-speech audio events, so AudioEvents is always
// empty.
func (a *Adapter) Transcribe(ctx context.Context, req stt.Request) (*stt.Transcript, error) {
	resp, err := a.recognize(ctx, a.buildRequest(req))
	if err != nil {
		return nil, apperr.ProviderUnavailable(ProviderName, err)
	}
	return convertResponse(resp), nil
}

// Close releases the underlying client.
func (a *Adapter) Close() error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}

func (a *Adapter) buildRequest(req stt.Request) *speechpb.RecognizeRequest {
	encoding := encodingForMime(req.MimeType, parseAudioEncoding(a.cfg.AudioEncoding))

	rc := &speechpb.RecognitionConfig{
		Encoding:                   encoding,
		LanguageCode:               a.cfg.LanguageCode,
		EnableWordTimeOffsets:      true,
		EnableAutomaticPunctuation: true,
	}
	// WAV and FLAC carry their own header; the sample rate must be omitted.
	if encoding != speechpb.RecognitionConfig_ENCODING_UNSPECIFIED {
		rc.SampleRateHertz = a.cfg.SampleRateHz
	}

	return &speechpb.RecognizeRequest{
		Config: rc,
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: req.Audio},
		},
	}
}

// convertResponse flattens the top alternative of every result.
func convertResponse(resp *speechpb.RecognizeResponse) *stt.Transcript {
	t := &stt.Transcript{}
	var texts []string

	for _, r := range resp.GetResults() {
		if t.LanguageCode == "" {
			t.LanguageCode = r.GetLanguageCode()
		}
		alts := r.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		alt := alts[0]
		if s := strings.TrimSpace(alt.GetTranscript()); s != "" {
			texts = append(texts, s)
		}
		for _, w := range alt.GetWords() {
			t.Words = append(t.Words, stt.Word{
				Text:  w.GetWord(),
				Start: seconds(w.GetStartTime()),
				End:   seconds(w.GetEndTime()),
			})
		}
	}

	t.Text = strings.Join(texts, " ")
	return t.Normalize()
}

func seconds(d *durationpb.Duration) float64 {
	if d == nil {
		return 0
	}
	return d.AsDuration().Seconds()
}

// encodingForMime picks the encoding from the clip's MIME type, falling
// back to def for types it does not recognise.
func encodingForMime(mimeType string, def speechpb.RecognitionConfig_AudioEncoding) speechpb.RecognitionConfig_AudioEncoding {
	m := strings.ToLower(mimeType)
	switch {
	case strings.Contains(m, "webm"):
		return speechpb.RecognitionConfig_WEBM_OPUS
	case strings.Contains(m, "ogg"):
		return speechpb.RecognitionConfig_OGG_OPUS
	case strings.Contains(m, "wav"), strings.Contains(m, "flac"):
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	default:
		return def
	}
}

func parseAudioEncoding(s string) speechpb.RecognitionConfig_AudioEncoding {
	switch strings.ToUpper(s) {
	case "LINEAR16":
		return speechpb.RecognitionConfig_LINEAR16
	case "MULAW":
		return speechpb.RecognitionConfig_MULAW
	case "FLAC":
		return speechpb.RecognitionConfig_FLAC
	case "AMR":
		return speechpb.RecognitionConfig_AMR
	case "AMR_WB":
		return speechpb.RecognitionConfig_AMR_WB
	case "OGG_OPUS":
		return speechpb.RecognitionConfig_OGG_OPUS
	case "SPEEX_WITH_HEADER_BYTE":
		return speechpb.RecognitionConfig_SPEEX_WITH_HEADER_BYTE
	case "WEBM_OPUS":
		return speechpb.RecognitionConfig_WEBM_OPUS
	default:
		return speechpb.RecognitionConfig_LINEAR16
	}
}
