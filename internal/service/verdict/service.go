// Package verdict orchestrates one analyze-voice request: payload checks,
// transcription, scoring and verdict event publishing.
package verdict

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"ai-voice-guard-service/internal/analysis"
	"ai-voice-guard-service/internal/apperr"
	"ai-voice-guard-service/internal/models"
	"ai-voice-guard-service/internal/observability/logging"
	"ai-voice-guard-service/internal/observability/metrics"
	"ai-voice-guard-service/internal/schema"
	"ai-voice-guard-service/internal/service/audio"
	"ai-voice-guard-service/internal/service/stt"
)

// Publisher receives a verdict event after every successful analysis.
type Publisher interface {
	PublishVerdict(ctx context.Context, event *models.VerdictEvent) error
}

// Options tunes a Service. Zero values fall back to defaults.
type Options struct {
	Limits  audio.Limits
	Timeout time.Duration // Bound on the provider call; 0 disables
	Metrics *metrics.Metrics
}

// Service runs the analysis pipeline.
type Service struct {
	transcriber stt.Transcriber
	publisher   Publisher
	validator   *schema.Validator
	limits      audio.Limits
	timeout     time.Duration
	metrics     *metrics.Metrics

	newID func() string
	now   func() time.Time
}

// New creates a Service. publisher may be nil.
func New(t stt.Transcriber, p Publisher, opts Options) *Service {
	if opts.Limits.MaxAudioBytes == 0 {
		opts.Limits = audio.DefaultLimits()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.DefaultMetrics
	}
	return &Service{
		transcriber: t,
		publisher:   p,
		validator:   schema.New(),
		limits:      opts.Limits,
		timeout:     opts.Timeout,
		metrics:     opts.Metrics,
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// Provider returns the name of the configured transcription provider.
func (s *Service) Provider() string {
	return s.transcriber.Name()
}

// Analyze validates and decodes req, transcribes the audio and returns the
// verdict. Errors are always *apperr.AppError.
func (s *Service) Analyze(ctx context.Context, requestID string, req *models.AnalyzeRequest) (*analysis.Verdict, error) {
	start := s.now()

	v, err := s.analyze(ctx, requestID, req)

	outcome := "ok"
	if err != nil {
		outcome = strings.ToLower(string(apperr.From(err).Code))
	}
	s.metrics.RecordAnalysis(outcome, s.now().Sub(start).Seconds())

	return v, err
}

func (s *Service) analyze(ctx context.Context, requestID string, req *models.AnalyzeRequest) (*analysis.Verdict, error) {
	if req == nil {
		return nil, apperr.MissingInput()
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	clip, err := audio.Decode(req.Audio, req.MimeType, s.limits)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordPayload(len(clip.Data))

	analysisID := s.newID()
	provider := s.transcriber.Name()
	logger := logging.WithAnalysis(requestID, analysisID, provider)

	logger.Debug().
		Int("audioBytes", len(clip.Data)).
		Str("mimeType", clip.MimeType).
		Msg("Transcribing audio")

	transcript, err := s.transcribe(ctx, clip)
	if err != nil {
		appErr := apperr.From(err)
		s.metrics.RecordSTTError(provider, strings.ToLower(string(appErr.Code)))
		logger.Error().Err(err).Str("code", string(appErr.Code)).Msg("Transcription failed")
		return nil, appErr
	}

	result := analysis.Evaluate(toInput(transcript))
	verdict := result.Verdict

	s.metrics.RecordVerdict(
		string(verdict.VoiceType),
		string(verdict.CallClassification),
		result.Voice.Score,
		result.Risk.Score,
		verdict.Artifacts,
		verdict.RiskIndicators,
	)

	logger.Info().
		Str("voiceType", string(verdict.VoiceType)).
		Int("confidence", verdict.Confidence).
		Str("callClassification", string(verdict.CallClassification)).
		Float64("aiScore", result.Voice.Score).
		Float64("scamScore", result.Risk.Score).
		Str("language", verdict.Language).
		Msg("Analysis complete")
	logger.Debug().Str("transcription", verdict.Transcription).Msg("Transcript")

	if s.publisher != nil {
		event := &models.VerdictEvent{
			EventType:          models.VerdictEventType,
			AnalysisID:         analysisID,
			RequestID:          requestID,
			Provider:           provider,
			VoiceType:          string(verdict.VoiceType),
			Confidence:         verdict.Confidence,
			Language:           verdict.Language,
			Artifacts:          nonNil(verdict.Artifacts),
			RiskIndicators:     nonNil(verdict.RiskIndicators),
			CallClassification: string(verdict.CallClassification),
			AIScore:            result.Voice.Score,
			ScamScore:          result.Risk.Score,
			AudioBytes:         len(clip.Data),
			Timestamp:          s.now().UnixMilli(),
		}
		if err := s.publisher.PublishVerdict(ctx, event); err != nil {
			logger.Warn().Err(err).Msg("Failed to publish verdict event")
		}
	}

	return &verdict, nil
}

func (s *Service) transcribe(ctx context.Context, clip *audio.Clip) (*stt.Transcript, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	provider := s.transcriber.Name()
	start := s.now()
	t, err := s.transcriber.Transcribe(ctx, stt.Request{
		Audio:    clip.Data,
		MimeType: clip.MimeType,
		Filename: clip.Filename(),
	})
	s.metrics.RecordSTT(provider, s.now().Sub(start).Seconds())

	if err != nil {
		var appErr *apperr.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperr.ProviderUnavailable(provider, err)
	}
	if t == nil {
		return nil, apperr.MalformedProviderResponse(provider, errors.New("empty transcript"))
	}
	return t.Normalize(), nil
}

func toInput(t *stt.Transcript) analysis.Input {
	in := analysis.Input{
		Text:         t.Text,
		LanguageCode: t.LanguageCode,
		Words:        make([]analysis.Word, len(t.Words)),
		AudioEvents:  make([]analysis.AudioEvent, len(t.AudioEvents)),
	}
	for i, w := range t.Words {
		in.Words[i] = analysis.Word{Text: w.Text, Start: w.Start, End: w.End}
	}
	for i, e := range t.AudioEvents {
		in.AudioEvents[i] = analysis.AudioEvent{Type: e.Type}
	}
	return in
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
