package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-voice-guard-service/internal/analysis"
	"ai-voice-guard-service/internal/app"
	"ai-voice-guard-service/internal/apperr"
	"ai-voice-guard-service/internal/config"
	"ai-voice-guard-service/internal/models"
	"ai-voice-guard-service/internal/observability/metrics"
	"ai-voice-guard-service/internal/service/audio"
	"ai-voice-guard-service/internal/service/stt/mock"
	"ai-voice-guard-service/internal/service/verdict"
)

type fakeAnalyzer struct {
	verdict   *analysis.Verdict
	err       error
	requestID string
	req       *models.AnalyzeRequest
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, requestID string, req *models.AnalyzeRequest) (*analysis.Verdict, error) {
	f.requestID = requestID
	f.req = req
	return f.verdict, f.err
}

func testConfig() *config.Config {
	return &config.Config{Limits: config.LimitsConfig{
		MaxAudioBytes:   5 * 1024 * 1024,
		MaxRequestBytes: 1024,
	}}
}

func newTestRouter(t *testing.T, analyzer app.Analyzer, start bool) http.Handler {
	t.Helper()
	a := app.New(testConfig(), analyzer)
	if start {
		require.NoError(t, a.Start())
	}
	return NewRouter(a)
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze-voice", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 1, "error body must carry a single field")
	msg, _ := body["error"].(string)
	return msg
}

func TestLiveness(t *testing.T) {
	h := newTestRouter(t, &fakeAnalyzer{}, false)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/liveness", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestReadiness(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t, &fakeAnalyzer{}, false).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/readiness", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	newTestRouter(t, &fakeAnalyzer{}, true).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/readiness", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", rec.Body.String())
}

func TestAnalyzeVoice_Success(t *testing.T) {
	fa := &fakeAnalyzer{verdict: &analysis.Verdict{
		VoiceType:      analysis.VoiceHuman,
		Confidence:     95,
		Language:       "English",
		Artifacts:      []string{},
		Recommendation: analysis.RecommendNone,
		Transcription:  "hello",
	}}
	h := newTestRouter(t, fa, true)

	rec := post(h, `{"audio":"aGVsbG8=","mimeType":"audio/wav"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"voiceType": "human",
		"confidence": 95,
		"language": "English",
		"artifacts": [],
		"recommendation": "`+analysis.RecommendNone+`",
		"transcription": "hello"
	}`, rec.Body.String())

	assert.Equal(t, "aGVsbG8=", fa.req.Audio)
	assert.Equal(t, "audio/wav", fa.req.MimeType)
	assert.NotEmpty(t, fa.requestID, "request id middleware must populate the id")
}

func TestAnalyzeVoice_RequestIDHeader(t *testing.T) {
	fa := &fakeAnalyzer{verdict: &analysis.Verdict{}}
	h := newTestRouter(t, fa, true)

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze-voice", strings.NewReader(`{"audio":"eA=="}`))
	req.Header.Set(middleware.RequestIDHeader, "client-req-7")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "client-req-7", fa.requestID)
}

func TestAnalyzeVoice_DecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"empty body", "", http.StatusBadRequest},
		{"not json", "audio=abc", http.StatusBadRequest},
		{"json array", `["abc"]`, http.StatusBadRequest},
		{"body too large", `{"audio":"` + strings.Repeat("A", 2048) + `"}`, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fa := &fakeAnalyzer{}
			h := newTestRouter(t, fa, true)

			rec := post(h, tt.body)

			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, errorBody(t, rec))
			assert.Nil(t, fa.req, "analyzer must not be called")
		})
	}
}

func TestAnalyzeVoice_BodyTooLargeReportsRequestLimit(t *testing.T) {
	h := newTestRouter(t, &fakeAnalyzer{}, true)

	rec := post(h, `{"audio":"`+strings.Repeat("A", 2048)+`"}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "Request body too large. Maximum size is 1024 bytes.", errorBody(t, rec))
}

func TestAnalyzeVoice_AnalyzerErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"missing input", apperr.MissingInput(), http.StatusBadRequest, "No audio data provided"},
		{"too large", apperr.PayloadTooLarge(5 * 1024 * 1024), http.StatusRequestEntityTooLarge, "Audio file too large. Maximum size is 5MB."},
		{"provider", apperr.ProviderStatus("elevenlabs", 500), http.StatusBadGateway, ""},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "Analysis failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(t, &fakeAnalyzer{err: tt.err}, true)

			rec := post(h, `{"audio":"eA=="}`)

			assert.Equal(t, tt.status, rec.Code)
			msg := errorBody(t, rec)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestAnalyzeVoice_EndToEnd(t *testing.T) {
	svc := verdict.New(
		mock.NewWithCalls([]mock.SimulatedCall{{Text: "hello there", LanguageCode: "ta"}}),
		nil,
		verdict.Options{Limits: audio.DefaultLimits(), Metrics: metrics.NewMetrics(prometheus.NewRegistry())},
	)
	h := newTestRouter(t, svc, true)

	audioB64 := base64.StdEncoding.EncodeToString([]byte("fake-audio"))
	rec := post(h, `{"audio":"`+audioB64+`"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var v map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "human", v["voiceType"])
	assert.Equal(t, "Tamil", v["language"])
	assert.Equal(t, []any{}, v["artifacts"])
	assert.Equal(t, "hello there", v["transcription"])
	assert.NotContains(t, v, "riskIndicators")
	assert.NotContains(t, v, "callClassification")

	rec = post(h, `{"audio":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No audio data provided", errorBody(t, rec))
}
