package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"ai-voice-guard-service/internal/app"
	"ai-voice-guard-service/internal/apperr"
	"ai-voice-guard-service/internal/models"
)

// analyzeVoice handles POST /v1/analyze-voice.
func analyzeVoice(application *app.Application) http.HandlerFunc {
	limits := application.Cfg.Limits

	return func(w http.ResponseWriter, r *http.Request) {
		if limits.MaxRequestBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, limits.MaxRequestBytes)
		}

		var req models.AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, decodeError(err, limits.MaxRequestBytes))
			return
		}

		verdict, err := application.Analyzer.Analyze(r.Context(), middleware.GetReqID(r.Context()), &req)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, verdict)
	}
}

func decodeError(err error, maxRequestBytes int64) *apperr.AppError {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return apperr.RequestTooLarge(maxRequestBytes).WithCause(err)
	case errors.Is(err, io.EOF):
		return apperr.MissingInput()
	default:
		return apperr.InvalidInput("body", "must be a JSON object").WithCause(err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	appErr := apperr.From(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error().Err(err).Str("code", string(appErr.Code)).Msg("Request failed")
	}
	writeJSON(w, appErr.HTTPStatus, models.ErrorResponse{Error: appErr.Message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to write response")
	}
}
