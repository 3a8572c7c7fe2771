package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"flag"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ai-voice-guard-service/internal/models"
)

func main() {
	audioFile := flag.String("audio", "../../testdata/sample.webm", "Path to an audio clip (webm, mp3, wav)")
	serverURL := flag.String("server", "http://localhost:8080", "Service base URL")
	mimeType := flag.String("mime", "", "MIME type; derived from the file extension when empty")
	timeout := flag.Duration("timeout", 90*time.Second, "Request timeout")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	data, err := os.ReadFile(*audioFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", *audioFile).Msg("Failed to read audio file")
	}

	if *mimeType == "" {
		*mimeType = mime.TypeByExtension(filepath.Ext(*audioFile))
	}

	body, err := json.Marshal(models.AnalyzeRequest{
		Audio:    base64.StdEncoding.EncodeToString(data),
		MimeType: *mimeType,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode request")
	}

	log.Info().
		Str("file", *audioFile).
		Int("bytes", len(data)).
		Str("mimeType", *mimeType).
		Msg("Sending audio for analysis")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, *serverURL+"/v1/analyze-voice", bytes.NewReader(body))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatal().Err(err).Msg("Request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read response")
	}

	if resp.StatusCode != http.StatusOK {
		var e models.ErrorResponse
		_ = json.Unmarshal(raw, &e)
		log.Fatal().Int("status", resp.StatusCode).Str("error", e.Error).Msg("Analysis failed")
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		out.Write(raw)
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("Analysis complete")
	_, _ = out.WriteTo(os.Stdout)
	_, _ = os.Stdout.WriteString("\n")
}
