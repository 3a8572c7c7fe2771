package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"ai-voice-guard-service/internal/models"
)

func main() {
	brokers := flag.String("brokers", "localhost:9092", "Comma-separated Kafka brokers")
	topic := flag.String("topic", "voice.analysis.verdict", "Verdict topic")
	group := flag.String("group", "", "Consumer group; empty reads the partition from the latest offset")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg := kafka.ReaderConfig{
		Brokers:  strings.Split(*brokers, ","),
		Topic:    *topic,
		GroupID:  *group,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  500 * time.Millisecond,
	}
	if *group == "" {
		cfg.StartOffset = kafka.LastOffset
	}
	r := kafka.NewReader(cfg)
	defer r.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Strs("brokers", cfg.Brokers).Str("topic", *topic).Msg("Watching verdict events")

	for {
		msg, err := r.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Info().Msg("Stopped")
				return
			}
			log.Fatal().Err(err).Msg("Failed to read message")
		}

		var ev models.VerdictEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			log.Warn().Err(err).Str("key", string(msg.Key)).Msg("Skipping undecodable event")
			continue
		}

		level := zerolog.InfoLevel
		if ev.VoiceType == "ai" || ev.CallClassification == "fraud" {
			level = zerolog.WarnLevel
		}
		log.WithLevel(level).
			Str("analysisId", ev.AnalysisID).
			Str("provider", ev.Provider).
			Str("voiceType", ev.VoiceType).
			Int("confidence", ev.Confidence).
			Str("callClassification", ev.CallClassification).
			Float64("aiScore", ev.AIScore).
			Float64("scamScore", ev.ScamScore).
			Strs("artifacts", ev.Artifacts).
			Strs("riskIndicators", ev.RiskIndicators).
			Int64("offset", msg.Offset).
			Msg("Verdict")
	}
}
