// Package config loads service configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full service configuration.
type Config struct {
	Service       ServiceConfig
	STT           STTConfig
	Limits        LimitsConfig
	Kafka         KafkaConfig
	Observability ObservabilityConfig
}

// ServiceConfig holds listener and identity settings.
type ServiceConfig struct {
	Principal   string
	Env         string
	HTTPPort    string
	GRPCPort    string
	MetricsPort string
}

// STTConfig selects and configures the transcription provider.
type STTConfig struct {
	Provider   string // elevenlabs, google, mock
	Timeout    time.Duration
	ElevenLabs ElevenLabsConfig
	Google     GoogleConfig
}

// ElevenLabsConfig configures the ElevenLabs speech-to-text API.
type ElevenLabsConfig struct {
	APIKey         string
	BaseURL        string
	ModelID        string
	TagAudioEvents bool
	Diarize        bool
}

// GoogleConfig configures Google Cloud Speech-to-Text.
type GoogleConfig struct {
	LanguageCode  string
	SampleRateHz  int32
	AudioEncoding string
}

// LimitsConfig bounds request size and duration.
type LimitsConfig struct {
	MaxAudioBytes   int64
	MaxRequestBytes int64
	RequestTimeout  time.Duration
}

// KafkaConfig configures verdict event publishing.
type KafkaConfig struct {
	Enabled      bool
	Brokers      []string
	TopicVerdict string
	Principal    string
}

// ObservabilityConfig configures logging.
type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment. Unparseable values fall
// back to their defaults.
func Load() *Config {
	principal := envOrDefault("SERVICE_PRINCIPAL", "svc-voice-guard")

	return &Config{
		Service: ServiceConfig{
			Principal:   principal,
			Env:         envOrDefault("ENV", "prod"),
			HTTPPort:    envOrDefault("HTTP_PORT", "8080"),
			GRPCPort:    envOrDefault("GRPC_PORT", "50051"),
			MetricsPort: envOrDefault("METRICS_PORT", "9090"),
		},
		STT: STTConfig{
			Provider: strings.ToLower(envOrDefault("STT_PROVIDER", "mock")),
			Timeout:  envOrDefaultDuration("STT_TIMEOUT", 60*time.Second),
			ElevenLabs: ElevenLabsConfig{
				APIKey:         os.Getenv("ELEVENLABS_API_KEY"),
				BaseURL:        envOrDefault("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io"),
				ModelID:        envOrDefault("ELEVENLABS_MODEL_ID", "scribe_v2"),
				TagAudioEvents: envOrDefaultBool("ELEVENLABS_TAG_AUDIO_EVENTS", true),
				Diarize:        envOrDefaultBool("ELEVENLABS_DIARIZE", true),
			},
			Google: GoogleConfig{
				LanguageCode:  envOrDefault("GOOGLE_LANGUAGE_CODE", "en-US"),
				SampleRateHz:  envOrDefaultInt32("GOOGLE_SAMPLE_RATE_HZ", 16000),
				AudioEncoding: envOrDefault("GOOGLE_AUDIO_ENCODING", "WEBM_OPUS"),
			},
		},
		Limits: LimitsConfig{
			MaxAudioBytes:   envOrDefaultInt64("LIMITS_MAX_AUDIO_BYTES", 5*1024*1024),
			MaxRequestBytes: envOrDefaultInt64("LIMITS_MAX_REQUEST_BYTES", 8*1024*1024),
			RequestTimeout:  envOrDefaultDuration("LIMITS_REQUEST_TIMEOUT", 90*time.Second),
		},
		Kafka: KafkaConfig{
			Enabled:      envOrDefaultBool("KAFKA_ENABLED", false),
			Brokers:      envList("KAFKA_BROKERS"),
			TopicVerdict: envOrDefault("KAFKA_TOPIC_VERDICT", "voice.analysis.verdict"),
			Principal:    envOrDefault("KAFKA_PRINCIPAL", principal),
		},
		Observability: ObservabilityConfig{
			LogLevel:  strings.ToLower(envOrDefault("LOG_LEVEL", "info")),
			LogFormat: strings.ToLower(envOrDefault("LOG_FORMAT", "json")),
		},
	}
}

// LoadDotEnv loads variables from a .env file without overriding ones
// already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envOrDefaultInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func envOrDefaultInt32(key string, def int32) int32 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return def
	}
	return int32(n)
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
