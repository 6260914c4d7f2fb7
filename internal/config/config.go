// Package config loads client configuration from the environment. Every
// value has a default; invalid values fall back to the default rather than
// failing startup.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"voice-assistant-client/internal/session"
)

// ServiceConfig identifies this client instance.
type ServiceConfig struct {
	Principal string
}

// SessionConfig controls the real-time session source.
type SessionConfig struct {
	// Source selects the event source: "mock" or "livews".
	Source string
	// WSURL is the session gateway WebSocket endpoint (livews only).
	WSURL string
	// Room is the session room/channel name sent to the gateway.
	Room string
	// ConnectTimeout is the connection establishment budget.
	ConnectTimeout time.Duration
}

// KafkaConfig controls the analytics publisher.
type KafkaConfig struct {
	Enabled         bool
	Brokers         []string
	TopicTranscript string
	TopicResults    string
	Principal       string
}

// ObservabilityConfig controls logging and the metrics endpoint.
type ObservabilityConfig struct {
	LogLevel    string
	LogFormat   string
	MetricsAddr string
}

// Configuration is the full client configuration.
type Configuration struct {
	Service       ServiceConfig
	Session       SessionConfig
	Kafka         KafkaConfig
	Observability ObservabilityConfig
}

// Load reads configuration from the environment.
func Load() *Configuration {
	principal := envOrDefault("SERVICE_PRINCIPAL", "voice-assistant-client")

	return &Configuration{
		Service: ServiceConfig{
			Principal: principal,
		},
		Session: SessionConfig{
			Source:         envOrDefault("SESSION_SOURCE", "mock"),
			WSURL:          envOrDefault("SESSION_WS_URL", "ws://localhost:7880/events"),
			Room:           envOrDefault("SESSION_ROOM", ""),
			ConnectTimeout: envOrDefaultDuration("CONNECT_TIMEOUT", session.DefaultConnectTimeout),
		},
		Kafka: KafkaConfig{
			Enabled:         envOrDefaultBool("KAFKA_ENABLED", false),
			Brokers:         envOrDefaultList("KAFKA_BROKERS", nil),
			TopicTranscript: envOrDefault("KAFKA_TOPIC_TRANSCRIPT", "voice.transcript.final"),
			TopicResults:    envOrDefault("KAFKA_TOPIC_RESULTS", "voice.provider.results"),
			Principal:       envOrDefault("KAFKA_PRINCIPAL", principal),
		},
		Observability: ObservabilityConfig{
			LogLevel:    envOrDefault("LOG_LEVEL", "info"),
			LogFormat:   envOrDefault("LOG_FORMAT", "json"),
			MetricsAddr: envOrDefault("METRICS_ADDR", ":9090"),
		},
	}
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
	parsed, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return def
	}
	return parsed
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := time.ParseDuration(v)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func envOrDefaultList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
