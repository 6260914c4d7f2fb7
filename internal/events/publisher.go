// Package events publishes session analytics events (final transcript
// entries, provider result pushes) to Kafka for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"voice-assistant-client/internal/models"
	"voice-assistant-client/internal/observability/metrics"
)

// Publisher publishes session events to separate Kafka topics. When
// disabled it runs in log-only mode: every publish is logged and counted
// but nothing leaves the process.
type Publisher struct {
	writerTranscript *kafka.Writer
	writerResults    *kafka.Writer
	principal        string
	topicTranscript  string
	topicResults     string
	enabled          bool
	metrics          *metrics.Metrics
}

// Config holds Kafka publisher configuration.
type Config struct {
	Brokers         []string
	TopicTranscript string
	TopicResults    string
	Principal       string
	Enabled         bool
}

// transcriptEvent is the wire shape for final transcript publishes.
type transcriptEvent struct {
	EventType string `json:"eventType"`
	SessionID string `json:"sessionId"`
	Timestamp int64  `json:"timestamp"`
	MessageID string `json:"messageId"`
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
}

// resultsEvent is the wire shape for provider result pushes.
type resultsEvent struct {
	EventType string                  `json:"eventType"`
	SessionID string                  `json:"sessionId"`
	Timestamp int64                   `json:"timestamp"`
	Count     int                     `json:"count"`
	Providers []models.ProviderRecord `json:"providers"`
}

// New creates a Kafka publisher with separate topics for transcripts and
// result pushes.
func New(cfg *Config) *Publisher {
	m := metrics.DefaultMetrics

	if cfg == nil {
		log.Info().Msg("Kafka disabled (nil config), using log-only mode")
		return &Publisher{enabled: false, metrics: m}
	}

	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		log.Info().Msg("Kafka disabled, using log-only mode")
		return &Publisher{
			principal:       cfg.Principal,
			topicTranscript: cfg.TopicTranscript,
			topicResults:    cfg.TopicResults,
			enabled:         false,
			metrics:         m,
		}
	}

	// Longer dial timeout for DNS resolution in containerized environments
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
	transport := &kafka.Transport{
		Dial: dialer.DialFunc,
	}

	newWriter := func(topic string) *kafka.Writer {
		return &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
			WriteTimeout: 10 * time.Second,
			RequiredAcks: kafka.RequireOne,
			Transport:    transport,
		}
	}

	log.Info().
		Strs("brokers", cfg.Brokers).
		Str("topicTranscript", cfg.TopicTranscript).
		Str("topicResults", cfg.TopicResults).
		Str("principal", cfg.Principal).
		Msg("Kafka publisher initialized")

	return &Publisher{
		writerTranscript: newWriter(cfg.TopicTranscript),
		writerResults:    newWriter(cfg.TopicResults),
		principal:        cfg.Principal,
		topicTranscript:  cfg.TopicTranscript,
		topicResults:     cfg.TopicResults,
		enabled:          true,
		metrics:          m,
	}
}

// PublishFinalTranscript publishes one finalized transcript entry, keyed by
// session id.
func (p *Publisher) PublishFinalTranscript(ctx context.Context, sessionId string, entry models.TranscriptEntry) error {
	event := transcriptEvent{
		EventType: "transcript.final",
		SessionID: sessionId,
		Timestamp: time.Now().UnixMilli(),
		MessageID: entry.MessageID,
		Speaker:   string(entry.Speaker),
		Text:      entry.Text,
	}
	return p.publish(ctx, p.writerTranscript, p.topicTranscript, "transcript_final", sessionId, event)
}

// PublishResults publishes one provider result push, keyed by session id.
func (p *Publisher) PublishResults(ctx context.Context, sessionId string, records []models.ProviderRecord) error {
	event := resultsEvent{
		EventType: "provider.results",
		SessionID: sessionId,
		Timestamp: time.Now().UnixMilli(),
		Count:     len(records),
		Providers: records,
	}
	return p.publish(ctx, p.writerResults, p.topicResults, "provider_results", sessionId, event)
}

// publish writes one event to a specific Kafka writer.
func (p *Publisher) publish(ctx context.Context, writer *kafka.Writer, topic, eventType, key string, event any) error {
	start := time.Now()

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to marshal event")
		return err
	}

	log.Debug().
		Str("principal", p.principal).
		Str("topic", topic).
		Str("key", key).
		RawJSON("payload", payload).
		Msg("Publishing event")

	if !p.enabled || writer == nil {
		p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
		return nil
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "eventType", Value: []byte(eventType)},
			{Key: "principal", Value: []byte(p.principal)},
		},
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		log.Error().
			Err(err).
			Str("topic", topic).
			Str("key", key).
			Msg("Failed to write to Kafka")
		p.metrics.RecordKafkaPublish(topic, eventType, err, time.Since(start).Seconds())
		return err
	}

	p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
	return nil
}

// Close closes both Kafka writers.
func (p *Publisher) Close() error {
	var err error
	if p.writerTranscript != nil {
		if e := p.writerTranscript.Close(); e != nil {
			log.Error().Err(e).Msg("Error closing transcript writer")
			err = e
		}
	}
	if p.writerResults != nil {
		if e := p.writerResults.Close(); e != nil {
			log.Error().Err(e).Msg("Error closing results writer")
			err = e
		}
	}
	return err
}
