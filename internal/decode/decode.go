// Package decode parses raw side-channel payloads, tagged with a topic
// string, into typed domain messages. Decoding is pure: malformed payloads
// and unrecognized topics produce an *Error, never a panic, so a single bad
// packet from the agent cannot take down the live session.
package decode

import (
	"encoding/json"
	"fmt"

	"voice-assistant-client/internal/models"
)

// TopicProviderResults is the recognized topic for provider search results.
const TopicProviderResults = "provider_results"

// ErrorKind classifies a decode failure.
type ErrorKind int

const (
	// UnknownTopic - the topic is not in the recognized set. Expected for
	// forward compatibility with future message types; log-only.
	UnknownTopic ErrorKind = iota
	// InvalidPayload - the bytes are not valid UTF-8 JSON for the topic, or
	// a required field is missing or out of range.
	InvalidPayload
)

// String returns the string representation of the kind.
func (k ErrorKind) String() string {
	switch k {
	case UnknownTopic:
		return "UNKNOWN_TOPIC"
	case InvalidPayload:
		return "INVALID_PAYLOAD"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(k))
	}
}

// Error reports why a payload could not be decoded.
type Error struct {
	Kind  ErrorKind
	Topic string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %s: %v", e.Topic, e.Kind, e.Err)
	}
	return fmt.Sprintf("decode %s: %s", e.Topic, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// providerResultsEnvelope is the wire shape for TopicProviderResults.
type providerResultsEnvelope struct {
	Providers []models.ProviderRecord `json:"providers"`
}

// ProviderResults decodes a data message into the ordered provider list it
// carries. Record order is preserved exactly as transmitted; ordering is a
// presentation concern set by the agent.
func ProviderResults(topic string, payload []byte) ([]models.ProviderRecord, error) {
	if topic != TopicProviderResults {
		return nil, &Error{Kind: UnknownTopic, Topic: topic}
	}

	var env providerResultsEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, &Error{Kind: InvalidPayload, Topic: topic, Err: err}
	}
	if env.Providers == nil {
		return nil, &Error{Kind: InvalidPayload, Topic: topic, Err: fmt.Errorf("missing providers field")}
	}

	for i, p := range env.Providers {
		if p.ID == "" {
			return nil, &Error{Kind: InvalidPayload, Topic: topic, Err: fmt.Errorf("provider %d: missing id", i)}
		}
		if p.YearsExperience < 0 {
			return nil, &Error{Kind: InvalidPayload, Topic: topic, Err: fmt.Errorf("provider %s: negative years_experience", p.ID)}
		}
	}

	return env.Providers, nil
}
