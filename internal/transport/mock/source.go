// Package mock provides a scripted session source for running the client
// without a live gateway. It simulates a realistic conversation: progressive
// partial transcripts, exactly one final revision per utterance, agent
// replies, and a provider result push over the data channel.
package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"voice-assistant-client/internal/models"
	"voice-assistant-client/internal/session"
)

// Exchange is one scripted user/agent turn. If Results is non-empty the
// agent pushes them over the data channel after its reply.
type Exchange struct {
	UserPartials []string // Progressive partial transcripts
	UserFinal    string   // Final transcript text
	AgentReply   string   // Agent's spoken reply
	Results      []models.ProviderRecord
}

// DefaultScript mirrors a typical provider-search conversation.
var DefaultScript = []Exchange{
	{
		UserPartials: []string{"I need", "I need a heart", "I need a heart doctor"},
		UserFinal:    "I need a heart doctor in Milwaukee",
		AgentReply:   "Sure, let me look for cardiologists in Milwaukee.",
	},
	{
		UserPartials: []string{"Someone who", "Someone who takes"},
		UserFinal:    "Someone who takes new patients please",
		AgentReply:   "I found two cardiologists accepting new patients. Take a look.",
		Results: []models.ProviderRecord{
			{
				ID:        "prov-001",
				FullName:  "Dr. Maria Santos",
				Specialty: "Cardiology",
				Phone:     "555-0101",
				Email:     "maria.santos@example.org",
				Address: models.Address{
					Street: "12 Oak St", City: "Milwaukee", State: "WI", Zip: "53202",
				},
				YearsExperience:      14,
				Rating:               4.7,
				BoardCertified:       true,
				AcceptingNewPatients: true,
				Languages:            []string{"English", "Spanish"},
				InsuranceAccepted:    []string{"Aetna", "Blue Cross"},
				LicenseNumber:        "WI-48213",
			},
			{
				ID:        "prov-002",
				FullName:  "Dr. James Okafor",
				Specialty: "Cardiology",
				Phone:     "555-0102",
				Email:     "james.okafor@example.org",
				Address: models.Address{
					Street: "90 Pine Ave", City: "Milwaukee", State: "WI", Zip: "53211",
				},
				YearsExperience:      8,
				Rating:               4.2,
				BoardCertified:       true,
				AcceptingNewPatients: true,
				Languages:            []string{"English"},
				InsuranceAccepted:    []string{"United"},
				LicenseNumber:        "WI-51877",
			},
		},
	},
	{
		UserPartials: []string{"Thank", "Thank you"},
		UserFinal:    "Thank you that helps",
		AgentReply:   "You're welcome. Anything else I can help with?",
	},
}

// Source replays a scripted conversation as session events.
type Source struct {
	script []Exchange
	step   time.Duration
	msgSeq int
}

// New creates a mock source replaying DefaultScript.
func New() *Source {
	return NewWithScript(DefaultScript, 400*time.Millisecond)
}

// NewWithScript creates a mock source with a custom script and pacing.
func NewWithScript(script []Exchange, step time.Duration) *Source {
	return &Source{script: script, step: step}
}

// Run replays the script until it ends or ctx is cancelled.
func (s *Source) Run(ctx context.Context, emit func(session.Event)) error {
	log.Info().Int("exchanges", len(s.script)).Msg("Mock session source starting")

	// Session establishment: connected phase, then the agent's audio track
	if !s.pause(ctx) {
		return ctx.Err()
	}
	emit(session.ConnectionStateChanged{Phase: session.PhaseConnected})
	emit(session.TrackReady{Kind: session.TrackAudio})

	for _, ex := range s.script {
		userId := s.nextMessageId("user")
		for _, partial := range ex.UserPartials {
			if !s.pause(ctx) {
				return ctx.Err()
			}
			emit(session.TranscriptDelta{
				MessageID: userId,
				Speaker:   models.SpeakerLocal,
				Text:      partial,
			})
		}
		if !s.pause(ctx) {
			return ctx.Err()
		}
		emit(session.TranscriptDelta{
			MessageID: userId,
			Speaker:   models.SpeakerLocal,
			Text:      ex.UserFinal,
			Final:     true,
		})

		if !s.pause(ctx) {
			return ctx.Err()
		}
		emit(session.TranscriptDelta{
			MessageID: s.nextMessageId("agent"),
			Speaker:   models.SpeakerRemote,
			Text:      ex.AgentReply,
			Final:     true,
		})

		if len(ex.Results) > 0 {
			if !s.pause(ctx) {
				return ctx.Err()
			}
			payload, err := json.Marshal(map[string]any{"providers": ex.Results})
			if err != nil {
				return fmt.Errorf("marshal scripted results: %w", err)
			}
			emit(session.DataMessage{Topic: "provider_results", Payload: payload})
		}
	}

	log.Info().Msg("Mock session source script finished")
	<-ctx.Done()
	return ctx.Err()
}

// pause waits one script step; false means ctx ended.
func (s *Source) pause(ctx context.Context) bool {
	select {
	case <-time.After(s.step):
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Source) nextMessageId(who string) string {
	s.msgSeq++
	return fmt.Sprintf("%s-%d", who, s.msgSeq)
}
