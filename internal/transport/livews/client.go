// Package livews connects to the session gateway over WebSocket and turns
// its JSON envelopes into session events.
package livews

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"voice-assistant-client/internal/models"
	"voice-assistant-client/internal/session"
)

// Client is a transport.Source backed by a gateway WebSocket connection.
type Client struct {
	url  string
	room string
}

// New creates a client for the gateway at url, joining room.
func New(url, room string) *Client {
	return &Client{url: url, room: room}
}

// envelope is the gateway wire format. Data payloads arrive base64-encoded
// in the data field; encoding/json handles the decoding for []byte.
type envelope struct {
	Type      string `json:"type"`
	Phase     string `json:"phase,omitempty"`
	MessageID string `json:"messageId,omitempty"`
	Speaker   string `json:"speaker,omitempty"`
	Text      string `json:"text,omitempty"`
	Final     bool   `json:"final,omitempty"`
	Topic     string `json:"topic,omitempty"`
	Data      []byte `json:"data,omitempty"`
	Kind      string `json:"kind,omitempty"`
}

// joinRequest is sent once after the socket opens.
type joinRequest struct {
	Type string `json:"type"`
	Room string `json:"room"`
}

// Run dials the gateway and pumps events until ctx is cancelled or the
// socket closes. Unknown envelope types are ignored for forward
// compatibility.
func (c *Client) Run(ctx context.Context, emit func(session.Event)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("dial gateway %s: %w", c.url, err)
	}

	log.Info().Str("url", c.url).Str("room", c.room).Msg("Connected to session gateway")

	// Close the socket when ctx ends so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
			conn.Close()
		}
	}()

	if err := conn.WriteJSON(joinRequest{Type: "join", Room: c.room}); err != nil {
		return fmt.Errorf("join room %s: %w", c.room, err)
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read gateway message: %w", err)
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			log.Warn().Err(err).Msg("Dropping unparseable gateway envelope")
			continue
		}

		ev, ok := toEvent(env)
		if !ok {
			log.Debug().Str("type", env.Type).Msg("Ignoring unknown envelope type")
			continue
		}
		emit(ev)
	}
}

// toEvent maps one gateway envelope to a session event.
func toEvent(env envelope) (session.Event, bool) {
	switch env.Type {
	case "connection_state":
		return session.ConnectionStateChanged{Phase: session.Phase(env.Phase)}, true
	case "transcript_delta":
		return session.TranscriptDelta{
			MessageID: env.MessageID,
			Speaker:   models.Speaker(env.Speaker),
			Text:      env.Text,
			Final:     env.Final,
		}, true
	case "data_message":
		return session.DataMessage{Topic: env.Topic, Payload: env.Data}, true
	case "track_ready":
		return session.TrackReady{Kind: session.TrackKind(env.Kind)}, true
	default:
		return nil, false
	}
}
