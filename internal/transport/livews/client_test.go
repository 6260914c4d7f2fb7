package livews

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"voice-assistant-client/internal/models"
	"voice-assistant-client/internal/session"
)

func TestToEvent(t *testing.T) {
	tests := []struct {
		name string
		env  envelope
		want session.Event
		ok   bool
	}{
		{
			"connection state",
			envelope{Type: "connection_state", Phase: "connected"},
			session.ConnectionStateChanged{Phase: session.PhaseConnected},
			true,
		},
		{
			"transcript delta",
			envelope{Type: "transcript_delta", MessageID: "m1", Speaker: "local", Text: "hi", Final: true},
			session.TranscriptDelta{MessageID: "m1", Speaker: models.SpeakerLocal, Text: "hi", Final: true},
			true,
		},
		{
			"track ready",
			envelope{Type: "track_ready", Kind: "audio"},
			session.TrackReady{Kind: session.TrackAudio},
			true,
		},
		{
			"unknown type ignored",
			envelope{Type: "telemetry"},
			nil,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := toEvent(tt.env)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if fmt.Sprintf("%#v", got) != fmt.Sprintf("%#v", tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestToEvent_DataMessage(t *testing.T) {
	payload := []byte(`{"providers": []}`)
	env := envelope{Type: "data_message", Topic: "provider_results", Data: payload}

	got, ok := toEvent(env)
	if !ok {
		t.Fatal("expected data_message to map")
	}
	dm, isData := got.(session.DataMessage)
	if !isData {
		t.Fatalf("expected DataMessage, got %T", got)
	}
	if dm.Topic != "provider_results" {
		t.Errorf("expected topic provider_results, got %s", dm.Topic)
	}
	if string(dm.Payload) != string(payload) {
		t.Errorf("payload mismatch: %s", dm.Payload)
	}
}

func TestClient_Run_DeliversEvents(t *testing.T) {
	upgrader := websocket.Upgrader{}
	payload := base64.StdEncoding.EncodeToString([]byte(`{"providers": []}`))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		// Expect the join request first
		var join map[string]string
		if err := conn.ReadJSON(&join); err != nil {
			t.Errorf("read join: %v", err)
			return
		}
		if join["type"] != "join" || join["room"] != "room-1" {
			t.Errorf("unexpected join request: %v", join)
		}

		frames := []string{
			`{"type": "connection_state", "phase": "connected"}`,
			`{"type": "transcript_delta", "messageId": "m1", "speaker": "remote", "text": "hello"}`,
			`{"type": "telemetry", "detail": "ignored"}`,
			fmt.Sprintf(`{"type": "data_message", "topic": "provider_results", "data": %q}`, payload),
		}
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client := New(url, "room-1")

	events := make(chan session.Event, 8)
	errc := make(chan error, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	go func() {
		errc <- client.Run(ctx, func(ev session.Event) { events <- ev })
	}()

	collect := func() session.Event {
		select {
		case ev := <-events:
			return ev
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for event")
			return nil
		}
	}

	if _, ok := collect().(session.ConnectionStateChanged); !ok {
		t.Error("expected ConnectionStateChanged first")
	}
	if _, ok := collect().(session.TranscriptDelta); !ok {
		t.Error("expected TranscriptDelta second")
	}
	// The telemetry frame is skipped; next is the data message
	dm, ok := collect().(session.DataMessage)
	if !ok {
		t.Fatal("expected DataMessage third")
	}
	if string(dm.Payload) != `{"providers": []}` {
		t.Errorf("expected decoded base64 payload, got %s", dm.Payload)
	}

	// Server handler returns and closes; Run should finish with an error
	select {
	case err := <-errc:
		if err == nil {
			t.Error("expected read error after server close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after server close")
	}
}
