// Package session contains the event synchronization core for one voice
// session: the tagged unions of inputs, the transcript aggregator, the
// result set store, the connection lifecycle monitor, and the coordinator
// that reduces all of them into a single consistent state snapshot.
package session

import "voice-assistant-client/internal/models"

// Phase is the connection phase reported by the real-time session.
type Phase string

const (
	PhaseConnecting   Phase = "connecting"
	PhaseConnected    Phase = "connected"
	PhaseReconnecting Phase = "reconnecting"
	PhaseDisconnected Phase = "disconnected"
)

// TrackKind identifies a media track published by the remote agent.
type TrackKind string

const (
	TrackAudio TrackKind = "audio"
	TrackVideo TrackKind = "video"
)

// Input is anything the coordinator consumes: session events from the
// transport, user intents from the presentation layer, and internal timer
// ticks. All inputs are serialized into one ordered queue; no two
// reductions run concurrently.
type Input interface {
	isInput()
}

// Event is a session event delivered by the real-time transport.
type Event interface {
	Input
	isEvent()
}

// ConnectionStateChanged reports a connection phase transition.
type ConnectionStateChanged struct {
	Phase Phase
}

// TranscriptDelta is an incremental or final revision of one utterance,
// keyed by a stable message id.
type TranscriptDelta struct {
	MessageID string
	Speaker   models.Speaker
	Text      string
	Final     bool
}

// DataMessage is a raw side-channel payload tagged with a topic string.
type DataMessage struct {
	Topic   string
	Payload []byte
}

// TrackReady signals that a media track from the remote agent is
// subscribed and playable.
type TrackReady struct {
	Kind TrackKind
}

func (ConnectionStateChanged) isInput() {}
func (ConnectionStateChanged) isEvent() {}
func (TranscriptDelta) isInput()        {}
func (TranscriptDelta) isEvent()        {}
func (DataMessage) isInput()            {}
func (DataMessage) isEvent()            {}
func (TrackReady) isInput()             {}
func (TrackReady) isEvent()             {}

// Intent is a command from the presentation layer.
type Intent interface {
	Input
	isIntent()
}

// OpenModal opens the provider result browser.
type OpenModal struct{}

// CloseModal closes the provider result browser. The underlying result set
// is untouched.
type CloseModal struct{}

// NavigateTo moves the result cursor. Out-of-range indexes are clamped,
// never rejected.
type NavigateTo struct {
	Index int
}

// DismissConnectionBanner hides the connection timeout banner without
// changing the connection status itself.
type DismissConnectionBanner struct{}

func (OpenModal) isInput()                {}
func (OpenModal) isIntent()               {}
func (CloseModal) isInput()               {}
func (CloseModal) isIntent()              {}
func (NavigateTo) isInput()               {}
func (NavigateTo) isIntent()              {}
func (DismissConnectionBanner) isInput()  {}
func (DismissConnectionBanner) isIntent() {}

// connectTimeoutElapsed is the internal tick injected by the coordinator's
// run loop when the connection budget runs out.
type connectTimeoutElapsed struct{}

func (connectTimeoutElapsed) isInput() {}

// Effect is a side-effect output emitted alongside a new state. Effects are
// deliberately separate from state so the pure transition and the effect are
// testable independently.
type Effect interface {
	isEffect()
}

// ScrollToBottom tells the presentation layer to scroll the transcript to
// its end. Emitted when a new local-speaker entry is appended.
type ScrollToBottom struct{}

// PublishFinalEntry hands a finalized transcript entry to the analytics
// publisher.
type PublishFinalEntry struct {
	Entry models.TranscriptEntry
}

// PublishResults hands a freshly pushed provider result list to the
// analytics publisher.
type PublishResults struct {
	Records []models.ProviderRecord
}

func (ScrollToBottom) isEffect()    {}
func (PublishFinalEntry) isEffect() {}
func (PublishResults) isEffect()    {}
