package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"voice-assistant-client/internal/decode"
	"voice-assistant-client/internal/models"
	"voice-assistant-client/internal/observability/metrics"
)

// State is the consistent snapshot derived from the event stream. It is a
// value; the coordinator hands out copies and never mutates a snapshot a
// consumer already holds.
type State struct {
	Transcript      []models.TranscriptEntry `json:"transcript"`
	Results         ResultSet                `json:"results"`
	ModalOpen       bool                     `json:"modalOpen"`
	Connection      ConnStatus               `json:"connectionStatus"`
	BannerDismissed bool                     `json:"bannerDismissed"`
}

// NewState returns the initial state for a fresh session.
func NewState() State {
	return State{
		Results:    newResultSet(nil),
		Connection: StatusConnecting,
	}
}

// Reduce applies one input to the state and returns the next state plus any
// side-effect outputs. It is pure given (state, input): feeding a recorded
// input sequence replays the session deterministically.
func Reduce(state State, in Input) (State, []Effect) {
	switch v := in.(type) {
	case TranscriptDelta:
		if v.MessageID == "" {
			// Best-effort transcript beats halting the session.
			log.Debug().Msg("Dropping transcript delta without message id")
			return state, nil
		}
		entry := models.TranscriptEntry{
			MessageID: v.MessageID,
			Speaker:   v.Speaker,
			Text:      v.Text,
			Final:     v.Final,
		}
		entries, appended := applyDelta(state.Transcript, entry)
		state.Transcript = entries

		var effects []Effect
		if appended && v.Speaker == models.SpeakerLocal {
			effects = append(effects, ScrollToBottom{})
		}
		if v.Final {
			effects = append(effects, PublishFinalEntry{Entry: entry})
		}
		return state, effects

	case DataMessage:
		records, err := decode.ProviderResults(v.Topic, v.Payload)
		if err != nil {
			// A stale protocol version or one malformed packet must not
			// disturb the live session. Drop and move on.
			log.Warn().Err(err).Str("topic", v.Topic).Msg("Dropping undecodable data message")
			metrics.DefaultMetrics.RecordDecodeError(err)
			return state, nil
		}
		metrics.DefaultMetrics.ResultPushes.Inc()
		state.Results = newResultSet(records)
		// New results always surface immediately, even mid-navigation.
		state.ModalOpen = true
		return state, []Effect{PublishResults{Records: records}}

	case ConnectionStateChanged:
		if v.Phase == PhaseConnected {
			state.Connection = markReady(state.Connection)
		}
		return state, nil

	case TrackReady:
		state.Connection = markReady(state.Connection)
		return state, nil

	case connectTimeoutElapsed:
		prev := state.Connection
		state.Connection = markTimedOut(prev)
		if state.Connection != prev {
			log.Warn().Msg("Connection budget exceeded before readiness")
		}
		return state, nil

	case OpenModal:
		state.ModalOpen = true
		return state, nil

	case CloseModal:
		state.ModalOpen = false
		return state, nil

	case NavigateTo:
		state.Results = navigate(state.Results, v.Index)
		return state, nil

	case DismissConnectionBanner:
		state.BannerDismissed = true
		return state, nil
	}

	return state, nil
}

// EffectFunc receives effect outputs from the run loop. Called on the
// coordinator goroutine; implementations must not call back into Dispatch
// synchronously.
type EffectFunc func(Effect)

// Coordinator owns all mutable state for one voice session. Every input -
// session event, user intent, timeout tick - is serialized into one ordered
// queue consumed by a single goroutine, so no two reductions ever run
// concurrently. One coordinator per session; nothing is shared.
type Coordinator struct {
	budget   Budget
	onEffect EffectFunc
	metrics  *metrics.Metrics

	inputs  chan Input
	updates chan State
	done    chan struct{}
	once    sync.Once

	mu    sync.RWMutex
	state State
}

// Options configures a coordinator.
type Options struct {
	// ConnectTimeout is the connection establishment budget.
	// DefaultConnectTimeout when zero.
	ConnectTimeout time.Duration
	// OnEffect receives side-effect outputs. Optional.
	OnEffect EffectFunc
	// QueueSize bounds the input queue. Defaults to 64.
	QueueSize int
}

// New creates a coordinator for a fresh session. The connection budget
// starts counting when Run is called.
func New(opts Options) *Coordinator {
	size := opts.QueueSize
	if size <= 0 {
		size = 64
	}
	return &Coordinator{
		budget:   NewBudget(opts.ConnectTimeout),
		onEffect: opts.OnEffect,
		metrics:  metrics.DefaultMetrics,
		inputs:   make(chan Input, size),
		updates:  make(chan State, 1),
		done:     make(chan struct{}),
		state:    NewState(),
	}
}

// Budget exposes the connection budget for progressive UI feedback.
func (c *Coordinator) Budget() Budget {
	return c.budget
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Updates delivers the latest state after each reduction. The channel
// coalesces: a slow consumer sees the newest snapshot, not every
// intermediate one.
func (c *Coordinator) Updates() <-chan State {
	return c.updates
}

// Dispatch enqueues an input for the run loop. Safe from any goroutine;
// returns immediately after teardown without enqueueing.
func (c *Coordinator) Dispatch(in Input) {
	select {
	case c.inputs <- in:
	case <-c.done:
	}
}

// Run consumes the input queue until ctx is cancelled or Close is called.
// The connection budget timer is armed here and released on return, so no
// timeout tick can fire after teardown.
func (c *Coordinator) Run(ctx context.Context) {
	timer := time.NewTimer(c.budget.Remaining(time.Now()))
	defer timer.Stop()

	c.metrics.SessionsActive.Inc()
	defer c.metrics.SessionsActive.Dec()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case <-timer.C:
			c.apply(connectTimeoutElapsed{})
		case in := <-c.inputs:
			// Teardown wins over queued inputs: nothing is applied after
			// Close, even if it was already enqueued.
			select {
			case <-c.done:
				return
			default:
			}
			c.apply(in)
			if c.Snapshot().Connection.IsTerminal() {
				timer.Stop()
			}
		}
	}
}

// Close tears the session down: the run loop exits, the timer is released,
// and later Dispatch calls become no-ops. Idempotent.
func (c *Coordinator) Close() {
	c.once.Do(func() {
		close(c.done)
	})
}

// apply runs one reduction and fans out the snapshot and effects.
func (c *Coordinator) apply(in Input) {
	c.mu.Lock()
	next, effects := Reduce(c.state, in)
	c.state = next
	c.mu.Unlock()

	c.record(in, next)
	c.publish(next)

	if c.onEffect != nil {
		for _, e := range effects {
			c.onEffect(e)
		}
	}
}

// publish coalesces the latest snapshot into the updates channel.
func (c *Coordinator) publish(s State) {
	for {
		select {
		case c.updates <- s:
			return
		default:
			select {
			case <-c.updates:
			default:
			}
		}
	}
}

// record bumps metrics for the applied input.
func (c *Coordinator) record(in Input, next State) {
	switch v := in.(type) {
	case TranscriptDelta:
		c.metrics.RecordTranscriptDelta(v.Final)
	case DataMessage:
		c.metrics.EventsTotal.WithLabelValues("data_message").Inc()
	case ConnectionStateChanged:
		c.metrics.EventsTotal.WithLabelValues("connection_state").Inc()
	case TrackReady:
		c.metrics.EventsTotal.WithLabelValues("track_ready").Inc()
	case connectTimeoutElapsed:
		if next.Connection == StatusTimedOut {
			c.metrics.ConnectionTimeouts.Inc()
		}
	case OpenModal:
		c.metrics.ModalOpens.Inc()
	}
	c.metrics.QueueDepth.Set(float64(len(c.inputs)))
}
