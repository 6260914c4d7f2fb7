// Package transport defines the session event source interface implemented
// by the live gateway client and the scripted mock.
package transport

import (
	"context"

	"voice-assistant-client/internal/session"
)

// Source delivers the real-time session event stream.
type Source interface {
	// Run reads events and delivers them to emit, in arrival order, until
	// ctx is cancelled or the stream ends. No emit call happens after Run
	// returns.
	Run(ctx context.Context, emit func(session.Event)) error
}
