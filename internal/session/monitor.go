package session

import (
	"fmt"
	"time"
)

// ConnStatus is the lifecycle state of the session connection.
type ConnStatus int

const (
	// StatusConnecting - session establishment in progress.
	StatusConnecting ConnStatus = iota
	// StatusReady - first readiness signal received. Terminal.
	StatusReady
	// StatusTimedOut - budget elapsed with no readiness signal. Terminal.
	// A session that times out does not recover into Ready; a late
	// readiness signal is ignored to avoid banner flicker.
	StatusTimedOut
)

// String returns the string representation of the status.
func (s ConnStatus) String() string {
	switch s {
	case StatusConnecting:
		return "CONNECTING"
	case StatusReady:
		return "READY"
	case StatusTimedOut:
		return "TIMED_OUT"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(s))
	}
}

// IsTerminal returns true once the status can no longer change.
func (s ConnStatus) IsTerminal() bool {
	return s == StatusReady || s == StatusTimedOut
}

// DefaultConnectTimeout is the connection establishment budget.
const DefaultConnectTimeout = 200 * time.Second

// Budget tracks elapsed time against the connection timeout budget, for
// progressive UI feedback while the session connects.
type Budget struct {
	start   time.Time
	timeout time.Duration
}

// NewBudget starts a budget of d from now.
func NewBudget(d time.Duration) Budget {
	if d <= 0 {
		d = DefaultConnectTimeout
	}
	return Budget{start: time.Now(), timeout: d}
}

// Timeout returns the configured budget duration.
func (b Budget) Timeout() time.Duration {
	return b.timeout
}

// Remaining returns the time left in the budget, floored at zero.
func (b Budget) Remaining(now time.Time) time.Duration {
	r := b.timeout - now.Sub(b.start)
	if r < 0 {
		return 0
	}
	return r
}

// Fraction returns the elapsed fraction of the budget, clamped to [0, 1].
func (b Budget) Fraction(now time.Time) float64 {
	if b.timeout <= 0 {
		return 1
	}
	f := float64(now.Sub(b.start)) / float64(b.timeout)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Exceeded returns true once the budget has elapsed.
func (b Budget) Exceeded(now time.Time) bool {
	return now.Sub(b.start) >= b.timeout
}

// markReady applies a readiness signal: Connecting transitions to Ready;
// terminal states are left untouched.
func markReady(s ConnStatus) ConnStatus {
	if s == StatusConnecting {
		return StatusReady
	}
	return s
}

// markTimedOut applies a budget expiry: Connecting transitions to
// TimedOut; terminal states are left untouched.
func markTimedOut(s ConnStatus) ConnStatus {
	if s == StatusConnecting {
		return StatusTimedOut
	}
	return s
}
