// Package recorder holds the two-state recording machine.
package recorder

import (
	"log/slog"
	"sync"
)

// State is the recording indicator state.
type State int

const (
	StateIdle State = iota
	StateListening
)

// String returns the semantic label broadcast to the UI.
func (s State) String() string {
	if s == StateListening {
		return "listening"
	}
	return "idle"
}

// Broadcaster pushes a state transition to the UI surface. Delivery is
// best-effort: with no live window the transition is dropped, not
// queued, and state and presentation diverge until the window returns.
type Broadcaster interface {
	Broadcast(listening bool, label string)
}

// Capture is an optional microphone follower of the recording state.
type Capture interface {
	Start() error
	Stop() error
}

// Recorder flips between Idle and Listening. There are no guards and
// no intermediate states; Toggle always transitions.
type Recorder struct {
	mu      sync.Mutex
	state   State
	bcast   Broadcaster
	capture Capture
}

// New returns a Recorder in the Idle state.
func New(bcast Broadcaster) *Recorder {
	return &Recorder{bcast: bcast}
}

// SetCapture attaches a microphone follower. May be nil.
func (r *Recorder) SetCapture(c Capture) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capture = c
}

// State returns the current state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Toggle flips the state unconditionally, starts or stops the capture
// follower, and broadcasts the transition. Capture failures are logged
// and never block the flip. The lock is held through the broadcast so
// concurrent toggles reach the UI in the order they flipped.
func (r *Recorder) Toggle() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateIdle {
		r.state = StateListening
	} else {
		r.state = StateIdle
	}
	state := r.state

	if r.capture != nil {
		var err error
		if state == StateListening {
			err = r.capture.Start()
		} else {
			err = r.capture.Stop()
		}
		if err != nil {
			slog.Error("recording capture", "state", state, "error", err)
		}
	}

	if r.bcast != nil {
		r.bcast.Broadcast(state == StateListening, state.String())
	}
	return state
}
