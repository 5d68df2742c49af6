// Package hotkey binds global key combinations to controller actions.
package hotkey

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.design/x/hotkey"
)

// Action identifies a dispatchable hotkey action.
type Action string

const (
	ActionToggleRecording Action = "toggle-recording"
	ActionToggleWindow    Action = "toggle-window"

	// ActionPasteTranscript is reserved. Binding it would collide with
	// the OS paste shortcut on some layouts, so no default combination
	// is wired to it yet.
	ActionPasteTranscript Action = "paste-transcript"
)

// Default combinations bound at startup. "cmdorctrl" resolves to Cmd on
// macOS and Ctrl elsewhere.
const (
	DefaultToggleRecordingCombo = "cmdorctrl+shift+space"
	DefaultToggleWindowCombo    = "cmdorctrl+shift+w"
)

// binding is one live OS-level registration.
type binding interface {
	Unregister()
	Keydown() <-chan struct{}
}

// Registrar owns every global binding of the process. Bindings are
// registered once at startup and all released together at shutdown.
type Registrar struct {
	mu       sync.Mutex
	bind     func(Combo) (binding, error)
	bound    map[string]binding
	handlers map[Action]func()
	shutdown bool

	releaseOnce sync.Once
}

// NewRegistrar returns a Registrar backed by the OS hotkey facility.
func NewRegistrar() *Registrar {
	return newRegistrar(bindOS)
}

func newRegistrar(bind func(Combo) (binding, error)) *Registrar {
	return &Registrar{
		bind:     bind,
		bound:    make(map[string]binding),
		handlers: make(map[Action]func()),
	}
}

// Handle installs the callback dispatched when action's combination
// fires. Handlers run to completion on the dispatch goroutine.
func (r *Registrar) Handle(action Action, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[action] = fn
}

// Register attempts an OS-level global binding of combo to action.
// All-or-nothing: on failure nothing is bound and the error is
// returned for the caller to log. A combination registers at most once
// per process lifetime.
func (r *Registrar) Register(combo string, action Action) error {
	parsed, err := ParseCombo(combo)
	if err != nil {
		return fmt.Errorf("parse %q: %w", combo, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.shutdown {
		return fmt.Errorf("register %q: registrar shut down", combo)
	}
	if _, dup := r.bound[parsed.normalized]; dup {
		return fmt.Errorf("register %q: combination already bound", combo)
	}

	b, err := r.bind(parsed)
	if err != nil {
		return fmt.Errorf("register %q: %w", combo, err)
	}
	r.bound[parsed.normalized] = b

	go r.dispatch(b, action)
	return nil
}

func (r *Registrar) dispatch(b binding, action Action) {
	for range b.Keydown() {
		r.mu.Lock()
		fn := r.handlers[action]
		r.mu.Unlock()

		if fn == nil {
			slog.Warn("hotkey fired with no handler", "action", action)
			continue
		}
		fn()
	}
}

// UnregisterAll releases every binding. Safe to call more than once;
// only the first call releases. No registration is accepted afterwards.
func (r *Registrar) UnregisterAll() {
	r.releaseOnce.Do(func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		r.shutdown = true
		for combo, b := range r.bound {
			b.Unregister()
			delete(r.bound, combo)
		}
	})
}

// osBinding wraps golang.design/x/hotkey, pumping its keydown events
// into a plain channel the dispatcher can range over.
type osBinding struct {
	hk   *hotkey.Hotkey
	down chan struct{}
	stop chan struct{}
}

func bindOS(c Combo) (binding, error) {
	hk := hotkey.New(c.Mods, c.Key)
	if err := hk.Register(); err != nil {
		return nil, err
	}

	b := &osBinding{
		hk:   hk,
		down: make(chan struct{}),
		stop: make(chan struct{}),
	}
	go b.pump()
	return b, nil
}

func (b *osBinding) pump() {
	defer close(b.down)
	for {
		select {
		case <-b.stop:
			return
		case <-b.hk.Keydown():
			select {
			case b.down <- struct{}{}:
			case <-b.stop:
				return
			}
		}
	}
}

func (b *osBinding) Unregister() {
	close(b.stop)
	if err := b.hk.Unregister(); err != nil {
		slog.Error("unregister hotkey", "error", err)
	}
}

func (b *osBinding) Keydown() <-chan struct{} { return b.down }
