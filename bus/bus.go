// Package bus defines the typed message channels crossing the
// background-process/UI boundary. Two kinds exist: Notify channels are
// one-way and best-effort, Request channels answer exactly once.
package bus

import (
	"errors"
	"fmt"
)

// ErrUnbound is returned when a request channel has no handler.
var ErrUnbound = errors.New("request channel unbound")

// Emitter delivers one-way notifications to the UI surface.
// The Wails event manager satisfies this via a small adapter.
type Emitter interface {
	Emit(name string, data any)
}

// Notify is a one-way channel. If the recipient is not live the payload
// is dropped, not queued.
type Notify[T any] struct {
	Name string
}

// Send emits the payload through e. A nil emitter means no recipient;
// the payload is silently dropped.
func (n Notify[T]) Send(e Emitter, v T) {
	if e == nil {
		return
	}
	e.Emit(n.Name, v)
}

// Request is a request/response channel. The handler runs on the
// background side and replies exactly once per call.
type Request[T, R any] struct {
	name    string
	handler func(T) (R, error)
}

// NewRequest declares a request channel with the given wire name.
func NewRequest[T, R any](name string) *Request[T, R] {
	return &Request[T, R]{name: name}
}

// Bind installs the background-side handler. Later binds replace
// earlier ones.
func (r *Request[T, R]) Bind(h func(T) (R, error)) {
	r.handler = h
}

// Call invokes the handler and returns its single reply.
func (r *Request[T, R]) Call(v T) (R, error) {
	if r.handler == nil {
		var zero R
		return zero, fmt.Errorf("%s: %w", r.name, ErrUnbound)
	}
	return r.handler(v)
}
