package hotkey

import (
	"errors"
	"testing"
	"time"
)

type fakeBinding struct {
	down         chan struct{}
	unregistered int
}

func (f *fakeBinding) Unregister()              { f.unregistered++; close(f.down) }
func (f *fakeBinding) Keydown() <-chan struct{} { return f.down }

type fakeBinder struct {
	bindings []*fakeBinding
	failNext error
}

func (f *fakeBinder) bind(Combo) (binding, error) {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return nil, err
	}
	b := &fakeBinding{down: make(chan struct{})}
	f.bindings = append(f.bindings, b)
	return b, nil
}

func TestParseCombo(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"default_recording", DefaultToggleRecordingCombo, false},
		{"default_window", DefaultToggleWindowCombo, false},
		{"plain", "ctrl+shift+space", false},
		{"mixed_case", "Ctrl+Shift+Space", false},
		{"spaces", " ctrl + shift + w ", false},
		{"digit_key", "ctrl+alt+1", false},
		{"no_modifier", "space", true},
		{"unknown_modifier", "hyper+space", true},
		{"unknown_key", "ctrl+shift+zork", true},
		{"duplicate_modifier", "ctrl+control+space", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCombo(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCombo(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestParseComboNormalization(t *testing.T) {
	a, err := ParseCombo("shift+ctrl+space")
	if err != nil {
		t.Fatalf("ParseCombo: %v", err)
	}
	b, err := ParseCombo("Ctrl+Shift+Space")
	if err != nil {
		t.Fatalf("ParseCombo: %v", err)
	}
	if a.Normalized() != b.Normalized() {
		t.Fatalf("normalization differs: %q vs %q", a.Normalized(), b.Normalized())
	}
}

func TestRegisterDuplicateFails(t *testing.T) {
	fb := &fakeBinder{}
	r := newRegistrar(fb.bind)

	if err := r.Register("ctrl+shift+space", ActionToggleRecording); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	// Same combination, different spelling: must fail.
	if err := r.Register("shift+ctrl+space", ActionToggleWindow); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}

	// The first binding stays registered.
	if len(fb.bindings) != 1 {
		t.Fatalf("expected 1 OS binding, got %d", len(fb.bindings))
	}
	if fb.bindings[0].unregistered != 0 {
		t.Fatal("first binding must survive the failed duplicate")
	}
}

func TestRegisterBindingConflict(t *testing.T) {
	fb := &fakeBinder{failNext: errors.New("already claimed")}
	r := newRegistrar(fb.bind)

	err := r.Register("ctrl+shift+space", ActionToggleRecording)
	if err == nil {
		t.Fatal("expected conflict error")
	}

	// Conflict is non-fatal: a different combination still registers.
	if err := r.Register("ctrl+shift+w", ActionToggleWindow); err != nil {
		t.Fatalf("sibling registration blocked by earlier conflict: %v", err)
	}
}

func TestDispatch(t *testing.T) {
	fb := &fakeBinder{}
	r := newRegistrar(fb.bind)

	fired := make(chan struct{}, 1)
	r.Handle(ActionToggleRecording, func() { fired <- struct{}{} })

	if err := r.Register("ctrl+shift+space", ActionToggleRecording); err != nil {
		t.Fatalf("Register: %v", err)
	}

	fb.bindings[0].down <- struct{}{}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("handler never fired")
	}
}

func TestUnregisterAll(t *testing.T) {
	fb := &fakeBinder{}
	r := newRegistrar(fb.bind)

	if err := r.Register("ctrl+shift+space", ActionToggleRecording); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register("ctrl+shift+w", ActionToggleWindow); err != nil {
		t.Fatalf("Register: %v", err)
	}

	r.UnregisterAll()
	r.UnregisterAll() // second call must not double-release

	for i, b := range fb.bindings {
		if b.unregistered != 1 {
			t.Fatalf("binding %d released %d times, want 1", i, b.unregistered)
		}
	}

	// No registration after shutdown begins.
	if err := r.Register("ctrl+shift+r", ActionToggleRecording); err == nil {
		t.Fatal("expected registration after shutdown to fail")
	}
}
