package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sneakyfree/WindyProUltra/internal/types"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestOpenMissingFile(t *testing.T) {
	s := tempStore(t)

	if got := s.Get("anything", "fallback"); got != "fallback" {
		t.Fatalf("expected default, got %v", got)
	}
	if doc := s.Document(); len(doc) != 0 {
		t.Fatalf("expected empty document, got %v", doc)
	}
}

func TestGetSet(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"flat", "theme", "dark"},
		{"nested", "server.host", "10.0.0.2"},
		{"deep", "ui.strobe.speed", 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tempStore(t)
			if err := s.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if got := s.Get(tt.key, nil); got != tt.value {
				t.Fatalf("Get(%q) = %v, want %v", tt.key, got, tt.value)
			}
		})
	}
}

func TestGetIsPure(t *testing.T) {
	s := tempStore(t)

	_ = s.Get("never.written", 42)

	// A pure read must not create the file.
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Fatalf("Get created the settings file: %v", err)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Set("server.port", 7000); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Reopen simulates a process restart.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := s2.ServerConfig().Port; got != 7000 {
		t.Fatalf("port after reopen = %d, want 7000", got)
	}
}

func TestServerConfigDefaults(t *testing.T) {
	s := tempStore(t)

	got := s.ServerConfig()
	want := types.ServerConfig{Host: "127.0.0.1", Port: 9876}
	if got != want {
		t.Fatalf("ServerConfig() = %+v, want %+v", got, want)
	}
}

func TestServerConfigConfigured(t *testing.T) {
	s := tempStore(t)
	if err := s.Set(KeyServerHost, "0.0.0.0"); err != nil {
		t.Fatalf("Set host: %v", err)
	}
	if err := s.Set(KeyServerPort, 9999); err != nil {
		t.Fatalf("Set port: %v", err)
	}

	got := s.ServerConfig()
	if got.Host != "0.0.0.0" || got.Port != 9999 {
		t.Fatalf("ServerConfig() = %+v", got)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	s := tempStore(t)

	doc := map[string]any{"language": "en", "vad": true}
	if err := s.SetDocument(doc); err != nil {
		t.Fatalf("SetDocument: %v", err)
	}

	got := s.Document()
	if got["language"] != "en" || got["vad"] != true {
		t.Fatalf("Document() = %v", got)
	}
}

func TestSetDocumentNil(t *testing.T) {
	s := tempStore(t)

	if err := s.SetDocument(nil); err != nil {
		t.Fatalf("SetDocument(nil): %v", err)
	}
	if doc := s.Document(); doc == nil || len(doc) != 0 {
		t.Fatalf("expected empty mapping, got %v", doc)
	}
}

func TestOverwrite(t *testing.T) {
	s := tempStore(t)

	if err := s.Set("theme", "light"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("theme", "dark"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := s.Get("theme", nil); got != "dark" {
		t.Fatalf("expected overwrite to win, got %v", got)
	}
}

func TestWatchSeesExternalEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	// The watcher needs the directory entry to exist.
	if err := s.Set("theme", "light"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	changed := make(chan map[string]any, 1)
	if err := s.Watch(func(doc map[string]any) {
		select {
		case changed <- doc:
		default:
		}
	}); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer s.Close()

	// Simulate an external editor replacing the file.
	edit := `{"theme":"dark","settings":{"language":"sv"}}`
	if err := os.WriteFile(path, []byte(edit), 0644); err != nil {
		t.Fatalf("external write: %v", err)
	}

	select {
	case doc := <-changed:
		if doc["language"] != "sv" {
			t.Fatalf("watcher delivered %v", doc)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watcher never fired")
	}

	if got := s.Get("theme", nil); got != "dark" {
		t.Fatalf("store not reloaded, theme = %v", got)
	}
}

func TestEphemeralStore(t *testing.T) {
	s := Ephemeral()

	if err := s.Set(KeyServerHost, "10.0.0.5"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := s.ServerConfig().Host; got != "10.0.0.5" {
		t.Fatalf("host = %q, want 10.0.0.5", got)
	}
	if s.Path() != "" {
		t.Fatalf("Path() = %q, want empty", s.Path())
	}
	if err := s.Watch(func(map[string]any) {}); err == nil {
		t.Fatal("Watch on an ephemeral store must fail")
	}
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path); err == nil {
		t.Fatal("Open must fail on invalid JSON")
	}
}

func TestTrayEnabled(t *testing.T) {
	s := tempStore(t)

	if !s.TrayEnabled() {
		t.Fatal("tray must default to enabled")
	}

	if err := s.Set(KeyTray, false); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if s.TrayEnabled() {
		t.Fatal("tray must honor an explicit false")
	}
}
