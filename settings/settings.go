// Package settings persists user preferences as a single JSON document.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sneakyfree/WindyProUltra/internal/types"
)

const (
	appName          = "windypro"
	settingsFileName = "settings.json"
)

// Keys of well-known entries inside the document.
const (
	KeyServerHost = "server.host"
	KeyServerPort = "server.port"
	KeyDocument   = "settings"
	KeyTray       = "tray.enabled"
)

// Store holds the settings document and writes it through to disk on
// every mutation. Reads never touch the disk after Open.
type Store struct {
	mu   sync.Mutex
	path string
	doc  map[string]any

	watcher *watcher
}

// DefaultPath returns the settings file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(dir, appName, settingsFileName), nil
}

// Open loads the settings document from path.
// A missing file yields an empty document.
func Open(path string) (*Store, error) {
	s := &Store{path: path, doc: map[string]any{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	return s, nil
}

// Ephemeral returns a store with no backing file. Mutations stay in
// memory and are lost on exit; used when no settings path is usable.
func Ephemeral() *Store {
	return &Store{doc: map[string]any{}}
}

// Get returns the value stored under key, or def when absent.
// Keys use dotted paths into nested objects ("server.host").
func (s *Store) Get(key string, def any) any {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := lookup(s.doc, key)
	if !ok {
		return def
	}
	return v
}

// Set stores value under key and persists the whole document before
// returning. Callers never need to wait or retry.
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	assign(s.doc, key, value)
	return s.save()
}

// Document returns the user settings mapping stored under the
// "settings" key, defaulting to an empty mapping.
func (s *Store) Document() map[string]any {
	v := s.Get(KeyDocument, nil)
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// SetDocument replaces the user settings mapping as a whole.
func (s *Store) SetDocument(doc map[string]any) error {
	if doc == nil {
		doc = map[string]any{}
	}
	return s.Set(KeyDocument, doc)
}

// ServerConfig returns the configured transcription server endpoint,
// applying defaults when unset.
func (s *Store) ServerConfig() types.ServerConfig {
	cfg := types.ServerConfig{
		Host: types.DefaultServerHost,
		Port: types.DefaultServerPort,
	}

	if h, ok := s.Get(KeyServerHost, nil).(string); ok && h != "" {
		cfg.Host = h
	}
	switch p := s.Get(KeyServerPort, nil).(type) {
	case float64: // JSON numbers decode as float64
		cfg.Port = int(p)
	case int:
		cfg.Port = p
	}
	return cfg
}

// TrayEnabled reports whether the user wants the tray menu.
// Enabled when unset.
func (s *Store) TrayEnabled() bool {
	v, ok := s.Get(KeyTray, true).(bool)
	if !ok {
		return true
	}
	return v
}

// Path returns the backing file path. Empty for ephemeral stores.
func (s *Store) Path() string { return s.path }

// Close stops the change watcher if one is running.
func (s *Store) Close() error {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if w != nil {
		return w.stop()
	}
	return nil
}

// save writes the document to disk. Caller holds s.mu.
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// reload re-reads the document from disk, used by the change watcher.
func (s *Store) reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read settings: %w", err)
	}

	doc := map[string]any{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal settings: %w", err)
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	return nil
}

// lookup walks a dotted path through nested objects.
func lookup(doc map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	cur := doc
	for i, part := range parts {
		v, ok := cur[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}

// assign writes value at a dotted path, creating intermediate objects.
// Non-object intermediates are replaced.
func assign(doc map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	cur := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}
