package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/wailsapp/wails/v3/pkg/application"

	"github.com/sneakyfree/WindyProUltra/clipboard"
	"github.com/sneakyfree/WindyProUltra/history"
	"github.com/sneakyfree/WindyProUltra/hotkey"
	"github.com/sneakyfree/WindyProUltra/internal/types"
	"github.com/sneakyfree/WindyProUltra/recorder"
	"github.com/sneakyfree/WindyProUltra/settings"
	"github.com/sneakyfree/WindyProUltra/window"
)

// Service is the controller's context object: the one place holding
// the window manager, recording state, and settings store. It is
// constructed once in main and bound to Wails, so its exported methods
// are the UI's request channels.
type Service struct {
	app     *application.App
	windows *window.Manager

	store     *settings.Store
	registrar *hotkey.Registrar
	recorder  *recorder.Recorder
	history   *history.Store
	audio     *AudioAdapter
	gateway   *Gateway

	version string

	shutdownOnce sync.Once
}

// New creates the service. Call Init after the Wails app exists.
func New(version string) *Service {
	return &Service{version: version}
}

// wailsEmitter adapts the Wails event manager to the bus.Emitter
// contract.
type wailsEmitter struct {
	app *application.App
}

func (e wailsEmitter) Emit(name string, data any) {
	e.app.Event.Emit(name, data)
}

// Init wires every component. Must be called once, after the Wails
// application is created and before Run.
func (s *Service) Init(app *application.App, windows *window.Manager) {
	s.app = app
	s.windows = windows

	s.setupSettings()
	s.setupHistory()

	s.gateway = NewGateway(s.store, s.history, s.windows, wailsEmitter{app: app})
	s.recorder = recorder.New(s.gateway)

	s.setupAudio()
	s.setupHotkeys()
	s.setupWatcher()
}

func (s *Service) setupSettings() {
	path, err := settings.DefaultPath()
	if err != nil {
		slog.Error("resolve settings path", "error", err)
		path = "settings.json"
	}

	s.store = openSettings(path, filepath.Join(os.TempDir(), "windypro-settings.json"))
	slog.Info("settings loaded", "path", s.store.Path())
}

// openSettings never returns nil: a corrupt or unreadable file falls
// back to the alternate path, and a corrupt alternate falls back to an
// in-memory document so the request channels always have a store.
func openSettings(path, fallback string) *settings.Store {
	store, err := settings.Open(path)
	if err == nil {
		return store
	}
	slog.Error("open settings", "path", path, "error", err)

	store, err = settings.Open(fallback)
	if err == nil {
		return store
	}
	slog.Error("open fallback settings", "path", fallback, "error", err)
	return settings.Ephemeral()
}

func (s *Service) setupHistory() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		slog.Error("get config dir for history", "error", err)
		return
	}

	historyPath := filepath.Join(configDir, "windypro", "history")
	h, err := history.Open(historyPath)
	if err != nil {
		slog.Error("open history", "error", err)
		return
	}
	s.history = h
	slog.Info("history opened", "path", historyPath)
}

func (s *Service) setupAudio() {
	audio, err := NewAudioAdapter(s.gateway)
	if err != nil {
		// No audio backend: recording state still works, the UI just
		// gets no level meter.
		slog.Error("init audio capture", "error", err)
		return
	}
	s.audio = audio
	s.recorder.SetCapture(audio)
}

func (s *Service) setupHotkeys() {
	s.registrar = hotkey.NewRegistrar()
	s.registrar.Handle(hotkey.ActionToggleRecording, func() { s.ToggleRecording() })
	s.registrar.Handle(hotkey.ActionToggleWindow, func() { s.windows.ToggleVisibility() })

	bindings := []struct {
		combo  string
		action hotkey.Action
	}{
		{hotkey.DefaultToggleRecordingCombo, hotkey.ActionToggleRecording},
		{hotkey.DefaultToggleWindowCombo, hotkey.ActionToggleWindow},
		// hotkey.ActionPasteTranscript stays unbound: see the note on
		// the action constant.
	}

	for _, b := range bindings {
		if err := s.registrar.Register(b.combo, b.action); err != nil {
			// Binding conflicts are non-fatal: the action is simply
			// unreachable via that shortcut for this process lifetime.
			slog.Warn("register hotkey", "combo", b.combo, "action", b.action, "error", err)
		} else {
			slog.Info("hotkey registered", "combo", b.combo, "action", b.action)
		}
	}
}

func (s *Service) setupWatcher() {
	err := s.store.Watch(func(doc map[string]any) {
		s.gateway.SettingsChanged(doc)
	})
	if err != nil {
		slog.Error("watch settings", "error", err)
	}
}

// Shutdown releases every resource. Safe to call more than once; only
// the first call runs, and hotkeys are unregistered before it returns.
func (s *Service) Shutdown() {
	s.shutdownOnce.Do(func() {
		if s.registrar != nil {
			s.registrar.UnregisterAll()
		}
		if s.audio != nil {
			if err := s.audio.Close(); err != nil {
				slog.Error("close audio", "error", err)
			}
		}
		if s.store != nil {
			if err := s.store.Close(); err != nil {
				slog.Error("close settings", "error", err)
			}
		}
		if s.history != nil {
			if err := s.history.Close(); err != nil {
				slog.Error("close history", "error", err)
			}
		}
	})
}

// GetVersion returns the application version.
func (s *Service) GetVersion() string {
	return s.version
}

// GetServerConfig serves the get-server-config request channel.
func (s *Service) GetServerConfig() (types.ServerConfig, error) {
	return s.gateway.ServerConfig()
}

// GetSettings serves the get-settings request channel.
func (s *Service) GetSettings() (map[string]any, error) {
	return s.gateway.Settings()
}

// UpdateSettings serves the update-settings one-way channel.
func (s *Service) UpdateSettings(doc map[string]any) {
	if err := s.gateway.UpdateSettings(doc); err != nil {
		slog.Error("update settings", "error", err)
	}
}

// GetHistory serves the get-history request channel.
func (s *Service) GetHistory(limit int) ([]types.TranscriptEntry, error) {
	return s.gateway.History(limit)
}

// AppQuit serves the app-quit one-way channel.
func (s *Service) AppQuit() {
	s.Shutdown()
	s.app.Quit()
}

// PasteTranscript serves the transcript-for-paste one-way channel:
// the text lands on the system clipboard and in the history store.
// Simulating the paste keystroke itself is intentionally not done yet.
func (s *Service) PasteTranscript(text string) {
	if err := clipboard.SetText(s.app, text); err != nil {
		slog.Error("set clipboard", "error", err)
		return
	}
	if s.history != nil {
		if _, err := s.history.Add(text); err != nil {
			slog.Warn("record transcript", "error", err)
		}
	}
}

// GetClipboardText serves the get-clipboard-text request channel.
func (s *Service) GetClipboardText() (string, error) {
	return clipboard.GetText(s.app)
}

// GetWaveform serves the get-waveform request channel with up to
// seconds of recent microphone samples, oldest first.
func (s *Service) GetWaveform(seconds float64) []int16 {
	if s.audio == nil {
		return nil
	}
	return s.audio.Waveform(time.Duration(seconds * float64(time.Second)))
}

// TrayEnabled reports the user's tray preference.
func (s *Service) TrayEnabled() bool {
	return s.store.TrayEnabled()
}

// ToggleRecording flips the recording state. Reachable from the global
// hotkey and from the UI.
func (s *Service) ToggleRecording() string {
	state := s.recorder.Toggle()
	slog.Info("recording toggled", "state", state)
	return state.String()
}

// RecordingState returns the current recording state label.
func (s *Service) RecordingState() string {
	return s.recorder.State().String()
}

// ToggleWindowVisibility flips the window's visibility.
func (s *Service) ToggleWindowVisibility() {
	s.windows.ToggleVisibility()
}
