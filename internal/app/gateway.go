package app

import (
	"fmt"
	"log/slog"

	"github.com/sneakyfree/WindyProUltra/bus"
	"github.com/sneakyfree/WindyProUltra/internal/types"
	"github.com/sneakyfree/WindyProUltra/settings"
)

// liveness answers whether a UI surface currently exists to deliver to.
type liveness interface {
	IsLive() bool
}

// historyReader is the slice of the history store the gateway reads.
type historyReader interface {
	Recent(n int) ([]types.TranscriptEntry, error)
}

// Gateway is the process-boundary protocol: typed request channels
// answered from the settings and history stores, and one-way notifies
// delivered best-effort to the live window.
type Gateway struct {
	store   *settings.Store
	history historyReader
	windows liveness
	emitter bus.Emitter

	getServerConfig *bus.Request[struct{}, types.ServerConfig]
	getSettings     *bus.Request[struct{}, map[string]any]
	getHistory      *bus.Request[int, []types.TranscriptEntry]

	notifyToggle   bus.Notify[bool]
	notifyState    bus.Notify[string]
	notifySettings bus.Notify[map[string]any]
	notifyLevel    bus.Notify[types.AudioLevel]
}

// NewGateway wires the channels to their backing stores. history may
// be nil when the history store failed to open.
func NewGateway(store *settings.Store, history historyReader, windows liveness, emitter bus.Emitter) *Gateway {
	g := &Gateway{
		store:   store,
		history: history,
		windows: windows,
		emitter: emitter,

		getServerConfig: bus.NewRequest[struct{}, types.ServerConfig](ChanGetServerConfig),
		getSettings:     bus.NewRequest[struct{}, map[string]any](ChanGetSettings),
		getHistory:      bus.NewRequest[int, []types.TranscriptEntry](ChanGetHistory),

		notifyToggle:   bus.Notify[bool]{Name: EventToggleRecording},
		notifyState:    bus.Notify[string]{Name: EventStateChange},
		notifySettings: bus.Notify[map[string]any]{Name: EventSettingsChanged},
		notifyLevel:    bus.Notify[types.AudioLevel]{Name: EventAudioLevel},
	}

	g.getServerConfig.Bind(func(struct{}) (types.ServerConfig, error) {
		return g.store.ServerConfig(), nil
	})
	g.getSettings.Bind(func(struct{}) (map[string]any, error) {
		return g.store.Document(), nil
	})
	g.getHistory.Bind(func(limit int) ([]types.TranscriptEntry, error) {
		if g.history == nil {
			return nil, nil
		}
		return g.history.Recent(limit)
	})

	return g
}

// ServerConfig answers the get-server-config request.
func (g *Gateway) ServerConfig() (types.ServerConfig, error) {
	return g.getServerConfig.Call(struct{}{})
}

// Settings answers the get-settings request.
func (g *Gateway) Settings() (map[string]any, error) {
	return g.getSettings.Call(struct{}{})
}

// UpdateSettings persists the whole settings document.
func (g *Gateway) UpdateSettings(doc map[string]any) error {
	if err := g.store.SetDocument(doc); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}

// History answers the get-history request.
func (g *Gateway) History(limit int) ([]types.TranscriptEntry, error) {
	return g.getHistory.Call(limit)
}

// Broadcast delivers a recording transition to the live window: first
// the raw toggle value, then the semantic label. With no live window
// both are dropped, not queued.
func (g *Gateway) Broadcast(listening bool, label string) {
	if !g.windows.IsLive() {
		slog.Debug("no live window, dropping state broadcast", "state", label)
		return
	}
	g.notifyToggle.Send(g.emitter, listening)
	g.notifyState.Send(g.emitter, label)
}

// SettingsChanged pushes an externally modified settings document.
func (g *Gateway) SettingsChanged(doc map[string]any) {
	if !g.windows.IsLive() {
		return
	}
	g.notifySettings.Send(g.emitter, doc)
}

// AudioLevel pushes a microphone level sample to the UI meter.
func (g *Gateway) AudioLevel(level types.AudioLevel) {
	if !g.windows.IsLive() {
		return
	}
	g.notifyLevel.Send(g.emitter, level)
}
