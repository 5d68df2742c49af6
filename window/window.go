// Package window owns the single UI surface of the controller.
package window

import (
	"log/slog"
	"sync"

	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"
)

// Fixed surface geometry: 400x600 logical units, anchored 20 units off
// the bottom-right corner of the primary display's work area.
const (
	Width  = 400
	Height = 600
	Margin = 20
)

// surface is the slice of the Wails window API the manager drives.
// Kept narrow so lifecycle semantics are testable with a fake.
type surface interface {
	Show()
	Hide()
	Focus()
	IsVisible() bool
}

// Manager owns the one UI surface: creation, placement, visibility,
// and teardown. At most one surface exists at any time.
type Manager struct {
	mu     sync.Mutex
	win    surface
	create func() surface
	tray   bool
}

// Option configures optional Manager capabilities.
type Option func(*Manager)

// WithTray marks tray support as present. The tray itself is built by
// main; the manager only carries the capability flag.
func WithTray() Option {
	return func(m *Manager) { m.tray = true }
}

// New returns a Manager that creates Wails webview windows on app.
func New(app *application.App, opts ...Option) *Manager {
	m := &Manager{}
	m.create = func() surface { return m.newWailsWindow(app) }
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// newManager builds a Manager around an arbitrary surface factory.
// Used by tests; production code goes through New.
func newManager(create func() surface, opts ...Option) *Manager {
	m := &Manager{create: create}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) newWailsWindow(app *application.App) surface {
	x, y := defaultPosition(app)

	win := app.Window.NewWithOptions(application.WebviewWindowOptions{
		Title:          "Windy Pro",
		Width:          Width,
		Height:         Height,
		X:              x,
		Y:              y,
		URL:            "/",
		Frameless:      true,
		AlwaysOnTop:    true,
		DisableResize:  true,
		BackgroundType: application.BackgroundTypeTranslucent,
		Mac: application.MacWindow{
			Backdrop: application.MacBackdropTranslucent,
		},
	})

	// The OS closing the surface destroys it; the handle must be
	// cleared so a later Create starts from scratch.
	win.RegisterHook(events.Common.WindowClosing, func(e *application.WindowEvent) {
		m.DestroyNotify()
	})

	return wailsSurface{win: win}
}

// wailsSurface narrows the chaining Wails window API down to surface.
type wailsSurface struct {
	win *application.WebviewWindow
}

func (s wailsSurface) Show()           { s.win.Show() }
func (s wailsSurface) Hide()           { s.win.Hide() }
func (s wailsSurface) Focus()          { s.win.Focus() }
func (s wailsSurface) IsVisible() bool { return s.win.IsVisible() }

// defaultPosition resolves the bottom-right placement against the
// primary display, falling back to the origin when no screen is known.
func defaultPosition(app *application.App) (int, int) {
	screen := app.Screen.GetPrimary()
	if screen == nil {
		slog.Warn("primary screen unavailable, placing window at origin")
		return 0, 0
	}
	return Place(screen.WorkArea.Width, screen.WorkArea.Height)
}

// Place computes the top-left corner for a work area of the given size.
func Place(workWidth, workHeight int) (x, y int) {
	return workWidth - Width - Margin, workHeight - Height - Margin
}

// Create instantiates the UI surface. No-op when one already exists.
func (m *Manager) Create() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.win != nil {
		return
	}
	m.win = m.create()
	m.win.Show()
}

// DestroyNotify is invoked when the OS reports the surface closed.
// The handle is cleared; the process keeps running.
func (m *Manager) DestroyNotify() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.win = nil
}

// IsLive reports whether a usable surface handle currently exists.
func (m *Manager) IsLive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.win != nil
}

// Show surfaces the window. No-op when no window exists.
func (m *Manager) Show() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.win == nil {
		return
	}
	m.win.Show()
	m.win.Focus()
}

// Hide conceals the window. No-op when no window exists.
func (m *Manager) Hide() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.win == nil {
		return
	}
	m.win.Hide()
}

// ToggleVisibility flips visibility. No-op when no window exists.
func (m *Manager) ToggleVisibility() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.win == nil {
		return
	}
	if m.win.IsVisible() {
		m.win.Hide()
	} else {
		m.win.Show()
		m.win.Focus()
	}
}

// HasTray reports whether tray support is enabled.
func (m *Manager) HasTray() bool { return m.tray }
