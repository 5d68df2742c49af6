package main

import (
	"embed"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sneakyfree/WindyProUltra/internal/app"
	"github.com/sneakyfree/WindyProUltra/window"
)

//go:embed all:frontend/dist
var assets embed.FS

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// trayEnabled gates the system tray. The tray menu is built but the
// capability is off until the icon assets are settled.
const trayEnabled = false

func main() {
	setupLogging()
	slog.Info("starting windy pro", "version", version, "commit", commit, "date", date)

	service := app.New(version)

	wailsApp := application.New(application.Options{
		Name:        "Windy Pro",
		Description: "Desktop dictation utility",
		Services: []application.Service{
			application.NewService(service),
		},
		Assets: application.AssetOptions{
			Handler: application.BundledAssetFileServer(assets),
		},
		Mac: application.MacOptions{
			// Closing the window must not end the background process.
			ApplicationShouldTerminateAfterLastWindowClosed: false,
		},
	})

	var opts []window.Option
	if trayEnabled {
		opts = append(opts, window.WithTray())
	}
	windows := window.New(wailsApp, opts...)
	windows.Create()

	service.Init(wailsApp, windows)
	defer service.Shutdown()

	// macOS activate with no window: recreate the surface.
	wailsApp.OnApplicationEvent(events.Mac.ApplicationShouldHandleReopen, func(event *application.ApplicationEvent) {
		windows.Create()
	})

	if windows.HasTray() && service.TrayEnabled() {
		setupTray(wailsApp, service, windows)
	}

	if err := wailsApp.Run(); err != nil {
		slog.Error("run app", "error", err)
	}
}

func setupTray(wailsApp *application.App, service *app.Service, windows *window.Manager) {
	systemTray := wailsApp.SystemTray.New()

	trayMenu := wailsApp.NewMenu()
	trayMenu.Add("Show Window").OnClick(func(ctx *application.Context) {
		windows.Create()
		windows.Show()
	})
	trayMenu.Add("Toggle Recording").OnClick(func(ctx *application.Context) {
		service.ToggleRecording()
	})
	trayMenu.AddSeparator()
	trayMenu.Add("Quit").
		SetAccelerator("CmdOrCtrl+Q").
		OnClick(func(ctx *application.Context) {
			service.AppQuit()
		})

	systemTray.SetMenu(trayMenu)
}

func setupLogging() {
	logWriter := io.Writer(os.Stderr)

	if configDir, err := os.UserConfigDir(); err == nil {
		rotator := &lumberjack.Logger{
			Filename:   filepath.Join(configDir, "windypro", "windypro.log"),
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		logWriter = io.MultiWriter(os.Stderr, rotator)
	}

	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
}
