// Package clipboard wraps the Wails clipboard for transcript handoff.
package clipboard

import (
	"errors"

	"github.com/wailsapp/wails/v3/pkg/application"
)

// SetText places text on the system clipboard.
func SetText(app *application.App, text string) error {
	if app == nil {
		return errors.New("application not initialized")
	}
	if !app.Clipboard.SetText(text) {
		return errors.New("failed to set clipboard text")
	}
	return nil
}

// GetText returns the current clipboard text, if any.
func GetText(app *application.App) (string, error) {
	if app == nil {
		return "", errors.New("application not initialized")
	}
	text, ok := app.Clipboard.Text()
	if !ok {
		return "", errors.New("failed to get clipboard text")
	}
	return text, nil
}
