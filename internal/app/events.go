// Package app provides the core application service for Wails bindings.
package app

// Channel names crossing the background/UI boundary. Request channels
// are served by bound Service methods; event channels are one-way
// notifies pushed to the UI.
const (
	ChanGetServerConfig    = "get-server-config"
	ChanGetSettings        = "get-settings"
	ChanUpdateSettings     = "update-settings"
	ChanAppQuit            = "app-quit"
	ChanTranscriptForPaste = "transcript-for-paste"
	ChanGetHistory         = "get-history"
	ChanGetClipboardText   = "get-clipboard-text"
	ChanGetWaveform        = "get-waveform"

	EventToggleRecording = "toggle-recording"
	EventStateChange     = "state-change"
	EventSettingsChanged = "settings-changed"
	EventAudioLevel      = "audio-level"
)
