// Package types provides shared type definitions for the application.
package types

import "time"

// ServerConfig is the transcription server endpoint handed to the UI.
// The controller only stores it; dialing the server is the UI's job.
type ServerConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// Default server endpoint used when nothing is configured.
const (
	DefaultServerHost = "127.0.0.1"
	DefaultServerPort = 9876
)

// TranscriptEntry is one captured dictation handed back by the UI.
type TranscriptEntry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// AudioLevel is a microphone level sample for the UI meter.
type AudioLevel struct {
	RMS       float64 `json:"rms"`       // root mean square of the block, 0..1
	Timestamp int64   `json:"timestamp"` // unix milliseconds
	Seq       int     `json:"seq"`
}
