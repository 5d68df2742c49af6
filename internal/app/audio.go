package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/sneakyfree/WindyProUltra/audiocapture"
	"github.com/sneakyfree/WindyProUltra/internal/types"
)

// AudioAdapter follows the recording state with a microphone capture
// session, forwarding level readings to the UI meter.
type AudioAdapter struct {
	mu      sync.Mutex
	capture *audiocapture.Capture
	gateway *Gateway
	seq     int
}

// NewAudioAdapter prepares the adapter. The capture device itself is
// only claimed while recording.
func NewAudioAdapter(gateway *Gateway) (*AudioAdapter, error) {
	aa := &AudioAdapter{gateway: gateway}

	capture, err := audiocapture.New(aa.onLevel)
	if err != nil {
		return nil, fmt.Errorf("create audio capture: %w", err)
	}
	aa.capture = capture
	return aa, nil
}

func (aa *AudioAdapter) onLevel(rms float64) {
	aa.mu.Lock()
	aa.seq++
	seq := aa.seq
	aa.mu.Unlock()

	aa.gateway.AudioLevel(types.AudioLevel{
		RMS:       rms,
		Timestamp: time.Now().UnixMilli(),
		Seq:       seq,
	})
}

// Start claims the microphone. Part of the recorder's Capture contract.
func (aa *AudioAdapter) Start() error {
	aa.mu.Lock()
	aa.seq = 0
	aa.mu.Unlock()
	return aa.capture.Start()
}

// Stop releases the microphone.
func (aa *AudioAdapter) Stop() error {
	return aa.capture.Stop()
}

// Waveform returns up to d of the most recent samples for the UI.
func (aa *AudioAdapter) Waveform(d time.Duration) []int16 {
	return aa.capture.Buffered(d)
}

// Close releases the audio backend.
func (aa *AudioAdapter) Close() error {
	return aa.capture.Close()
}
