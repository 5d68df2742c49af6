// Package audiocapture captures microphone audio for the dictation
// indicator. Output is 16-bit PCM at 16 kHz mono, delivered in roughly
// 100 ms blocks with a level reading per block.
package audiocapture

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
)

const (
	SampleRate = 16000
	Channels   = 1

	// blockFrames is ~100 ms of audio per device callback.
	blockFrames = SampleRate / 10

	// bufferSeconds of recent audio kept for the UI waveform.
	bufferSeconds = 30
)

// ErrAlreadyCapturing is returned when Start is called while running.
var ErrAlreadyCapturing = errors.New("already capturing audio")

// LevelFunc receives the normalized RMS level (0..1) of each block.
type LevelFunc func(rms float64)

// Capture is a microphone capture session. The device is initialized
// lazily on Start and released on Stop.
type Capture struct {
	mu      sync.Mutex
	ctx     *malgo.AllocatedContext
	device  *malgo.Device
	onLevel LevelFunc
	buffer  *RingBuffer
}

// New prepares a capture backed by the default input device.
// onLevel may be nil.
func New(onLevel LevelFunc) (*Capture, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("init audio context: %w", err)
	}

	return &Capture{
		ctx:     ctx,
		onLevel: onLevel,
		buffer:  NewRingBuffer(bufferSeconds * SampleRate),
	}, nil
}

// Start begins pulling audio from the microphone.
func (c *Capture) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device != nil {
		return ErrAlreadyCapturing
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = Channels
	deviceConfig.SampleRate = SampleRate
	deviceConfig.PeriodSizeInFrames = blockFrames
	deviceConfig.Alsa.NoMMap = 1

	onData := func(pOutputSamples, pInputSamples []byte, framecount uint32) {
		c.handleBlock(pInputSamples)
	}

	device, err := malgo.InitDevice(c.ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onData,
	})
	if err != nil {
		return fmt.Errorf("init capture device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		return fmt.Errorf("start capture device: %w", err)
	}

	c.buffer.Clear()
	c.device = device
	return nil
}

// Stop releases the capture device. Safe to call when not capturing.
func (c *Capture) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil {
		return nil
	}

	c.device.Stop()
	c.device.Uninit()
	c.device = nil
	return nil
}

// IsCapturing reports whether the device is currently running.
func (c *Capture) IsCapturing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.device != nil
}

// Buffered returns the last duration of captured samples.
func (c *Capture) Buffered(duration time.Duration) []int16 {
	n := int(duration.Seconds() * SampleRate)
	return c.buffer.Read(n)
}

// Close releases the audio context. The capture is unusable afterwards.
func (c *Capture) Close() error {
	if err := c.Stop(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ctx != nil {
		_ = c.ctx.Uninit()
		c.ctx.Free()
		c.ctx = nil
	}
	return nil
}

// handleBlock runs on the audio thread: buffer the block and report
// its level.
func (c *Capture) handleBlock(pcm []byte) {
	samples := decodePCM16(pcm)
	c.buffer.Write(samples)

	if c.onLevel != nil {
		c.onLevel(Level(samples))
	}
}
