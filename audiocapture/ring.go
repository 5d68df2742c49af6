package audiocapture

import "sync"

// RingBuffer keeps a fixed-size window of the most recent samples.
type RingBuffer struct {
	mu    sync.RWMutex
	buf   []int16
	head  int // next write index
	count int
}

// NewRingBuffer creates a ring buffer holding size samples.
func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{buf: make([]int16, size)}
}

// Write appends samples, discarding the oldest once the window is full.
func (rb *RingBuffer) Write(samples []int16) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	size := len(rb.buf)
	if len(samples) >= size {
		// Only the tail of the batch survives.
		copy(rb.buf, samples[len(samples)-size:])
		rb.head = 0
		rb.count = size
		return
	}

	n := copy(rb.buf[rb.head:], samples)
	copy(rb.buf, samples[n:])
	rb.head = (rb.head + len(samples)) % size
	rb.count = min(rb.count+len(samples), size)
}

// Read returns the newest n samples in arrival order, fewer when the
// buffer holds fewer.
func (rb *RingBuffer) Read(n int) []int16 {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	if n > rb.count {
		n = rb.count
	}
	if n <= 0 {
		return nil
	}

	out := make([]int16, n)
	start := rb.head - n
	if start < 0 {
		start += len(rb.buf)
	}
	m := copy(out, rb.buf[start:])
	copy(out[m:], rb.buf[:n-m])
	return out
}

// Clear drops all buffered samples.
func (rb *RingBuffer) Clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.head = 0
	rb.count = 0
}

// Len returns the number of buffered samples.
func (rb *RingBuffer) Len() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count
}
