package audiocapture

import (
	"encoding/binary"
	"math"
)

// Level computes the normalized root mean square of a sample block.
// Silence approaches 0, a full-scale signal approaches 1.
func Level(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sumSquares float64
	for _, s := range samples {
		f := float64(s)
		sumSquares += f * f
	}

	return math.Sqrt(sumSquares/float64(len(samples))) / math.MaxInt16
}

// decodePCM16 converts little-endian 16-bit PCM bytes to samples.
// A trailing odd byte is ignored.
func decodePCM16(pcm []byte) []int16 {
	n := len(pcm) / 2
	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2]))
	}
	return samples
}
