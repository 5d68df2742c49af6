package audiocapture

import (
	"math"
	"testing"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name    string
		samples []int16
		want    float64
	}{
		{"empty", nil, 0},
		{"silence", make([]int16, 1600), 0},
		{"full_scale", []int16{math.MaxInt16, math.MaxInt16}, 1},
		{"half_scale", []int16{16384, -16384}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Level(tt.samples)
			if math.Abs(got-tt.want) > 0.001 {
				t.Fatalf("Level() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestDecodePCM16(t *testing.T) {
	// 0x0100 little-endian = 256; trailing odd byte ignored.
	pcm := []byte{0x00, 0x01, 0xFF, 0xFF, 0x42}

	got := decodePCM16(pcm)
	if len(got) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(got))
	}
	if got[0] != 256 || got[1] != -1 {
		t.Fatalf("decoded %v", got)
	}
}

func TestRingBufferReadLast(t *testing.T) {
	rb := NewRingBuffer(4)
	rb.Write([]int16{1, 2, 3})

	got := rb.Read(2)
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Fatalf("Read(2) = %v, want [2 3]", got)
	}
}

func TestRingBufferWraps(t *testing.T) {
	rb := NewRingBuffer(3)
	rb.Write([]int16{1, 2, 3, 4, 5})

	got := rb.Read(3)
	if len(got) != 3 || got[0] != 3 || got[1] != 4 || got[2] != 5 {
		t.Fatalf("Read(3) = %v, want [3 4 5]", got)
	}
}

func TestRingBufferReadMoreThanFilled(t *testing.T) {
	rb := NewRingBuffer(10)
	rb.Write([]int16{7})

	got := rb.Read(5)
	if len(got) != 1 || got[0] != 7 {
		t.Fatalf("Read(5) = %v, want [7]", got)
	}
}

func TestRingBufferClear(t *testing.T) {
	rb := NewRingBuffer(4)
	rb.Write([]int16{1, 2})
	rb.Clear()

	if rb.Len() != 0 {
		t.Fatalf("Len() = %d after Clear", rb.Len())
	}
	if got := rb.Read(4); got != nil {
		t.Fatalf("Read after Clear = %v, want nil", got)
	}
}

func TestRingBufferWrapAcrossWrites(t *testing.T) {
	rb := NewRingBuffer(4)
	rb.Write([]int16{1, 2, 3})
	rb.Write([]int16{4, 5, 6})

	got := rb.Read(4)
	want := []int16{3, 4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("Read(4) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Read(4) = %v, want %v", got, want)
		}
	}
}
