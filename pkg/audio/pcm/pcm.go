package pcm

import (
	"fmt"
	"time"
)

// Format is a headerless L16 (signed 16-bit little-endian) mono layout.
// Raw .pcm/.raw files carry no header, so the caller names the format.
type Format int

const (
	// L16Mono16K represents audio/L16; rate=16000; channels=1
	L16Mono16K Format = iota
	// L16Mono24K represents audio/L16; rate=24000; channels=1
	L16Mono24K
	// L16Mono48K represents audio/L16; rate=48000; channels=1
	L16Mono48K
	// L16Mono8K represents audio/L16; rate=8000; channels=1
	L16Mono8K
	// L16Mono44K represents audio/L16; rate=44100; channels=1
	L16Mono44K
)

// SampleRate returns the sample rate in Hz for this format.
func (f Format) SampleRate() int {
	switch f {
	case L16Mono8K:
		return 8000
	case L16Mono16K:
		return 16000
	case L16Mono24K:
		return 24000
	case L16Mono44K:
		return 44100
	case L16Mono48K:
		return 48000
	}
	panic("pcm: invalid audio type")
}

// Channels returns the number of audio channels for this format.
func (f Format) Channels() int { return 1 }

// Depth returns the bit depth for this format.
func (f Format) Depth() int { return 16 }

// Samples returns the number of samples in the given number of bytes.
func (f Format) Samples(bytes int64) int64 {
	return bytes * 8 / int64(f.Channels()) / int64(f.Depth())
}

// Duration returns the duration of the given number of bytes.
func (f Format) Duration(bytes int64) time.Duration {
	return time.Duration(f.Samples(bytes)) * time.Second / time.Duration(f.SampleRate())
}

// String returns a human-readable string representation of the format.
func (f Format) String() string {
	return fmt.Sprintf("audio/L16; rate=%d; channels=1", f.SampleRate())
}

// FormatForRate returns the L16 mono preset with the given sample rate.
func FormatForRate(rate int) (Format, error) {
	for _, f := range []Format{L16Mono8K, L16Mono16K, L16Mono24K, L16Mono44K, L16Mono48K} {
		if f.SampleRate() == rate {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: no L16 preset for %d Hz", ErrUnsupportedFormat, rate)
}

// Buffer is mono audio as float samples in [-1, 1].
type Buffer struct {
	Samples    []float64
	SampleRate int
}

// Len returns the number of samples.
func (b *Buffer) Len() int { return len(b.Samples) }

// Duration returns the playback length of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(b.Samples)) * time.Second / time.Duration(b.SampleRate)
}

// TrimSilence drops leading and trailing samples whose magnitude is below
// threshold. The returned buffer shares the sample array with b.
func (b *Buffer) TrimSilence(threshold float64) *Buffer {
	start, end := 0, len(b.Samples)
	for start < end && abs(b.Samples[start]) < threshold {
		start++
	}
	for end > start && abs(b.Samples[end-1]) < threshold {
		end--
	}
	return &Buffer{Samples: b.Samples[start:end], SampleRate: b.SampleRate}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
