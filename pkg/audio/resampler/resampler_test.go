package resampler

import (
	"errors"
	"math"
	"testing"

	"github.com/haivivi/soundlab/pkg/audio/pcm"
)

func sine(n, rate int, freq float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
	}
	return out
}

func TestNewInvalidRate(t *testing.T) {
	for _, rates := range [][2]int{{0, 16000}, {16000, 0}, {-1, 8000}} {
		if _, err := New(rates[0], rates[1]); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("New(%d, %d) error = %v, want ErrInvalidRate", rates[0], rates[1], err)
		}
	}
}

func TestSameRateCopies(t *testing.T) {
	in := []float64{0.1, 0.2, 0.3}
	out, err := Resample(in, 16000, 16000)
	if err != nil {
		t.Fatalf("Resample: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	out[0] = 9
	if in[0] != 0.1 {
		t.Error("Resample should not alias its input")
	}
}

func TestDownsample(t *testing.T) {
	in := sine(48000, 48000, 440)
	out, err := Resample(in, 48000, 16000)
	if err != nil {
		t.Fatalf("Resample: %v", err)
	}
	// The filter delay holds back a few milliseconds of output.
	if len(out) < 15000 || len(out) > 16100 {
		t.Errorf("len = %d, want about 16000", len(out))
	}
	peak := 0.0
	for _, v := range out {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak < 0.3 || peak > 0.7 {
		t.Errorf("peak = %f, want about 0.5", peak)
	}
}

func TestBuffer(t *testing.T) {
	buf := &pcm.Buffer{Samples: sine(8000, 8000, 200), SampleRate: 8000}
	same, err := Buffer(buf, 8000)
	if err != nil || same != buf {
		t.Errorf("Buffer(same rate) = %p, %v; want input unchanged", same, err)
	}

	up, err := Buffer(buf, 16000)
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	if up.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", up.SampleRate)
	}
	if up.Len() < 15000 || up.Len() > 16100 {
		t.Errorf("len = %d, want about 16000", up.Len())
	}
}
