package resampler

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/haivivi/soundlab/pkg/audio/pcm"
	resampling "github.com/tphakala/go-audio-resampling"
)

// ErrInvalidRate is returned when a sample rate is not positive.
var ErrInvalidRate = errors.New("resampler: invalid sample rate")

// Resampler converts mono samples from one rate to another. Process may be
// called repeatedly with consecutive chunks of one stream; the filter state
// carries across calls. It is safe for concurrent use but the chunks of one
// stream must be fed in order.
type Resampler struct {
	srcRate int
	dstRate int

	mu sync.Mutex
	rs resampling.Resampler
}

// New creates a Resampler from srcRate to dstRate Hz. When the rates are
// equal, Process copies its input.
func New(srcRate, dstRate int) (*Resampler, error) {
	if srcRate <= 0 || dstRate <= 0 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrInvalidRate, srcRate, dstRate)
	}
	r := &Resampler{srcRate: srcRate, dstRate: dstRate}
	if srcRate == dstRate {
		return r, nil
	}

	config := &resampling.Config{
		InputRate:  float64(srcRate),
		OutputRate: float64(dstRate),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	}
	rs, err := resampling.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create resampler: %w", err)
	}
	r.rs = rs
	slog.Debug("resampler ready", "src_rate", srcRate, "dst_rate", dstRate)
	return r, nil
}

// SrcRate returns the input sample rate.
func (r *Resampler) SrcRate() int { return r.srcRate }

// DstRate returns the output sample rate.
func (r *Resampler) DstRate() int { return r.dstRate }

// Process resamples one chunk of samples.
func (r *Resampler) Process(samples []float64) ([]float64, error) {
	if r.rs == nil {
		out := make([]float64, len(samples))
		copy(out, samples)
		return out, nil
	}
	if len(samples) == 0 {
		return []float64{}, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	out, err := r.rs.Process(samples)
	if err != nil {
		return nil, fmt.Errorf("resample error: %w", err)
	}
	return out, nil
}

// Resample converts a whole signal from srcRate to dstRate.
func Resample(samples []float64, srcRate, dstRate int) ([]float64, error) {
	r, err := New(srcRate, dstRate)
	if err != nil {
		return nil, err
	}
	return r.Process(samples)
}

// Buffer returns a copy of buf at the given sample rate. A buffer already
// at that rate is returned unchanged.
func Buffer(buf *pcm.Buffer, dstRate int) (*pcm.Buffer, error) {
	if buf.SampleRate == dstRate {
		return buf, nil
	}
	out, err := Resample(buf.Samples, buf.SampleRate, dstRate)
	if err != nil {
		return nil, err
	}
	return &pcm.Buffer{Samples: out, SampleRate: dstRate}, nil
}
