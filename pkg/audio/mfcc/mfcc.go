// Package mfcc computes mel-frequency cepstral coefficients from mono audio.
//
// The pipeline per frame is the classic MFCC front end:
//
//  1. Pre-emphasis (y[i] = x[i] - a*x[i-1], a = 0.97)
//  2. Framing and Hamming window
//  3. Zero-pad to a power of two and radix-2 FFT
//  4. Power spectrum over bins 0..fftSize/2
//  5. Triangular mel filter bank, floored at 1e-10, natural log
//  6. DCT-II, keeping the first NumMFCCCoeffs coefficients
//
// Frame energy and zero-crossing rate are reported alongside the cepstra.
// Default parameters:
//
//	FrameSize:      512
//	HopSize:        256
//	NumMelFilters:   26
//	NumMFCCCoeffs:   13
//	PreEmphasis:   0.97
//	LowFreq:          0
//	HighFreq: sampleRate/2
//
// Inputs shorter than one frame produce an empty Result, not an error.
package mfcc

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// ErrInvalidOptions is returned by New when the options cannot describe a
// valid extraction.
var ErrInvalidOptions = errors.New("mfcc: invalid options")

// energyFloor keeps mel energies away from log(0).
const energyFloor = 1e-10

// Options controls MFCC extraction. Zero fields take their defaults.
type Options struct {
	FrameSize     int     `json:"frame_size,omitempty" yaml:"frame_size,omitempty" msgpack:"frame_size,omitempty"`             // samples per frame (default 512)
	HopSize       int     `json:"hop_size,omitempty" yaml:"hop_size,omitempty" msgpack:"hop_size,omitempty"`                   // samples between frame starts (default 256)
	NumMelFilters int     `json:"num_mel_filters,omitempty" yaml:"num_mel_filters,omitempty" msgpack:"num_mel_filters,omitempty"` // mel bands (default 26)
	NumMFCCCoeffs int     `json:"num_mfcc_coeffs,omitempty" yaml:"num_mfcc_coeffs,omitempty" msgpack:"num_mfcc_coeffs,omitempty"` // cepstral coefficients kept (default 13)
	PreEmphasis   float64 `json:"pre_emphasis,omitempty" yaml:"pre_emphasis,omitempty" msgpack:"pre_emphasis,omitempty"`       // 0 means 0.97, negative disables
	LowFreq       float64 `json:"low_freq,omitempty" yaml:"low_freq,omitempty" msgpack:"low_freq,omitempty"`                   // lowest filter edge in Hz (default 0)
	HighFreq      float64 `json:"high_freq,omitempty" yaml:"high_freq,omitempty" msgpack:"high_freq,omitempty"`                // highest filter edge in Hz (default sampleRate/2)
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		FrameSize:     512,
		HopSize:       256,
		NumMelFilters: 26,
		NumMFCCCoeffs: 13,
		PreEmphasis:   0.97,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.FrameSize == 0 {
		o.FrameSize = d.FrameSize
	}
	if o.HopSize == 0 {
		o.HopSize = d.HopSize
	}
	if o.NumMelFilters == 0 {
		o.NumMelFilters = d.NumMelFilters
	}
	if o.NumMFCCCoeffs == 0 {
		o.NumMFCCCoeffs = d.NumMFCCCoeffs
	}
	if o.PreEmphasis == 0 {
		o.PreEmphasis = d.PreEmphasis
	}
	return o
}

func (o Options) validate(sampleRate int) error {
	switch {
	case sampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidOptions, sampleRate)
	case o.FrameSize < 0:
		return fmt.Errorf("%w: frame size %d", ErrInvalidOptions, o.FrameSize)
	case o.HopSize < 0:
		return fmt.Errorf("%w: hop size %d", ErrInvalidOptions, o.HopSize)
	case o.NumMelFilters < 0:
		return fmt.Errorf("%w: mel filters %d", ErrInvalidOptions, o.NumMelFilters)
	case o.NumMFCCCoeffs < 0:
		return fmt.Errorf("%w: mfcc coefficients %d", ErrInvalidOptions, o.NumMFCCCoeffs)
	case o.LowFreq < 0:
		return fmt.Errorf("%w: low frequency %g", ErrInvalidOptions, o.LowFreq)
	case o.HighFreq > 0 && o.HighFreq <= o.LowFreq:
		return fmt.Errorf("%w: high frequency %g <= low frequency %g", ErrInvalidOptions, o.HighFreq, o.LowFreq)
	}
	return nil
}

// Frame holds the features of one analysis frame.
type Frame struct {
	MFCC             []float64 `json:"mfcc" yaml:"mfcc" msgpack:"mfcc"`
	MelEnergies      []float64 `json:"mel_energies" yaml:"mel_energies" msgpack:"mel_energies"`
	Energy           float64   `json:"energy" yaml:"energy" msgpack:"energy"`
	ZeroCrossingRate float64   `json:"zero_crossing_rate" yaml:"zero_crossing_rate" msgpack:"zero_crossing_rate"`
}

// Result is the output of an extraction. All frames share the same vector
// lengths.
type Result struct {
	SampleRate int     `json:"sample_rate" yaml:"sample_rate" msgpack:"sample_rate"`
	FFTSize    int     `json:"fft_size" yaml:"fft_size" msgpack:"fft_size"`
	Options    Options `json:"options" yaml:"options" msgpack:"options"`
	Frames     []Frame `json:"frames" yaml:"frames" msgpack:"frames"`
}

// NumFrames returns the number of analysed frames.
func (r *Result) NumFrames() int {
	if r == nil {
		return 0
	}
	return len(r.Frames)
}

// MFCCMatrix returns the cepstral coefficients as [frames][coeffs]. The rows
// alias the frame vectors.
func (r *Result) MFCCMatrix() [][]float64 {
	m := make([][]float64, r.NumFrames())
	for i := range m {
		m[i] = r.Frames[i].MFCC
	}
	return m
}

// MelSpectrogram returns the floored (linear) mel energies as
// [frames][filters]. The rows alias the frame vectors.
func (r *Result) MelSpectrogram() [][]float64 {
	m := make([][]float64, r.NumFrames())
	for i := range m {
		m[i] = r.Frames[i].MelEnergies
	}
	return m
}

// Extractor computes MFCC features for a fixed sample rate and option set.
// It is read-only after New and safe for concurrent use.
type Extractor struct {
	sampleRate int
	opts       Options
	fftSize    int
	window     []float64
	melBank    FilterBank
	dct        [][]float64
}

// New creates an Extractor. The filter bank, window and DCT basis are built
// once and reused for every frame.
func New(sampleRate int, opts Options) (*Extractor, error) {
	opts = opts.withDefaults()
	if err := opts.validate(sampleRate); err != nil {
		return nil, err
	}
	if opts.HighFreq <= 0 {
		opts.HighFreq = float64(sampleRate) / 2
	}
	e := &Extractor{
		sampleRate: sampleRate,
		opts:       opts,
		fftSize:    NextPowerOfTwo(opts.FrameSize),
		window:     HammingWindow(opts.FrameSize),
		dct:        dctMatrix(opts.NumMelFilters, opts.NumMFCCCoeffs),
	}
	e.melBank = BuildFilterBank(opts.NumMelFilters, e.fftSize, sampleRate, opts.LowFreq, opts.HighFreq)
	slog.Debug("mfcc extractor ready",
		"sample_rate", sampleRate,
		"frame_size", opts.FrameSize,
		"hop_size", opts.HopSize,
		"fft_size", e.fftSize,
		"mel_filters", opts.NumMelFilters,
		"coeffs", opts.NumMFCCCoeffs)
	return e, nil
}

// Options returns the effective options, defaults applied.
func (e *Extractor) Options() Options { return e.opts }

// SampleRate returns the sample rate the extractor was built for.
func (e *Extractor) SampleRate() int { return e.sampleRate }

// FFTSize returns the zero-padded transform length.
func (e *Extractor) FFTSize() int { return e.fftSize }

// FilterBank returns the mel filter bank. Callers must not modify it.
func (e *Extractor) FilterBank() FilterBank { return e.melBank }

// NumFrames returns how many frames Extract produces for n samples:
// floor((n-FrameSize)/HopSize)+1, or 0 when n < FrameSize.
func (e *Extractor) NumFrames(n int) int {
	if n < e.opts.FrameSize {
		return 0
	}
	return (n-e.opts.FrameSize)/e.opts.HopSize + 1
}

// Extract computes per-frame features of samples. The input is not modified.
func (e *Extractor) Extract(samples []float64) *Result {
	cfg := e.opts
	res := &Result{
		SampleRate: e.sampleRate,
		FFTSize:    e.fftSize,
		Options:    cfg,
		Frames:     []Frame{},
	}
	numFrames := e.NumFrames(len(samples))
	if numFrames == 0 {
		return res
	}

	emphasized := preEmphasize(samples, cfg.PreEmphasis)

	nfft := e.fftSize
	halfFFT := nfft/2 + 1
	real := make([]float64, nfft)
	imag := make([]float64, nfft)
	power := make([]float64, halfFFT)
	logMel := make([]float64, cfg.NumMelFilters)

	res.Frames = make([]Frame, numFrames)
	for t := 0; t < numFrames; t++ {
		start := t * cfg.HopSize
		frame := emphasized[start : start+cfg.FrameSize]

		energy := 0.0
		crossings := 0
		for i, s := range frame {
			v := s * e.window[i]
			real[i] = v
			energy += v * v
			if i > 0 && (s >= 0) != (frame[i-1] >= 0) {
				crossings++
			}
		}
		for i := cfg.FrameSize; i < nfft; i++ {
			real[i] = 0
		}
		clear(imag)

		fft(real, imag)

		for i := 0; i < halfFFT; i++ {
			power[i] = real[i]*real[i] + imag[i]*imag[i]
		}

		mel := make([]float64, cfg.NumMelFilters)
		e.melBank.Apply(power, mel, energyFloor)
		for m, v := range mel {
			logMel[m] = math.Log(v)
		}

		coeffs := make([]float64, cfg.NumMFCCCoeffs)
		dctInto(logMel, coeffs, e.dct)

		res.Frames[t] = Frame{
			MFCC:             coeffs,
			MelEnergies:      mel,
			Energy:           energy,
			ZeroCrossingRate: float64(crossings) / float64(cfg.FrameSize),
		}
	}
	return res
}

// ExtractMFCC is a convenience wrapper around New and Extract.
func ExtractMFCC(samples []float64, sampleRate int, opts Options) (*Result, error) {
	e, err := New(sampleRate, opts)
	if err != nil {
		return nil, err
	}
	return e.Extract(samples), nil
}

// preEmphasize returns y[0] = x[0], y[i] = x[i] - coeff*x[i-1]. A negative
// coeff disables the filter.
func preEmphasize(x []float64, coeff float64) []float64 {
	y := make([]float64, len(x))
	if len(x) == 0 {
		return y
	}
	if coeff < 0 {
		copy(y, x)
		return y
	}
	y[0] = x[0]
	for i := 1; i < len(x); i++ {
		y[i] = x[i] - coeff*x[i-1]
	}
	return y
}

// CMVN applies Cepstral Mean and Variance Normalization in-place.
// For each dimension, subtracts the mean and divides by the standard
// deviation across all frames. This removes channel and environment effects
// before comparing speakers.
func CMVN(features [][]float64) {
	if len(features) == 0 {
		return
	}
	dims := len(features[0])
	T := float64(len(features))

	for m := 0; m < dims; m++ {
		sum := 0.0
		for _, f := range features {
			sum += f[m]
		}
		mean := sum / T

		varSum := 0.0
		for _, f := range features {
			d := f[m] - mean
			varSum += d * d
		}
		std := math.Sqrt(varSum / T)
		if std < 1e-10 {
			std = 1e-10
		}

		for _, f := range features {
			f[m] = (f[m] - mean) / std
		}
	}
}
