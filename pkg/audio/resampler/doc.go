// Package resampler converts mono float audio between sample rates.
//
// It wraps github.com/tphakala/go-audio-resampling, a pure Go polyphase
// resampler, so no cgo toolchain is needed. The MFCC filter bank is built for
// a fixed sample rate; resampling lets recordings taken at 44.1kHz or 48kHz
// be compared against features computed at 16kHz.
//
// Example usage:
//
//	out, err := resampler.Resample(buf.Samples, 44100, 16000)
//	if err != nil {
//	    log.Fatal(err)
//	}
package resampler
