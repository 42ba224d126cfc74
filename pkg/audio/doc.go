// Package audio groups the audio sub-packages used by SoundLab:
//
//   - pcm: sample buffers and WAV, MP3 and raw L16 decoding
//   - resampler: sample-rate conversion of float buffers
//   - mfcc: FFT, mel filter bank and MFCC feature extraction
//
// Example usage:
//
//	import (
//	    "github.com/haivivi/soundlab/pkg/audio/mfcc"
//	    "github.com/haivivi/soundlab/pkg/audio/pcm"
//	)
//
//	buf, err := pcm.Load("hello.wav", pcm.L16Mono16K)
//	if err != nil {
//	    return err
//	}
//	res, err := mfcc.ExtractMFCC(buf.Samples, buf.SampleRate, mfcc.Options{})
package audio
