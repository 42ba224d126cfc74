// Package pcm turns encoded audio into mono float sample buffers.
//
// The feature extractors work on []float64 samples in [-1, 1] at a known
// sample rate. This package provides that representation ([Buffer]) and the
// decoders that produce it:
//
//   - WAV (RIFF) with 8/16/24/32-bit integer or 32/64-bit float samples
//   - MP3, via github.com/hajimehoshi/go-mp3
//   - headerless little-endian 16-bit PCM in one of the [Format] presets
//
// Multi-channel input is down-mixed to mono by averaging channels.
//
// Example usage:
//
//	buf, err := pcm.Load("hello.wav", pcm.L16Mono16K)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(buf.SampleRate, buf.Duration())
package pcm
