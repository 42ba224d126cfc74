package pcm

import "encoding/binary"

// Int16ToFloat converts little-endian signed 16-bit PCM to samples in
// [-1, 1). A trailing odd byte is ignored.
func Int16ToFloat(b []byte) []float64 {
	n := len(b) / 2
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		s := int16(binary.LittleEndian.Uint16(b[i*2:]))
		out[i] = float64(s) / 32768.0
	}
	return out
}

// FloatToInt16 converts samples to little-endian signed 16-bit PCM,
// clipping values outside [-1, 1].
func FloatToInt16(samples []float64) []byte {
	out := make([]byte, len(samples)*2)
	for i, v := range samples {
		s := v * 32768.0
		if s > 32767 {
			s = 32767
		} else if s < -32768 {
			s = -32768
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(s)))
	}
	return out
}

// Downmix averages interleaved multi-channel samples into mono. Incomplete
// trailing frames are dropped.
func Downmix(interleaved []float64, channels int) []float64 {
	if channels <= 1 {
		return interleaved
	}
	frames := len(interleaved) / channels
	out := make([]float64, frames)
	for i := range out {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += interleaved[i*channels+c]
		}
		out[i] = sum / float64(channels)
	}
	return out
}
