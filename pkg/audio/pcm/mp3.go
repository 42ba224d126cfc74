package pcm

import (
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

// DecodeMP3 decodes an MP3 stream to mono samples. The decoder always emits
// 16-bit little-endian stereo, which is averaged to mono.
func DecodeMP3(r io.Reader) (*Buffer, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: mp3: %v", ErrUnsupportedFormat, err)
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("pcm: decode mp3: %w", err)
	}
	return &Buffer{
		Samples:    Downmix(Int16ToFloat(raw), 2),
		SampleRate: dec.SampleRate(),
	}, nil
}
