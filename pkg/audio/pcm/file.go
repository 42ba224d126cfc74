package pcm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DecodeRaw reads headerless L16 data in the given format.
func DecodeRaw(r io.Reader, f Format) (*Buffer, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("pcm: read raw: %w", err)
	}
	return &Buffer{Samples: Int16ToFloat(raw), SampleRate: f.SampleRate()}, nil
}

// Decode picks a decoder by file extension: .wav, .mp3, or .pcm/.raw (read
// as rawFormat).
func Decode(r io.Reader, ext string, rawFormat Format) (*Buffer, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "wav", "wave":
		return DecodeWAV(r)
	case "mp3":
		return DecodeMP3(r)
	case "pcm", "raw", "l16":
		return DecodeRaw(r, rawFormat)
	}
	return nil, fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
}

// Load opens path and decodes it with Decode.
func Load(path string, rawFormat Format) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf, err := Decode(bufio.NewReader(f), filepath.Ext(path), rawFormat)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return buf, nil
}
