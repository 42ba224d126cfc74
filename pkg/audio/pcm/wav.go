package pcm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrUnsupportedFormat is returned when audio data cannot be decoded.
var ErrUnsupportedFormat = errors.New("pcm: unsupported audio format")

const (
	wavFormatPCM        = 1
	wavFormatFloat      = 3
	wavFormatExtensible = 0xFFFE
)

type wavFormat struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// maxFmtChunk bounds the fmt chunk read into memory. Real ones are 16, 18
// or 40 bytes.
const maxFmtChunk = 1 << 16

// DecodeWAV reads a RIFF/WAVE stream and returns it down-mixed to mono.
// Integer samples of 8, 16, 24 and 32 bits and IEEE float samples of 32 and
// 64 bits are accepted. Unknown chunks are skipped.
func DecodeWAV(r io.Reader) (*Buffer, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, fmt.Errorf("pcm: read wav header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, fmt.Errorf("%w: not a RIFF/WAVE stream", ErrUnsupportedFormat)
	}

	var (
		fmtChunk *wavFormat
		data     []byte
	)
	for data == nil {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("pcm: read wav chunk: %w", err)
		}
		id := string(hdr[0:4])
		size := int64(binary.LittleEndian.Uint32(hdr[4:8]))

		switch id {
		case "fmt ":
			if size < 16 || size > maxFmtChunk {
				return nil, fmt.Errorf("%w: fmt chunk of %d bytes", ErrUnsupportedFormat, size)
			}
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, fmt.Errorf("pcm: read fmt chunk: %w", err)
			}
			var f wavFormat
			if err := binary.Read(bytes.NewReader(body[:16]), binary.LittleEndian, &f); err != nil {
				return nil, err
			}
			if f.AudioFormat == wavFormatExtensible && size >= 26 {
				// The sub-format GUID starts with the real format tag.
				f.AudioFormat = binary.LittleEndian.Uint16(body[24:26])
			}
			fmtChunk = &f
		case "data":
			if fmtChunk == nil {
				return nil, fmt.Errorf("%w: data chunk before fmt chunk", ErrUnsupportedFormat)
			}
			buf, err := io.ReadAll(io.LimitReader(r, size))
			if err != nil {
				return nil, fmt.Errorf("pcm: read data chunk: %w", err)
			}
			data = buf
		default:
			if _, err := io.CopyN(io.Discard, r, size); err != nil {
				return nil, fmt.Errorf("pcm: skip %q chunk: %w", id, err)
			}
		}
		// Chunks are word aligned.
		if size%2 == 1 && id != "data" {
			if _, err := io.CopyN(io.Discard, r, 1); err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
		}
	}

	if fmtChunk == nil {
		return nil, fmt.Errorf("%w: missing fmt chunk", ErrUnsupportedFormat)
	}
	if data == nil {
		data = []byte{}
	}
	samples, err := decodeSamples(data, fmtChunk)
	if err != nil {
		return nil, err
	}
	return &Buffer{
		Samples:    Downmix(samples, int(fmtChunk.Channels)),
		SampleRate: int(fmtChunk.SampleRate),
	}, nil
}

func decodeSamples(data []byte, f *wavFormat) ([]float64, error) {
	if f.Channels == 0 || f.SampleRate == 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrUnsupportedFormat, f.Channels, f.SampleRate)
	}
	width := int(f.BitsPerSample) / 8
	if width == 0 {
		return nil, fmt.Errorf("%w: %d bits per sample", ErrUnsupportedFormat, f.BitsPerSample)
	}
	n := len(data) / width
	out := make([]float64, n)

	switch {
	case f.AudioFormat == wavFormatPCM && width == 1:
		for i := range out {
			out[i] = (float64(data[i]) - 128) / 128
		}
	case f.AudioFormat == wavFormatPCM && width == 2:
		return Int16ToFloat(data[:n*2]), nil
	case f.AudioFormat == wavFormatPCM && width == 3:
		for i := range out {
			b := data[i*3:]
			v := int32(uint32(b[0])<<8|uint32(b[1])<<16|uint32(b[2])<<24) >> 8
			out[i] = float64(v) / (1 << 23)
		}
	case f.AudioFormat == wavFormatPCM && width == 4:
		for i := range out {
			v := int32(binary.LittleEndian.Uint32(data[i*4:]))
			out[i] = float64(v) / (1 << 31)
		}
	case f.AudioFormat == wavFormatFloat && width == 4:
		for i := range out {
			out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:])))
		}
	case f.AudioFormat == wavFormatFloat && width == 8:
		for i := range out {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
		}
	default:
		return nil, fmt.Errorf("%w: wav format %d with %d bits", ErrUnsupportedFormat, f.AudioFormat, f.BitsPerSample)
	}
	return out, nil
}

// EncodeWAV writes b as a mono 16-bit PCM WAV stream.
func EncodeWAV(w io.Writer, b *Buffer) error {
	data := FloatToInt16(b.Samples)
	dataSize := uint32(len(data))

	if _, err := w.Write([]byte("RIFF")); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, 36+dataSize); err != nil {
		return err
	}
	if _, err := w.Write([]byte("WAVEfmt ")); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(16)); err != nil {
		return err
	}
	f := wavFormat{
		AudioFormat:   wavFormatPCM,
		Channels:      1,
		SampleRate:    uint32(b.SampleRate),
		ByteRate:      uint32(b.SampleRate * 2),
		BlockAlign:    2,
		BitsPerSample: 16,
	}
	if err := binary.Write(w, binary.LittleEndian, f); err != nil {
		return err
	}
	if _, err := w.Write([]byte("data")); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, dataSize); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}
