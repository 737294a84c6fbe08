package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/riff"
)

// waveFormat is the fixed leading part of a WAVE "fmt " chunk
type waveFormat struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// riffDecoder walks the RIFF chunk list itself and decodes PCM data of 1, 2
// or 4 bytes per sample. It is the fallback when go-audio/wav rejects a file.
type riffDecoder struct{}

func (riffDecoder) Name() string { return "riff" }

func (riffDecoder) Decode(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return decodeRIFF(f)
}

func decodeRIFF(r io.Reader) (*Buffer, error) {
	parser := riff.New(r)
	if err := parser.ParseHeaders(); err != nil {
		return nil, fmt.Errorf("%w: reading RIFF header: %v", ErrInvalidContainer, err)
	}
	if parser.Format != riff.WavFormatID {
		return nil, fmt.Errorf("%w: RIFF form type %q is not WAVE", ErrInvalidContainer, parser.Format[:])
	}

	var wf *waveFormat
	for {
		chunk, err := parser.NextChunk()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				if wf == nil {
					return nil, fmt.Errorf("%w: missing fmt chunk", ErrInvalidContainer)
				}
				return nil, fmt.Errorf("%w: missing data chunk", ErrInvalidContainer)
			}
			return nil, fmt.Errorf("%w: reading chunk: %v", ErrInvalidContainer, err)
		}

		switch chunk.ID {
		case riff.FmtID:
			wf = &waveFormat{}
			if err := chunk.ReadLE(wf); err != nil {
				return nil, fmt.Errorf("%w: reading fmt chunk: %v", ErrInvalidContainer, err)
			}
			chunk.Drain()

		case riff.DataFormatID:
			if wf == nil {
				return nil, fmt.Errorf("%w: data chunk before fmt chunk", ErrInvalidContainer)
			}
			raw, err := io.ReadAll(chunk.R)
			if err != nil {
				return nil, fmt.Errorf("failed to read data chunk: %w", err)
			}
			return decodeWaveData(wf, raw)

		default:
			chunk.Drain()
		}
	}
}

func decodeWaveData(wf *waveFormat, raw []byte) (*Buffer, error) {
	if wf.AudioFormat != wavFormatPCM && wf.AudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("%w: WAV format tag %#x is not PCM", ErrUnsupportedFormat, wf.AudioFormat)
	}

	sampleRate := int(wf.SampleRate)
	numChans := int(wf.NumChannels)
	if err := validateLayout(sampleRate, numChans); err != nil {
		return nil, err
	}

	width := (int(wf.BitsPerSample) + 7) / 8
	format, err := FormatForWidth(width)
	if err != nil {
		return nil, err
	}

	// Drop the pad byte and any partial frame at the end
	frameSize := width * numChans
	raw = raw[:len(raw)/frameSize*frameSize]

	return &Buffer{
		SampleRate: sampleRate,
		Channels:   numChans,
		Format:     format,
		Data:       decodePCM(raw, width),
	}, nil
}

// decodePCM unpacks little-endian PCM samples of the given byte width
func decodePCM(raw []byte, width int) []float64 {
	samples := make([]float64, len(raw)/width)
	for i := range samples {
		b := raw[i*width : (i+1)*width]
		switch width {
		case 1:
			samples[i] = float64(b[0])
		case 2:
			samples[i] = float64(int16(binary.LittleEndian.Uint16(b)))
		case 4:
			samples[i] = float64(int32(binary.LittleEndian.Uint32(b)))
		}
	}
	return samples
}
