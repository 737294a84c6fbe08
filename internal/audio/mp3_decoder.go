package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"
)

// go-mp3 always outputs interleaved 16-bit little-endian stereo
const mp3Channels = 2

// mp3Decoder reads MP3 files with hajimehoshi/go-mp3
type mp3Decoder struct{}

func (mp3Decoder) Name() string { return "go-mp3" }

func (mp3Decoder) Decode(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create MP3 decoder: %v", ErrInvalidContainer, err)
	}

	sampleRate := decoder.SampleRate()
	if err := validateLayout(sampleRate, mp3Channels); err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("failed to read MP3 data: %w", err)
	}

	format, err := FormatForWidth(2)
	if err != nil {
		return nil, err
	}

	return &Buffer{
		SampleRate: sampleRate,
		Channels:   mp3Channels,
		Format:     format,
		Data:       decodePCM(raw[:len(raw)/2*2], 2),
	}, nil
}
