package audio

import (
	"fmt"
	"os"

	"github.com/jfreymuth/oggvorbis"
)

// oggDecoder reads Ogg Vorbis files with jfreymuth/oggvorbis.
// Vorbis decodes to float32, so the buffer needs no integer scaling.
type oggDecoder struct{}

func (oggDecoder) Name() string { return "oggvorbis" }

func (oggDecoder) Decode(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pcm, format, err := oggvorbis.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode Ogg Vorbis: %v", ErrInvalidContainer, err)
	}

	if err := validateLayout(format.SampleRate, format.Channels); err != nil {
		return nil, err
	}

	data := make([]float64, len(pcm))
	for i, s := range pcm {
		data[i] = float64(s)
	}

	return &Buffer{
		SampleRate: format.SampleRate,
		Channels:   format.Channels,
		Format:     Float32,
		Data:       data,
	}, nil
}
