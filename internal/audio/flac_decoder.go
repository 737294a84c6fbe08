package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"
)

// flacDecoder reads FLAC files with mewkiz/flac
type flacDecoder struct{}

func (flacDecoder) Name() string { return "mewkiz/flac" }

func (flacDecoder) Decode(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Parse FLAC stream - reads signature and StreamInfo block
	stream, err := flac.New(f)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create FLAC decoder: %v", ErrInvalidContainer, err)
	}
	defer stream.Close()

	sampleRate := int(stream.Info.SampleRate)
	numChans := int(stream.Info.NChannels)
	if err := validateLayout(sampleRate, numChans); err != nil {
		return nil, err
	}

	format, err := FormatForBitDepth(int(stream.Info.BitsPerSample))
	if err != nil {
		return nil, err
	}

	data := make([]int, 0, int(stream.Info.NSamples)*numChans)
	for {
		frame, err := stream.ParseNext()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to parse FLAC frame: %w", err)
		}

		// FLAC frames hold one subframe per channel; interleave them
		frameSamples := len(frame.Subframes[0].Samples)
		for i := 0; i < frameSamples; i++ {
			for _, subframe := range frame.Subframes {
				data = append(data, int(subframe.Samples[i]))
			}
		}
	}

	return &Buffer{
		SampleRate: sampleRate,
		Channels:   numChans,
		Format:     format,
		Data:       intSamplesToFloat(data, signedOffset(format)),
	}, nil
}
