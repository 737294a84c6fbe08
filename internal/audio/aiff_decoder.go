package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/aiff"
)

// aiffDecoder reads AIFF files with go-audio/aiff
type aiffDecoder struct{}

func (aiffDecoder) Name() string { return "go-audio/aiff" }

func (aiffDecoder) Decode(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := aiff.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: invalid AIFF file", ErrInvalidContainer)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}
	if buf.Format == nil {
		return nil, fmt.Errorf("%w: AIFF file has no format", ErrInvalidContainer)
	}

	sampleRate := buf.Format.SampleRate
	numChans := buf.Format.NumChannels
	if err := validateLayout(sampleRate, numChans); err != nil {
		return nil, err
	}

	format, err := FormatForBitDepth(int(decoder.BitDepth))
	if err != nil {
		return nil, err
	}

	return &Buffer{
		SampleRate: sampleRate,
		Channels:   numChans,
		Format:     format,
		Data:       aiffSamplesToFloat(buf.Data, format),
	}, nil
}

// aiffSamplesToFloat converts go-audio/aiff output. AIFF stores two's
// complement at every depth, but the 8-bit path hands back the raw byte
// (0..255) without sign extension, so flipping the top bit lands it in the
// unsigned uint8 range directly.
func aiffSamplesToFloat(data []int, format SampleFormat) []float64 {
	if format.Width != 1 {
		return intSamplesToFloat(data, 0)
	}

	samples := make([]float64, len(data))
	for i, s := range data {
		samples[i] = float64(uint8(s) ^ 0x80)
	}
	return samples
}
