package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Decoder fully decodes one audio file into a Buffer
type Decoder interface {
	// Name identifies the decoder in logs and reports
	Name() string

	// Decode opens, reads and closes the file at path
	Decode(path string) (*Buffer, error)
}

// DecodersFor returns the decoders to try for a file, in order of preference.
// WAV data goes through go-audio/wav first and falls back to the generic
// RIFF parser; unknown extensions are treated as WAV.
func DecodersFor(path string) []Decoder {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".flac":
		return []Decoder{flacDecoder{}}
	case ".mp3":
		return []Decoder{mp3Decoder{}}
	case ".ogg", ".oga":
		return []Decoder{oggDecoder{}}
	case ".aif", ".aiff":
		return []Decoder{aiffDecoder{}}
	default:
		return []Decoder{wavDecoder{}, riffDecoder{}}
	}
}

// Load decodes the file at path, trying each decoder from DecodersFor until
// one succeeds. A missing file fails before any decoder runs.
func Load(path string, logger *zap.Logger) (*Buffer, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	return decodeWith(path, DecodersFor(path), logger)
}

func decodeWith(path string, decoders []Decoder, logger *zap.Logger) (*Buffer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var lastErr error
	for _, d := range decoders {
		start := time.Now()
		buf, err := d.Decode(path)
		if err != nil {
			logger.Debug("decoder failed",
				zap.String("decoder", d.Name()),
				zap.String("path", path),
				zap.Error(err))
			lastErr = err
			continue
		}

		buf.Decoder = d.Name()
		buf.trimPartialFrame()
		logger.Debug("decoded audio",
			zap.String("decoder", d.Name()),
			zap.Int("sample_rate", buf.SampleRate),
			zap.Int("channels", buf.Channels),
			zap.Stringer("dtype", buf.Format),
			zap.Int("frames", buf.Frames()),
			zap.Float64("duration_s", buf.Duration()),
			zap.Duration("elapsed", time.Since(start)))
		return buf, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: no decoder available", ErrUnsupportedFormat)
	}
	return nil, fmt.Errorf("failed to decode %s: %w", path, lastErr)
}

// intSamplesToFloat converts decoded integer samples, adding offset to each
func intSamplesToFloat(data []int, offset float64) []float64 {
	samples := make([]float64, len(data))
	for i, s := range data {
		samples[i] = float64(s) + offset
	}
	return samples
}

// signedOffset shifts signed 8-bit FLAC samples into the unsigned
// range the uint8 format describes
func signedOffset(format SampleFormat) float64 {
	if format.Width == 1 && !format.Signed {
		return 128
	}
	return 0
}

func validateLayout(sampleRate, channels int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: invalid sample rate %d", ErrInvalidContainer, sampleRate)
	}
	if channels <= 0 {
		return fmt.Errorf("%w: invalid channel count %d", ErrInvalidContainer, channels)
	}
	return nil
}
