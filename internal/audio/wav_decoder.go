package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"
)

// WAVE format tags accepted for PCM data
const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// Size of a canonical RIFF/WAVE header with a 16-byte fmt chunk
const wavHeaderSize = 44

// wavDecoder reads WAV files with go-audio/wav
type wavDecoder struct{}

func (wavDecoder) Name() string { return "go-audio/wav" }

func (wavDecoder) Decode(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: invalid WAV file", ErrInvalidContainer)
	}

	if decoder.WavAudioFormat != wavFormatPCM && decoder.WavAudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("%w: WAV format tag %#x is not PCM", ErrUnsupportedFormat, decoder.WavAudioFormat)
	}

	sampleRate := int(decoder.SampleRate)
	numChans := int(decoder.NumChans)
	if err := validateLayout(sampleRate, numChans); err != nil {
		return nil, err
	}

	format, err := FormatForBitDepth(int(decoder.BitDepth))
	if err != nil {
		return nil, err
	}

	if err := decoder.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContainer, err)
	}
	dataStart, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read PCM data: %w", err)
	}

	// Streaming writers leave the RIFF and data sizes at 0xFFFFFFFF, which
	// go-audio/wav reads as an empty data chunk
	if len(buf.Data) == 0 {
		if info, err := f.Stat(); err == nil && info.Size() > wavHeaderSize {
			return nil, fmt.Errorf("%w: no samples decoded from %d-byte file", ErrInvalidContainer, info.Size())
		}
	}

	// A trailing partial sample is decoded from stale bytes; keep whole frames only
	if n, ok := dataBytes(f, dataStart); ok {
		whole := n / (format.Width * numChans) * numChans
		if len(buf.Data) > whole {
			buf.Data = buf.Data[:whole]
		}
	}

	// go-audio/wav already reports 8-bit samples unsigned
	return &Buffer{
		SampleRate: sampleRate,
		Channels:   numChans,
		Format:     format,
		Data:       intSamplesToFloat(buf.Data, 0),
	}, nil
}

// dataBytes returns the number of sample bytes in the data chunk starting at
// dataStart: its declared size, capped by what the file actually holds.
// go-audio/riff rounds odd chunk sizes up, so the size is read from the file.
func dataBytes(f *os.File, dataStart int64) (int, bool) {
	var size [4]byte
	if dataStart < 4 {
		return 0, false
	}
	if _, err := f.ReadAt(size[:], dataStart-4); err != nil {
		return 0, false
	}
	info, err := f.Stat()
	if err != nil {
		return 0, false
	}

	n := int64(binary.LittleEndian.Uint32(size[:]))
	if avail := info.Size() - dataStart; avail < n {
		n = avail
	}
	return int(n), true
}
