package audio

import (
	"fmt"
	"math"
)

// SampleFormat describes how a single sample is encoded in the source file
type SampleFormat struct {
	Name   string  // dtype-style name used in reports (uint8, int16, ...)
	Width  int     // Bytes per sample
	Bits   int     // Bits per sample
	Signed bool    // Integer formats only
	Float  bool    // Samples are already floating point in [-1, 1]
	Max    float64 // Largest representable magnitude
}

// Integer reports whether samples need scaling into [-1, 1]
func (f SampleFormat) Integer() bool {
	return !f.Float
}

func (f SampleFormat) String() string {
	return f.Name
}

// PCM sample encodings, keyed by sample width in bytes.
// 8-bit WAV data is unsigned, wider PCM is two's complement.
var pcmFormats = map[int]SampleFormat{
	1: {Name: "uint8", Width: 1, Bits: 8, Signed: false, Max: math.MaxUint8},
	2: {Name: "int16", Width: 2, Bits: 16, Signed: true, Max: math.MaxInt16},
	4: {Name: "int32", Width: 4, Bits: 32, Signed: true, Max: math.MaxInt32},
}

// Float32 is the format reported by decoders that produce floating point samples
var Float32 = SampleFormat{Name: "float32", Width: 4, Bits: 32, Signed: true, Float: true, Max: 1}

// FormatForWidth returns the PCM format for a sample width in bytes
func FormatForWidth(width int) (SampleFormat, error) {
	f, ok := pcmFormats[width]
	if !ok {
		return SampleFormat{}, fmt.Errorf("%w: unsupported sample width: %d", ErrUnsupportedFormat, width)
	}
	return f, nil
}

// FormatForBitDepth is FormatForWidth for decoders that report bits per sample
func FormatForBitDepth(bits int) (SampleFormat, error) {
	if bits <= 0 || bits%8 != 0 {
		return SampleFormat{}, fmt.Errorf("%w: unsupported bit depth: %d", ErrUnsupportedFormat, bits)
	}
	return FormatForWidth(bits / 8)
}
