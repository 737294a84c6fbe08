// Package audiotest builds synthetic audio fixtures for tests.
package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// Sine generates interleaved integer PCM samples of a sine wave.
// amplitude is a fraction of full scale for the given sample width in bytes;
// every channel carries the same signal. 8-bit samples are unsigned.
func Sine(sampleRate, channels, frames int, frequency, amplitude float64, width int) []int {
	fullScale := float64(int64(1)<<(8*width-1) - 1)

	samples := make([]int, 0, frames*channels)
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(sampleRate)
		v := amplitude * fullScale * math.Sin(2*math.Pi*frequency*t)
		s := int(math.Round(v))
		if width == 1 {
			s += 128
		}
		for ch := 0; ch < channels; ch++ {
			samples = append(samples, s)
		}
	}
	return samples
}

// WAVBytes encodes samples as a canonical 44-byte-header PCM WAV file
func WAVBytes(sampleRate, channels, width int, samples []int) []byte {
	dataLen := len(samples) * width

	var b bytes.Buffer
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, uint32(36+dataLen))
	b.WriteString("WAVE")

	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&b, binary.LittleEndian, uint16(channels))
	binary.Write(&b, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&b, binary.LittleEndian, uint32(sampleRate*channels*width))
	binary.Write(&b, binary.LittleEndian, uint16(channels*width))
	binary.Write(&b, binary.LittleEndian, uint16(8*width))

	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, uint32(dataLen))
	for _, s := range samples {
		switch width {
		case 1:
			b.WriteByte(byte(s))
		case 2:
			binary.Write(&b, binary.LittleEndian, int16(s))
		case 3:
			b.Write([]byte{byte(s), byte(s >> 8), byte(s >> 16)})
		case 4:
			binary.Write(&b, binary.LittleEndian, int32(s))
		}
	}

	return b.Bytes()
}

// WriteFile writes data to name inside dir and returns the full path
func WriteFile(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("failed to write fixture %s: %v", path, err)
	}
	return path
}

// WriteWAV writes a PCM WAV fixture and returns its path
func WriteWAV(tb testing.TB, dir, name string, sampleRate, channels, width int, samples []int) string {
	tb.Helper()
	return WriteFile(tb, dir, name, WAVBytes(sampleRate, channels, width, samples))
}
