package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/linuxmatters/jivescope/internal/audiotest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoadMono16(t *testing.T) {
	const sampleRate = 44100
	samples := audiotest.Sine(sampleRate, 1, sampleRate/2, 440, 0.5, 2)
	path := audiotest.WriteWAV(t, t.TempDir(), "tone.wav", sampleRate, 1, 2, samples)

	buf, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if buf.SampleRate != sampleRate {
		t.Errorf("Expected sample rate %d, got %d", sampleRate, buf.SampleRate)
	}
	if buf.Channels != 1 {
		t.Errorf("Expected 1 channel, got %d", buf.Channels)
	}
	if buf.Format.Name != "int16" {
		t.Errorf("Expected int16 samples, got %s", buf.Format)
	}
	if buf.Frames() != len(samples) {
		t.Fatalf("Expected %d frames, got %d", len(samples), buf.Frames())
	}
	if buf.Decoder != (wavDecoder{}).Name() {
		t.Errorf("Expected preferred decoder %q, got %q", (wavDecoder{}).Name(), buf.Decoder)
	}

	for i, s := range samples {
		if buf.Data[i] != float64(s) {
			t.Fatalf("Sample %d: expected %d, got %f", i, s, buf.Data[i])
		}
	}
}

func TestLoadGoAudioEncodedStereo(t *testing.T) {
	const sampleRate = 48000
	samples := audiotest.Sine(sampleRate, 2, 4800, 1000, 0.25, 2)

	path := filepath.Join(t.TempDir(), "stereo.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 2, 1)
	intBuf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(intBuf); err != nil {
		t.Fatalf("Failed to encode WAV: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Failed to close encoder: %v", err)
	}
	f.Close()

	buf, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if buf.Channels != 2 {
		t.Errorf("Expected 2 channels, got %d", buf.Channels)
	}
	if got, want := buf.Shape(), "(4800, 2)"; got != want {
		t.Errorf("Expected shape %s, got %s", want, got)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.wav"), nil)
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("Expected ErrFileNotFound, got %v", err)
	}
}

func TestLoadUnsupportedWidth(t *testing.T) {
	samples := audiotest.Sine(8000, 1, 800, 440, 0.5, 3)
	path := audiotest.WriteWAV(t, t.TempDir(), "24bit.wav", 8000, 1, 3, samples)

	_, err := Load(path, nil)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Expected ErrUnsupportedFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "unsupported sample width: 3") {
		t.Errorf("Error should name the sample width, got %q", err.Error())
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := audiotest.WriteFile(t, t.TempDir(), "empty.wav", nil)

	_, err := Load(path, nil)
	if !errors.Is(err, ErrInvalidContainer) {
		t.Fatalf("Expected ErrInvalidContainer for a 0-byte file, got %v", err)
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	path := audiotest.WriteWAV(t, t.TempDir(), "header.wav", 44100, 1, 2, nil)

	// Either decoder may reject the file; when one accepts it there must be no frames
	buf, err := Load(path, nil)
	if err != nil {
		t.Logf("Header-only file rejected: %v", err)
		return
	}
	if buf.Frames() != 0 {
		t.Errorf("Expected 0 frames, got %d", buf.Frames())
	}
}

// TestLoadStreamingHeader covers captures written to a pipe, where the RIFF
// and data sizes are left at 0xFFFFFFFF because the length was unknown.
func TestLoadStreamingHeader(t *testing.T) {
	samples := audiotest.Sine(8000, 1, 4000, 440, 0.5, 2)
	data := audiotest.WAVBytes(8000, 1, 2, samples)
	binary.LittleEndian.PutUint32(data[4:8], 0xFFFFFFFF)
	binary.LittleEndian.PutUint32(data[40:44], 0xFFFFFFFF)
	path := audiotest.WriteFile(t, t.TempDir(), "streamed.wav", data)

	buf, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	t.Logf("Decoded by %s", buf.Decoder)

	if buf.Frames() != len(samples) {
		t.Fatalf("Expected %d frames, got %d", len(samples), buf.Frames())
	}
	for i, s := range samples {
		if buf.Data[i] != float64(s) {
			t.Fatalf("Sample %d: expected %d, got %f", i, s, buf.Data[i])
		}
	}
}

func TestWAVDecoderRejectsEmptyStreamingData(t *testing.T) {
	data := audiotest.WAVBytes(8000, 1, 2, audiotest.Sine(8000, 1, 400, 440, 0.5, 2))
	binary.LittleEndian.PutUint32(data[4:8], 0xFFFFFFFF)
	binary.LittleEndian.PutUint32(data[40:44], 0xFFFFFFFF)
	path := audiotest.WriteFile(t, t.TempDir(), "streamed.wav", data)

	// An empty result here would be reported as silence instead of falling back
	_, err := (wavDecoder{}).Decode(path)
	if !errors.Is(err, ErrInvalidContainer) {
		t.Errorf("Expected ErrInvalidContainer, got %v", err)
	}
}

// TestLoadMonoTrailingByte checks that an odd trailing byte in a 16-bit mono
// data chunk does not become an extra sample.
func TestLoadMonoTrailingByte(t *testing.T) {
	samples := audiotest.Sine(8000, 1, 100, 300, 0.5, 2)
	data := audiotest.WAVBytes(8000, 1, 2, samples)
	data = append(data, 0x7f)
	binary.LittleEndian.PutUint32(data[4:8], uint32(len(data)-8))
	binary.LittleEndian.PutUint32(data[40:44], uint32(len(samples)*2+1))
	path := audiotest.WriteFile(t, t.TempDir(), "odd.wav", data)

	buf, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if buf.Frames() != len(samples) {
		t.Fatalf("Expected %d frames, got %d (decoder %s)", len(samples), buf.Frames(), buf.Decoder)
	}
	if buf.Decoder != (wavDecoder{}).Name() {
		t.Errorf("Expected preferred decoder %q, got %q", (wavDecoder{}).Name(), buf.Decoder)
	}
	if last := buf.Data[len(buf.Data)-1]; last != float64(samples[len(samples)-1]) {
		t.Errorf("Last sample = %f, want %d", last, samples[len(samples)-1])
	}
}

func TestLoadLogsDecodedAudio(t *testing.T) {
	samples := audiotest.Sine(8000, 2, 4000, 440, 0.5, 2)
	path := audiotest.WriteWAV(t, t.TempDir(), "half.wav", 8000, 2, 2, samples)

	core, logs := observer.New(zapcore.DebugLevel)
	if _, err := Load(path, zap.New(core)); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	entries := logs.FilterMessage("decoded audio").All()
	if len(entries) != 1 {
		t.Fatalf("Expected one decoded audio entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["decoder"] != (wavDecoder{}).Name() {
		t.Errorf("decoder field = %v", fields["decoder"])
	}
	if d, ok := fields["duration_s"].(float64); !ok || d != 0.5 {
		t.Errorf("duration_s field = %v, want 0.5", fields["duration_s"])
	}
}

type failingDecoder struct{}

func (failingDecoder) Name() string { return "failing" }

func (failingDecoder) Decode(string) (*Buffer, error) {
	return nil, errors.New("codec unavailable")
}

func TestDecodeWithFallsBack(t *testing.T) {
	samples := audiotest.Sine(8000, 1, 800, 440, 0.5, 2)
	path := audiotest.WriteWAV(t, t.TempDir(), "fallback.wav", 8000, 1, 2, samples)

	buf, err := decodeWith(path, []Decoder{failingDecoder{}, riffDecoder{}}, nil)
	if err != nil {
		t.Fatalf("Fallback decode failed: %v", err)
	}
	if buf.Decoder != "riff" {
		t.Errorf("Expected riff decoder, got %q", buf.Decoder)
	}
	if buf.Frames() != len(samples) {
		t.Errorf("Expected %d frames, got %d", len(samples), buf.Frames())
	}
}

func TestDecodeWithReportsLastError(t *testing.T) {
	path := audiotest.WriteFile(t, t.TempDir(), "junk.wav", []byte("not audio at all"))

	_, err := decodeWith(path, []Decoder{failingDecoder{}, riffDecoder{}}, nil)
	if !errors.Is(err, ErrInvalidContainer) {
		t.Fatalf("Expected the RIFF parser's error, got %v", err)
	}
}

func TestDecodeRIFFWidths(t *testing.T) {
	testCases := []struct {
		name     string
		width    int
		channels int
		dtype    string
	}{
		{name: "8-bit mono", width: 1, channels: 1, dtype: "uint8"},
		{name: "16-bit mono", width: 2, channels: 1, dtype: "int16"},
		{name: "16-bit stereo", width: 2, channels: 2, dtype: "int16"},
		{name: "32-bit mono", width: 4, channels: 1, dtype: "int32"},
		{name: "32-bit quad", width: 4, channels: 4, dtype: "int32"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			samples := audiotest.Sine(8000, tc.channels, 400, 300, 0.9, tc.width)
			data := audiotest.WAVBytes(8000, tc.channels, tc.width, samples)

			buf, err := decodeRIFF(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("decodeRIFF failed: %v", err)
			}

			if buf.Format.Name != tc.dtype {
				t.Errorf("Expected dtype %s, got %s", tc.dtype, buf.Format)
			}
			if buf.Channels != tc.channels {
				t.Errorf("Expected %d channels, got %d", tc.channels, buf.Channels)
			}
			if len(buf.Data) != len(samples) {
				t.Fatalf("Expected %d samples, got %d", len(samples), len(buf.Data))
			}
			for i, s := range samples {
				if buf.Data[i] != float64(s) {
					t.Fatalf("Sample %d: expected %d, got %f", i, s, buf.Data[i])
				}
			}
		})
	}
}

func TestDecodeRIFFSkipsUnknownChunks(t *testing.T) {
	samples := audiotest.Sine(8000, 1, 100, 300, 0.5, 2)
	data := audiotest.WAVBytes(8000, 1, 2, samples)

	// Splice a LIST chunk between "fmt " and "data"
	list := []byte("LIST\x04\x00\x00\x00INFO")
	spliced := append(append(append([]byte{}, data[:36]...), list...), data[36:]...)
	binary.LittleEndian.PutUint32(spliced[4:8], uint32(len(spliced)-8))

	buf, err := decodeRIFF(bytes.NewReader(spliced))
	if err != nil {
		t.Fatalf("decodeRIFF failed: %v", err)
	}
	if buf.Frames() != len(samples) {
		t.Errorf("Expected %d frames, got %d", len(samples), buf.Frames())
	}
}

func TestDecodeRIFFErrors(t *testing.T) {
	valid := audiotest.WAVBytes(8000, 1, 2, audiotest.Sine(8000, 1, 10, 300, 0.5, 2))

	floatTag := append([]byte{}, valid...)
	binary.LittleEndian.PutUint16(floatTag[20:22], 3)

	notWave := append([]byte{}, valid...)
	copy(notWave[8:12], "AVI ")

	testCases := []struct {
		name string
		data []byte
		want error
	}{
		{name: "empty", data: nil, want: ErrInvalidContainer},
		{name: "IEEE float tag", data: floatTag, want: ErrUnsupportedFormat},
		{name: "not WAVE", data: notWave, want: ErrInvalidContainer},
		{name: "missing data chunk", data: valid[:36], want: ErrInvalidContainer},
		{name: "missing fmt chunk", data: valid[:12], want: ErrInvalidContainer},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeRIFF(bytes.NewReader(tc.data))
			if !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestDecodeRIFFDropsPartialFrame(t *testing.T) {
	samples := audiotest.Sine(8000, 2, 10, 300, 0.5, 2)
	data := audiotest.WAVBytes(8000, 2, 2, samples)

	// Claim one extra byte of data and append it
	binary.LittleEndian.PutUint32(data[40:44], uint32(len(samples)*2+1))
	data = append(data, 0x7f)

	buf, err := decodeRIFF(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decodeRIFF failed: %v", err)
	}
	if buf.Frames() != 10 {
		t.Errorf("Expected 10 whole frames, got %d", buf.Frames())
	}
}

func TestDecodersFor(t *testing.T) {
	testCases := []struct {
		path string
		want []string
	}{
		{path: "capture.wav", want: []string{"go-audio/wav", "riff"}},
		{path: "CAPTURE.WAV", want: []string{"go-audio/wav", "riff"}},
		{path: "capture", want: []string{"go-audio/wav", "riff"}},
		{path: "song.flac", want: []string{"mewkiz/flac"}},
		{path: "song.mp3", want: []string{"go-mp3"}},
		{path: "song.ogg", want: []string{"oggvorbis"}},
		{path: "song.aiff", want: []string{"go-audio/aiff"}},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			decoders := DecodersFor(tc.path)
			if len(decoders) != len(tc.want) {
				t.Fatalf("Expected %d decoders, got %d", len(tc.want), len(decoders))
			}
			for i, d := range decoders {
				if d.Name() != tc.want[i] {
					t.Errorf("Decoder %d: expected %s, got %s", i, tc.want[i], d.Name())
				}
			}
		})
	}
}
