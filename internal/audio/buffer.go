package audio

import "fmt"

// Buffer holds a fully decoded file. Data is interleaved frame-major and keeps
// the raw sample values of the source encoding (uint8 data stays in 0..255).
type Buffer struct {
	SampleRate int
	Channels   int
	Format     SampleFormat
	Data       []float64

	// Decoder names the decoder that produced the buffer
	Decoder string
}

// Frames returns the number of sample frames (samples per channel)
func (b *Buffer) Frames() int {
	if b.Channels <= 0 {
		return 0
	}
	return len(b.Data) / b.Channels
}

// Shape renders the buffer dimensions as (frames,) or (frames, channels)
func (b *Buffer) Shape() string {
	if b.Channels <= 1 {
		return fmt.Sprintf("(%d,)", b.Frames())
	}
	return fmt.Sprintf("(%d, %d)", b.Frames(), b.Channels)
}

// Duration returns the buffer length in seconds
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

// trimPartialFrame drops trailing samples that do not fill a whole frame
func (b *Buffer) trimPartialFrame() {
	if b.Channels > 1 {
		b.Data = b.Data[:b.Frames()*b.Channels]
	}
}

// ToMono downmixes the buffer by averaging each frame's channels.
// Single-channel buffers are copied unchanged.
func ToMono(b *Buffer) []float64 {
	if b.Channels <= 1 {
		mono := make([]float64, len(b.Data))
		copy(mono, b.Data)
		return mono
	}

	numFrames := b.Frames()
	mono := make([]float64, numFrames)
	for i := 0; i < numFrames; i++ {
		var sum float64
		for ch := 0; ch < b.Channels; ch++ {
			sum += b.Data[i*b.Channels+ch]
		}
		mono[i] = sum / float64(b.Channels)
	}

	return mono
}
