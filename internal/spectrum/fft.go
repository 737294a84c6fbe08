package spectrum

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/dsp/fourier"
)

// ApplyHann returns a copy of data multiplied by a symmetric Hann window
// of the same length. A single sample is left unchanged.
func ApplyHann(data []float64) []float64 {
	windowed := make([]float64, len(data))
	copy(windowed, data)
	if len(windowed) > 1 {
		window.Apply(windowed, window.Hann)
	}
	return windowed
}

// Spectrum is the one-sided magnitude spectrum of an analysis window
type Spectrum struct {
	Frequencies []float64 // Bin centre frequencies in Hz, 0 to Nyquist
	Magnitudes  []float64 // |X[k]| for each bin

	SampleRate   int
	WindowStart  int // Index of the first analysed sample in the mono signal
	WindowLength int // N, the number of samples transformed
}

// Compute windows the segment with a Hann window and returns its real FFT
// magnitudes: floor(N/2)+1 bins spaced sampleRate/N apart
func Compute(segment []float64, sampleRate int) Spectrum {
	n := len(segment)
	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, ApplyHann(segment))

	freqs := make([]float64, len(coeffs))
	mags := make([]float64, len(coeffs))
	for i, c := range coeffs {
		freqs[i] = fft.Freq(i) * float64(sampleRate)
		mags[i] = cmplx.Abs(c)
	}

	return Spectrum{
		Frequencies:  freqs,
		Magnitudes:   mags,
		SampleRate:   sampleRate,
		WindowLength: n,
	}
}

// BinWidth returns the spacing between adjacent bins in Hz
func (s Spectrum) BinWidth() float64 {
	if s.WindowLength == 0 {
		return 0
	}
	return float64(s.SampleRate) / float64(s.WindowLength)
}

// Nyquist returns half the sample rate
func (s Spectrum) Nyquist() float64 {
	return float64(s.SampleRate) / 2
}

// NearestBin returns the index of the bin whose frequency is closest to freq.
// Ties go to the lower bin.
func (s Spectrum) NearestBin(freq float64) int {
	best := 0
	bestDiff := -1.0
	for i, f := range s.Frequencies {
		diff := f - freq
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}
	return best
}
