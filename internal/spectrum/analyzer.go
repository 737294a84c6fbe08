package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/linuxmatters/jivescope/internal/audio"
	"github.com/linuxmatters/jivescope/internal/config"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrEmptySignal       = errors.New("signal contains no samples")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
)

// Harmonic is the spectrum bin nearest to an integer multiple of the
// dominant frequency
type Harmonic struct {
	Order     int
	Frequency float64
	Magnitude float64
}

// Result holds the spectrum of the analysis window and the values derived from it
type Result struct {
	Spectrum

	// Bin with the largest magnitude (first one on ties)
	PeakIndex         int
	DominantFrequency float64

	// Peak frequency refined by parabolic interpolation between bins
	InterpolatedFrequency float64

	// Orders 1..config.NumHarmonics; order 1 is the dominant bin
	Harmonics []Harmonic

	// Rough peak-vs-rest energy ratio in dB. Leakage from the window's main
	// lobe counts as "rest", so even a pure tone scores only a few dB.
	SNR float64

	// Amplitude of the whole normalised signal, not just the window
	Levels Levels
}

// Analyze runs the spectral analysis on a mono signal. Integer formats are
// scaled into [-1, 1] first; the mean is removed before windowing.
func Analyze(mono []float64, sampleRate int, format audio.SampleFormat) (*Result, error) {
	if len(mono) == 0 {
		return nil, ErrEmptySignal
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSampleRate, sampleRate)
	}

	signal := RemoveDC(Normalize(mono, format))

	start, length := SelectWindow(len(signal), sampleRate)
	spec := Compute(signal[start:start+length], sampleRate)
	spec.WindowStart = start

	peak := floats.MaxIdx(spec.Magnitudes)

	result := &Result{
		Spectrum:              spec,
		PeakIndex:             peak,
		DominantFrequency:     spec.Frequencies[peak],
		InterpolatedFrequency: interpolatePeak(spec, peak),
		Harmonics:             harmonics(spec, spec.Frequencies[peak]),
		SNR:                   PeakToRestDB(spec.Magnitudes, peak),
		Levels:                MeasureLevels(signal),
	}

	return result, nil
}

// Normalize scales integer samples by the largest magnitude the format can
// represent. Floating point formats are returned as a copy.
func Normalize(samples []float64, format audio.SampleFormat) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)

	if format.Integer() && format.Max > 0 {
		floats.Scale(1/format.Max, out)
	}
	return out
}

// RemoveDC returns a copy of samples with the arithmetic mean subtracted
func RemoveDC(samples []float64) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)
	if len(out) == 0 {
		return out
	}

	floats.AddConst(-stat.Mean(out, nil), out)
	return out
}

// SelectWindow picks the analysis window for a signal of n samples: it starts
// WindowOffsetSeconds in and spans at most MaxWindowSeconds. Signals too short
// to reach the offset are analysed whole.
func SelectWindow(n, sampleRate int) (start, length int) {
	start = int(math.Floor(config.WindowOffsetSeconds * float64(sampleRate)))
	length = min(n-start, config.MaxWindowSeconds*sampleRate)
	if length <= 0 {
		return 0, n
	}
	return start, length
}

// PeakToRestDB compares the energy in the peak bin with the energy in every
// other bin. The floor only keeps the ratio finite for silent or single-bin
// spectra; it is not a noise estimate.
func PeakToRestDB(mags []float64, peak int) float64 {
	peakEnergy := mags[peak] * mags[peak]
	totalEnergy := floats.Dot(mags, mags)
	noiseEnergy := math.Max(totalEnergy-peakEnergy, config.MagnitudeFloor)
	return 10 * math.Log10((peakEnergy+config.MagnitudeFloor)/noiseEnergy)
}

func harmonics(spec Spectrum, fundamental float64) []Harmonic {
	out := make([]Harmonic, config.NumHarmonics)
	for h := 1; h <= config.NumHarmonics; h++ {
		idx := spec.NearestBin(fundamental * float64(h))
		out[h-1] = Harmonic{
			Order:     h,
			Frequency: spec.Frequencies[idx],
			Magnitude: spec.Magnitudes[idx],
		}
	}
	return out
}

// interpolatePeak fits a parabola through the log magnitudes of the peak bin
// and its neighbours. Edge bins and flat tops keep the bin frequency.
func interpolatePeak(spec Spectrum, peak int) float64 {
	binFreq := spec.Frequencies[peak]
	if peak == 0 || peak >= len(spec.Magnitudes)-1 {
		return binFreq
	}

	a := math.Log(spec.Magnitudes[peak-1] + config.MagnitudeFloor)
	b := math.Log(spec.Magnitudes[peak] + config.MagnitudeFloor)
	c := math.Log(spec.Magnitudes[peak+1] + config.MagnitudeFloor)

	denom := a - 2*b + c
	if denom >= 0 {
		return binFreq
	}

	delta := 0.5 * (a - c) / denom
	delta = math.Max(-0.5, math.Min(0.5, delta))
	return binFreq + delta*spec.BinWidth()
}
