package spectrum

import (
	"math"

	"github.com/linuxmatters/jivescope/internal/config"
	"gonum.org/v1/gonum/floats"
)

// Levels summarises the amplitude of the whole normalised signal
type Levels struct {
	Peak        float64 // Largest absolute sample
	RMS         float64
	CrestFactor float64 // Peak / RMS, 0 for silence
}

// MeasureLevels returns peak, RMS and crest factor of samples
func MeasureLevels(samples []float64) Levels {
	if len(samples) == 0 {
		return Levels{}
	}

	levels := Levels{
		Peak: floats.Norm(samples, math.Inf(1)),
		RMS:  floats.Norm(samples, 2) / math.Sqrt(float64(len(samples))),
	}

	// Avoid division by zero
	if levels.RMS > 0 {
		levels.CrestFactor = levels.Peak / levels.RMS
	}
	return levels
}

// PeakDBFS returns the peak level relative to full scale
func (l Levels) PeakDBFS() float64 {
	return 20 * math.Log10(l.Peak+config.MagnitudeFloor)
}
