// Package report formats analysis results as the plain-text summary printed
// on stdout.
package report

import (
	"fmt"
	"io"

	"github.com/linuxmatters/jivescope/internal/audio"
	"github.com/linuxmatters/jivescope/internal/spectrum"
)

// Write prints the buffer description followed by the analysis results:
// format, dominant frequency, harmonics and peak-vs-rest ratio, with the
// interpolated peak appended after them. The output depends only on its
// arguments, so repeated runs over the same file print identical text.
func Write(w io.Writer, buf *audio.Buffer, res *spectrum.Result) error {
	ew := &errWriter{w: w}

	ew.printf("Sample rate: %d Shape: %s dtype: %s\n", buf.SampleRate, buf.Shape(), buf.Format)
	ew.printf("Dominant frequency: %.2f Hz\n", res.DominantFrequency)
	for _, h := range res.Harmonics {
		ew.printf("Harmonic %d: %.1f Hz magnitude=%.3e\n", h.Order, h.Frequency, h.Magnitude)
	}
	ew.printf("Rough peak-vs-rest (dB): %.2f dB\n", res.SNR)
	ew.printf("Interpolated peak: %.2f Hz\n", res.InterpolatedFrequency)

	return ew.err
}

// SavedPlot prints the location of the written plot
func SavedPlot(w io.Writer, path string) error {
	_, err := fmt.Fprintf(w, "Saved spectrum plot to %s\n", path)
	return err
}

// errWriter keeps the first write error and skips later writes
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
