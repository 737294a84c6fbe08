// Package pipeline runs one analysis: load, downmix, analyse, report and plot.
package pipeline

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/linuxmatters/jivescope/internal/audio"
	"github.com/linuxmatters/jivescope/internal/renderer"
	"github.com/linuxmatters/jivescope/internal/report"
	"github.com/linuxmatters/jivescope/internal/spectrum"
	"go.uber.org/zap"
)

// Options configures a single run
type Options struct {
	Input  string      // Audio file to analyse
	Stdout io.Writer   // Report destination; os.Stdout when nil
	Logger *zap.Logger // Debug logging; discarded when nil
}

// Outcome is what a successful run produced
type Outcome struct {
	Buffer   *audio.Buffer
	Result   *spectrum.Result
	PlotPath string
}

// Run analyses opts.Input, prints the report and writes the spectrum plot
// next to the input. Any failure aborts the run; nothing is retried beyond
// the decoder fallback inside audio.Load.
func Run(opts Options) (*Outcome, error) {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	start := time.Now()

	buf, err := audio.Load(opts.Input, logger)
	if err != nil {
		return nil, err
	}

	mono := audio.ToMono(buf)
	res, err := spectrum.Analyze(mono, buf.SampleRate, buf.Format)
	if err != nil {
		return nil, fmt.Errorf("analysing %s: %w", opts.Input, err)
	}
	logger.Debug("analysed spectrum",
		zap.Int("window_start", res.WindowStart),
		zap.Int("window_length", res.WindowLength),
		zap.Float64("bin_width_hz", res.BinWidth()),
		zap.Int("peak_bin", res.PeakIndex),
		zap.Float64("peak_dbfs", res.Levels.PeakDBFS()),
		zap.Float64("rms", res.Levels.RMS),
		zap.Float64("crest_factor", res.Levels.CrestFactor))

	if err := report.Write(stdout, buf, res); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	img, err := renderer.RenderSpectrum(res, renderer.Title(opts.Input))
	if err != nil {
		return nil, fmt.Errorf("rendering plot: %w", err)
	}

	plotPath := renderer.OutputPath(opts.Input)
	if err := renderer.SavePNG(img, plotPath); err != nil {
		return nil, fmt.Errorf("saving plot: %w", err)
	}
	if err := report.SavedPlot(stdout, plotPath); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	logger.Debug("run complete",
		zap.String("plot", plotPath),
		zap.Duration("elapsed", time.Since(start)))

	return &Outcome{Buffer: buf, Result: res, PlotPath: plotPath}, nil
}
