package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/linuxmatters/jivescope/internal/config"
	"github.com/linuxmatters/jivescope/internal/spectrum"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// palette holds the parsed plot colours
type palette struct {
	background color.RGBA
	axis       color.RGBA
	grid       color.RGBA
	line       color.RGBA
	text       color.RGBA
}

func newPalette() (palette, error) {
	var p palette
	for _, entry := range []struct {
		hex string
		dst *color.RGBA
	}{
		{config.PlotBackgroundColor, &p.background},
		{config.PlotAxisColor, &p.axis},
		{config.PlotGridColor, &p.grid},
		{config.PlotLineColor, &p.line},
		{config.PlotTextColor, &p.text},
	} {
		r, g, b, err := config.ParseHexColor(entry.hex)
		if err != nil {
			return palette{}, err
		}
		*entry.dst = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return p, nil
}

// point is a plot coordinate in data space: frequency (Hz) and level (dB)
type point struct {
	x, y float64
}

// axisRange is a linear data range with tick spacing
type axisRange struct {
	min, max float64
	step     float64
}

func (a axisRange) ticks() []float64 {
	if a.step <= 0 {
		return nil
	}
	var ticks []float64
	first := math.Ceil(a.min/a.step-1e-9) * a.step
	for v := first; v <= a.max+a.step*1e-9; v += a.step {
		ticks = append(ticks, v)
	}
	return ticks
}

// XLimit returns the upper frequency bound of the plot: the lesser of
// Nyquist and PlotSpanHarmonics times the dominant frequency. A spectrum
// peaking at DC is shown up to Nyquist.
func XLimit(res *spectrum.Result) float64 {
	nyquist := res.Nyquist()
	span := res.DominantFrequency * config.PlotSpanHarmonics
	if span <= 0 || span > nyquist {
		return nyquist
	}
	return span
}

// MagnitudeDB converts linear magnitudes to decibels with a floor that keeps
// empty bins finite
func MagnitudeDB(mags []float64) []float64 {
	db := make([]float64, len(mags))
	for i, m := range mags {
		db[i] = 20 * math.Log10(m+config.MagnitudeFloor)
	}
	return db
}

// visiblePoints returns the curve points inside [0, xMax]. When the spectrum
// continues past xMax the curve is cut at xMax by linear interpolation.
func visiblePoints(freqs, db []float64, xMax float64) []point {
	points := make([]point, 0, len(freqs))
	for i, f := range freqs {
		if f <= xMax {
			points = append(points, point{f, db[i]})
			continue
		}
		if i > 0 {
			prev := point{freqs[i-1], db[i-1]}
			t := (xMax - prev.x) / (f - prev.x)
			points = append(points, point{xMax, prev.y + t*(db[i]-prev.y)})
		}
		break
	}
	return points
}

// niceStep returns a 1, 2 or 5 times power-of-ten step that splits span
// into roughly target intervals
func niceStep(span float64, target int) float64 {
	if span <= 0 || target <= 0 {
		return 1
	}
	raw := span / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm < 1.5:
		return mag
	case norm < 3:
		return 2 * mag
	case norm < 7:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// levelRange covers the visible levels, widened to whole tick steps
func levelRange(points []point) axisRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		lo = math.Min(lo, p.y)
		hi = math.Max(hi, p.y)
	}
	if len(points) == 0 {
		lo, hi = -1, 1
	}
	if hi-lo < 1e-9 {
		lo, hi = lo-1, hi+1
	}

	step := niceStep(hi-lo, config.PlotTickTarget)
	return axisRange{
		min:  math.Floor(lo/step) * step,
		max:  math.Ceil(hi/step) * step,
		step: step,
	}
}

// formatTick prints v with as many decimals as the tick step needs
func formatTick(v, step float64) string {
	decimals := 0
	if step < 1 {
		decimals = int(math.Ceil(-math.Log10(step) - 1e-9))
	}
	if math.Abs(v) < step*1e-9 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// RenderSpectrum draws the magnitude spectrum in dB against frequency with
// a grid, axis labels and the given title
func RenderSpectrum(res *spectrum.Result, title string) (*image.RGBA, error) {
	if res == nil || len(res.Frequencies) == 0 {
		return nil, fmt.Errorf("nothing to plot: empty spectrum")
	}

	colors, err := newPalette()
	if err != nil {
		return nil, fmt.Errorf("invalid plot colour: %w", err)
	}

	faces, err := loadTypeface(config.PlotTitleFontSize, config.PlotLabelFontSize, config.PlotTickFontSize)
	if err != nil {
		return nil, err
	}
	defer faces.Close()

	img := image.NewRGBA(image.Rect(0, 0, config.PlotWidth, config.PlotHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(colors.background), image.Point{}, draw.Src)

	plotRect := image.Rect(
		config.PlotMarginLeft,
		config.PlotMarginTop,
		config.PlotWidth-config.PlotMarginRight,
		config.PlotHeight-config.PlotMarginBottom,
	)

	xMax := XLimit(res)
	points := visiblePoints(res.Frequencies, MagnitudeDB(res.Magnitudes), xMax)
	xAxis := axisRange{min: 0, max: xMax, step: niceStep(xMax, config.PlotTickTarget)}
	yAxis := levelRange(points)

	toPixel := func(p point) (float64, float64) {
		px := (p.x - xAxis.min) / (xAxis.max - xAxis.min) * float64(plotRect.Dx())
		py := float64(plotRect.Dy()) - (p.y-yAxis.min)/(yAxis.max-yAxis.min)*float64(plotRect.Dy())
		return px, py
	}

	// Grid
	xTicks := xAxis.ticks()
	yTicks := yAxis.ticks()
	for _, v := range xTicks {
		px, _ := toPixel(point{v, yAxis.min})
		x := plotRect.Min.X + int(math.Round(px))
		fillRect(img, image.Rect(x, plotRect.Min.Y, x+1, plotRect.Max.Y), colors.grid)
	}
	for _, v := range yTicks {
		_, py := toPixel(point{xAxis.min, v})
		y := plotRect.Min.Y + int(math.Round(py))
		fillRect(img, image.Rect(plotRect.Min.X, y, plotRect.Max.X, y+1), colors.grid)
	}

	// Spectrum curve
	strokePolyline(img, plotRect, points, toPixel, config.PlotLineWidth, colors.line)

	// Frame
	fillRect(img, image.Rect(plotRect.Min.X, plotRect.Min.Y, plotRect.Max.X, plotRect.Min.Y+1), colors.axis)
	fillRect(img, image.Rect(plotRect.Min.X, plotRect.Max.Y-1, plotRect.Max.X, plotRect.Max.Y), colors.axis)
	fillRect(img, image.Rect(plotRect.Min.X, plotRect.Min.Y, plotRect.Min.X+1, plotRect.Max.Y), colors.axis)
	fillRect(img, image.Rect(plotRect.Max.X-1, plotRect.Min.Y, plotRect.Max.X, plotRect.Max.Y), colors.axis)

	// Tick labels
	for _, v := range xTicks {
		px, _ := toPixel(point{v, yAxis.min})
		x := plotRect.Min.X + int(math.Round(px))
		fillRect(img, image.Rect(x, plotRect.Max.Y, x+1, plotRect.Max.Y+4), colors.axis)
		drawCenteredText(img, faces.tick, colors.text, formatTick(v, xAxis.step), x, plotRect.Max.Y+4+config.PlotTickFontSize)
	}
	for _, v := range yTicks {
		_, py := toPixel(point{xAxis.min, v})
		y := plotRect.Min.Y + int(math.Round(py))
		fillRect(img, image.Rect(plotRect.Min.X-4, y, plotRect.Min.X, y+1), colors.axis)
		drawRightAlignedText(img, faces.tick, colors.text, formatTick(v, yAxis.step), plotRect.Min.X-7, y+config.PlotTickFontSize/2-1)
	}

	// Axis labels and title
	drawCenteredText(img, faces.label, colors.text, "Hz", (plotRect.Min.X+plotRect.Max.X)/2, config.PlotHeight-12)
	drawVerticalText(img, faces.label, colors.text, "Magnitude (dB)", 16, (plotRect.Min.Y+plotRect.Max.Y)/2)
	drawCenteredText(img, faces.title, colors.text, title, (plotRect.Min.X+plotRect.Max.X)/2, plotRect.Min.Y-14)

	return img, nil
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// strokePolyline rasterises the curve as one quad per segment, clipped to rect
func strokePolyline(img *image.RGBA, rect image.Rectangle, points []point, toPixel func(point) (float64, float64), width float64, c color.RGBA) {
	if len(points) < 2 {
		return
	}

	w, h := float64(rect.Dx()), float64(rect.Dy())
	clamp := func(x, y float64) (float32, float32) {
		return float32(math.Max(0, math.Min(w, x))), float32(math.Max(0, math.Min(h, y)))
	}

	z := vector.NewRasterizer(rect.Dx(), rect.Dy())
	half := width / 2

	x0, y0 := toPixel(points[0])
	for _, p := range points[1:] {
		x1, y1 := toPixel(p)
		dx, dy := x1-x0, y1-y0
		length := math.Hypot(dx, dy)
		if length < 1e-9 {
			continue
		}

		// Offset both ends along the segment normal
		nx, ny := -dy/length*half, dx/length*half
		z.MoveTo(clamp(x0+nx, y0+ny))
		z.LineTo(clamp(x1+nx, y1+ny))
		z.LineTo(clamp(x1-nx, y1-ny))
		z.LineTo(clamp(x0-nx, y0-ny))
		z.ClosePath()

		x0, y0 = x1, y1
	}

	z.Draw(img, rect, image.NewUniform(c), image.Point{})
}
