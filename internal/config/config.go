package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Analysis settings
const (
	WindowOffsetSeconds = 0.1 // Skip onset transients before the analysis window
	MaxWindowSeconds    = 3   // Upper bound on the analysis window length
	NumHarmonics        = 5   // Harmonic orders reported (1 = fundamental)
	MagnitudeFloor      = 1e-20
)

// Plot settings
const (
	PlotWidth  = 1000
	PlotHeight = 400

	// Margins around the data area, in pixels
	PlotMarginLeft   = 80
	PlotMarginRight  = 24
	PlotMarginTop    = 40
	PlotMarginBottom = 56

	// X axis spans at most this many multiples of the dominant frequency
	PlotSpanHarmonics = 6

	PlotTitleFontSize = 16
	PlotLabelFontSize = 13
	PlotTickFontSize  = 11
	PlotTickTarget    = 8   // Preferred number of grid divisions per axis
	PlotLineWidth     = 1.5 // Spectrum stroke width in pixels
)

// Appearance - plot colours, parsed with ParseHexColor
const (
	PlotBackgroundColor = "#FFFFFF"
	PlotAxisColor       = "#000000"
	PlotGridColor       = "#D9D9D9"
	PlotLineColor       = "#1F77B4"
	PlotTextColor       = "#262626"
)

// ParseHexColor parses a hex colour string (RRGGBB or #RRGGBB) into RGB components.
// Returns an error if the format is invalid.
func ParseHexColor(hex string) (r, g, b uint8, err error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid hex colour %q: must be 6 characters (RRGGBB)", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex colour %q: %w", hex, err)
	}

	return uint8(rgb >> 16), uint8(rgb >> 8), uint8(rgb), nil
}
