package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

// typeface holds the faces used for plot text, all cut from Go Regular
type typeface struct {
	title font.Face
	label font.Face
	tick  font.Face
}

func loadTypeface(titleSize, labelSize, tickSize float64) (*typeface, error) {
	parsedFont, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	newFace := func(size float64) font.Face {
		return truetype.NewFace(parsedFont, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	return &typeface{
		title: newFace(titleSize),
		label: newFace(labelSize),
		tick:  newFace(tickSize),
	}, nil
}

func (t *typeface) Close() {
	t.title.Close()
	t.label.Close()
	t.tick.Close()
}

// measureText returns the width and actual bounds of rendered text
// Returns width, and the bounds rectangle (Min.Y is negative for ascent, Max.Y is positive for descent)
func measureText(face font.Face, text string) (int, fixed.Rectangle26_6) {
	d := &font.Drawer{Face: face}
	bounds, _ := d.BoundString(text)
	width := (bounds.Max.X - bounds.Min.X).Ceil()
	return width, bounds
}

// drawText draws text with its baseline starting at (x, baselineY)
func drawText(img draw.Image, face font.Face, c color.Color, text string, x, baselineY int) {
	if text == "" {
		return
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
	}
	d.Dot = freetype.Pt(x, baselineY)
	d.DrawString(text)
}

// drawCenteredText draws text horizontally centred on centerX
func drawCenteredText(img draw.Image, face font.Face, c color.Color, text string, centerX, baselineY int) {
	width, _ := measureText(face, text)
	drawText(img, face, c, text, centerX-width/2, baselineY)
}

// drawRightAlignedText draws text ending at rightX
func drawRightAlignedText(img draw.Image, face font.Face, c color.Color, text string, rightX, baselineY int) {
	width, _ := measureText(face, text)
	drawText(img, face, c, text, rightX-width, baselineY)
}

// drawVerticalText draws text rotated 90 degrees anti-clockwise, centred on
// (centerX, centerY), reading from bottom to top
func drawVerticalText(img *image.RGBA, face font.Face, c color.Color, text string, centerX, centerY int) {
	if text == "" {
		return
	}

	width, bounds := measureText(face, text)
	height := (bounds.Max.Y - bounds.Min.Y).Ceil()

	// Draw horizontally on a temporary image first
	tempImg := image.NewRGBA(image.Rect(0, 0, width, height))
	drawText(tempImg, face, c, text, -bounds.Min.X.Floor(), -bounds.Min.Y.Ceil())

	// Rotate anti-clockwise: (x, y) -> (y, width - x)
	m := f64.Aff3{
		0, 1, 0,
		-1, 0, float64(width),
	}
	rotatedImg := image.NewRGBA(image.Rect(0, 0, height, width))
	draw.NearestNeighbor.Transform(rotatedImg, m, tempImg, tempImg.Bounds(), draw.Over, nil)

	destX := centerX - height/2
	destY := centerY - width/2
	destRect := image.Rect(destX, destY, destX+height, destY+width)
	draw.Draw(img, destRect, rotatedImg, image.Point{}, draw.Over)
}
