package renderer

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

const plotSuffix = "_spectrum.png"

// OutputPath returns the plot path for an input file: the input's name
// without its extension plus "_spectrum.png", in the input's directory.
// Dotfiles such as ".hidden" keep their whole name as the stem.
func OutputPath(input string) string {
	dir, name := filepath.Split(input)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" {
		stem = name
	}
	return filepath.Join(dir, stem+plotSuffix)
}

// Title returns the plot title for an input file
func Title(input string) string {
	return "Spectrum of " + filepath.Base(input)
}

// SavePNG encodes img as PNG at path, replacing any existing file
func SavePNG(img image.Image, path string) error {
	outFile, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(outFile, img); err != nil {
		outFile.Close()
		return err
	}
	return outFile.Close()
}
