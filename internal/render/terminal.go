package render

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
	imgcat "github.com/martinlindhe/imgcat/lib"
)

// Thumbnail scales img down to fit inside a width x height box.
func Thumbnail(img image.Image, width, height int) *image.NRGBA {
	return imaging.Fit(img, width, height, imaging.Lanczos)
}

// Cat prints img to an iTerm-compatible terminal, at most maxWidth pixels wide.
func Cat(img image.Image, w io.Writer, maxWidth int) error {
	f, err := os.CreateTemp("", "sigil-*.png")
	if err != nil {
		return fmt.Errorf("failed to create temp image: %w", err)
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	if err := imaging.Save(Thumbnail(img, maxWidth, maxWidth), path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}

	imgcat.CatFile(path, w)
	return nil
}
