// Package export encodes a rasterized board for files, the clipboard and
// the analysis backends. PNG is the only supported on-disk format.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// ErrUnsupportedFormat is returned for target paths whose extension names
// anything but PNG.
var ErrUnsupportedFormat = errors.New("only png output is supported")

// Encode writes img to w as PNG.
func Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WriteFile encodes img as PNG at path. A missing extension gets ".png"
// appended; any other extension is rejected with ErrUnsupportedFormat
// before a file is created. The path actually written is returned.
func WriteFile(path string, img image.Image) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
	case "":
		path += ".png"
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("save image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return path, nil
}

// Region copies exactly the requested rectangle out of img, clamped to the
// image bounds. An empty intersection is an error.
func Region(img *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	src := rect.Intersect(img.Bounds())
	if src.Empty() {
		return nil, fmt.Errorf("region %v lies outside the canvas %v", rect, img.Bounds())
	}
	out := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	xdraw.Draw(out, out.Bounds(), img, src.Min, xdraw.Src)
	return out, nil
}

// Scale returns img enlarged by an integer factor with hard pixel edges.
// Factors below 2 return the input unchanged.
func Scale(img *image.RGBA, factor int) *image.RGBA {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), img, b, xdraw.Src, nil)
	return out
}
