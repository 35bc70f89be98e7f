//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"sync"

	"golang.design/x/clipboard"
)

var (
	setupOnce    sync.Once
	setupErr     error
	errNoDisplay = errors.New("clipboard needs DISPLAY or WAYLAND_DISPLAY set")
)

func setup() error {
	setupOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			setupErr = errNoDisplay
			return
		}
		setupErr = clipboard.Init()
	})
	return setupErr
}

// WriteImage publishes the image to the clipboard as PNG.
func WriteImage(img image.Image) error {
	if err := setup(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	return nil
}

// ReadImage decodes a PNG from the clipboard.
func ReadImage() (image.Image, error) {
	if err := setup(); err != nil {
		return nil, err
	}
	data := clipboard.Read(clipboard.FmtImage)
	if len(data) == 0 {
		return nil, errors.New("no image on the clipboard")
	}
	return png.Decode(bytes.NewReader(data))
}

// WriteText publishes text to the clipboard.
func WriteText(text string) error {
	if err := setup(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// ReadText returns the clipboard's text contents.
func ReadText() (string, error) {
	if err := setup(); err != nil {
		return "", err
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return "", errors.New("no text on the clipboard")
	}
	return string(data), nil
}
