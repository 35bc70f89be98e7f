package export

import (
	"image"
	"image/color"
	"testing"
)

func TestMatteExpandsByPadding(t *testing.T) {
	board := testImage(10, 10, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	matte := color.RGBA{R: 0x20, G: 0x40, B: 0x60, A: 0xFF}
	out := Matte(board, MatteOptions{Padding: 20, Background: matte})

	if !out.Bounds().Eq(image.Rect(0, 0, 50, 50)) {
		t.Fatalf("matte bounds = %v", out.Bounds())
	}
	if got := out.RGBAAt(2, 2); got != matte {
		t.Fatalf("matte corner = %+v", got)
	}
	if got := out.RGBAAt(25, 25); (got != color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}) {
		t.Fatalf("board centre = %+v", got)
	}
}

func TestMatteShadowDarkensBelowBoard(t *testing.T) {
	board := testImage(10, 10, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	matte := color.RGBA{R: 0xE8, G: 0xEA, B: 0xEE, A: 0xFF}
	out := Matte(board, MatteOptions{
		Padding:       20,
		Background:    matte,
		ShadowRadius:  4,
		ShadowOffset:  image.Pt(0, 6),
		ShadowOpacity: 1,
	})
	// The board spans (20,20)-(30,30); just below it the shadow shows.
	below := out.RGBAAt(25, 33)
	if below.R >= matte.R {
		t.Fatalf("pixel below board = %+v, want darker than matte %+v", below, matte)
	}
	// Far corners stay clean matte.
	if got := out.RGBAAt(1, 1); got != matte {
		t.Fatalf("far corner = %+v", got)
	}
}

func TestMatteRoundsCorners(t *testing.T) {
	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	matte := color.RGBA{R: 0x80, A: 0xFF}
	board := testImage(20, 20, white)
	out := Matte(board, MatteOptions{Padding: 10, CornerRadius: 6, Background: matte})

	// The sharp corner pixel of the board area is cut away.
	if got := out.RGBAAt(10, 10); got != matte {
		t.Fatalf("board corner = %+v, want matte", got)
	}
	// Edge midpoints and the centre survive.
	for _, p := range []image.Point{{20, 10}, {10, 20}, {20, 20}} {
		if got := out.RGBAAt(p.X, p.Y); got != white {
			t.Errorf("pixel %v = %+v, want board white", p, got)
		}
	}
}

func TestMatteNilAndEmptyInput(t *testing.T) {
	if out := Matte(nil, DefaultMatteOptions()); out != nil {
		t.Fatal("nil input should pass through")
	}
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if out := Matte(empty, DefaultMatteOptions()); out != empty {
		t.Fatal("empty input should pass through")
	}
}
