package raster

import (
	"image"
	"image/color"
	"testing"
)

var ink = color.RGBA{A: 0xFF}

func blank(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	Fill(img, img.Bounds(), color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	return img
}

func TestLineCoversEndpoints(t *testing.T) {
	img := blank(30, 30)
	Line(img, image.Pt(2, 3), image.Pt(27, 18), ink, 1)
	for _, p := range []image.Point{{2, 3}, {27, 18}} {
		if got := img.RGBAAt(p.X, p.Y); got != ink {
			t.Errorf("endpoint %v = %+v", p, got)
		}
	}
}

func TestZeroLengthLinePaintsDot(t *testing.T) {
	img := blank(10, 10)
	Line(img, image.Pt(5, 5), image.Pt(5, 5), ink, 3)
	if got := img.RGBAAt(5, 5); got != ink {
		t.Fatalf("centre = %+v", got)
	}
	if got := img.RGBAAt(6, 6); got != ink {
		t.Fatalf("stamp edge = %+v, want ink for width 3", got)
	}
	if got := img.RGBAAt(8, 5); got == ink {
		t.Fatal("stamp leaked beyond its radius")
	}
}

func TestThickLineWidth(t *testing.T) {
	img := blank(40, 40)
	Line(img, image.Pt(5, 20), image.Pt(35, 20), ink, 5)
	// Width 5 paints two pixels either side of the centre row.
	for dy := -2; dy <= 2; dy++ {
		if got := img.RGBAAt(20, 20+dy); got != ink {
			t.Errorf("row offset %d not painted", dy)
		}
	}
	if got := img.RGBAAt(20, 24); got == ink {
		t.Error("paint outside the brush width")
	}
}

func TestLineClipsAtBounds(t *testing.T) {
	img := blank(10, 10)
	// Must not panic and must paint the in-bounds part.
	Line(img, image.Pt(-20, 5), image.Pt(30, 5), ink, 3)
	if got := img.RGBAAt(5, 5); got != ink {
		t.Fatalf("in-bounds pixel = %+v", got)
	}
}

func TestDot(t *testing.T) {
	img := blank(12, 12)
	Dot(img, image.Pt(6, 6), ink, 1)
	if got := img.RGBAAt(6, 6); got != ink {
		t.Fatalf("dot pixel = %+v", got)
	}
	if got := img.RGBAAt(7, 6); got == ink {
		t.Fatal("width 1 dot should be a single pixel")
	}
}

func TestRectCorners(t *testing.T) {
	img := blank(50, 50)
	r := image.Rect(10, 12, 40, 30)
	Rect(img, r, ink, 1)
	corners := []image.Point{{10, 12}, {40, 12}, {40, 30}, {10, 30}}
	for _, p := range corners {
		if got := img.RGBAAt(p.X, p.Y); got != ink {
			t.Errorf("corner %v = %+v", p, got)
		}
	}
	if got := img.RGBAAt(25, 20); got == ink {
		t.Error("interior painted")
	}
}

func TestEllipseExtremes(t *testing.T) {
	img := blank(80, 50)
	r := image.Rect(10, 5, 70, 45)
	// Width 3 absorbs the one-pixel truncation of the parametric trace.
	Ellipse(img, r, ink, 3)
	// cx=40 cy=25 rx=30 ry=20
	for _, p := range []image.Point{{70, 25}, {10, 25}, {40, 5}, {40, 45}} {
		if got := img.RGBAAt(p.X, p.Y); got != ink {
			t.Errorf("extreme %v = %+v", p, got)
		}
	}
	if got := img.RGBAAt(40, 25); got == ink {
		t.Error("centre painted")
	}
}

func TestTinyEllipseDoesNotPanic(t *testing.T) {
	img := blank(6, 6)
	Ellipse(img, image.Rect(2, 2, 3, 3), ink, 1)
	Ellipse(img, image.Rect(3, 3, 3, 3), ink, 2)
}

func TestFillRespectsBounds(t *testing.T) {
	img := blank(8, 8)
	Fill(img, image.Rect(-5, -5, 4, 4), ink)
	if got := img.RGBAAt(0, 0); got != ink {
		t.Fatalf("fill origin = %+v", got)
	}
	if got := img.RGBAAt(5, 5); got == ink {
		t.Fatal("fill leaked outside its rectangle")
	}
}
