// Package raster draws board primitives onto an RGBA image with plain CPU
// loops. Every operation clips to the image bounds; a width of n paints a
// square stamp of side n centred on each plotted pixel, which reads as a
// round cap at board scale.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Fill paints the rectangle with a solid color.
func Fill(img *image.RGBA, rect image.Rectangle, col color.Color) {
	draw.Draw(img, rect.Intersect(img.Bounds()), &image.Uniform{col}, image.Point{}, draw.Src)
}

// Dot paints a single brush stamp at p.
func Dot(img *image.RGBA, p image.Point, col color.Color, width int) {
	stamp(img, p.X, p.Y, width, col)
}

// Line draws from a to b using Bresenham stepping with a thick stamp at
// each plotted pixel. A zero-length line paints one stamp.
func Line(img *image.RGBA, a, b image.Point, col color.Color, width int) {
	x0, y0 := a.X, a.Y
	x1, y1 := b.X, b.Y
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		stamp(img, x0, y0, width, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Rect draws the outline whose edges pass through both corners of rect,
// treating Min and Max as inclusive drag points.
func Rect(img *image.RGBA, rect image.Rectangle, col color.Color, width int) {
	tl := rect.Min
	tr := image.Pt(rect.Max.X, rect.Min.Y)
	br := rect.Max
	bl := image.Pt(rect.Min.X, rect.Max.Y)
	Line(img, tl, tr, col, width)
	Line(img, tr, br, col, width)
	Line(img, br, bl, col, width)
	Line(img, bl, tl, col, width)
}

// Ellipse draws the outline inscribed in rect as a closed run of short
// lines. The segment count follows the circumference so large ellipses
// stay smooth and small ones do not degenerate.
func Ellipse(img *image.RGBA, rect image.Rectangle, col color.Color, width int) {
	cx := (rect.Min.X + rect.Max.X) / 2
	cy := (rect.Min.Y + rect.Max.Y) / 2
	rx := rect.Dx() / 2
	ry := rect.Dy() / 2
	steps := int(math.Ceil(2 * math.Pi * math.Sqrt(float64(rx*rx+ry*ry))))
	if steps < 8 {
		steps = 8
	}
	var prev image.Point
	for i := 0; i <= steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		p := image.Pt(
			cx+int(math.Cos(angle)*float64(rx)),
			cy+int(math.Sin(angle)*float64(ry)),
		)
		if i > 0 {
			Line(img, prev, p, col, width)
		} else {
			stamp(img, p.X, p.Y, width, col)
		}
		prev = p
	}
}

func stamp(img *image.RGBA, x, y, width int, col color.Color) {
	r := width / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			px := x + dx
			py := y + dy
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
	}
}
