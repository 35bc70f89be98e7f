package export

import (
	"image"
	"image/color"
	"image/draw"
)

// MatteOptions frames an exported board on a larger background: uniform
// padding, rounded board corners and a soft blurred shadow underneath.
type MatteOptions struct {
	Padding      int
	CornerRadius int
	Background   color.RGBA
	ShadowRadius int
	ShadowOffset image.Point
	// ShadowOpacity runs 0..1; zero disables the shadow entirely.
	ShadowOpacity float64
}

// DefaultMatteOptions returns the frame used by the share/export flows.
func DefaultMatteOptions() MatteOptions {
	return MatteOptions{
		Padding:       48,
		CornerRadius:  12,
		Background:    color.RGBA{R: 0xE8, G: 0xEA, B: 0xEE, A: 0xFF},
		ShadowRadius:  16,
		ShadowOffset:  image.Pt(0, 10),
		ShadowOpacity: 0.4,
	}
}

// Matte composites img onto the configured background. The output is
// img plus twice the padding in each dimension; the board sits centred
// with its shadow drawn first so the ink appears to float on the matte.
func Matte(img *image.RGBA, opts MatteOptions) *image.RGBA {
	if img == nil || img.Bounds().Empty() {
		return img
	}
	padding := opts.Padding
	if padding < 0 {
		padding = 0
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()+2*padding, b.Dy()+2*padding))
	draw.Draw(out, out.Bounds(), &image.Uniform{opts.Background}, image.Point{}, draw.Src)

	origin := image.Pt(padding, padding)
	mask := cornerMask(b.Dx(), b.Dy(), opts.CornerRadius)

	if opts.ShadowOpacity > 0 && opts.ShadowRadius > 0 {
		opacity := opts.ShadowOpacity
		if opacity > 1 {
			opacity = 1
		}
		radius := opts.ShadowRadius
		// Blur on a canvas grown by the radius so the shadow can spread
		// past the board edge.
		grown := image.NewGray(image.Rect(0, 0, b.Dx()+2*radius, b.Dy()+2*radius))
		draw.Draw(grown, mask.Bounds().Add(image.Pt(radius, radius)), mask, image.Point{}, draw.Src)
		blurred := blurGray(grown, radius)
		shadowCol := color.RGBA{A: uint8(opacity*255 + 0.5)}
		at := origin.Sub(image.Pt(radius, radius)).Add(opts.ShadowOffset)
		draw.DrawMask(out, blurred.Bounds().Add(at), image.NewUniform(shadowCol), image.Point{}, blurred, blurred.Bounds().Min, draw.Over)
	}

	dst := image.Rectangle{Min: origin, Max: origin.Add(b.Size())}
	draw.DrawMask(out, dst, img, b.Min, mask, mask.Bounds().Min, draw.Over)
	return out
}

// cornerMask builds an opaque w x h mask whose corners fall off inside the
// given radius.
func cornerMask(w, h, radius int) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, w, h))
	for i := range mask.Pix {
		mask.Pix[i] = 0xFF
	}
	if radius <= 0 {
		return mask
	}
	if limit := min(w, h) / 2; radius > limit {
		radius = limit
	}
	centers := []image.Point{
		{radius, radius},
		{w - 1 - radius, radius},
		{radius, h - 1 - radius},
		{w - 1 - radius, h - 1 - radius},
	}
	corners := []image.Rectangle{
		image.Rect(0, 0, radius, radius),
		image.Rect(w-radius, 0, w, radius),
		image.Rect(0, h-radius, radius, h),
		image.Rect(w-radius, h-radius, w, h),
	}
	for i, rect := range corners {
		c := centers[i]
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			for x := rect.Min.X; x < rect.Max.X; x++ {
				dx := x - c.X
				dy := y - c.Y
				if dx*dx+dy*dy > radius*radius {
					mask.SetGray(x, y, color.Gray{})
				}
			}
		}
	}
	return mask
}

// blurGray applies a prefix-sum box blur twice, once per axis.
func blurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	for y := 0; y < h; y++ {
		rowStart := y * src.Stride
		tmpStart := y * tmp.Stride
		prefix := make([]int, w+1)
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(src.Pix[rowStart+x])
		}
		for x := 0; x < w; x++ {
			x0 := x - radius
			if x0 < 0 {
				x0 = 0
			}
			x1 := x + radius
			if x1 >= w {
				x1 = w - 1
			}
			sum := prefix[x1+1] - prefix[x0]
			tmp.Pix[tmpStart+x] = uint8(sum / (x1 - x0 + 1))
		}
	}

	for x := 0; x < w; x++ {
		prefix := make([]int, h+1)
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0 := y - radius
			if y0 < 0 {
				y0 = 0
			}
			y1 := y + radius
			if y1 >= h {
				y1 = h - 1
			}
			sum := prefix[y1+1] - prefix[y0]
			dst.Pix[y*dst.Stride+x] = uint8(sum / (y1 - y0 + 1))
		}
	}

	return dst
}
