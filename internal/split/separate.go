// Package split separates an image with an alpha channel into an opaque
// RGB plane and an opaque alpha plane that carries the source alpha in its
// red, green and blue channels.
package split

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/davesmith10/alphasplit/internal/ir"
)

// DefaultScale keeps the alpha plane at source resolution.
const DefaultScale = 1.0

// maxAlphaPixels bounds the alpha plane allocation for large scale factors.
const maxAlphaPixels = 1 << 28

// AlphaSize returns the alpha plane dimensions for a w×h source at scale.
// Both dimensions are floor(n*scale); a scale that is not a positive finite
// number, or that yields an empty or oversized plane, is a
// *ir.ConfigurationError.
func AlphaSize(w, h int, scale float64) (int, int, error) {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return 0, 0, &ir.ConfigurationError{Scale: scale, Width: w, Height: h,
			Reason: "scale must be a positive finite number"}
	}
	fw := math.Floor(float64(w) * scale)
	fh := math.Floor(float64(h) * scale)
	if fw < 1 || fh < 1 {
		return 0, 0, &ir.ConfigurationError{Scale: scale, Width: w, Height: h,
			Reason: fmt.Sprintf("alpha plane would be %.0fx%.0f", fw, fh)}
	}
	if fw*fh > maxAlphaPixels {
		return 0, 0, &ir.ConfigurationError{Scale: scale, Width: w, Height: h,
			Reason: fmt.Sprintf("alpha plane of %.0fx%.0f exceeds %d pixels", fw, fh, maxAlphaPixels)}
	}
	return int(fw), int(fh), nil
}

// Separate derives the RGB and alpha planes of src.
//
// The RGB plane has the source dimensions and copies R, G and B unchanged.
// The alpha plane has AlphaSize dimensions; destination (dx, dy) reads the
// source at (floor(dx/scale), floor(dy/scale)) with no filtering. Sources
// without an alpha channel produce an alpha plane of 255. src is only read.
//
// Rows are processed in parallel; each worker writes a disjoint row range.
func Separate(src image.Image, scale float64) (*ir.Planes, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, &ir.InputError{Err: errors.New("source image is empty")}
	}
	aw, ah, err := AlphaSize(w, h, scale)
	if err != nil {
		return nil, err
	}

	at := reader(src)
	rgb := image.NewNRGBA(image.Rect(0, 0, w, h))
	alpha := image.NewNRGBA(image.Rect(0, 0, aw, ah))

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			row := rgb.Pix[y*rgb.Stride : y*rgb.Stride+w*4]
			for x := 0; x < w; x++ {
				c := at(b.Min.X+x, b.Min.Y+y)
				i := x * 4
				row[i] = c.R
				row[i+1] = c.G
				row[i+2] = c.B
				row[i+3] = 0xff
			}
		}
	})

	parallel.Line(ah, func(start, end int) {
		for dy := start; dy < end; dy++ {
			sy := sourceIndex(dy, scale, h)
			row := alpha.Pix[dy*alpha.Stride : dy*alpha.Stride+aw*4]
			for dx := 0; dx < aw; dx++ {
				a := at(b.Min.X+sourceIndex(dx, scale, w), b.Min.Y+sy).A
				i := dx * 4
				row[i] = a
				row[i+1] = a
				row[i+2] = a
				row[i+3] = 0xff
			}
		}
	})

	return &ir.Planes{RGB: rgb, Alpha: alpha}, nil
}

// sourceIndex maps a destination index back to the source, nearest-lower.
func sourceIndex(d int, scale float64, n int) int {
	return min(int(math.Floor(float64(d)/scale)), n-1)
}

// reader returns a non-premultiplied 8-bit accessor for img.
func reader(img image.Image) func(x, y int) color.NRGBA {
	if m, ok := img.(*image.NRGBA); ok {
		return m.NRGBAAt
	}
	return func(x, y int) color.NRGBA {
		return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	}
}
