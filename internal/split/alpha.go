package split

import (
	"image"
	"sync/atomic"

	"github.com/anthonynsimon/bild/parallel"
)

// HasAlpha reports whether any pixel of img is less than fully opaque.
// Separate never calls it; callers use it to skip sources that do not need
// splitting.
func HasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}

	b := img.Bounds()
	var found atomic.Bool
	parallel.Line(b.Dy(), func(start, end int) {
		for y := b.Min.Y + start; y < b.Min.Y+end; y++ {
			if found.Load() {
				return
			}
			for x := b.Min.X; x < b.Max.X; x++ {
				if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
					found.Store(true)
					return
				}
			}
		}
	})
	return found.Load()
}
