package ir

import "image"

// Plane names a derived output image. It is used in error messages and
// manifests to identify which half of a separation failed or was written.
type Plane string

const (
	PlaneRGB   Plane = "rgb"
	PlaneAlpha Plane = "alpha"
)

// Planes is the intermediate representation passed between the channel
// separator and the encoder. Both images are 8-bit non-premultiplied with
// A fixed at 255, stored with Rect.Min at (0,0) and Stride == Width*4, so
// len(Pix) == Width * Height * 4.
type Planes struct {
	RGB   *image.NRGBA // source RGB, same size as the source
	Alpha *image.NRGBA // source alpha replicated into R, G and B; scaled
}

// Image returns the named plane, or nil for an unknown name.
func (p *Planes) Image(name Plane) *image.NRGBA {
	switch name {
	case PlaneRGB:
		return p.RGB
	case PlaneAlpha:
		return p.Alpha
	default:
		return nil
	}
}
