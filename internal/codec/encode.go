package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/davesmith10/alphasplit/internal/ir"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is a lossless output encoding for planes.
type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// DefaultFormat is used when no output format is configured.
const DefaultFormat = PNG

// ParseFormat converts a format name (case-insensitive, "tif" accepted)
// to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	default:
		return "", fmt.Errorf("unknown output format: %q", s)
	}
}

// Ext returns the file extension, with leading dot, for files in f.
func (f Format) Ext() string {
	switch f {
	case BMP:
		return ".bmp"
	case TIFF:
		return ".tif"
	default:
		return ".png"
	}
}

func (f Format) encoder() imgio.Encoder {
	switch f {
	case BMP:
		return func(w io.Writer, img image.Image) error {
			return bmp.Encode(w, img)
		}
	case TIFF:
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}
	default:
		return imgio.PNGEncoder()
	}
}

// Encode serializes img in format f.
func Encode(img image.Image, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.encoder()(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodePlane serializes the named plane of p. Failures are
// *ir.EncodingError values identifying the plane.
func EncodePlane(p *ir.Planes, name ir.Plane, f Format) ([]byte, error) {
	img := p.Image(name)
	if img == nil {
		return nil, &ir.EncodingError{Plane: name, Format: string(f), Err: errors.New("plane is missing")}
	}
	data, err := Encode(img, f)
	if err != nil {
		return nil, &ir.EncodingError{Plane: name, Format: string(f), Err: err}
	}
	return data, nil
}
