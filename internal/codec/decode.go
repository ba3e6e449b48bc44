// Package codec decodes source images and encodes separated planes with
// lossless codecs.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"os"

	"github.com/davesmith10/alphasplit/internal/ir"
	"github.com/davesmith10/alphasplit/internal/jpeg"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Source is a decoded input image.
type Source struct {
	Image  image.Image
	Format string // decoder name: "png", "gif", "bmp", "tiff", "webp" or "jpeg"
	ICC    []byte // embedded ICC profile; only extracted for JPEG
}

// Load reads and decodes the image at path. Every failure is an
// *ir.InputError carrying path.
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ir.InputError{Path: path, Err: err}
	}
	src, err := Decode(data)
	if err != nil {
		var inErr *ir.InputError
		if errors.As(err, &inErr) {
			inErr.Path = path
		}
		return nil, err
	}
	return src, nil
}

// Decode decodes an in-memory image. JPEG streams go through libjpeg; all
// other formats use the decoders registered with the image package.
func Decode(data []byte) (*Source, error) {
	if isJPEG(data) {
		dec, err := jpeg.Decode(data)
		if err != nil {
			return nil, &ir.InputError{Err: err}
		}
		return &Source{Image: dec.Image, Format: "jpeg", ICC: dec.ICC}, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ir.InputError{Err: fmt.Errorf("decode: %w", err)}
	}
	return &Source{Image: img, Format: format}, nil
}

func isJPEG(data []byte) bool {
	return len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF
}
