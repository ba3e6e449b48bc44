package pipeline

import (
	"fmt"

	"github.com/davesmith10/alphasplit/internal/codec"
	"github.com/davesmith10/alphasplit/internal/ir"
	"github.com/davesmith10/alphasplit/internal/output"
	"github.com/davesmith10/alphasplit/internal/split"
)

// Options controls a single-image separation. Scale is used as given, so a
// zero Scale fails like any other non-positive factor; start from
// DefaultOptions to get the default scale.
type Options struct {
	Scale  float64      // alpha plane scale factor
	Format codec.Format // output encoding; empty means codec.DefaultFormat
}

// DefaultOptions returns full-size alpha planes encoded as PNG.
func DefaultOptions() Options {
	return Options{Scale: split.DefaultScale, Format: codec.DefaultFormat}
}

func (o Options) withDefaults() Options {
	if o.Format == "" {
		o.Format = codec.DefaultFormat
	}
	return o
}

// Result holds the encoded planes of a pipeline run.
type Result struct {
	RGB         []byte // encoded RGB plane
	Alpha       []byte // encoded alpha plane
	Format      codec.Format
	SrcFormat   string
	SrcWidth    int
	SrcHeight   int
	AlphaWidth  int
	AlphaHeight int
	HasAlpha    bool // false when every source pixel is opaque
}

// Run executes decode → separate → encode on an in-memory source image.
func Run(data []byte, opts Options) (*Result, error) {
	src, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return RunSource(src, opts)
}

// RunSource separates and encodes an already decoded source.
func RunSource(src *codec.Source, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	planes, err := split.Separate(src.Image, opts.Scale)
	if err != nil {
		return nil, fmt.Errorf("separate: %w", err)
	}

	rgb, err := codec.EncodePlane(planes, ir.PlaneRGB, opts.Format)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	alpha, err := codec.EncodePlane(planes, ir.PlaneAlpha, opts.Format)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	b := src.Image.Bounds()
	ab := planes.Alpha.Bounds()
	return &Result{
		RGB:         rgb,
		Alpha:       alpha,
		Format:      opts.Format,
		SrcFormat:   src.Format,
		SrcWidth:    b.Dx(),
		SrcHeight:   b.Dy(),
		AlphaWidth:  ab.Dx(),
		AlphaHeight: ab.Dy(),
		HasAlpha:    split.HasAlpha(src.Image),
	}, nil
}

// Write stores the RGB plane and then the alpha plane. If the alpha write
// fails the RGB file is left in place; the returned *ir.IOError names the
// path that failed so the caller can clean up.
func (r *Result) Write(rgbPath, alphaPath string) error {
	if err := output.WritePlane(rgbPath, r.RGB); err != nil {
		return err
	}
	return output.WritePlane(alphaPath, r.Alpha)
}

// Files records where a source's planes were written.
type Files struct {
	Source    string
	RGBPath   string
	AlphaPath string
	*Result
}

// RunFile loads the image at path, separates it and writes both planes to
// the paths chosen by naming.
// An empty naming.Ext is filled from the output format.
func RunFile(path string, naming output.Naming, opts Options) (*Files, error) {
	opts = opts.withDefaults()
	if naming.Ext == "" {
		naming.Ext = opts.Format.Ext()
	}

	src, err := codec.Load(path)
	if err != nil {
		return nil, err
	}
	res, err := RunSource(src, opts)
	if err != nil {
		return nil, err
	}
	rgbPath, alphaPath := naming.PlanePaths(path)
	if err := res.Write(rgbPath, alphaPath); err != nil {
		return nil, err
	}
	return &Files{Source: path, RGBPath: rgbPath, AlphaPath: alphaPath, Result: res}, nil
}
