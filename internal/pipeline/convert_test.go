package pipeline

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/davesmith10/alphasplit/internal/codec"
	"github.com/davesmith10/alphasplit/internal/ir"
	"github.com/davesmith10/alphasplit/internal/output"
)

func writeTestFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// verifyOutput runs standard checks on the files written by RunFile.
func verifyOutput(t *testing.T, name string, files *Files, wantAlpha image.Point) {
	t.Helper()

	for _, p := range []string{files.RGBPath, files.AlphaPath} {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("[%s] reading %s: %v", name, p, err)
		}
		src, err := codec.Decode(data)
		if err != nil {
			t.Fatalf("[%s] decoding %s: %v", name, p, err)
		}
		size := src.Image.Bounds().Size()
		want := image.Pt(files.SrcWidth, files.SrcHeight)
		if p == files.AlphaPath {
			want = wantAlpha
		}
		if size != want {
			t.Errorf("[%s] %s is %v, want %v", name, filepath.Base(p), size, want)
		}
		if codec.Format(src.Format) != files.Format {
			t.Errorf("[%s] %s decoded as %s, want %s", name, filepath.Base(p), src.Format, files.Format)
		}
	}

	t.Logf("[%s] %dx%d %s → %s (%d bytes) + %s (%d bytes)",
		name, files.SrcWidth, files.SrcHeight, files.SrcFormat,
		filepath.Base(files.RGBPath), len(files.RGB),
		filepath.Base(files.AlphaPath), len(files.Alpha))
}

func TestRunFile_PNGDefaultNaming(t *testing.T) {
	dir := t.TempDir()
	src := writeTestFile(t, dir, "atlas.png", gradientPNG(t, 12, 6))

	files, err := RunFile(src, output.DefaultNaming(), DefaultOptions())
	if err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if files.RGBPath != filepath.Join(dir, "atlas_RGB.png") || files.AlphaPath != filepath.Join(dir, "atlas_Alpha.png") {
		t.Errorf("paths: %s, %s", files.RGBPath, files.AlphaPath)
	}
	verifyOutput(t, "png-default", files, image.Pt(12, 6))
}

func TestRunFile_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	src := writeTestFile(t, dir, "atlas.png", gradientPNG(t, 4, 4))
	writeTestFile(t, dir, "atlas_RGB.png", bytes.Repeat([]byte("stale"), 1000))

	files, err := RunFile(src, output.DefaultNaming(), DefaultOptions())
	if err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	verifyOutput(t, "overwrite", files, image.Pt(4, 4))
}

func TestRunFile_ScaledTIFFIntoOutDir(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	src := writeTestFile(t, dir, "ui.png", gradientPNG(t, 20, 10))

	naming := output.DefaultNaming()
	naming.Dir = outDir
	naming.Ext = ""
	files, err := RunFile(src, naming, Options{Scale: 0.25, Format: codec.TIFF})
	if err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if filepath.Dir(files.RGBPath) != outDir || filepath.Ext(files.AlphaPath) != ".tif" {
		t.Errorf("paths: %s, %s", files.RGBPath, files.AlphaPath)
	}
	verifyOutput(t, "tiff-quarter", files, image.Pt(5, 2))
}

func TestRunFile_BMP(t *testing.T) {
	dir := t.TempDir()
	src := writeTestFile(t, dir, "font.png", gradientPNG(t, 9, 9))

	naming := output.DefaultNaming()
	naming.Ext = ""
	files, err := RunFile(src, naming, Options{Scale: 2, Format: codec.BMP})
	if err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	verifyOutput(t, "bmp-double", files, image.Pt(18, 18))
}

// --- Sources without an alpha channel ---

func TestRunFile_JPEGSource(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encoding JPEG: %v", err)
	}
	dir := t.TempDir()
	src := writeTestFile(t, dir, "photo.jpg", buf.Bytes())

	files, err := RunFile(src, output.DefaultNaming(), Options{Scale: 0.5})
	if err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if files.SrcFormat != "jpeg" {
		t.Errorf("source format = %s, want jpeg", files.SrcFormat)
	}
	if files.HasAlpha {
		t.Error("JPEG source reported as having alpha")
	}
	verifyOutput(t, "jpeg-opaque", files, image.Pt(8, 8))

	data, _ := os.ReadFile(files.AlphaPath)
	alpha, _ := codec.Decode(data)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if c := color.NRGBAModel.Convert(alpha.Image.At(x, y)).(color.NRGBA); c.R != 255 || c.G != 255 || c.B != 255 {
				t.Fatalf("alpha plane (%d,%d) = %v, want white", x, y, c)
			}
		}
	}
}

func TestRunFile_PalettedGIF(t *testing.T) {
	pal := color.Palette{color.NRGBA{}, color.NRGBA{R: 255, A: 255}}
	img := image.NewPaletted(image.Rect(0, 0, 6, 6), pal)
	img.SetColorIndex(2, 3, 1)
	var buf bytes.Buffer
	if err := gif.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encoding GIF: %v", err)
	}
	src := writeTestFile(t, t.TempDir(), "icon.gif", buf.Bytes())

	files, err := RunFile(src, output.DefaultNaming(), DefaultOptions())
	if err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	verifyOutput(t, "gif-paletted", files, image.Pt(6, 6))
}

// --- Failures ---

func TestRunFile_MissingSource(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.png")
	_, err := RunFile(missing, output.DefaultNaming(), DefaultOptions())
	var inErr *ir.InputError
	if !errors.As(err, &inErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
	if inErr.Path != missing {
		t.Errorf("InputError path = %s, want %s", inErr.Path, missing)
	}
}

func TestRunFile_UnwritableOutDir(t *testing.T) {
	dir := t.TempDir()
	src := writeTestFile(t, dir, "atlas.png", gradientPNG(t, 4, 4))

	naming := output.DefaultNaming()
	naming.Dir = filepath.Join(dir, "does", "not", "exist")
	_, err := RunFile(src, naming, DefaultOptions())
	var ioErr *ir.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}
	if filepath.Dir(ioErr.Path) != naming.Dir {
		t.Errorf("IOError path = %s", ioErr.Path)
	}
}

func TestRunFile_InvalidScaleWritesNothing(t *testing.T) {
	dir := t.TempDir()
	src := writeTestFile(t, dir, "thin.png", gradientPNG(t, 1, 4))

	_, err := RunFile(src, output.DefaultNaming(), Options{Scale: 0.4})
	var cfgErr *ir.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the source in %s, found %d entries", dir, len(entries))
	}
}

func TestResultWrite_AlphaFailureKeepsRGB(t *testing.T) {
	dir := t.TempDir()
	result, err := Run(gradientPNG(t, 4, 4), DefaultOptions())
	if err != nil {
		t.Fatalf("Pipeline: %v", err)
	}

	rgbPath := filepath.Join(dir, "atlas_RGB.png")
	alphaPath := filepath.Join(dir, "missing", "atlas_Alpha.png")
	err = result.Write(rgbPath, alphaPath)
	var ioErr *ir.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %v", err)
	}
	if ioErr.Path != alphaPath {
		t.Errorf("IOError path = %s, want %s", ioErr.Path, alphaPath)
	}

	data, err := os.ReadFile(rgbPath)
	if err != nil {
		t.Fatalf("RGB plane was not kept: %v", err)
	}
	if !bytes.Equal(data, result.RGB) {
		t.Error("RGB plane on disk differs from the encoded plane")
	}
}
