package jpeg

import (
	"bytes"
	"image"
	"image/color"
	stdjpeg "image/jpeg"
	"testing"
)

// encodeTestJPEG builds a w×h YCbCr JPEG with a horizontal gray ramp.
func encodeTestJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 255 / max(1, w-1))
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := stdjpeg.Encode(&buf, img, &stdjpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("encoding test JPEG: %v", err)
	}
	return buf.Bytes()
}

func TestDecode(t *testing.T) {
	data := encodeTestJPEG(t, 40, 24)

	dec, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	b := dec.Image.Bounds()
	if b.Dx() != 40 || b.Dy() != 24 {
		t.Errorf("unexpected dimensions: %dx%d", b.Dx(), b.Dy())
	}
	if len(dec.Image.Pix) != 40*24*4 {
		t.Errorf("expected %d pixel bytes, got %d", 40*24*4, len(dec.Image.Pix))
	}
	for i := 3; i < len(dec.Image.Pix); i += 4 {
		if dec.Image.Pix[i] != 0xff {
			t.Fatalf("pixel %d alpha = %d, want 255", i/4, dec.Image.Pix[i])
		}
	}
	if dec.ColorSpace != "YCbCr" {
		t.Errorf("color space = %s, want YCbCr", dec.ColorSpace)
	}
	if dec.ICC != nil {
		t.Errorf("expected no ICC profile, got %d bytes", len(dec.ICC))
	}

	// The ramp survives lossy compression closely enough to check ordering.
	left := dec.Image.NRGBAAt(0, 12)
	right := dec.Image.NRGBAAt(39, 12)
	if left.R >= right.R {
		t.Errorf("ramp not preserved: left R=%d right R=%d", left.R, right.R)
	}
}

func TestDecodeRejectsNonJPEG(t *testing.T) {
	for _, data := range [][]byte{nil, {0xFF}, []byte("\x89PNG\r\n\x1a\n")} {
		if _, err := Decode(data); err == nil {
			t.Errorf("Decode(%q) succeeded, want error", data)
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	data := encodeTestJPEG(t, 16, 16)
	if _, err := Decode(data[:len(data)/3]); err != nil {
		// libjpeg pads truncated scans with a warning rather than failing,
		// so either outcome is acceptable as long as nothing crashes.
		t.Logf("truncated stream: %v", err)
	}
}

func TestGetInfo(t *testing.T) {
	data := encodeTestJPEG(t, 31, 17)

	info, err := GetInfo(data)
	if err != nil {
		t.Fatalf("GetInfo: %v", err)
	}
	if info.Width != 31 || info.Height != 17 {
		t.Errorf("unexpected dimensions: %dx%d", info.Width, info.Height)
	}
	if info.NumComponents != 3 {
		t.Errorf("expected 3 components, got %d", info.NumComponents)
	}
	if info.Precision != 8 {
		t.Errorf("precision = %d, want 8", info.Precision)
	}
	if info.Progressive {
		t.Error("baseline stream reported as progressive")
	}
	if !info.Decodable() {
		t.Errorf("color space %s reported as not decodable", info.ColorSpace)
	}
}
