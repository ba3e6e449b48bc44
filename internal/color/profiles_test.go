package color

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakeHeader returns a 128-byte ICC header with the given fields set.
func fakeHeader(space, pcs, class string, intent uint32) []byte {
	h := make([]byte, 128)
	binary.BigEndian.PutUint32(h[0:4], 128)
	h[8] = 4
	h[9] = 0x30
	copy(h[12:16], class)
	copy(h[16:20], space)
	copy(h[20:24], pcs)
	binary.BigEndian.PutUint32(h[36:40], acspMagic)
	binary.BigEndian.PutUint32(h[64:68], intent)
	return h
}

func TestParseProfileInfo(t *testing.T) {
	got, err := ParseProfileInfo(fakeHeader("RGB ", "XYZ ", "mntr", 1))
	if err != nil {
		t.Fatalf("ParseProfileInfo: %v", err)
	}
	want := &ProfileInfo{
		Size:       128,
		Version:    "4.3.0",
		ColorSpace: "RGB ",
		PCS:        "XYZ ",
		Class:      "mntr",
		Intent:     "relative",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseProfileInfo mismatch (-want +got):\n%s", diff)
	}
	if !got.IsRGB() {
		t.Error("IsRGB() = false for an RGB profile")
	}
	if ColorSpaceName(got.ColorSpace) != "RGB" || ProfileClassName(got.Class) != "Display" {
		t.Errorf("names: %s / %s", ColorSpaceName(got.ColorSpace), ProfileClassName(got.Class))
	}
}

func TestParseProfileInfoInvalid(t *testing.T) {
	bad := fakeHeader("CMYK", "Lab ", "prtr", 0)
	bad[36] = 'x'

	for name, data := range map[string][]byte{
		"short":     make([]byte, 64),
		"signature": bad,
	} {
		if _, err := ParseProfileInfo(data); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestGrayProfileIsNotRGB(t *testing.T) {
	pi, err := ParseProfileInfo(fakeHeader("GRAY", "XYZ ", "mntr", 0))
	if err != nil {
		t.Fatalf("ParseProfileInfo: %v", err)
	}
	if pi.IsRGB() {
		t.Error("gray profile reported as RGB")
	}
	if pi.Intent != "perceptual" {
		t.Errorf("intent = %s, want perceptual", pi.Intent)
	}
}
