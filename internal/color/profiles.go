// Package color reads ICC profile headers embedded in source images.
package color

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	maxProfileSize = 4 * 1024 * 1024 // 4 MB
	acspMagic      = 0x61637370      // 'acsp'
)

// ProfileInfo contains metadata parsed from an ICC profile header.
type ProfileInfo struct {
	Size       uint32
	Version    string
	ColorSpace string // "RGB ", "CMYK", etc.
	PCS        string // "XYZ ", "Lab "
	Class      string // "mntr", "prtr", "scnr", etc.
	Intent     string // rendering intent from the header
}

// ParseProfileInfo reads ICC header metadata from raw profile bytes.
func ParseProfileInfo(data []byte) (*ProfileInfo, error) {
	if len(data) < 128 {
		return nil, errors.New("ICC profile too short (< 128 bytes)")
	}
	if uint32(len(data)) > maxProfileSize {
		return nil, fmt.Errorf("ICC profile too large (%d bytes, max %d)", len(data), maxProfileSize)
	}
	sig := binary.BigEndian.Uint32(data[36:40])
	if sig != acspMagic {
		return nil, fmt.Errorf("invalid ICC signature: 0x%08x (expected 0x%08x)", sig, acspMagic)
	}
	size := binary.BigEndian.Uint32(data[0:4])
	major := data[8]
	minor := data[9] >> 4
	bugfix := data[9] & 0x0f

	info := &ProfileInfo{
		Size:       size,
		Version:    fmt.Sprintf("%d.%d.%d", major, minor, bugfix),
		ColorSpace: string(data[16:20]),
		PCS:        string(data[20:24]),
		Class:      string(data[12:16]),
		Intent:     intentName(binary.BigEndian.Uint32(data[64:68])),
	}
	return info, nil
}

// IsRGB reports whether pixels tagged with this profile are RGB, which is
// what the channel separator copies into the RGB plane unchanged.
func (pi *ProfileInfo) IsRGB() bool {
	return pi.ColorSpace == "RGB "
}

func intentName(v uint32) string {
	switch v {
	case 0:
		return "perceptual"
	case 1:
		return "relative"
	case 2:
		return "saturation"
	case 3:
		return "absolute"
	default:
		return fmt.Sprintf("intent(%d)", v)
	}
}

// ColorSpaceName returns a human-readable name for an ICC color space signature.
func ColorSpaceName(sig string) string {
	switch sig {
	case "RGB ":
		return "RGB"
	case "CMYK":
		return "CMYK"
	case "GRAY":
		return "Grayscale"
	case "Lab ":
		return "CIELAB"
	case "XYZ ":
		return "CIEXYZ"
	default:
		return sig
	}
}

// ProfileClassName returns a human-readable name for an ICC profile class.
func ProfileClassName(sig string) string {
	switch sig {
	case "mntr":
		return "Display"
	case "prtr":
		return "Output"
	case "scnr":
		return "Input"
	case "link":
		return "DeviceLink"
	case "spac":
		return "ColorSpace"
	case "abst":
		return "Abstract"
	case "nmcl":
		return "NamedColor"
	default:
		return sig
	}
}
