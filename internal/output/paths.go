package output

import (
	"errors"
	"path/filepath"
	"strings"
)

// Naming controls where plane files are written relative to their source.
type Naming struct {
	RGBSuffix   string // inserted before the extension of the RGB plane
	AlphaSuffix string // inserted before the extension of the alpha plane
	Dir         string // output directory; empty means next to the source
	Ext         string // extension with leading dot, from the output format
}

// DefaultNaming matches the texture pipeline convention of foo.png →
// foo_RGB.png and foo_Alpha.png.
func DefaultNaming() Naming {
	return Naming{RGBSuffix: "_RGB", AlphaSuffix: "_Alpha", Ext: ".png"}
}

// Validate rejects namings under which the two planes, or a plane and
// its source, could share a path.
func (n Naming) Validate() error {
	if n.RGBSuffix == "" || n.AlphaSuffix == "" {
		return errors.New("plane suffixes must not be empty")
	}
	if n.RGBSuffix == n.AlphaSuffix {
		return errors.New("RGB and alpha suffixes must differ")
	}
	if strings.ContainsRune(n.RGBSuffix+n.AlphaSuffix, filepath.Separator) {
		return errors.New("plane suffixes must not contain a path separator")
	}
	if !strings.HasPrefix(n.Ext, ".") {
		return errors.New("extension must start with a dot")
	}
	return nil
}

// PlanePaths returns the RGB and alpha output paths for src.
func (n Naming) PlanePaths(src string) (rgb, alpha string) {
	dir := n.Dir
	if dir == "" {
		dir = filepath.Dir(src)
	}
	stem := stem(src)
	return filepath.Join(dir, stem+n.RGBSuffix+n.Ext), filepath.Join(dir, stem+n.AlphaSuffix+n.Ext)
}

// IsPlane reports whether src already looks like an output of this naming,
// so that re-running over a directory does not split planes again.
func (n Naming) IsPlane(src string) bool {
	s := stem(src)
	return strings.HasSuffix(s, n.RGBSuffix) || strings.HasSuffix(s, n.AlphaSuffix)
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
