package batch

import (
	"encoding/json"
	"fmt"

	"github.com/davesmith10/alphasplit/internal/output"
)

// Manifest is the JSON sidecar written after a batch.
type Manifest struct {
	Scale   float64         `json:"scale"`
	Format  string          `json:"format"`
	Entries []ManifestEntry `json:"entries"`
	Skipped []string        `json:"skipped,omitempty"`
	Failed  []string        `json:"failed,omitempty"`
}

// ManifestEntry describes one separated source.
type ManifestEntry struct {
	Source      string `json:"source"`
	RGB         string `json:"rgb"`
	Alpha       string `json:"alpha"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	AlphaWidth  int    `json:"alpha_width"`
	AlphaHeight int    `json:"alpha_height"`
	HasAlpha    bool   `json:"has_alpha"`
}

// Manifest builds the sidecar for s.
func (s *Summary) Manifest(scale float64, format string) *Manifest {
	m := &Manifest{Scale: scale, Format: format, Entries: []ManifestEntry{}}
	for _, f := range s.Split {
		m.Entries = append(m.Entries, ManifestEntry{
			Source:      f.Source,
			RGB:         f.RGBPath,
			Alpha:       f.AlphaPath,
			Width:       f.SrcWidth,
			Height:      f.SrcHeight,
			AlphaWidth:  f.AlphaWidth,
			AlphaHeight: f.AlphaHeight,
			HasAlpha:    f.HasAlpha,
		})
	}
	for _, ev := range s.Skipped {
		m.Skipped = append(m.Skipped, ev.Path)
	}
	for _, ev := range s.Failed {
		m.Failed = append(m.Failed, ev.Path)
	}
	return m
}

// WriteManifest stores m at path as indented JSON.
func WriteManifest(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	return output.WritePlane(path, append(data, '\n'))
}
