// Package config loads separation settings from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/davesmith10/alphasplit/internal/codec"
	"github.com/davesmith10/alphasplit/internal/output"
	"github.com/davesmith10/alphasplit/internal/pipeline"
	"github.com/davesmith10/alphasplit/internal/split"
)

// Config holds the settings shared by the split and batch commands.
type Config struct {
	Scale       float64  `json:"scale"`        // alpha plane scale factor
	Format      string   `json:"format"`       // png, bmp or tiff
	RGBSuffix   string   `json:"rgb_suffix"`   // e.g. "_RGB"
	AlphaSuffix string   `json:"alpha_suffix"` // e.g. "_Alpha"
	OutDir      string   `json:"out_dir"`      // empty writes next to each source
	Extensions  []string `json:"extensions"`   // source extensions considered by batch
	SkipOpaque  bool     `json:"skip_opaque"`  // batch: leave fully opaque sources alone
	KeepGoing   bool     `json:"keep_going"`   // batch: continue after a failed source
}

// Default returns the built-in settings.
func Default() *Config {
	n := output.DefaultNaming()
	return &Config{
		Scale:       split.DefaultScale,
		Format:      string(codec.DefaultFormat),
		RGBSuffix:   n.RGBSuffix,
		AlphaSuffix: n.AlphaSuffix,
		Extensions:  []string{".png", ".gif", ".bmp", ".tif", ".tiff", ".webp", ".jpg", ".jpeg"},
	}
}

// Load reads a JSON config file. Fields absent from the file keep their
// Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as indented JSON.
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks field values. Geometry against a particular source is
// checked later by the separator.
func (c *Config) Validate() error {
	if math.IsNaN(c.Scale) || math.IsInf(c.Scale, 0) || c.Scale <= 0 {
		return fmt.Errorf("scale must be a positive number, got %g", c.Scale)
	}
	if _, err := codec.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := c.Naming(); err != nil {
		return err
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must not be empty")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	return nil
}

// Naming returns the output naming described by c.
func (c *Config) Naming() (output.Naming, error) {
	f, err := codec.ParseFormat(c.Format)
	if err != nil {
		return output.Naming{}, err
	}
	n := output.Naming{
		RGBSuffix:   c.RGBSuffix,
		AlphaSuffix: c.AlphaSuffix,
		Dir:         c.OutDir,
		Ext:         f.Ext(),
	}
	if err := n.Validate(); err != nil {
		return output.Naming{}, err
	}
	return n, nil
}

// Options returns the pipeline options described by c.
func (c *Config) Options() (pipeline.Options, error) {
	f, err := codec.ParseFormat(c.Format)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{Scale: c.Scale, Format: f}, nil
}

// MatchesExtension reports whether path has one of the configured source
// extensions, ignoring case.
func (c *Config) MatchesExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range c.Extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
