// Package batch separates every texture under a directory tree.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/davesmith10/alphasplit/internal/codec"
	"github.com/davesmith10/alphasplit/internal/config"
	"github.com/davesmith10/alphasplit/internal/ir"
	"github.com/davesmith10/alphasplit/internal/output"
	"github.com/davesmith10/alphasplit/internal/pipeline"
)

// Status describes what happened to one source.
type Status int

const (
	StatusSplit Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "split"
	}
}

// Event is reported after each source is handled.
type Event struct {
	Index  int // 1-based position in the batch
	Total  int
	Path   string
	Status Status
	Files  *pipeline.Files // set for StatusSplit
	Reason string          // set for StatusSkipped
	Err    error           // set for StatusFailed
}

// Summary collects the outcome of a batch.
type Summary struct {
	Split   []*pipeline.Files
	Skipped []Event
	Failed  []Event
}

// Collect returns the sources under root that cfg selects, in lexical
// order. Files that are themselves planes of a previous run are left out.
func Collect(root string, cfg *config.Config) ([]string, error) {
	naming, err := cfg.Naming()
	if err != nil {
		return nil, err
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if cfg.OutDir != "" && path != root && sameDir(path, cfg.OutDir) {
				return filepath.SkipDir
			}
			return nil
		}
		if !cfg.MatchesExtension(path) || naming.IsPlane(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, &ir.InputError{Path: root, Err: err}
	}
	return paths, nil
}

// Run separates every source Collect finds under root. ctx is checked
// between sources; a source already started runs to completion. progress,
// if non-nil, is called once per source.
//
// Without cfg.KeepGoing the first failure stops the batch and is returned.
// With it, failures are recorded in the summary and reported together.
func Run(ctx context.Context, root string, cfg *config.Config, progress func(Event)) (*Summary, error) {
	paths, err := Collect(root, cfg)
	if err != nil {
		return nil, err
	}
	naming, err := cfg.Naming()
	if err != nil {
		return nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	// Sources that differ only in extension share plane paths; the first
	// one split claims them.
	claimed := make(map[string]string, 2*len(paths))

	summary := &Summary{}
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		ev := Event{Index: i + 1, Total: len(paths), Path: path}
		var (
			files  *pipeline.Files
			reason string
		)
		pn, err := planeNaming(root, path, naming, cfg.OutDir)
		if err == nil {
			rgbPath, alphaPath := pn.PlanePaths(path)
			if other := claimedBy(claimed, rgbPath, alphaPath); other != "" {
				reason = "plane paths collide with " + other
			} else {
				files, reason, err = processOne(path, rgbPath, alphaPath, opts, cfg.SkipOpaque)
			}
			if files != nil {
				claimed[filepath.Clean(rgbPath)] = path
				claimed[filepath.Clean(alphaPath)] = path
			}
		}
		switch {
		case err != nil:
			ev.Status, ev.Err = StatusFailed, err
			summary.Failed = append(summary.Failed, ev)
		case reason != "":
			ev.Status, ev.Reason = StatusSkipped, reason
			summary.Skipped = append(summary.Skipped, ev)
		default:
			ev.Status, ev.Files = StatusSplit, files
			summary.Split = append(summary.Split, files)
		}
		if progress != nil {
			progress(ev)
		}
		if err != nil && !cfg.KeepGoing {
			return summary, fmt.Errorf("%s: %w", path, err)
		}
	}

	if n := len(summary.Failed); n > 0 {
		return summary, fmt.Errorf("%d of %d sources failed", n, len(paths))
	}
	return summary, nil
}

// planeNaming points naming at the directory that receives path's planes.
// With an output directory the source tree is mirrored under it, so equal
// stems in different folders do not overwrite each other.
func planeNaming(root, path string, naming output.Naming, outDir string) (output.Naming, error) {
	if outDir == "" {
		return naming, nil
	}
	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil {
		return naming, err
	}
	naming.Dir = filepath.Join(outDir, rel)
	return naming, nil
}

// claimedBy returns the source whose planes already occupy one of paths.
func claimedBy(claimed map[string]string, paths ...string) string {
	for _, p := range paths {
		if src, ok := claimed[filepath.Clean(p)]; ok {
			return src
		}
	}
	return ""
}

func processOne(path, rgbPath, alphaPath string, opts pipeline.Options, skipOpaque bool) (*pipeline.Files, string, error) {
	src, err := codec.Load(path)
	if err != nil {
		return nil, "", err
	}
	res, err := pipeline.RunSource(src, opts)
	if err != nil {
		return nil, "", err
	}
	if skipOpaque && !res.HasAlpha {
		return nil, "fully opaque", nil
	}

	if dir := filepath.Dir(rgbPath); dir != filepath.Dir(path) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, "", &ir.IOError{Path: dir, Err: err}
		}
	}
	if err := res.Write(rgbPath, alphaPath); err != nil {
		return nil, "", err
	}
	return &pipeline.Files{Source: path, RGBPath: rgbPath, AlphaPath: alphaPath, Result: res}, "", nil
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
