package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/davesmith10/alphasplit/internal/codec"
	"github.com/davesmith10/alphasplit/internal/ir"
	"github.com/davesmith10/alphasplit/internal/pipeline"
	"github.com/spf13/cobra"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split one image into RGB and alpha plane files",
	RunE:  runSplit,
}

func init() {
	splitCmd.Flags().StringP("input", "i", "", "Input image with an alpha channel")
	splitCmd.Flags().String("rgb-output", "", "RGB plane path (overrides suffix naming)")
	splitCmd.Flags().String("alpha-output", "", "Alpha plane path (overrides suffix naming)")
	addPlaneFlags(splitCmd.Flags())
	splitCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	rgbOverride, _ := cmd.Flags().GetString("rgb-output")
	alphaOverride, _ := cmd.Flags().GetString("alpha-output")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	naming, err := cfg.Naming()
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	rgbPath, alphaPath := naming.PlanePaths(inputPath)
	if rgbOverride != "" {
		rgbPath = rgbOverride
	}
	if alphaOverride != "" {
		alphaPath = alphaOverride
	}
	if err := checkOutputPaths(inputPath, rgbPath, alphaPath); err != nil {
		return err
	}

	src, err := codec.Load(inputPath)
	if err != nil {
		return err
	}
	result, err := pipeline.RunSource(src, opts)
	if err != nil {
		return fmt.Errorf("separation: %w", err)
	}
	if !result.HasAlpha {
		log.Printf("warning: %s is fully opaque; its alpha plane is solid white", inputPath)
	}

	if cfg.OutDir != "" {
		if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
			return &ir.IOError{Path: cfg.OutDir, Err: err}
		}
	}
	if err := result.Write(rgbPath, alphaPath); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Split %dx%d %s → RGB %dx%d + alpha %dx%d (%s)\n",
		result.SrcWidth, result.SrcHeight, result.SrcFormat,
		result.SrcWidth, result.SrcHeight, result.AlphaWidth, result.AlphaHeight, result.Format)
	fmt.Fprintf(out, "RGB:   %s (%d bytes)\n", rgbPath, len(result.RGB))
	fmt.Fprintf(out, "Alpha: %s (%d bytes)\n", alphaPath, len(result.Alpha))
	return nil
}

// checkOutputPaths refuses to overwrite the source or to write both planes
// to one file.
func checkOutputPaths(input, rgb, alpha string) error {
	in := filepath.Clean(input)
	switch {
	case filepath.Clean(rgb) == in || filepath.Clean(alpha) == in:
		return fmt.Errorf("output path would overwrite the source %s", input)
	case filepath.Clean(rgb) == filepath.Clean(alpha):
		return fmt.Errorf("RGB and alpha planes would both be written to %s", rgb)
	}
	return nil
}
