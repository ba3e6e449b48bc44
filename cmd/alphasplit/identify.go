package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/davesmith10/alphasplit/internal/codec"
	"github.com/davesmith10/alphasplit/internal/color"
	"github.com/davesmith10/alphasplit/internal/ir"
	"github.com/davesmith10/alphasplit/internal/jpeg"
	"github.com/davesmith10/alphasplit/internal/split"
	"github.com/spf13/cobra"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Inspect an image's size, alpha usage and ICC profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	identifyCmd.Flags().Float64P("scale", "s", split.DefaultScale, "Alpha plane scale factor to preview")
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]
	scale, _ := cmd.Flags().GetFloat64("scale")

	data, err := os.ReadFile(path)
	if err != nil {
		return &ir.InputError{Path: path, Err: err}
	}
	src, err := codec.Decode(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	b := src.Image.Bounds()
	fmt.Fprintf(out, "File:       %s\n", path)
	fmt.Fprintf(out, "Format:     %s\n", src.Format)
	fmt.Fprintf(out, "Dimensions: %d x %d\n", b.Dx(), b.Dy())
	fmt.Fprintf(out, "File size:  %d bytes (%.1f MB)\n", len(data), float64(len(data))/(1024*1024))
	if split.HasAlpha(src.Image) {
		fmt.Fprintln(out, "Alpha:      translucent pixels present")
	} else {
		fmt.Fprintln(out, "Alpha:      fully opaque")
	}

	aw, ah, err := split.AlphaSize(b.Dx(), b.Dy(), scale)
	var cfgErr *ir.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		fmt.Fprintf(out, "Planes:     invalid at scale %g: %s\n", scale, cfgErr.Reason)
	case err != nil:
		return err
	default:
		fmt.Fprintf(out, "Planes:     RGB %d x %d, alpha %d x %d (scale %g)\n", b.Dx(), b.Dy(), aw, ah, scale)
	}

	if src.Format != "jpeg" {
		return nil
	}

	info, err := jpeg.GetInfo(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	fmt.Fprintf(out, "Components: %d\n", info.NumComponents)
	fmt.Fprintf(out, "Color space: %s\n", info.ColorSpace)
	fmt.Fprintf(out, "Precision:  %d-bit, progressive=%v\n", info.Precision, info.Progressive)
	if !info.Decodable() {
		fmt.Fprintln(out, "Decodable:  no, only RGB and grayscale JPEGs can be split")
	}

	if info.ICC != nil {
		pi, err := color.ParseProfileInfo(info.ICC)
		if err != nil {
			fmt.Fprintf(out, "ICC profile: present (%d bytes) but invalid: %v\n", len(info.ICC), err)
		} else {
			fmt.Fprintf(out, "ICC profile: %d bytes\n", len(info.ICC))
			fmt.Fprintf(out, "  Version:     %s\n", pi.Version)
			fmt.Fprintf(out, "  Color space: %s\n", color.ColorSpaceName(pi.ColorSpace))
			fmt.Fprintf(out, "  PCS:         %s\n", color.ColorSpaceName(pi.PCS))
			fmt.Fprintf(out, "  Class:       %s\n", color.ProfileClassName(pi.Class))
			fmt.Fprintf(out, "  Intent:      %s\n", pi.Intent)
			if !pi.IsRGB() {
				fmt.Fprintln(out, "  Note:        pixels were converted to RGB; RGB plane is untagged")
			}
		}
	} else {
		fmt.Fprintln(out, "ICC profile: none")
	}

	return nil
}
