package main

import (
	"fmt"
	"os"

	"github.com/davesmith10/alphasplit/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:           "alphasplit",
	Short:         "Split textures into an RGB image and an alpha mask image",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "JSON config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// addPlaneFlags registers the settings shared by split and batch. Their
// defaults mirror config.Default; a flag only overrides the config file
// when it is set explicitly.
func addPlaneFlags(flags *pflag.FlagSet) {
	d := config.Default()
	flags.Float64P("scale", "s", d.Scale, "Alpha plane scale factor (> 0)")
	flags.StringP("format", "f", d.Format, "Output format (png, bmp, tiff)")
	flags.String("rgb-suffix", d.RGBSuffix, "Suffix for the RGB plane file")
	flags.String("alpha-suffix", d.AlphaSuffix, "Suffix for the alpha plane file")
	flags.StringP("out-dir", "o", "", "Output directory (default: next to each source)")
}

// loadConfig reads --config, if given, and applies explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("scale") {
		cfg.Scale, _ = flags.GetFloat64("scale")
	}
	if flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Changed("rgb-suffix") {
		cfg.RGBSuffix, _ = flags.GetString("rgb-suffix")
	}
	if flags.Changed("alpha-suffix") {
		cfg.AlphaSuffix, _ = flags.GetString("alpha-suffix")
	}
	if flags.Changed("out-dir") {
		cfg.OutDir, _ = flags.GetString("out-dir")
	}
	if flags.Changed("skip-opaque") {
		cfg.SkipOpaque, _ = flags.GetBool("skip-opaque")
	}
	if flags.Changed("keep-going") {
		cfg.KeepGoing, _ = flags.GetBool("keep-going")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
