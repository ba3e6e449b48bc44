package main

import (
	"fmt"

	"github.com/davesmith10/alphasplit/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config [file]",
	Short: "Write the effective settings to a JSON config file",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfig,
}

func init() {
	addPlaneFlags(configCmd.Flags())
	configCmd.Flags().Bool("skip-opaque", false, "Skip sources without translucent pixels")
	configCmd.Flags().Bool("keep-going", false, "Continue after a source fails")
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Config: %s\n", args[0])
	return nil
}
