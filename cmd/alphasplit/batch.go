package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/davesmith10/alphasplit/internal/batch"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch [dir]",
	Short: "Split every texture under a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func init() {
	addPlaneFlags(batchCmd.Flags())
	batchCmd.Flags().Bool("skip-opaque", false, "Skip sources without translucent pixels")
	batchCmd.Flags().Bool("keep-going", false, "Continue after a source fails")
	batchCmd.Flags().String("manifest", "", "Write a JSON manifest of the outputs to this path")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	root := args[0]
	manifestPath, _ := cmd.Flags().GetString("manifest")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Interrupts stop the batch after the image in progress.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	progress := newProgressPrinter(cmd.OutOrStdout())
	summary, runErr := batch.Run(ctx, root, cfg, progress.report)
	progress.done()
	if summary == nil {
		return runErr
	}

	for _, ev := range summary.Skipped {
		log.Printf("skipped %s: %s", ev.Path, ev.Reason)
	}
	for _, ev := range summary.Failed {
		log.Printf("failed %s: %v", ev.Path, ev.Err)
	}

	if manifestPath != "" {
		if err := batch.WriteManifest(manifestPath, summary.Manifest(cfg.Scale, cfg.Format)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Manifest: %s\n", manifestPath)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Split %d, skipped %d, failed %d\n",
		len(summary.Split), len(summary.Skipped), len(summary.Failed))
	return runErr
}
