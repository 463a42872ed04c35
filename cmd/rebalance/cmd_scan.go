package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rebalance/internal/cli"
	"rebalance/internal/config"
)

var (
	scanRoot      string
	scanMinSizeMB int
	scanLimit     int
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List oversized directories without moving anything",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanRoot, "root", "", "Directory tree to scan")
	scanCmd.Flags().IntVar(&scanMinSizeMB, "min-size-mb", 0, "Minimum directory size to report")
	scanCmd.Flags().IntVar(&scanLimit, "limit", 0, "Maximum number of directories to list")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, err := cli.NewRunContext(config.Settings{
		RootPath:  scanRoot,
		MinSizeMB: scanMinSizeMB,
		Limit:     scanLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	return cli.RunScan(ctx)
}
