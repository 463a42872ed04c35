package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rebalance/internal/cli"
	"rebalance/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show disk usage, mount state and persistence status",
	RunE:  showStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func showStatus(cmd *cobra.Command, args []string) error {
	ctx, err := cli.NewRunContext(config.Settings{})
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	return cli.RunStatus(ctx)
}
