package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rebalance/internal/cli"
	"rebalance/internal/config"
	"rebalance/internal/logging"
	"rebalance/pkg/version"
)

var verbosity int

var rootCmd = &cobra.Command{
	Use:   "rebalance",
	Short: "Relocate oversized home directories to a secondary volume",
	Long: `rebalance frees space on a crowded home filesystem by moving its
largest directories to a secondary mounted volume and replacing each
original with a symbolic link, so existing paths keep working.

The workflow: scan for directories over a size threshold, rank them,
ask for approval one at a time, check free space, mount the destination
device, mirror each approved directory with rsync (dry run first),
verify the copy with a recursive diff, swap in the symlink, and persist
the mount in /etc/fstab.

Run without arguments to launch the interactive menu.`,
	SilenceUsage:  true, // We handle errors manually, but silence usage on error
	SilenceErrors: true, // We format errors ourselves for consistent output
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbosity)
	},
	RunE: runInteractiveMenu,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Info())
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Launch interactive menu",
	Long:  `Launch the interactive menu interface.`,
	RunE:  runInteractiveMenu,
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v, -vv)")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(menuCmd)
}

func runInteractiveMenu(cmd *cobra.Command, args []string) error {
	ctx, err := cli.NewRunContext(config.Settings{})
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	menu := cli.NewMenu(ctx)
	return menu.Show()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
