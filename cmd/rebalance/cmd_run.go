package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rebalance/internal/cli"
	"rebalance/internal/config"
)

var (
	runRoot       string
	runDevice     string
	runMountPoint string
	runFSType     string
	runFstabPath  string
	runMinSizeMB  int
	runLimit      int
	runAssumeYes  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full rebalance workflow",
	Long: `Scan the root path for oversized directories, select which to move,
mount the destination device, relocate each approved directory and
persist the mount. Flags override the config file; the config file
overrides built-in defaults.`,
	RunE: runRebalance,
}

func init() {
	runCmd.Flags().StringVar(&runRoot, "root", "", "Directory tree to scan")
	runCmd.Flags().StringVar(&runDevice, "device", "", "Block device to mount as destination")
	runCmd.Flags().StringVar(&runMountPoint, "mount-point", "", "Where to mount the destination device")
	runCmd.Flags().StringVar(&runFSType, "fs-type", "", "Filesystem type for the fstab entry")
	runCmd.Flags().StringVar(&runFstabPath, "fstab", "", "Path of the persistent mount table")
	runCmd.Flags().IntVar(&runMinSizeMB, "min-size-mb", 0, "Minimum directory size to offer for relocation")
	runCmd.Flags().IntVar(&runLimit, "limit", 0, "Maximum number of candidates to prompt for")
	runCmd.Flags().BoolVar(&runAssumeYes, "assume-yes", false, "Approve every shown candidate without prompting")

	rootCmd.AddCommand(runCmd)
}

func runRebalance(cmd *cobra.Command, args []string) error {
	ctx, err := cli.NewRunContext(config.Settings{
		RootPath:   runRoot,
		Device:     runDevice,
		MountPoint: runMountPoint,
		FSType:     runFSType,
		FstabPath:  runFstabPath,
		MinSizeMB:  runMinSizeMB,
		Limit:      runLimit,
		AssumeYes:  runAssumeYes,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	return cli.RunRebalance(ctx)
}
