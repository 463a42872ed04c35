package cli

import (
	"fmt"

	"rebalance/internal/scan"
	"rebalance/internal/steps"
)

// RunRebalance executes the full workflow once
func RunRebalance(ctx *RunContext) error {
	return ctx.NewPipeline().Run()
}

// RunScan lists the oversized directories without moving anything
func RunScan(ctx *RunContext) error {
	s := ctx.Settings

	ctx.UI.Header("Large Directory Scan")
	ctx.UI.Infof("Scanning %s for directories over %d MB...", s.RootPath, s.MinSizeMB)

	scanner := scan.NewScanner()
	candidates, err := scanner.Scan(s.RootPath, s.MinSizeMB)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(candidates) == 0 {
		ctx.UI.Info("No large directories found")
		return nil
	}

	shown := len(candidates)
	if shown > s.Limit {
		shown = s.Limit
	}

	ctx.UI.Infof("Top %d of %d candidates:", shown, len(candidates))
	ctx.UI.Print("")
	for i, c := range candidates[:shown] {
		ctx.UI.Printf("%3d. %12.2f MB  %s", i+1, c.SizeMB(), c.Path)
	}

	return nil
}

// RunStatus shows the resolved settings, disk usage on both sides, the
// mount state of the destination, and whether the mount is persisted
func RunStatus(ctx *RunContext) error {
	s := ctx.Settings

	ctx.UI.Header("Rebalance Status")

	ctx.UI.Info("Settings:")
	ctx.UI.Printf("  Scan root:      %s", s.RootPath)
	ctx.UI.Printf("  Device:         %s", s.Device)
	ctx.UI.Printf("  Mount point:    %s", s.MountPoint)
	ctx.UI.Printf("  Min size:       %d MB", s.MinSizeMB)
	ctx.UI.Printf("  Prompt limit:   %d", s.Limit)
	ctx.UI.Print("")

	if usage, err := ctx.FS.DiskUsage(s.RootPath); err != nil {
		ctx.UI.Warningf("Failed to read disk usage for %s: %v", s.RootPath, err)
	} else {
		ctx.UI.Infof("Source filesystem (%s): %d MB free of %d MB",
			s.RootPath, usage.AvailableKB/1024, usage.TotalKB/1024)
	}

	mounted := false
	if m, err := ctx.FS.IsMount(s.MountPoint); err == nil {
		mounted = m
	}
	if mounted {
		ctx.UI.Successf("Destination mounted at %s", s.MountPoint)
		if usage, err := ctx.FS.DiskUsage(s.MountPoint); err == nil {
			ctx.UI.Infof("Destination filesystem: %d MB free of %d MB",
				usage.AvailableKB/1024, usage.TotalKB/1024)
		}
	} else {
		ctx.UI.Warningf("Nothing mounted at %s", s.MountPoint)
	}

	fstab := steps.NewFstabUpdater(ctx.FS, s.FstabPath)
	present, err := fstab.Present(s.Device, s.MountPoint, s.FSType)
	switch {
	case err != nil:
		ctx.UI.Warningf("Failed to read %s: %v", s.FstabPath, err)
	case present:
		ctx.UI.Successf("Mount entry present in %s", s.FstabPath)
	default:
		ctx.UI.Infof("Mount entry not yet in %s", s.FstabPath)
	}

	return nil
}
