package steps

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"rebalance/internal/config"
	"rebalance/internal/logging"
	"rebalance/internal/scan"
	"rebalance/internal/system"
	"rebalance/internal/ui"
)

// Pipeline runs the full rebalance workflow top to bottom: scan, select,
// check capacity, mount, relocate each approved directory, persist the
// mount. Relocation failures are isolated per directory; capacity and
// mount failures abort before anything is mutated.
type Pipeline struct {
	settings  *config.Settings
	scanner   *scan.Scanner
	selector  *Selector
	capacity  *CapacityChecker
	mounter   *Mounter
	relocator *Relocator
	fstab     *FstabUpdater
	ui        *ui.UI
	logger    zerolog.Logger
}

// PipelineDeps bundles the pipeline's collaborators for injection
type PipelineDeps struct {
	Scanner   *scan.Scanner
	Selector  *Selector
	Capacity  *CapacityChecker
	Mounter   *Mounter
	Relocator *Relocator
	Fstab     *FstabUpdater
}

// NewPipeline wires a production pipeline from a filesystem and runner
func NewPipeline(settings *config.Settings, u *ui.UI, fs *system.FileSystem, runner system.CommandRunner) *Pipeline {
	transfer := NewTransfer(runner)
	deps := PipelineDeps{
		Scanner:   scan.NewScanner(),
		Selector:  NewSelector(u, settings.Limit),
		Capacity:  NewCapacityChecker(fs),
		Mounter:   NewMounter(fs, runner),
		Relocator: NewRelocator(fs, transfer, NewRelinker(fs)),
		Fstab:     NewFstabUpdater(fs, settings.FstabPath),
	}
	return NewPipelineWithDeps(settings, u, deps)
}

// NewPipelineWithDeps builds a pipeline from explicit collaborators
func NewPipelineWithDeps(settings *config.Settings, u *ui.UI, deps PipelineDeps) *Pipeline {
	return &Pipeline{
		settings:  settings,
		scanner:   deps.Scanner,
		selector:  deps.Selector,
		capacity:  deps.Capacity,
		mounter:   deps.Mounter,
		relocator: deps.Relocator,
		fstab:     deps.Fstab,
		ui:        u,
		logger:    logging.GetLogger("pipeline"),
	}
}

// Run executes the workflow once. It returns an error only for failures
// that abort the run before any relocation; per-directory failures are
// reported and counted but do not stop the remaining directories.
func (p *Pipeline) Run() error {
	s := p.settings

	p.ui.Header("Home Directory Rebalance")

	p.ui.Step("Scanning for large directories")
	p.ui.Infof("Scanning %s for directories over %d MB...", s.RootPath, s.MinSizeMB)
	candidates, err := p.scanner.Scan(s.RootPath, s.MinSizeMB)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	if len(candidates) == 0 {
		p.ui.Info("No large directories found")
		return nil
	}
	p.ui.Infof("Found %d candidate directories", len(candidates))

	p.ui.Step("Select directories to move")
	approved, err := p.selector.Select(candidates)
	if err != nil {
		return fmt.Errorf("selection failed: %w", err)
	}
	if len(approved) == 0 {
		p.ui.Info("No directories selected")
		return nil
	}

	p.ui.Step("Checking free space")
	// Sizes are measured again here: prompting takes as long as the
	// operator takes, and the tree can grow in the meantime
	var requiredKB int64
	for _, c := range approved {
		sizeKB, err := p.scanner.DirSizeKB(c.Path)
		if err != nil {
			return fmt.Errorf("failed to measure %s: %w", c.Path, err)
		}
		requiredKB += sizeKB
	}
	// The original workflow checks the filesystem being drained, not the
	// destination; kept as-is and surfaced in `rebalance status`
	if err := p.capacity.Check(s.RootPath, requiredKB); err != nil {
		return err
	}
	p.ui.Successf("Space check passed (%d MB required)", requiredKB/1024)

	p.ui.Step("Mounting destination")
	if err := p.mounter.Mount(s.Device, s.MountPoint); err != nil {
		return err
	}
	p.ui.Successf("%s mounted at %s", s.Device, s.MountPoint)

	p.ui.Step("Relocating directories")
	var moved, skipped, failed int
	for _, c := range approved {
		p.ui.Infof("Processing: %s", c.Path)

		dest, err := p.relocator.Relocate(c.Path, s.MountPoint)
		switch {
		case errors.Is(err, ErrAlreadyRelocated):
			skipped++
			p.ui.Warningf("Skipping %s: already a symlink from a previous run", c.Path)
		case err != nil:
			failed++
			p.ui.Errorf("Failed to process %s: %v", c.Path, err)
			p.logger.Error().Str("path", c.Path).Err(err).Msg("Relocation failed")
		default:
			moved++
			p.ui.Successf("Moved: %s -> %s", c.Path, dest)
		}
	}

	p.ui.Step("Updating " + s.FstabPath)
	appended, err := p.fstab.Ensure(s.Device, s.MountPoint, s.FSType)
	switch {
	case err != nil:
		// Completed moves stand; the mount just will not survive a reboot
		p.ui.Errorf("Failed to update %s: %v", s.FstabPath, err)
		p.ui.Warning("Completed moves are unaffected, but the mount will not reactivate after a reboot")
	case appended:
		p.ui.Successf("Added mount entry to %s", s.FstabPath)
	default:
		p.ui.Infof("Mount entry already present in %s", s.FstabPath)
	}

	p.ui.Separator()
	p.ui.Infof("Rebalance complete: %d moved, %d skipped, %d failed", moved, skipped, failed)

	return nil
}
