// Package cli provides the command-line interface layer for the rebalance
// tool: dependency wiring, the interactive menu, and the actions the
// cobra commands dispatch to.
package cli

import (
	"fmt"

	"rebalance/internal/config"
	"rebalance/internal/steps"
	"rebalance/internal/system"
	"rebalance/internal/ui"
)

// RunContext holds all dependencies needed for a run
type RunContext struct {
	Config   *config.Config
	Settings *config.Settings
	UI       *ui.UI
	FS       *system.FileSystem
	Runner   system.CommandRunner
}

// NewRunContext creates a RunContext with all dependencies initialized.
// Flag values in overrides take precedence over the config file, which
// takes precedence over the built-in defaults.
func NewRunContext(overrides config.Settings) (*RunContext, error) {
	cfg := config.New("")
	if err := cfg.Load(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	settings, err := config.Resolve(cfg, overrides)
	if err != nil {
		return nil, err
	}

	uiInstance := ui.New()
	uiInstance.SetNonInteractive(settings.AssumeYes)

	runner := system.NewCommandRunner()

	return &RunContext{
		Config:   cfg,
		Settings: settings,
		UI:       uiInstance,
		FS:       system.NewFileSystemWithRunner(runner),
		Runner:   runner,
	}, nil
}

// NewPipeline wires the full rebalance pipeline for this context
func (c *RunContext) NewPipeline() *steps.Pipeline {
	return steps.NewPipeline(c.Settings, c.UI, c.FS, c.Runner)
}
