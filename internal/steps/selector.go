package steps

import (
	"fmt"

	"github.com/rs/zerolog"

	"rebalance/internal/logging"
	"rebalance/internal/scan"
)

// selectorUI is the slice of the UI surface the selector needs, kept
// narrow so tests can drive the prompt loop without a terminal.
type selectorUI interface {
	Print(msg string)
	Printf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	PromptYesNo(prompt string, defaultYes bool) (bool, error)
	IsNonInteractive() bool
}

// Selector presents ranked candidates one at a time and collects the
// operator's yes/no decision for each.
type Selector struct {
	ui     selectorUI
	limit  int
	logger zerolog.Logger
}

// NewSelector creates a new Selector instance
func NewSelector(ui selectorUI, limit int) *Selector {
	return &Selector{
		ui:     ui,
		limit:  limit,
		logger: logging.GetLogger("selector"),
	}
}

// Select walks the first limit candidates in rank order and returns the
// approved ones, preserving rank order. Candidates beyond the limit are
// never shown. In non-interactive mode every shown candidate is approved.
func (s *Selector) Select(candidates []scan.Candidate) ([]scan.Candidate, error) {
	shown := len(candidates)
	if shown > s.limit {
		shown = s.limit
	}

	var approved []scan.Candidate
	for i, candidate := range candidates[:shown] {
		s.ui.Print("")
		s.ui.Printf("%d/%d", i+1, shown)
		s.ui.Printf("Directory: %s", candidate.Path)
		s.ui.Printf("Size: %.2f MB", candidate.SizeMB())

		move := true
		if s.ui.IsNonInteractive() {
			s.ui.Infof("Auto-approving: %s", candidate.Path)
		} else {
			var err error
			move, err = s.ui.PromptYesNo("Move this directory?", false)
			if err != nil {
				return nil, fmt.Errorf("failed to prompt for %s: %w", candidate.Path, err)
			}
		}

		if move {
			approved = append(approved, candidate)
			s.ui.Infof("Marked for moving: %s", candidate.Path)
		} else {
			s.ui.Infof("Skipping: %s", candidate.Path)
		}
	}

	s.logger.Debug().
		Int("shown", shown).
		Int("approved", len(approved)).
		Msg("Selection complete")

	return approved, nil
}
