package steps

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"rebalance/internal/logging"
	"rebalance/internal/system"
)

// Transfer mirrors a directory tree onto the destination with rsync and
// verifies the result with a recursive diff.
type Transfer struct {
	runner system.CommandRunner
	logger zerolog.Logger
}

// NewTransfer creates a new Transfer instance
func NewTransfer(runner system.CommandRunner) *Transfer {
	return &Transfer{
		runner: runner,
		logger: logging.GetLogger("transfer"),
	}
}

// Sync copies source into dest as an exact mirror. A dry run goes first
// and fails fast without touching any data; only when it succeeds does the
// real synchronization run, deleting destination entries absent from
// source so a stale pre-existing destination becomes an exact copy.
func (t *Transfer) Sync(source, dest string) error {
	// Trailing slash: copy the directory's contents, so dest mirrors
	// source rather than gaining a nested copy of it
	src := strings.TrimSuffix(source, "/") + "/"

	t.logger.Debug().Str("source", source).Str("dest", dest).Msg("Starting dry run")
	if result, err := t.runner.Run("sudo", "rsync", "-a", "--dry-run", src, dest); err != nil {
		return fmt.Errorf("transfer dry run failed for %s: %w\nOutput: %s", source, err, result.Stderr)
	}

	t.logger.Info().Str("source", source).Str("dest", dest).Msg("Synchronizing")
	if result, err := t.runner.Run("sudo", "rsync", "-a", "--delete", src, dest); err != nil {
		return fmt.Errorf("transfer failed for %s: %w\nOutput: %s", source, err, result.Stderr)
	}

	return nil
}

// Verify recursively compares source and dest and returns nil only when
// the comparison ran and reported no differences. Any difference, or any
// failure to run the comparison at all, is a verification failure.
func (t *Transfer) Verify(source, dest string) error {
	result, err := t.runner.Run("sudo", "diff", "-r", source, dest)
	if err != nil {
		return fmt.Errorf("verification failed for %s: %w\nOutput: %s%s",
			source, err, result.Stdout, result.Stderr)
	}

	t.logger.Debug().Str("source", source).Str("dest", dest).Msg("Verification passed")
	return nil
}
