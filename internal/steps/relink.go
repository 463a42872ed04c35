package steps

import (
	"fmt"

	"github.com/rs/zerolog"

	"rebalance/internal/logging"
)

// relinkFS is the filesystem surface the relinker needs
type relinkFS interface {
	IsSymlink(path string) (bool, error)
	ReadSymlink(path string) (string, error)
	RemoveSymlink(path string) error
	RemoveTree(path string) error
	Symlink(target, linkPath string) error
	FileExists(path string) (bool, error)
}

// Relinker replaces an original directory with a symbolic link to its
// relocated copy. By the time Relink runs the destination copy is complete
// and verified; a failure here leaves that copy in place and the error
// names the manual recovery.
type Relinker struct {
	fs     relinkFS
	logger zerolog.Logger
}

// NewRelinker creates a new Relinker instance
func NewRelinker(fs relinkFS) *Relinker {
	return &Relinker{
		fs:     fs,
		logger: logging.GetLogger("relink"),
	}
}

// Relink removes whatever occupies source (a stale symlink is unlinked, a
// file or directory is removed recursively) and creates a symbolic link at
// source pointing to dest.
func (r *Relinker) Relink(source, dest string) error {
	isLink, err := r.fs.IsSymlink(source)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", source, err)
	}

	if isLink {
		// A link already pointing at dest needs no work
		if target, err := r.fs.ReadSymlink(source); err == nil && target == dest {
			r.logger.Debug().Str("source", source).Str("dest", dest).Msg("Symlink already in place")
			return nil
		}
		if err := r.fs.RemoveSymlink(source); err != nil {
			return r.recoveryError(source, dest, err)
		}
	} else {
		exists, err := r.fs.FileExists(source)
		if err != nil {
			return fmt.Errorf("failed to inspect %s: %w", source, err)
		}
		if exists {
			if err := r.fs.RemoveTree(source); err != nil {
				return r.recoveryError(source, dest, err)
			}
		}
	}

	if err := r.fs.Symlink(dest, source); err != nil {
		return r.recoveryError(source, dest, err)
	}

	r.logger.Info().Str("source", source).Str("dest", dest).Msg("Symlink created")
	return nil
}

// recoveryError describes the half-finished state: the verified copy
// exists at dest but source no longer points at it.
func (r *Relinker) recoveryError(source, dest string, err error) error {
	return fmt.Errorf("relink failed for %s (verified copy remains at %s; "+
		"link it manually with 'ln -s %s %s' or remove the copy): %w",
		source, dest, dest, source, err)
}
