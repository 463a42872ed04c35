package steps

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"rebalance/internal/logging"
)

// relocateFS is the filesystem surface the relocator needs beyond what
// its transfer and relink collaborators already cover
type relocateFS interface {
	IsSymlink(path string) (bool, error)
}

// Relocator runs the per-directory pipeline: mirror the tree onto the
// destination, verify the copy byte for byte, then swap the original for a
// symbolic link. Each directory is an isolated unit of failure.
type Relocator struct {
	fs       relocateFS
	transfer *Transfer
	relinker *Relinker
	logger   zerolog.Logger
}

// NewRelocator creates a new Relocator instance
func NewRelocator(fs relocateFS, transfer *Transfer, relinker *Relinker) *Relocator {
	return &Relocator{
		fs:       fs,
		transfer: transfer,
		relinker: relinker,
		logger:   logging.GetLogger("relocate"),
	}
}

// Relocate moves source under mountPoint and returns the destination path.
// A source that is already a symbolic link was relocated by an earlier run
// and is rejected with ErrAlreadyRelocated.
func (r *Relocator) Relocate(source, mountPoint string) (string, error) {
	isLink, err := r.fs.IsSymlink(source)
	if err != nil {
		return "", fmt.Errorf("failed to inspect %s: %w", source, err)
	}
	if isLink {
		return "", fmt.Errorf("%w: %s", ErrAlreadyRelocated, source)
	}

	dest := filepath.Join(mountPoint, filepath.Base(source))

	if err := r.transfer.Sync(source, dest); err != nil {
		return "", err
	}

	if err := r.transfer.Verify(source, dest); err != nil {
		return "", err
	}

	if err := r.relinker.Relink(source, dest); err != nil {
		return "", err
	}

	r.logger.Info().Str("source", source).Str("dest", dest).Msg("Relocation complete")
	return dest, nil
}
