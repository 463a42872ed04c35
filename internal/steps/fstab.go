package steps

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"rebalance/internal/logging"
)

// fstabWriter writes the updated mount table; privileged in production,
// a plain file write in tests.
type fstabWriter interface {
	WriteFile(path string, content []byte, perms os.FileMode) error
}

// FstabUpdater appends a mount entry to the persistent mount table so the
// destination volume reactivates after a reboot. Entries are append-only
// and never duplicated.
type FstabUpdater struct {
	writer fstabWriter
	path   string
	logger zerolog.Logger
}

// NewFstabUpdater creates a new FstabUpdater for the mount table at path
func NewFstabUpdater(writer fstabWriter, path string) *FstabUpdater {
	return &FstabUpdater{
		writer: writer,
		path:   path,
		logger: logging.GetLogger("fstab"),
	}
}

// Entry builds the mount table line for a device
func Entry(device, mountPoint, fsType string) string {
	return fmt.Sprintf("%s %s %s defaults 0 2", device, mountPoint, fsType)
}

// Present reports whether the entry for device at mountPoint already has a
// textually matching line in the mount table. A missing table is empty.
func (f *FstabUpdater) Present(device, mountPoint, fsType string) (bool, error) {
	entry := Entry(device, mountPoint, fsType)

	content, err := os.ReadFile(f.path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read %s: %w", f.path, err)
	}

	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == entry {
			return true, nil
		}
	}
	return false, nil
}

// Ensure appends the entry for device at mountPoint unless a line with the
// same text is already present. It reports whether an append happened.
func (f *FstabUpdater) Ensure(device, mountPoint, fsType string) (bool, error) {
	entry := Entry(device, mountPoint, fsType)

	present, err := f.Present(device, mountPoint, fsType)
	if err != nil {
		return false, err
	}
	if present {
		f.logger.Debug().Str("entry", entry).Msg("Mount table entry already present")
		return false, nil
	}

	content, err := os.ReadFile(f.path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to read %s: %w", f.path, err)
	}

	updated := string(content)
	if updated != "" && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += entry + "\n"

	if err := f.writer.WriteFile(f.path, []byte(updated), 0644); err != nil {
		return false, fmt.Errorf("failed to update %s: %w", f.path, err)
	}

	f.logger.Info().Str("entry", entry).Str("path", f.path).Msg("Mount table entry appended")
	return true, nil
}
