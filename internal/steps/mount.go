package steps

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"rebalance/internal/logging"
	"rebalance/internal/system"
)

// mountFS is the filesystem surface the mounter needs
type mountFS interface {
	EnsureDirectory(path string) error
	IsMount(path string) (bool, error)
}

// Mounter prepares a mount point and mounts a block device on it. Any
// failure here aborts the whole run: nothing has been mutated yet.
type Mounter struct {
	fs     mountFS
	runner system.CommandRunner
	logger zerolog.Logger
}

// NewMounter creates a new Mounter instance
func NewMounter(fs mountFS, runner system.CommandRunner) *Mounter {
	return &Mounter{
		fs:     fs,
		runner: runner,
		logger: logging.GetLogger("mounter"),
	}
}

// Mount ensures mountPoint exists and mounts device on it. Mounting is
// skipped when device is already mounted at mountPoint; anything else
// mounted there is an error, since relocating onto the wrong volume would
// leave dangling symlinks after a reboot.
func (m *Mounter) Mount(device, mountPoint string) error {
	if err := m.fs.EnsureDirectory(mountPoint); err != nil {
		return fmt.Errorf("failed to prepare mount point %s: %w", mountPoint, err)
	}

	mounted, err := m.fs.IsMount(mountPoint)
	if err == nil && mounted {
		source, err := m.mountedSource(mountPoint)
		if err != nil {
			return err
		}
		if source != device {
			return fmt.Errorf("%s is mounted at %s, expected %s; unmount it before rebalancing",
				source, mountPoint, device)
		}
		m.logger.Info().Str("device", device).Str("mountPoint", mountPoint).
			Msg("Already mounted, skipping mount")
		return nil
	}

	result, err := m.runner.Run("sudo", "mount", device, mountPoint)
	if err != nil {
		return fmt.Errorf("failed to mount %s at %s: %w\nOutput: %s",
			device, mountPoint, err, result.Stderr)
	}

	m.logger.Info().Str("device", device).Str("mountPoint", mountPoint).Msg("Mounted")
	return nil
}

// mountedSource returns the device backing the mount at mountPoint
func (m *Mounter) mountedSource(mountPoint string) (string, error) {
	result, err := m.runner.Run("findmnt", "-n", "-o", "SOURCE", mountPoint)
	if err != nil {
		return "", fmt.Errorf("failed to identify the volume mounted at %s: %w\nOutput: %s",
			mountPoint, err, result.Stderr)
	}
	return strings.TrimSpace(result.Stdout), nil
}
