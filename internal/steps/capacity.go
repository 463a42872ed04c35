package steps

import (
	"fmt"

	"github.com/rs/zerolog"

	"rebalance/internal/logging"
	"rebalance/internal/system"
)

// DiskUsager reads a point-in-time usage snapshot for the filesystem
// containing a path.
type DiskUsager interface {
	DiskUsage(path string) (system.DiskUsage, error)
}

// CapacityChecker verifies that the selected directories fit in the free
// space of the filesystem containing the given path before anything is
// mounted or copied.
type CapacityChecker struct {
	disk   DiskUsager
	logger zerolog.Logger
}

// NewCapacityChecker creates a new CapacityChecker instance
func NewCapacityChecker(disk DiskUsager) *CapacityChecker {
	return &CapacityChecker{
		disk:   disk,
		logger: logging.GetLogger("capacity"),
	}
}

// Check compares requiredKB against the available space on the filesystem
// containing path and returns ErrInsufficientSpace when it does not fit.
func (c *CapacityChecker) Check(path string, requiredKB int64) error {
	usage, err := c.disk.DiskUsage(path)
	if err != nil {
		return fmt.Errorf("failed to check disk usage for %s: %w", path, err)
	}

	c.logger.Debug().
		Str("path", path).
		Int64("requiredKB", requiredKB).
		Uint64("availableKB", usage.AvailableKB).
		Msg("Capacity check")

	if requiredKB > int64(usage.AvailableKB) {
		return fmt.Errorf("%w: need %d MB, %d MB available on filesystem of %s",
			ErrInsufficientSpace, requiredKB/1024, usage.AvailableKB/1024, path)
	}

	return nil
}
