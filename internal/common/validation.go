package common

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// ValidatePath validates that a path is absolute
func ValidatePath(path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute: %s", path)
	}
	return nil
}

// ValidateDevice validates a block device path (e.g. /dev/nvme0n1p1)
func ValidateDevice(device string) error {
	if device == "" {
		return fmt.Errorf("device cannot be empty")
	}
	if !strings.HasPrefix(device, "/dev/") {
		return fmt.Errorf("device must be a path under /dev: %s", device)
	}
	if device == "/dev/" {
		return fmt.Errorf("device path is incomplete: %s", device)
	}
	return nil
}

// ValidateSizeMB validates a size threshold in megabytes (must be positive)
func ValidateSizeMB(value string) error {
	size, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid size: %s", value)
	}
	if size <= 0 {
		return fmt.Errorf("size must be positive, got: %d", size)
	}
	return nil
}

// ValidateLimit validates a prompt limit (must be positive)
func ValidateLimit(value string) error {
	limit, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid limit: %s", value)
	}
	if limit < 1 {
		return fmt.Errorf("limit must be at least 1, got: %d", limit)
	}
	return nil
}

// ValidateNotEmpty validates that a string is not empty
func ValidateNotEmpty(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("value cannot be empty")
	}
	return nil
}
