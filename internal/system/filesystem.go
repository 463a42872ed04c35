package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// DiskUsage is a point-in-time snapshot of a filesystem, in kilobytes.
type DiskUsage struct {
	TotalKB     uint64
	UsedKB      uint64
	AvailableKB uint64
}

// FileSystem handles file system operations. Privileged operations go
// through the injected CommandRunner so tests never need root.
type FileSystem struct {
	runner CommandRunner
}

// NewFileSystem creates a FileSystem using the default command runner
func NewFileSystem() *FileSystem {
	return NewFileSystemWithRunner(NewCommandRunner())
}

// NewFileSystemWithRunner creates a FileSystem with a custom runner
func NewFileSystemWithRunner(runner CommandRunner) *FileSystem {
	return &FileSystem{runner: runner}
}

// EnsureDirectory creates a directory recursively if it does not exist.
// If the path already exists and is a directory, it does nothing.
func (fs *FileSystem) EnsureDirectory(path string) error {
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists but is not a directory", path)
		}
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check directory %s: %w", path, err)
	}

	// Mount points live under /mnt and need root to create
	if result, err := fs.runner.Run("sudo", "-n", "mkdir", "-p", path); err != nil {
		return fmt.Errorf("failed to create directory %s: %w\nOutput: %s", path, err, result.Stderr)
	}

	return nil
}

// FileExists checks if a file exists
func (fs *FileSystem) FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check if file exists %s: %w", path, err)
}

// IsSymlink checks whether the path is a symbolic link (not following it)
func (fs *FileSystem) IsSymlink(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to lstat %s: %w", path, err)
	}
	return info.Mode()&os.ModeSymlink != 0, nil
}

// ReadSymlink returns the target of a symbolic link
func (fs *FileSystem) ReadSymlink(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", fmt.Errorf("failed to read symlink %s: %w", path, err)
	}
	return target, nil
}

// Symlink creates a symbolic link at linkPath pointing to target
func (fs *FileSystem) Symlink(target, linkPath string) error {
	if err := os.Symlink(target, linkPath); err != nil {
		return fmt.Errorf("failed to create symlink %s -> %s: %w", linkPath, target, err)
	}
	return nil
}

// RemoveSymlink removes a symbolic link without following it
func (fs *FileSystem) RemoveSymlink(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove symlink %s: %w", path, err)
	}
	return nil
}

// RemoveTree removes a directory and all its contents.
// Security note: This uses sudo rm -rf which is dangerous.
// Safety checks are in place to prevent accidental deletion of critical directories.
func (fs *FileSystem) RemoveTree(path string) error {
	if path == "" {
		return fmt.Errorf("refusing to remove empty path")
	}

	if !filepath.IsAbs(path) {
		return fmt.Errorf("refusing to remove relative path: %s (must be absolute)", path)
	}

	// Block critical system roots. /home itself is blocked but its subtrees
	// are not: relocating home subdirectories is this tool's purpose.
	criticalPaths := []string{
		"/",
		"/bin",
		"/boot",
		"/dev",
		"/etc",
		"/lib",
		"/lib64",
		"/proc",
		"/root",
		"/sbin",
		"/sys",
		"/usr",
		"/var",
	}

	for _, critical := range criticalPaths {
		if path == critical || strings.HasPrefix(path, critical+"/") {
			return fmt.Errorf("refusing to remove critical system path: %s", path)
		}
	}
	if path == "/home" {
		return fmt.Errorf("refusing to remove critical system path: %s", path)
	}

	if result, err := fs.runner.Run("sudo", "-n", "rm", "-rf", path); err != nil {
		return fmt.Errorf("failed to remove directory %s: %w\nOutput: %s", path, err, result.Stderr)
	}
	return nil
}

// WriteFile writes content to a root-owned file by staging it in a temp
// file and moving it into place with sudo.
func (fs *FileSystem) WriteFile(path string, content []byte, perms os.FileMode) error {
	tmpFile, err := os.CreateTemp("", "rebalance-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	tmpFile.Close()

	if result, err := fs.runner.Run("sudo", "-n", "mv", tmpPath, path); err != nil {
		return fmt.Errorf("failed to move file to %s: %w\nOutput: %s", path, err, result.Stderr)
	}

	// Temp file was created by an unprivileged user
	if result, err := fs.runner.Run("sudo", "-n", "chown", "root:root", path); err != nil {
		return fmt.Errorf("failed to set ownership on %s: %w\nOutput: %s", path, err, result.Stderr)
	}

	permStr := fmt.Sprintf("%o", perms)
	if result, err := fs.runner.Run("sudo", "-n", "chmod", permStr, path); err != nil {
		return fmt.Errorf("failed to chmod %s to %s: %w\nOutput: %s", path, permStr, err, result.Stderr)
	}

	return nil
}

// DiskUsage returns a snapshot of the filesystem containing path
func (fs *FileSystem) DiskUsage(path string) (DiskUsage, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return DiskUsage{}, fmt.Errorf("failed to get disk usage for %s: %w", path, err)
	}

	// Available blocks * size per block = available space in bytes
	free := stat.Bavail * uint64(stat.Bsize)
	total := stat.Blocks * uint64(stat.Bsize)
	used := total - (stat.Bfree * uint64(stat.Bsize))

	return DiskUsage{
		TotalKB:     total / 1024,
		UsedKB:      used / 1024,
		AvailableKB: free / 1024,
	}, nil
}

// IsMount checks if a path is a mount point
func (fs *FileSystem) IsMount(path string) (bool, error) {
	pathStat, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	parentPath := filepath.Dir(path)
	parentStat, err := os.Stat(parentPath)
	if err != nil {
		return false, fmt.Errorf("failed to stat parent %s: %w", parentPath, err)
	}

	pathSys := pathStat.Sys()
	if pathSys == nil {
		return false, fmt.Errorf("failed to get system info for %s", path)
	}
	pathStatT, ok := pathSys.(*syscall.Stat_t)
	if !ok {
		return false, fmt.Errorf("failed to get stat info for %s: not a Unix filesystem", path)
	}

	parentSys := parentStat.Sys()
	if parentSys == nil {
		return false, fmt.Errorf("failed to get system info for %s", parentPath)
	}
	parentStatT, ok := parentSys.(*syscall.Stat_t)
	if !ok {
		return false, fmt.Errorf("failed to get stat info for %s: not a Unix filesystem", parentPath)
	}

	// If the device IDs are different, it's a mount point
	return pathStatT.Dev != parentStatT.Dev, nil
}
