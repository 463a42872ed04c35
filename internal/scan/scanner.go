// Package scan walks a directory tree and ranks directories by the total
// size of the regular files beneath them. A directory's size includes
// everything in its subtree, so a nested directory's bytes count toward
// every ancestor as well as itself. Symbolic links are never followed and
// never counted; special files are excluded.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"rebalance/internal/logging"
)

// Candidate is a directory large enough to be offered for relocation.
type Candidate struct {
	Path   string
	SizeKB int64
}

// SizeMB returns the candidate size in megabytes
func (c Candidate) SizeMB() float64 {
	return float64(c.SizeKB) / 1024.0
}

// Scanner finds oversized directories under a root path
type Scanner struct {
	logger zerolog.Logger
}

// NewScanner creates a new Scanner instance
func NewScanner() *Scanner {
	return &Scanner{
		logger: logging.GetLogger("scanner"),
	}
}

// Scan walks root and returns every directory strictly beneath it whose
// subtree of regular files exceeds minSizeMB megabytes, sorted descending
// by size. Unreadable directories are skipped with a warning.
func (s *Scanner) Scan(root string, minSizeMB int) ([]Candidate, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat scan root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root is not a directory: %s", root)
	}

	sizes := make(map[string]int64)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			s.logger.Warn().Str("path", path).Err(walkErr).Msg("Skipping unreadable path")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			// Register the directory so empty directories still appear
			// with size zero rather than being absent from the map
			if path != root {
				sizes[path] += 0
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			s.logger.Warn().Str("path", path).Err(err).Msg("Skipping unreadable file")
			return nil
		}

		// Credit the file to every ancestor directory up to (not
		// including) the scan root. Sizes stay in bytes until the end
		// so sub-kilobyte files are not rounded away per file.
		for dir := filepath.Dir(path); dir != root && strings.HasPrefix(dir, root); dir = filepath.Dir(dir) {
			sizes[dir] += fileInfo.Size()
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	thresholdBytes := int64(minSizeMB) * 1024 * 1024
	var candidates []Candidate
	for path, sizeBytes := range sizes {
		if sizeBytes > thresholdBytes {
			candidates = append(candidates, Candidate{Path: path, SizeKB: sizeBytes / 1024})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].SizeKB != candidates[j].SizeKB {
			return candidates[i].SizeKB > candidates[j].SizeKB
		}
		return candidates[i].Path < candidates[j].Path
	})

	s.logger.Info().
		Str("root", root).
		Int("minSizeMB", minSizeMB).
		Int("candidates", len(candidates)).
		Msg("Scan complete")

	return candidates, nil
}

// DirSizeKB returns the total size in kilobytes of the regular files in
// the subtree rooted at path. Unreadable entries are skipped with a warning.
func (s *Scanner) DirSizeKB(path string) (int64, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	var total int64
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			s.logger.Warn().Str("path", p).Err(walkErr).Msg("Skipping unreadable path")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to walk %s: %w", path, err)
	}

	return total / 1024, nil
}
