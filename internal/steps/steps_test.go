package steps

import (
	"fmt"
	"os"

	"rebalance/internal/system"
)

// testFS wraps FileSystem with unprivileged implementations of the
// operations that normally go through sudo, so step tests exercise real
// directory trees under t.TempDir().
type testFS struct {
	*system.FileSystem
}

func newTestFS(runner system.CommandRunner) *testFS {
	return &testFS{FileSystem: system.NewFileSystemWithRunner(runner)}
}

func (f *testFS) RemoveTree(path string) error {
	return os.RemoveAll(path)
}

func (f *testFS) WriteFile(path string, content []byte, perms os.FileMode) error {
	return os.WriteFile(path, content, perms)
}

func (f *testFS) EnsureDirectory(path string) error {
	return os.MkdirAll(path, 0755)
}

// fakeDiskUsage scripts the capacity snapshot and records which paths
// were checked.
type fakeDiskUsage struct {
	availableKB uint64
	err         error
	checked     []string
}

func (f *fakeDiskUsage) DiskUsage(path string) (system.DiskUsage, error) {
	f.checked = append(f.checked, path)
	if f.err != nil {
		return system.DiskUsage{}, f.err
	}
	return system.DiskUsage{
		TotalKB:     f.availableKB * 2,
		UsedKB:      f.availableKB,
		AvailableKB: f.availableKB,
	}, nil
}

// fakeSelectorUI scripts prompt answers and records what was shown.
type fakeSelectorUI struct {
	answers        []bool
	promptCount    int
	nonInteractive bool
	lines          []string
}

func (f *fakeSelectorUI) Print(msg string) { f.lines = append(f.lines, msg) }

func (f *fakeSelectorUI) Printf(format string, args ...interface{}) {
	f.lines = append(f.lines, fmt.Sprintf(format, args...))
}

func (f *fakeSelectorUI) Infof(format string, args ...interface{}) {
	f.lines = append(f.lines, fmt.Sprintf(format, args...))
}

func (f *fakeSelectorUI) PromptYesNo(prompt string, defaultYes bool) (bool, error) {
	if f.promptCount >= len(f.answers) {
		return defaultYes, nil
	}
	answer := f.answers[f.promptCount]
	f.promptCount++
	return answer, nil
}

func (f *fakeSelectorUI) IsNonInteractive() bool { return f.nonInteractive }
