package system

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecCommandRunner(t *testing.T) {
	runner := NewCommandRunner()

	result, err := runner.Run("sh", "-c", "echo out; echo err >&2")
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "out\n", result.Stdout)
	assert.Equal(t, "err\n", result.Stderr)
}

func TestExecCommandRunnerNonZeroExit(t *testing.T) {
	runner := NewCommandRunner()

	result, err := runner.Run("sh", "-c", "echo broken >&2; exit 3")
	require.Error(t, err)
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "broken\n", result.Stderr)
}

func TestExecCommandRunnerMissingBinary(t *testing.T) {
	runner := NewCommandRunner()

	result, err := runner.Run("definitely-not-a-real-command-xyz")
	require.Error(t, err)
	assert.Equal(t, -1, result.ExitCode)
}

func TestMockCommandRunnerScripting(t *testing.T) {
	runner := NewMockCommandRunner()
	runner.Fail("sudo mount", "mount: /dev/sdx1: special device does not exist")

	result, err := runner.Run("sudo", "mount", "/dev/sdx1", "/mnt/extra")
	require.Error(t, err)
	assert.Equal(t, 1, result.ExitCode)
	assert.Contains(t, result.Stderr, "special device does not exist")

	// Unscripted commands succeed
	result, err = runner.Run("sudo", "rsync", "-a", "/a/", "/b")
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)

	assert.Len(t, runner.CallsMatching("sudo mount"), 1)
	assert.Len(t, runner.CallsMatching("sudo rsync"), 1)
}

func TestRemoveTreeRefusesCriticalPaths(t *testing.T) {
	fs := NewFileSystemWithRunner(NewMockCommandRunner())

	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"relative path", "home/user/videos"},
		{"root", "/"},
		{"etc subtree", "/etc/fstab"},
		{"usr", "/usr"},
		{"home itself", "/home"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := fs.RemoveTree(tt.path); err == nil {
				t.Errorf("RemoveTree(%q) succeeded, want refusal", tt.path)
			}
		})
	}
}

func TestRemoveTreeAllowsHomeSubtree(t *testing.T) {
	runner := NewMockCommandRunner()
	fs := NewFileSystemWithRunner(runner)

	require.NoError(t, fs.RemoveTree("/home/user/videos"))
	assert.Equal(t, []string{"sudo -n rm -rf /home/user/videos"}, runner.Calls)
}

func TestSymlinkRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	fs := NewFileSystemWithRunner(NewMockCommandRunner())

	target := filepath.Join(tmpDir, "target")
	require.NoError(t, os.MkdirAll(target, 0755))

	link := filepath.Join(tmpDir, "link")
	require.NoError(t, fs.Symlink(target, link))

	isLink, err := fs.IsSymlink(link)
	require.NoError(t, err)
	assert.True(t, isLink)

	got, err := fs.ReadSymlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	require.NoError(t, fs.RemoveSymlink(link))
	isLink, err = fs.IsSymlink(link)
	require.NoError(t, err)
	assert.False(t, isLink)
}

func TestIsSymlinkOnRegularDirectory(t *testing.T) {
	fs := NewFileSystemWithRunner(NewMockCommandRunner())

	isLink, err := fs.IsSymlink(t.TempDir())
	require.NoError(t, err)
	assert.False(t, isLink)
}

func TestDiskUsageSnapshot(t *testing.T) {
	fs := NewFileSystemWithRunner(NewMockCommandRunner())

	usage, err := fs.DiskUsage(t.TempDir())
	require.NoError(t, err)
	assert.Greater(t, usage.TotalKB, uint64(0))
	assert.LessOrEqual(t, usage.AvailableKB, usage.TotalKB)
}

func TestEnsureDirectoryExisting(t *testing.T) {
	runner := NewMockCommandRunner()
	fs := NewFileSystemWithRunner(runner)

	// Existing directory: no command should run
	require.NoError(t, fs.EnsureDirectory(t.TempDir()))
	assert.Empty(t, runner.Calls)
}

func TestEnsureDirectoryMissing(t *testing.T) {
	runner := NewMockCommandRunner()
	fs := NewFileSystemWithRunner(runner)

	path := filepath.Join(t.TempDir(), "mnt", "extra")
	require.NoError(t, fs.EnsureDirectory(path))
	assert.Equal(t, []string{"sudo -n mkdir -p " + path}, runner.Calls)
}

func TestWriteFileStagesThroughSudo(t *testing.T) {
	runner := NewMockCommandRunner()
	fs := NewFileSystemWithRunner(runner)

	require.NoError(t, fs.WriteFile("/etc/fstab", []byte("entry\n"), 0644))

	require.Len(t, runner.Calls, 3)
	assert.Contains(t, runner.Calls[0], "sudo -n mv ")
	assert.Contains(t, runner.Calls[0], " /etc/fstab")
	assert.Equal(t, "sudo -n chown root:root /etc/fstab", runner.Calls[1])
	assert.Equal(t, "sudo -n chmod 644 /etc/fstab", runner.Calls[2])
}
