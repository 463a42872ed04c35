package system

import (
	"os"
	"sync"
)

// MockFileSystem is a FileSystem for tests. Privileged writes are captured
// in memory instead of going through sudo.
type MockFileSystem struct {
	FileSystem
	mu           sync.Mutex
	WrittenFiles map[string][]byte
	EnsuredDirs  []string
}

// NewMockFileSystem creates a new MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		FileSystem:   *NewFileSystemWithRunner(NewMockCommandRunner()),
		WrittenFiles: make(map[string][]byte),
	}
}

// WriteFile captures the content that would be written to a file.
func (m *MockFileSystem) WriteFile(path string, content []byte, perms os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WrittenFiles[path] = content
	return nil
}

// EnsureDirectory records the directory that would be created.
func (m *MockFileSystem) EnsureDirectory(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnsuredDirs = append(m.EnsuredDirs, path)
	return nil
}
