package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigLoadSave(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.conf")

	cfg := New(configPath)

	if err := cfg.Set("DEVICE", "/dev/sdb1"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	if err := cfg.Set("MOUNT_POINT", "/mnt/extra"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	// Load config in new instance
	cfg2 := New(configPath)
	if err := cfg2.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if val := cfg2.GetOrDefault("DEVICE", ""); val != "/dev/sdb1" {
		t.Errorf("GetOrDefault() = %v, want %v", val, "/dev/sdb1")
	}

	if val := cfg2.GetOrDefault("MOUNT_POINT", ""); val != "/mnt/extra" {
		t.Errorf("GetOrDefault() = %v, want %v", val, "/mnt/extra")
	}
}

func TestConfigDefaultsTable(t *testing.T) {
	cfg := New(filepath.Join(t.TempDir(), "empty.conf"))

	// Unset keys fall through to the Defaults table before the fallback
	if val := cfg.GetOrDefault(KeyMinSizeMB, "42"); val != "1000" {
		t.Errorf("GetOrDefault(%s) = %v, want table default 1000", KeyMinSizeMB, val)
	}

	// Keys absent from the table use the provided fallback
	if val := cfg.GetOrDefault("NO_SUCH_KEY", "fallback"); val != "fallback" {
		t.Errorf("GetOrDefault() = %v, want fallback", val)
	}
}

func TestConfigDelete(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "test.conf")
	cfg := New(configPath)

	if err := cfg.Set("DEVICE", "/dev/sdc1"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := cfg.Delete("DEVICE"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	cfg2 := New(configPath)
	if cfg2.Exists("DEVICE") {
		t.Error("Exists() = true after Delete()")
	}
}

func TestConfigSkipsCommentsAndBlanks(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "test.conf")
	content := "# comment line\n\nDEVICE=/dev/sdd1\nbroken-line-without-equals\n"
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg := New(configPath)
	if err := cfg.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if val := cfg.GetOrDefault("DEVICE", ""); val != "/dev/sdd1" {
		t.Errorf("GetOrDefault() = %v, want /dev/sdd1", val)
	}
	if len(cfg.GetAll()) != 1 {
		t.Errorf("GetAll() returned %d entries, want 1", len(cfg.GetAll()))
	}
}

func TestResolveSettings(t *testing.T) {
	cfg := New(filepath.Join(t.TempDir(), "test.conf"))
	if err := cfg.Set(KeyDevice, "/dev/sdb2"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	// Flags override config; config overrides defaults
	s, err := Resolve(cfg, Settings{MountPoint: "/mnt/override", MinSizeMB: 500})
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	if s.Device != "/dev/sdb2" {
		t.Errorf("Device = %v, want config value /dev/sdb2", s.Device)
	}
	if s.MountPoint != "/mnt/override" {
		t.Errorf("MountPoint = %v, want flag value /mnt/override", s.MountPoint)
	}
	if s.MinSizeMB != 500 {
		t.Errorf("MinSizeMB = %v, want flag value 500", s.MinSizeMB)
	}
	if s.RootPath != "/home" {
		t.Errorf("RootPath = %v, want default /home", s.RootPath)
	}
	if s.Limit != 10 {
		t.Errorf("Limit = %v, want default 10", s.Limit)
	}
}

func TestResolveSettingsRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		flags Settings
	}{
		{"relative root", Settings{RootPath: "home"}},
		{"device outside /dev", Settings{Device: "/mnt/disk"}},
		{"relative mount point", Settings{MountPoint: "mnt/extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New(filepath.Join(t.TempDir(), "test.conf"))
			if _, err := Resolve(cfg, tt.flags); err == nil {
				t.Error("Resolve() succeeded, want error")
			}
		})
	}
}

func TestConfigAtomicSaveHeader(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "test.conf")
	cfg := New(configPath)
	if err := cfg.Set("FS_TYPE", "xfs"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !strings.HasPrefix(string(data), "# rebalance configuration") {
		t.Error("saved config missing header comment")
	}
}
