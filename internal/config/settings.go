package config

import (
	"fmt"
	"strconv"

	"rebalance/internal/common"
)

// Settings holds the resolved configuration for a single run. Values come
// from CLI flags when set, otherwise from the config file, otherwise from
// the Defaults table.
type Settings struct {
	RootPath   string
	Device     string
	MountPoint string
	FSType     string
	FstabPath  string
	MinSizeMB  int
	Limit      int
	AssumeYes  bool
}

// Resolve builds Settings from the config file with flag overrides applied.
// Flag values are only applied when non-empty (strings) or positive (ints).
func Resolve(cfg *Config, flags Settings) (*Settings, error) {
	s := &Settings{
		RootPath:   pick(flags.RootPath, cfg.GetOrDefault(KeyRootPath, "")),
		Device:     pick(flags.Device, cfg.GetOrDefault(KeyDevice, "")),
		MountPoint: pick(flags.MountPoint, cfg.GetOrDefault(KeyMountPoint, "")),
		FSType:     pick(flags.FSType, cfg.GetOrDefault(KeyFSType, "")),
		FstabPath:  pick(flags.FstabPath, cfg.GetOrDefault(KeyFstabPath, "")),
		AssumeYes:  flags.AssumeYes,
	}

	var err error
	if s.MinSizeMB, err = pickInt(flags.MinSizeMB, cfg.GetOrDefault(KeyMinSizeMB, "")); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyMinSizeMB, err)
	}
	if s.Limit, err = pickInt(flags.Limit, cfg.GetOrDefault(KeyLimit, "")); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyLimit, err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that the resolved settings are usable
func (s *Settings) Validate() error {
	if err := common.ValidatePath(s.RootPath); err != nil {
		return fmt.Errorf("invalid root path: %w", err)
	}
	if err := common.ValidateDevice(s.Device); err != nil {
		return fmt.Errorf("invalid device: %w", err)
	}
	if err := common.ValidatePath(s.MountPoint); err != nil {
		return fmt.Errorf("invalid mount point: %w", err)
	}
	if err := common.ValidatePath(s.FstabPath); err != nil {
		return fmt.Errorf("invalid fstab path: %w", err)
	}
	if err := common.ValidateNotEmpty(s.FSType); err != nil {
		return fmt.Errorf("invalid filesystem type: %w", err)
	}
	if s.MinSizeMB <= 0 {
		return fmt.Errorf("minimum size must be positive, got: %d", s.MinSizeMB)
	}
	if s.Limit < 1 {
		return fmt.Errorf("prompt limit must be at least 1, got: %d", s.Limit)
	}
	return nil
}

func pick(flagValue, cfgValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return cfgValue
}

func pickInt(flagValue int, cfgValue string) (int, error) {
	if flagValue > 0 {
		return flagValue, nil
	}
	return strconv.Atoi(cfgValue)
}
