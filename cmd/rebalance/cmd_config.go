package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rebalance/internal/common"
	"rebalance/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show persisted configuration",
	Long: `Show the persisted configuration. Keys not set in the config file
fall back to built-in defaults.`,
	RunE: showConfig,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  setConfig,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a persisted configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  unsetConfig,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	rootCmd.AddCommand(configCmd)
}

// validators for the recognized configuration keys
var keyValidators = map[string]func(string) error{
	config.KeyRootPath:   common.ValidatePath,
	config.KeyDevice:     common.ValidateDevice,
	config.KeyMountPoint: common.ValidatePath,
	config.KeyFstabPath:  common.ValidatePath,
	config.KeyMinSizeMB:  common.ValidateSizeMB,
	config.KeyLimit:      common.ValidateLimit,
	config.KeyFSType:     common.ValidateNotEmpty,
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg := config.New("")
	if err := cfg.Load(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Printf("Configuration (%s):\n", cfg.FilePath())

	set := cfg.GetAll()

	keys := make([]string, 0, len(keyValidators))
	for key := range keyValidators {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if value, ok := set[key]; ok {
			fmt.Printf("  %-14s= %s\n", key, value)
		} else {
			fmt.Printf("  %-14s= %s (default)\n", key, config.Defaults[key])
		}
	}

	return nil
}

func setConfig(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	validate, ok := keyValidators[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	if err := validate(value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}

	cfg := config.New("")
	if err := cfg.Set(key, value); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s = %s\n", key, value)
	return nil
}

func unsetConfig(cmd *cobra.Command, args []string) error {
	key := args[0]

	if _, ok := keyValidators[key]; !ok {
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	cfg := config.New("")
	if err := cfg.Delete(key); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("%s removed (default: %s)\n", key, config.Defaults[key])
	return nil
}
