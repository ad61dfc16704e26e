// Copyright 2024 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

var (
	configDir  string // Directory for configuration files
	catalogDir string // Directory for cached/local CPU catalog documents
	eventsDir  string // Directory for event logs
)

func init() {
	if os.Geteuid() == 0 {
		configDir = "/etc/vcpu"
	} else {
		// Otherwise, use user config directory
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(fmt.Sprintf("failed to get home directory: %v", err))
		}

		configDir = filepath.Join(homeDir, ".vcpu")
	}
	catalogDir = filepath.Join(configDir, "catalog")
	eventsDir = filepath.Join(configDir, "events")

	// Ensure the directories exist
	if err := EnsureDirectories(); err != nil {
		panic(fmt.Sprintf("failed to ensure configuration directories: %v", err))
	}
}

// GetConfigDir returns the appropriate configuration directory
// If running as root, it returns the system config directory
// Otherwise, it returns the user config directory
func GetConfigDir() string {
	return configDir
}

// GetCatalogDir returns the directory used to cache catalog documents
// fetched from Catalog.URL.
func GetCatalogDir() string {
	return catalogDir
}

// GetEventsDir returns the directory for event logs
func GetEventsDir() string {
	return eventsDir
}

// EnsureDirectories creates necessary directories if they do not exist
func EnsureDirectories() error {
	dirs := []string{
		configDir,
		catalogDir,
		eventsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
