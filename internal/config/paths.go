package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	configDirName      = "calavail"
	configFileName     = "config.yaml"
	localConfigFile    = "calavail.yaml"
	serviceAccountFile = "service-account.json"
)

// GetConfigDir returns the configuration directory path (~/.config/calavail)
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", configDirName), nil
}

// GetServiceAccountPath returns the default path to the service account key file
func GetServiceAccountPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, serviceAccountFile), nil
}

// DefaultConfigPaths lists the config file locations searched when no path is given,
// in priority order.
func DefaultConfigPaths() []string {
	paths := []string{localConfigFile}
	if configDir, err := GetConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, configFileName))
	}
	return paths
}

// FindConfigFile returns the first existing file from DefaultConfigPaths,
// or "" when none exists.
func FindConfigFile() string {
	for _, p := range DefaultConfigPaths() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}
