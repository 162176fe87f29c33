// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package configuration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFileName is the name of the user configuration file in StarforgeHomeDir
	DefaultConfigFileName = "config"
	// StarforgeHomeDir is the user level directory for configuration and cache
	StarforgeHomeDir = ".starforge"
	// StarforgeConfigEnv overrides the user configuration file path
	StarforgeConfigEnv = "STARFORGECONFIG"
)

// Loader loads the user configuration
type Loader interface {
	Load() (*Config, error)
}

// DefaultConfigurationLoader loads the configuration from $STARFORGECONFIG
// or ~/.starforge/config
type DefaultConfigurationLoader func() (*Config, error)

// Load returns an empty configuration when the configuration file doesn't exist
func (d *DefaultConfigurationLoader) Load() (*Config, error) {
	if configFilePath, found := os.LookupEnv(StarforgeConfigEnv); found {
		if configFilePath == "" {
			return nil, fmt.Errorf("the provided environment variable %s is set to empty string", StarforgeConfigEnv)
		}
		return load(configFilePath)
	}

	userHomerDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %v", err)
	}

	configFilePath := filepath.Join(userHomerDir, StarforgeHomeDir, DefaultConfigFileName)
	return load(configFilePath)
}

func load(configFilePath string) (*Config, error) {
	config := &Config{}
	if configFilePath == "" {
		return config, nil
	}
	stat, err := os.Stat(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to get file info for configuration file path %s: %v", configFilePath, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("the config file path %s is directory, instead of file", configFilePath)
	}
	configFile, err := os.ReadFile(configFilePath)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(configFile, config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %s: %w", configFilePath, err)
	}
	return config, nil
}
