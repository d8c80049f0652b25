// Package config loads optional .treemark.yaml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/treemark/treemark/internal/utils"
)

// ConfigFileName is the name of both the global and local configuration file.
const ConfigFileName = ".treemark.yaml"

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds flag defaults read from configuration files.
// Pointer fields distinguish "unset" from an explicit false/zero.
type ApplicationConfiguration struct {
	Output    OutputConfiguration `mapstructure:"output"`
	Scan      ScanConfiguration   `mapstructure:"scan"`
	Viewer    ViewerConfiguration `mapstructure:"viewer"`
	Clipboard *bool               `mapstructure:"clipboard"`
}

// OutputConfiguration configures the document name and destination directory.
type OutputConfiguration struct {
	Name      string `mapstructure:"name"`
	Directory string `mapstructure:"directory"`
}

// ScanConfiguration configures traversal defaults. Ignore names extend the
// built-in ignore set rather than replacing it.
type ScanConfiguration struct {
	IncludeAll  *bool    `mapstructure:"include_all"`
	OnlyDirs    *bool    `mapstructure:"only_dirs"`
	MaxDepth    *int     `mapstructure:"max_depth"`
	IncludeSize *bool    `mapstructure:"include_size"`
	Ignore      []string `mapstructure:"ignore"`
}

// ViewerConfiguration configures viewer program generation.
type ViewerConfiguration struct {
	Enabled *bool `mapstructure:"enabled"`
}

// LoadApplicationConfiguration loads configuration from the global file in
// the user's home directory and the local file in the working directory.
// Local values override global ones.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := options.ExplicitFilePath
	if localPath == "" {
		localPath = filepath.Join(workingDirectory, ConfigFileName)
	} else if !filepath.IsAbs(localPath) {
		localPath = filepath.Join(workingDirectory, localPath)
	}
	localConfig, loadErr := loadConfigurationFromPath(localPath)
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	merged.Scan.Ignore = utils.DeduplicateNames(merged.Scan.Ignore)
	return merged, nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var configuration ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&configuration); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	if override.Output.Name != "" {
		result.Output.Name = override.Output.Name
	}
	if override.Output.Directory != "" {
		result.Output.Directory = override.Output.Directory
	}
	result.Scan = result.Scan.merge(override.Scan)
	if override.Viewer.Enabled != nil {
		result.Viewer.Enabled = cloneBool(override.Viewer.Enabled)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

func (configuration ScanConfiguration) merge(override ScanConfiguration) ScanConfiguration {
	result := configuration
	if override.IncludeAll != nil {
		result.IncludeAll = cloneBool(override.IncludeAll)
	}
	if override.OnlyDirs != nil {
		result.OnlyDirs = cloneBool(override.OnlyDirs)
	}
	if override.MaxDepth != nil {
		result.MaxDepth = cloneInt(override.MaxDepth)
	}
	if override.IncludeSize != nil {
		result.IncludeSize = cloneBool(override.IncludeSize)
	}
	if len(override.Ignore) > 0 {
		result.Ignore = append(result.Ignore, override.Ignore...)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
