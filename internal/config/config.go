package config

import (
	"fmt"
	"os"
	"path/filepath"

	"qbgen/internal/logger"
)

// Default names of the working directories and files under the root.
// The layout matches what operators already maintain: a root folder
// holding the master reference workbook next to Input, Output and
// Archive directories.
const (
	DefaultInputDir      = "Input"
	DefaultOutputDir     = "Output"
	DefaultArchiveDir    = "Archive"
	DefaultReferenceName = "MasterReference.xlsx"
)

// Config carries every file location the pipeline touches. It is
// constructed once and passed by reference to every component; nothing
// reads path state from globals.
type Config struct {
	// Root is the working directory all other paths are relative to.
	Root string

	InputDir      string
	OutputDir     string
	ArchiveDir    string
	ReferencePath string

	// Logging configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// Load builds the configuration for the given root directory. An empty
// root falls back to the QBGEN_ROOT environment variable and then to
// the current working directory.
func Load(root string) (*Config, error) {
	if root == "" {
		root = getEnv("QBGEN_ROOT", "")
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		root = wd
	}

	config := &Config{
		Root:          root,
		InputDir:      filepath.Join(root, DefaultInputDir),
		OutputDir:     filepath.Join(root, DefaultOutputDir),
		ArchiveDir:    filepath.Join(root, DefaultArchiveDir),
		ReferencePath: filepath.Join(root, DefaultReferenceName),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:     getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("root directory %q: %w", c.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %q is not a directory", c.Root)
	}
	return nil
}

// ArtifactPath returns the location of a run artifact (error logs,
// crash traces) under the root directory.
func (c *Config) ArtifactPath(name string) string {
	return filepath.Join(c.Root, name)
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
