package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the settings file does not exist
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfig loads configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	if filename == "" {
		filename = DefaultConfigFilename
	}

	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, filename)
	}

	yamlData, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so a partial file only overrides what it names
	cfg := CreateDefaultConfig()
	if err := yaml.Unmarshal(yamlData, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadConfigOrCreateDefault loads config from file or returns default if not found
func LoadConfigOrCreateDefault(filename string) (*Config, error) {
	cfg, err := LoadConfig(filename)
	if err == nil {
		return cfg, nil
	}

	// If file doesn't exist, return default config
	if errors.Is(err, ErrConfigNotFound) {
		return CreateDefaultConfig(), nil
	}

	// Other errors (parsing, validation) should be reported
	return nil, err
}

// ValidateConfig validates the configuration for correctness
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if err := validateServerConfig(cfg.Server); err != nil {
		return fmt.Errorf("server configuration error: %w", err)
	}

	if err := validateReportsConfig(cfg.Reports); err != nil {
		return fmt.Errorf("reports configuration error: %w", err)
	}

	if err := validateLoggingConfig(cfg.Logging); err != nil {
		return fmt.Errorf("logging configuration error: %w", err)
	}

	return nil
}

func validateServerConfig(server ServerConfig) error {
	if server.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative, got: %v", server.Timeout)
	}

	if server.MinTLSVersion != "" {
		if _, err := parseTLSVersion(server.MinTLSVersion); err != nil {
			return err
		}
	}

	return nil
}

// validateReportsConfig validates reports-specific configuration
func validateReportsConfig(reports ReportsConfig) error {
	if reports.OutputDir == "" {
		return fmt.Errorf("reports output directory is required")
	}

	if len(reports.Formats) == 0 {
		return fmt.Errorf("at least one report format is required")
	}

	validFormats := map[string]bool{
		"html": true,
		"xlsx": true,
		"json": true,
	}

	seen := make(map[string]bool)
	for _, format := range reports.Formats {
		format = strings.ToLower(format)
		if !validFormats[format] {
			return fmt.Errorf("invalid report format: %s", format)
		}
		if seen[format] {
			return fmt.Errorf("duplicate report format: %s", format)
		}
		seen[format] = true
	}

	return nil
}

func validateLoggingConfig(logging LoggingConfig) error {
	validLevels := map[string]bool{
		"":      true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[strings.ToLower(logging.Level)] {
		return fmt.Errorf("invalid log level: %s", logging.Level)
	}
	if !validLevels[strings.ToLower(logging.ClientLevel)] {
		return fmt.Errorf("invalid client log level: %s", logging.ClientLevel)
	}

	return nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(cfg *Config, filename string) error {
	if filename == "" {
		filename = DefaultConfigFilename
	}

	if err := ValidateConfig(cfg); err != nil {
		return fmt.Errorf("cannot save invalid configuration: %w", err)
	}

	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}

	if err := os.WriteFile(filename, yamlData, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
