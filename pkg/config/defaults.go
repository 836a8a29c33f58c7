package config

import (
	"path/filepath"
)

const (
	// DefaultBaseURL is used when neither the properties file nor the command line provide one
	DefaultBaseURL = "http://localhost:8888"

	// PropertiesFilename is created by the Code Insight installer one directory above the report
	PropertiesFilename = "server_properties.json"

	// DefaultConfigFilename is the optional settings file next to the executable
	DefaultConfigFilename = "project_lock_utility.yaml"

	// LogFilename is truncated on every run
	LogFilename = "_project_lock_utility.log"

	// Sources recorded on Settings.BaseURLSource
	SourceProperties = "properties"
	SourceFlag       = "flag"
	SourceDefault    = "default"
)

// CreateDefaultConfig creates the complete default configuration
func CreateDefaultConfig() *Config {
	return &Config{
		Server:  createDefaultServerConfig(),
		Reports: createDefaultReportsConfig(),
		Output:  createDefaultOutputConfig(),
		Logging: createDefaultLoggingConfig(),
	}
}

func createDefaultServerConfig() ServerConfig {
	return ServerConfig{
		Timeout:       0,
		UserAgent:     "ProjectLockUtility/1.0",
		MinTLSVersion: "1.2",
	}
}

func createDefaultReportsConfig() ReportsConfig {
	return ReportsConfig{
		Formats:   []string{"html", "xlsx"},
		OutputDir: ".",
	}
}

func createDefaultOutputConfig() OutputConfig {
	return OutputConfig{
		Colors: true,
	}
}

func createDefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:       "debug",
		ClientLevel: "warn",
	}
}

// DefaultPaths returns the file locations relative to the executable directory
func DefaultPaths(executableDir string) Paths {
	return Paths{
		ExecutableDir:  executableDir,
		PropertiesFile: filepath.Join(executableDir, "..", PropertiesFilename),
		SettingsFile:   filepath.Join(executableDir, DefaultConfigFilename),
		LogFile:        filepath.Join(executableDir, LogFilename),
	}
}
