package config

import (
	"crypto/tls"
	"time"
)

// Config represents the Project Lock Utility settings file
type Config struct {
	// Platform connection settings
	Server ServerConfig `yaml:"server" json:"server"`

	// Reporting configuration
	Reports ReportsConfig `yaml:"reports" json:"reports"`

	// Output and UI configuration
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ServerConfig defines how the Code Insight server is reached
type ServerConfig struct {
	// Timeout for a single API call (0 = no timeout)
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// User-Agent sent with every request
	UserAgent string `yaml:"user_agent" json:"user_agent"`

	// Minimum TLS version accepted from the server (1.2, 1.3)
	MinTLSVersion string `yaml:"min_tls_version" json:"min_tls_version"`
}

// ReportsConfig defines reporting configuration
type ReportsConfig struct {
	// Output formats to generate (html, xlsx, json)
	Formats []string `yaml:"formats" json:"formats"`

	// Directory where artifacts and the upload archive are written.
	// Relative paths are resolved against the executable directory.
	OutputDir string `yaml:"output_dir" json:"output_dir"`
}

// OutputConfig defines console output configuration
type OutputConfig struct {
	// Enable colored output
	Colors bool `yaml:"colors" json:"colors"`
}

// LoggingConfig defines logging configuration
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level" json:"level"`

	// Level applied to the platform API client
	ClientLevel string `yaml:"client_level" json:"client_level"`
}

// ServerProperties holds the values read from server_properties.json
type ServerProperties struct {
	// core.server.url
	URL string `json:"core.server.url"`

	// core.server.certificate
	CertificatePath string `json:"core.server.certificate"`

	// File the values were read from
	Path string `json:"-"`
}

// Paths locates the files the utility reads and writes
type Paths struct {
	ExecutableDir  string
	PropertiesFile string
	SettingsFile   string
	LogFile        string
}

// Settings is the resolved runtime configuration for one invocation
type Settings struct {
	BaseURL       string
	BaseURLSource string

	// Self signed certificate bundle, empty when the system pool is enough
	CertificatePath string

	// TLS configuration handed to the platform client; built once before any network call
	TLS *tls.Config

	OutputDir string
	Config    *Config
}
