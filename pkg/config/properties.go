package config

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ErrPropertiesNotFound is returned when server_properties.json is absent
var ErrPropertiesNotFound = errors.New("properties file not found")

// Keys of server_properties.json. They contain dots, so viper is configured
// with a different key delimiter to keep them flat.
const (
	keyServerURL         = "core.server.url"
	keyServerCertificate = "core.server.certificate"
	propertiesDelimiter  = "::"
)

// LoadServerProperties reads the properties file written by the Code Insight installer
func LoadServerProperties(filename string) (*ServerProperties, error) {
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrPropertiesNotFound, filename)
	}

	v := viper.NewWithOptions(viper.KeyDelimiter(propertiesDelimiter))
	v.SetConfigFile(filename)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to open properties file %s: %w", filename, err)
	}

	return &ServerProperties{
		URL:             strings.TrimSpace(v.GetString(keyServerURL)),
		CertificatePath: strings.TrimSpace(v.GetString(keyServerCertificate)),
		Path:            filename,
	}, nil
}

// ResolveSettings combines the properties file, the command line and the settings file.
// The base URL comes from the properties file, then the --baseURL flag, then DefaultBaseURL.
func ResolveSettings(props *ServerProperties, flagBaseURL string, cfg *Config, executableDir string) (*Settings, error) {
	if cfg == nil {
		cfg = CreateDefaultConfig()
	}

	settings := &Settings{
		BaseURL:       DefaultBaseURL,
		BaseURLSource: SourceDefault,
		Config:        cfg,
	}

	switch {
	case props != nil && props.URL != "":
		settings.BaseURL = props.URL
		settings.BaseURLSource = SourceProperties
	case flagBaseURL != "":
		settings.BaseURL = flagBaseURL
		settings.BaseURLSource = SourceFlag
	}
	settings.BaseURL = strings.TrimSuffix(settings.BaseURL, "/")

	if props != nil {
		settings.CertificatePath = props.CertificatePath
	}

	tlsConfig, err := CreateTLSConfig(settings.CertificatePath, cfg.Server.MinTLSVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to create TLS config: %w", err)
	}
	settings.TLS = tlsConfig

	settings.OutputDir = cfg.Reports.OutputDir
	if !filepath.IsAbs(settings.OutputDir) {
		settings.OutputDir = filepath.Join(executableDir, settings.OutputDir)
	}

	return settings, nil
}

// CreateTLSConfig builds the TLS configuration used for every platform call.
// A self signed certificate bundle is added on top of the system roots.
func CreateTLSConfig(certificatePath, minVersion string) (*tls.Config, error) {
	tlsConfig := &tls.Config{}

	if minVersion != "" {
		version, err := parseTLSVersion(minVersion)
		if err != nil {
			return nil, fmt.Errorf("invalid min TLS version: %w", err)
		}
		tlsConfig.MinVersion = version
	}

	if certificatePath == "" {
		return tlsConfig, nil
	}

	caCert, err := os.ReadFile(certificatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate: %w", err)
	}

	caCertPool, err := x509.SystemCertPool()
	if err != nil || caCertPool == nil {
		caCertPool = x509.NewCertPool()
	}
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("failed to parse certificate %s", certificatePath)
	}
	tlsConfig.RootCAs = caCertPool

	return tlsConfig, nil
}

// parseTLSVersion parses TLS version string to constant
func parseTLSVersion(version string) (uint16, error) {
	switch strings.ToUpper(version) {
	case "1.2", "TLS1.2":
		return tls.VersionTLS12, nil
	case "1.3", "TLS1.3":
		return tls.VersionTLS13, nil
	default:
		return 0, fmt.Errorf("unsupported TLS version: %s", version)
	}
}
