package config

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeCertificate(t *testing.T, dir string) string {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "codeinsight.local"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	return writeFile(t, dir, "server.pem", string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})))
}

func TestLoadServerProperties(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, PropertiesFilename, `{
		"core.server.url": "https://sca.example.com:8443",
		"core.server.certificate": "/opt/certs/server.pem"
	}`)

	props, err := LoadServerProperties(path)
	require.NoError(t, err)
	assert.Equal(t, "https://sca.example.com:8443", props.URL)
	assert.Equal(t, "/opt/certs/server.pem", props.CertificatePath)
	assert.Equal(t, path, props.Path)
}

func TestLoadServerProperties_Missing(t *testing.T) {
	_, err := LoadServerProperties(filepath.Join(t.TempDir(), PropertiesFilename))
	require.ErrorIs(t, err, ErrPropertiesNotFound)
}

func TestLoadServerProperties_Malformed(t *testing.T) {
	path := writeFile(t, t.TempDir(), PropertiesFilename, `{"core.server.url": `)

	_, err := LoadServerProperties(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPropertiesNotFound)
}

func TestLoadServerProperties_WithoutURL(t *testing.T) {
	path := writeFile(t, t.TempDir(), PropertiesFilename, `{"core.server.certificate": ""}`)

	props, err := LoadServerProperties(path)
	require.NoError(t, err)
	assert.Empty(t, props.URL)
	assert.Empty(t, props.CertificatePath)
}

func TestResolveSettings_BaseURLPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		props      *ServerProperties
		flag       string
		wantURL    string
		wantSource string
	}{
		{
			name:       "properties win",
			props:      &ServerProperties{URL: "https://props:8443/"},
			flag:       "http://flag:8888",
			wantURL:    "https://props:8443",
			wantSource: SourceProperties,
		},
		{
			name:       "flag when properties have no url",
			props:      &ServerProperties{},
			flag:       "http://flag:8888",
			wantURL:    "http://flag:8888",
			wantSource: SourceFlag,
		},
		{
			name:       "default",
			wantURL:    DefaultBaseURL,
			wantSource: SourceDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings, err := ResolveSettings(tt.props, tt.flag, nil, "/opt/reports/project_lock")
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, settings.BaseURL)
			assert.Equal(t, tt.wantSource, settings.BaseURLSource)
			assert.Equal(t, filepath.Join("/opt/reports/project_lock", "."), settings.OutputDir)
			require.NotNil(t, settings.TLS)
			assert.Nil(t, settings.TLS.RootCAs)
		})
	}
}

func TestResolveSettings_Certificate(t *testing.T) {
	dir := t.TempDir()
	certPath := writeCertificate(t, dir)

	settings, err := ResolveSettings(&ServerProperties{URL: "https://sca:8443", CertificatePath: certPath}, "", nil, dir)
	require.NoError(t, err)
	assert.Equal(t, certPath, settings.CertificatePath)
	require.NotNil(t, settings.TLS.RootCAs)
	assert.Equal(t, uint16(tls.VersionTLS12), settings.TLS.MinVersion)
}

func TestResolveSettings_BadCertificate(t *testing.T) {
	dir := t.TempDir()
	certPath := writeFile(t, dir, "server.pem", "not a certificate")

	_, err := ResolveSettings(&ServerProperties{CertificatePath: certPath}, "", nil, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse certificate")
}

func TestLoadConfigOrCreateDefault(t *testing.T) {
	cfg, err := LoadConfigOrCreateDefault(filepath.Join(t.TempDir(), DefaultConfigFilename))
	require.NoError(t, err)
	assert.Equal(t, CreateDefaultConfig(), cfg)
}

func TestLoadConfig_PartialOverride(t *testing.T) {
	path := writeFile(t, t.TempDir(), DefaultConfigFilename, `
server:
  timeout: 45s
reports:
  formats: [html, xlsx, json]
logging:
  level: info
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
	assert.Equal(t, []string{"html", "xlsx", "json"}, cfg.Reports.Formats)
	assert.Equal(t, ".", cfg.Reports.OutputDir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "warn", cfg.Logging.ClientLevel)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"unknown format", func(c *Config) { c.Reports.Formats = []string{"pdf"} }, "invalid report format"},
		{"duplicate format", func(c *Config) { c.Reports.Formats = []string{"html", "HTML"} }, "duplicate report format"},
		{"no formats", func(c *Config) { c.Reports.Formats = nil }, "at least one report format"},
		{"no output dir", func(c *Config) { c.Reports.OutputDir = "" }, "output directory is required"},
		{"negative timeout", func(c *Config) { c.Server.Timeout = -time.Second }, "timeout cannot be negative"},
		{"bad tls version", func(c *Config) { c.Server.MinTLSVersion = "1.0" }, "unsupported TLS version"},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := CreateDefaultConfig()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	assert.NoError(t, ValidateConfig(CreateDefaultConfig()))
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFilename)
	cfg := CreateDefaultConfig()
	cfg.Reports.Formats = []string{"json"}

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
