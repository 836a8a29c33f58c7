package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lineFormat = regexp.MustCompile(
	`^\d{4}-\d{2}-\d{2}:\d{2}:\d{2}:\d{2},\d{3}\s+INFO\s+\[logging_test\.go\s+:\d+\s*\]\s+Creating Project Lock Utility`)

func TestNew_LineFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.DebugLevel)

	logger.Info().Msg("Creating Project Lock Utility")

	line := strings.TrimSpace(buf.String())
	assert.Regexp(t, lineFormat, line)
}

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, zerolog.WarnLevel)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown")
}

func TestNewFileLogger_TruncatesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "_project_lock_utility.log")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0644))

	logger, err := NewFileLogger(path, "debug")
	require.NoError(t, err)
	logger.Debug().Str("projectID", "42").Msg("Custom Report Provided Arguments")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "previous run")
	assert.Contains(t, string(data), "DEBUG")
	assert.Contains(t, string(data), "projectID=42")
	assert.Equal(t, path, logger.Path())
}

func TestNewFileLogger_InvalidLevel(t *testing.T) {
	_, err := NewFileLogger(filepath.Join(t.TempDir(), "run.log"), "verbose")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestNamed_RestrictsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	logger, err := NewFileLogger(path, "debug")
	require.NoError(t, err)

	client := logger.Named("codeinsight", zerolog.WarnLevel)
	client.Info().Msg("request sent")
	client.Error().Msg("request failed")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "request sent")
	assert.Contains(t, string(data), "request failed")
	assert.Contains(t, string(data), "component=codeinsight")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, lvl)

	lvl, err = ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, lvl)
}
