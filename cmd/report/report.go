package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ajkula/projectlockutility/pkg/archive"
	"github.com/ajkula/projectlockutility/pkg/codeinsight"
	"github.com/ajkula/projectlockutility/pkg/config"
	"github.com/ajkula/projectlockutility/pkg/logging"
	"github.com/ajkula/projectlockutility/pkg/reportdata"
	"github.com/ajkula/projectlockutility/pkg/reporting"
)

// Options are the command line inputs of one invocation
type Options struct {
	Request

	AuthToken  string
	BaseURL    string
	ConfigFile string
	Verbose    bool
	NoColor    bool
	Version    string
}

// Execute runs the report command (CLI entry point)
func Execute(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	opts := Options{Version: cmd.Root().Version}
	opts.ProjectID, _ = flags.GetString("projectID")
	opts.ReportID, _ = flags.GetString("reportID")
	opts.AuthToken, _ = flags.GetString("authToken")
	opts.BaseURL, _ = flags.GetString("baseURL")
	opts.RawOptions, _ = flags.GetString("reportOptions")
	opts.ConfigFile, _ = cmd.Root().PersistentFlags().GetString("config")
	opts.Verbose, _ = cmd.Root().PersistentFlags().GetBool("verbose")
	opts.NoColor, _ = cmd.Root().PersistentFlags().GetBool("no-color")

	executableDir, err := executableDir()
	if err != nil {
		return err
	}

	return Run(cmd.Context(), opts, config.DefaultPaths(executableDir), cmd.OutOrStdout())
}

// Run wires the collaborators for one invocation and executes the report pipeline
func Run(ctx context.Context, opts Options, paths config.Paths, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	settingsFile := paths.SettingsFile
	if opts.ConfigFile != "" {
		settingsFile = opts.ConfigFile
	}
	cfg, err := config.LoadConfigOrCreateDefault(settingsFile)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	logLevel := cfg.Logging.Level
	if opts.Verbose {
		logLevel = zerolog.DebugLevel.String()
	}
	logger, err := logging.NewFileLogger(paths.LogFile, logLevel)
	if err != nil {
		return err
	}
	defer logger.Close()

	formatter := NewConsoleFormatterTo(stdout, opts.NoColor || !cfg.Output.Colors)
	display := NewConsoleDisplay(formatter)

	logger.Info().Msgf("Creating %s - %s", reporting.ReportName, opts.Version)
	display.DisplayStart(reporting.ReportName, opts.Version, logger.Path())

	if err := run(ctx, opts, paths, cfg, logger, display); err != nil {
		logger.Error().Err(err).Msgf("Failed creating %s", reporting.ReportName)
		display.DisplayFailure(reporting.ReportName, err)
		return err
	}
	return nil
}

func run(
	ctx context.Context,
	opts Options,
	paths config.Paths,
	cfg *config.Config,
	logger *logging.Logger,
	display *ConsoleDisplay,
) error {
	props, err := config.LoadServerProperties(paths.PropertiesFile)
	switch {
	case errors.Is(err, config.ErrPropertiesNotFound):
		logger.Warn().Str("file", paths.PropertiesFile).Msg("Properties file not found, using defaults")
		props = nil
	case err != nil:
		logger.Error().Err(err).Msg("Unable to read properties file, using defaults")
		props = nil
	}

	settings, err := config.ResolveSettings(props, opts.BaseURL, cfg, paths.ExecutableDir)
	if err != nil {
		return err
	}
	logger.Debug().
		Str("baseURL", settings.BaseURL).
		Str("source", settings.BaseURLSource).
		Str("certificate", settings.CertificatePath).
		Str("outputDir", settings.OutputDir).
		Msg("Settings resolved")

	if err := os.MkdirAll(settings.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	clientLevel, err := logging.ParseLevel(cfg.Logging.ClientLevel)
	if err != nil {
		return err
	}
	client := codeinsight.NewClient(codeinsight.Config{
		BaseURL:   settings.BaseURL,
		AuthToken: opts.AuthToken,
		TLS:       settings.TLS,
		Timeout:   cfg.Server.Timeout,
		UserAgent: cfg.Server.UserAgent,
	}, logger.Named("codeinsight", clientLevel))
	defer client.Close()

	generator, err := reporting.NewReportGenerator(&cfg.Reports, settings.OutputDir)
	if err != nil {
		return err
	}

	orchestrator := NewReportOrchestrator(Collaborators{
		Release:  client,
		Gatherer: reportdata.NewGatherer(client, logger.Named("reportdata", logger.GetLevel())),
		Renderer: generator,
		Errors:   generator,
		Archiver: archive.NewBuilder(logger.Named("archive", logger.GetLevel()), true),
		Uploader: client,
	}, display, logger.Logger, opts.Version)

	if err := orchestrator.Run(ctx, opts.Request); err != nil {
		return err
	}

	requests, avg := client.GetStats()
	logger.Debug().Int64("requests", requests).Dur("avgDuration", avg).Msg("Code Insight API usage")
	return nil
}

// executableDir resolves the directory of the running binary; the properties
// file and the log live next to it.
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path: %w", err)
	}
	return filepath.Dir(exe), nil
}
