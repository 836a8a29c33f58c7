package report

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ajkula/projectlockutility/pkg/codeinsight"
	"github.com/ajkula/projectlockutility/pkg/reporting"
)

// ReleaseInfoProvider returns details about the Code Insight server
type ReleaseInfoProvider interface {
	ReleaseDetails(ctx context.Context) (*codeinsight.ReleaseDetails, error)
}

// ReportDataGatherer collects the data a successful report is rendered from
type ReportDataGatherer interface {
	Gather(ctx context.Context, rc *reporting.ReportContext) (*reporting.ReportContext, error)
}

// ArtifactRenderer renders the report artifacts of a successful run
type ArtifactRenderer interface {
	CreateReportArtifacts(rc *reporting.ReportContext) (*reporting.Artifacts, error)
}

// ErrorReporter renders artifacts describing why a report could not be created
type ErrorReporter interface {
	CreateErrorReport(rc *reporting.ReportContext) (*reporting.Artifacts, error)
}

// ArchiveBuilder packs artifacts into the upload archive
type ArchiveBuilder interface {
	Pack(artifacts *reporting.Artifacts, fileNameBase string) (string, error)
}

// UploadClient sends the archive to the report slot of a project
type UploadClient interface {
	UploadProjectReport(ctx context.Context, projectID, reportID, archivePath string) error
}

// Collaborators groups everything the orchestrator delegates to
type Collaborators struct {
	Release   ReleaseInfoProvider
	Gatherer  ReportDataGatherer
	Renderer  ArtifactRenderer
	Errors    ErrorReporter
	Archiver  ArchiveBuilder
	Uploader  UploadClient
	Validator *OptionValidator
}

// Request carries the command line inputs of one run
type Request struct {
	ProjectID  string
	ReportID   string
	RawOptions string
}

// ReportOrchestrator coordinates one report run from option validation to upload
type ReportOrchestrator struct {
	deps          Collaborators
	display       *ConsoleDisplay
	logger        zerolog.Logger
	reportVersion string

	now        func() time.Time
	posix      bool
	removeFile func(string) error
	newRunID   func() string
}

// NewReportOrchestrator creates a new report orchestrator
func NewReportOrchestrator(
	deps Collaborators,
	display *ConsoleDisplay,
	logger zerolog.Logger,
	reportVersion string,
) *ReportOrchestrator {
	if deps.Validator == nil {
		deps.Validator = NewOptionValidator()
	}
	return &ReportOrchestrator{
		deps:          deps,
		display:       display,
		logger:        logger,
		reportVersion: reportVersion,
		now:           time.Now,
		posix:         isPOSIXShell(),
		removeFile:    os.Remove,
		newRunID:      func() string { return uuid.NewString() },
	}
}

// outcome is the result of the branch step; exactly one implementation is produced per run
type outcome interface {
	render(o *ReportOrchestrator) (*reporting.Artifacts, error)
	reportContext() *reporting.ReportContext
}

type projectOutcome struct {
	rc *reporting.ReportContext
}

func (p projectOutcome) render(o *ReportOrchestrator) (*reporting.Artifacts, error) {
	artifacts, err := o.deps.Renderer.CreateReportArtifacts(p.rc)
	if err != nil {
		return nil, fmt.Errorf("failed to create report artifacts: %w", err)
	}
	o.display.DisplayDataCollected()
	return artifacts, nil
}

func (p projectOutcome) reportContext() *reporting.ReportContext { return p.rc }

type failureReason string

const (
	reasonOptions   failureReason = "options"
	reasonGathering failureReason = "gathering"
)

type failureOutcome struct {
	rc     *reporting.ReportContext
	reason failureReason
}

func (f failureOutcome) render(o *ReportOrchestrator) (*reporting.Artifacts, error) {
	artifacts, err := o.deps.Errors.CreateErrorReport(f.rc)
	if err != nil {
		return nil, fmt.Errorf("failed to create error report: %w", err)
	}
	o.display.DisplayErrorReportCreated()
	return artifacts, nil
}

func (f failureOutcome) reportContext() *reporting.ReportContext { return f.rc }

// Run executes the report pipeline. Invalid options and rejected project lookups
// produce an uploaded error report and a nil error; everything else that fails
// is returned.
func (o *ReportOrchestrator) Run(ctx context.Context, req Request) error {
	runID := o.newRunID()
	log := o.logger.With().Str("run", runID).Logger()

	log.Debug().
		Str("projectID", req.ProjectID).
		Str("reportID", req.ReportID).
		Str("reportOptions", req.RawOptions).
		Msg("Report request received")

	ts, err := NewTimestamps(o.now())
	if err != nil {
		return err
	}

	raw, err := DecodeOptions(req.RawOptions, o.posix)
	if err != nil {
		return fmt.Errorf("invalid report options: %w", err)
	}

	options, err := o.deps.Validator.Validate(raw)
	if err != nil {
		return err
	}
	log.Debug().Interface("options", options.Values).Msg("Report options normalized")

	release, err := o.deps.Release.ReleaseDetails(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve release details: %w", err)
	}
	releaseVersion := release.ReleaseVersion()
	log.Debug().Str("release", releaseVersion).Msg("Code Insight release resolved")

	rc := &reporting.ReportContext{
		RunID:             runID,
		ProjectID:         req.ProjectID,
		ReportName:        reporting.ReportName,
		ReportVersion:     o.reportVersion,
		ReleaseVersion:    releaseVersion,
		FileNameTimeStamp: ts.FileName,
		ReportTimeStamp:   ts.Report,
		GeneratedAt:       ts.At,
		Options:           options,
	}

	result, err := o.branch(ctx, log, rc)
	if err != nil {
		return err
	}

	if failed, ok := result.(failureOutcome); ok {
		log.Warn().Str("reason", string(failed.reason)).Msg("Creating error report")
	}

	artifacts, err := result.render(o)
	if err != nil {
		return err
	}
	o.display.DisplayArtifacts(artifacts.AllFormats)
	for _, name := range artifacts.AllFormats {
		log.Info().Str("file", name).Msg("Report artifact created")
	}

	o.display.DisplayArchiveProgress()
	fileNameBase := result.reportContext().FileNameBase
	archivePath, err := o.deps.Archiver.Pack(artifacts, fileNameBase)
	if err != nil {
		return fmt.Errorf("failed to create upload archive: %w", err)
	}
	log.Info().Str("archive", archivePath).Msg("Upload zip file creation completed")
	o.display.DisplayArchiveCreated()

	if err := o.deps.Uploader.UploadProjectReport(ctx, req.ProjectID, req.ReportID, archivePath); err != nil {
		return fmt.Errorf("failed to upload report: %w", err)
	}
	log.Info().Str("projectID", req.ProjectID).Str("reportID", req.ReportID).Msg("Report uploaded to Code Insight")
	o.display.DisplayUploaded()

	if err := o.removeFile(archivePath); err != nil {
		log.Error().Err(err).Str("archive", archivePath).Msg("Unable to remove upload archive")
		o.display.DisplayCleanupError(archivePath, err)
	}

	log.Info().Msgf("Completed creating %s", reporting.ReportName)
	o.display.DisplayCompleted(reporting.ReportName)

	return nil
}

// branch decides between the project report and the error report
func (o *ReportOrchestrator) branch(ctx context.Context, log zerolog.Logger, rc *reporting.ReportContext) (outcome, error) {
	if rc.Options.HasErrors() {
		for _, msg := range rc.Options.Errors {
			log.Error().Msg(msg)
		}
		o.display.DisplayOptionsError()

		failed := rc.Clone()
		failed.Error = append([]string(nil), rc.Options.Errors...)
		failed.FileNameBase = ErrorFileNameBase(rc.FileNameTimeStamp)
		return failureOutcome{rc: failed, reason: reasonOptions}, nil
	}

	o.display.DisplayRunning(reporting.ReportName)
	gathered, err := o.deps.Gatherer.Gather(ctx, rc)
	if err != nil {
		return nil, fmt.Errorf("failed to gather report data: %w", err)
	}

	if gathered.HasError() {
		for _, msg := range gathered.Error {
			log.Error().Str("projectID", rc.ProjectID).Msg(msg)
		}
		gathered.FileNameBase = ErrorFileNameBase(rc.FileNameTimeStamp)
		return failureOutcome{rc: gathered, reason: reasonGathering}, nil
	}

	gathered.FileNameBase = ReportFileNameBase(gathered.TopLevelProjectName, rc.ProjectID, rc.FileNameTimeStamp)
	log.Debug().Str("fileNameBase", gathered.FileNameBase).Msg("Report data gathered")
	return projectOutcome{rc: gathered}, nil
}
