// Package reporting implements report generation for the Project Lock Utility
// File: pkg/reporting/generator.go
package reporting

import (
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ajkula/projectlockutility/pkg/config"
)

// ReportGenerator renders report and error-report artifacts
type ReportGenerator struct {
	config    *config.ReportsConfig
	outputDir string
	template  *template.Template
	markdown  goldmark.Markdown
}

// document is what every exporter renders, whichever report produced it
type document struct {
	Title    string
	Markdown string
	Sheets   []sheet
	Payload  interface{}
	Context  *ReportContext
	HasError bool
}

// sheet is one worksheet of the xlsx artifact
type sheet struct {
	Name   string
	Header []string
	Rows   [][]string
	Widths map[string]float64
}

// NewReportGenerator creates a new report generator instance
func NewReportGenerator(reportsConfig *config.ReportsConfig, outputDir string) (*ReportGenerator, error) {
	generator := &ReportGenerator{
		config:    reportsConfig,
		outputDir: outputDir,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.Table),
			// option error messages carry <b> markup
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}

	if err := generator.initializeTemplate(); err != nil {
		return nil, fmt.Errorf("failed to initialize template: %w", err)
	}

	return generator, nil
}

// CreateReportArtifacts renders the lock report for a successfully gathered context
func (rg *ReportGenerator) CreateReportArtifacts(rc *ReportContext) (*Artifacts, error) {
	if rc.FileNameBase == "" {
		return nil, fmt.Errorf("report file name base is not set")
	}

	doc := &document{
		Title:    fmt.Sprintf("%s - %s", rc.ReportName, rc.TopLevelProjectName),
		Markdown: buildReportMarkdown(rc),
		Sheets:   buildReportSheets(rc),
		Payload:  rc,
		Context:  rc,
	}

	return rg.export(doc, rc.FileNameBase)
}

// export writes doc in every configured format
func (rg *ReportGenerator) export(doc *document, fileNameBase string) (*Artifacts, error) {
	if err := os.MkdirAll(rg.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	artifacts := &Artifacts{OutputDir: rg.outputDir}

	for _, format := range rg.config.Formats {
		var (
			path string
			err  error
		)

		switch strings.ToLower(format) {
		case "html":
			path, err = rg.exportHTML(doc, fileNameBase)
			if err != nil {
				return nil, fmt.Errorf("failed to export HTML: %w", err)
			}
		case "xlsx":
			path, err = rg.exportXLSX(doc, fileNameBase)
			if err != nil {
				return nil, fmt.Errorf("failed to export XLSX: %w", err)
			}
		case "json":
			path, err = rg.exportJSON(doc, fileNameBase)
			if err != nil {
				return nil, fmt.Errorf("failed to export JSON: %w", err)
			}
		default:
			return nil, fmt.Errorf("unsupported export format: %s", format)
		}

		artifacts.add(path, fileNameBase+"."+strings.ToLower(format))
	}

	return artifacts, nil
}
