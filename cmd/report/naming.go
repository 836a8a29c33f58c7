package report

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ajkula/projectlockutility/pkg/reporting"
)

const (
	// FileNameTimeLayout is sortable and safe in file names
	FileNameTimeLayout = "20060102-150405"

	// ReportTimeLayout is shown inside the report
	ReportTimeLayout = "January 02, 2006 at 15:04:05"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Timestamps are the two renderings of the instant a report run started
type Timestamps struct {
	FileName string
	Report   string
	At       time.Time
}

// NewTimestamps derives the report timestamp from the file name timestamp so both
// always describe the same second.
func NewTimestamps(now time.Time) (Timestamps, error) {
	fileName := now.Format(FileNameTimeLayout)

	at, err := time.ParseInLocation(FileNameTimeLayout, fileName, now.Location())
	if err != nil {
		return Timestamps{}, fmt.Errorf("failed to parse timestamp %s: %w", fileName, err)
	}

	return Timestamps{
		FileName: fileName,
		Report:   at.Format(ReportTimeLayout),
		At:       at,
	}, nil
}

// SanitizeFileName replaces every run of characters outside [a-zA-Z0-9] with a single hyphen
func SanitizeFileName(name string) string {
	return nonAlphanumeric.ReplaceAllString(name, "-")
}

func reportNameForFile() string {
	return strings.ReplaceAll(reporting.ReportName, " ", "_")
}

// ReportFileNameBase names the artifacts of a successful run
func ReportFileNameBase(projectName, projectID, fileTimeStamp string) string {
	return SanitizeFileName(projectName) + "-" + projectID + "-" + reportNameForFile() + "-" + fileTimeStamp
}

// ErrorFileNameBase names the artifacts of a run that produced an error report
func ErrorFileNameBase(fileTimeStamp string) string {
	return reportNameForFile() + "-Creation_Error-" + fileTimeStamp
}
