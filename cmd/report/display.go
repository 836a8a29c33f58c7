package report

import (
	"fmt"
)

// ConsoleDisplay handles all console display operations of a report run
type ConsoleDisplay struct {
	formatter *ConsoleFormatter
}

// NewConsoleDisplay creates a new console display handler
func NewConsoleDisplay(formatter *ConsoleFormatter) *ConsoleDisplay {
	return &ConsoleDisplay{
		formatter: formatter,
	}
}

// DisplayStart announces the report and where its log goes
func (d *ConsoleDisplay) DisplayStart(reportName, version, logFile string) {
	d.formatter.PrintSectionHeader(fmt.Sprintf("Creating %s - %s", reportName, version))
	d.formatter.PrintInfo(fmt.Sprintf("Logfile: %s", logFile))
}

// DisplayRunning shows that option validation passed and data gathering starts
func (d *ConsoleDisplay) DisplayRunning(reportName string) {
	d.formatter.PrintInfo(fmt.Sprintf("Running %s", reportName))
}

// DisplayOptionsError shows that the report options were rejected
func (d *ConsoleDisplay) DisplayOptionsError() {
	d.formatter.PrintError("*** ERROR  ***  Error found validating report options")
}

// DisplayDataCollected shows that report data was gathered
func (d *ConsoleDisplay) DisplayDataCollected() {
	d.formatter.PrintInfo("Report data has been collected")
}

// DisplayErrorReportCreated shows that error artifacts replaced the report
func (d *ConsoleDisplay) DisplayErrorReportCreated() {
	d.formatter.PrintWarning("Error report artifacts have been created")
}

// DisplayArtifacts lists the produced report artifacts
func (d *ConsoleDisplay) DisplayArtifacts(files []string) {
	d.formatter.PrintInfo("Report artifacts have been created")
	for _, file := range files {
		d.formatter.PrintItem(file)
	}
}

// DisplayArchiveProgress shows archive creation
func (d *ConsoleDisplay) DisplayArchiveProgress() {
	d.formatter.PrintInfo("Create report archive for upload")
}

// DisplayArchiveCreated shows the archive is ready for upload
func (d *ConsoleDisplay) DisplayArchiveCreated() {
	d.formatter.PrintInfo("Upload zip file creation completed")
}

// DisplayUploaded shows the archive reached Code Insight
func (d *ConsoleDisplay) DisplayUploaded() {
	d.formatter.PrintInfo("Report uploaded to Code Insight")
}

// DisplayCleanupError shows that the archive could not be removed
func (d *ConsoleDisplay) DisplayCleanupError(path string, err error) {
	d.formatter.PrintError(fmt.Sprintf("Error removing %s: %v", path, err))
}

// DisplayCompleted shows the final line of a run
func (d *ConsoleDisplay) DisplayCompleted(reportName string) {
	d.formatter.PrintSuccess(fmt.Sprintf("Completed creating %s", reportName))
}

// DisplayFailure shows a fatal error
func (d *ConsoleDisplay) DisplayFailure(reportName string, err error) {
	d.formatter.PrintError(fmt.Sprintf("Failed creating %s: %v", reportName, err))
}
