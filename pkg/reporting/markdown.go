package reporting

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"
)

// buildReportMarkdown creates the body of the lock report
func buildReportMarkdown(rc *ReportContext) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", rc.ReportName))
	writeMetadata(&sb, rc)
	sb.WriteString(fmt.Sprintf("- **Project:** %s (ID %s)\n", escapeCell(rc.TopLevelProjectName), rc.ProjectID))
	sb.WriteString(fmt.Sprintf("- **Include child projects:** %s\n\n", rc.Options.Value(OptionIncludeChildProjects)))

	// Lock summary
	sb.WriteString("## Lock Summary\n\n")
	sb.WriteString("| Projects | Locked | Unlocked |\n")
	sb.WriteString("| ---: | ---: | ---: |\n")
	sb.WriteString(fmt.Sprintf("| %d | %d | %d |\n\n",
		rc.LockSummary.Total, rc.LockSummary.Locked, rc.LockSummary.Unlocked))

	// Hierarchy
	sb.WriteString("## Projects\n\n")
	if len(rc.Projects) == 0 {
		sb.WriteString("No projects found.\n")
		return sb.String()
	}

	sb.WriteString("| Project | ID | Parent ID | Level | Owner | Status |\n")
	sb.WriteString("| --- | ---: | ---: | ---: | --- | --- |\n")
	for _, p := range rc.Projects {
		sb.WriteString(fmt.Sprintf("| %s%s | %d | %s | %d | %s | %s |\n",
			strings.Repeat("&nbsp;&nbsp;", p.Depth),
			escapeCell(p.Name),
			p.ID,
			parentCell(p.ParentID),
			p.Depth,
			escapeCell(p.Owner),
			lockStatus(p.Locked)))
	}

	return sb.String()
}

// buildErrorMarkdown creates the body of the error report
func buildErrorMarkdown(rc *ReportContext) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", rc.ReportName))
	writeMetadata(&sb, rc)
	sb.WriteString("\n")
	sb.WriteString("## The report could not be created\n\n")
	sb.WriteString("The following errors were found:\n\n")
	for _, msg := range rc.Error {
		sb.WriteString(fmt.Sprintf("- %s\n", escapeMessage(msg)))
	}

	return sb.String()
}

func writeMetadata(sb *strings.Builder, rc *ReportContext) {
	sb.WriteString(fmt.Sprintf("- **Generated:** %s\n", rc.ReportTimeStamp))
	sb.WriteString(fmt.Sprintf("- **Report version:** %s\n", rc.ReportVersion))
	sb.WriteString(fmt.Sprintf("- **Code Insight release:** %s\n", rc.ReleaseVersion))
}

// buildReportSheets lays out the workbook of the lock report
func buildReportSheets(rc *ReportContext) []sheet {
	hierarchy := sheet{
		Name:   "Project Hierarchy",
		Header: []string{"Project", "Project ID", "Parent ID", "Level", "Owner", "Status"},
		Widths: map[string]float64{"A": 45, "E": 25, "F": 12},
	}
	for _, p := range rc.Projects {
		hierarchy.Rows = append(hierarchy.Rows, []string{
			strings.Repeat("  ", p.Depth) + p.Name,
			strconv.Itoa(p.ID),
			parentCell(p.ParentID),
			strconv.Itoa(p.Depth),
			p.Owner,
			lockStatus(p.Locked),
		})
	}

	summary := sheet{
		Name:   "Summary",
		Header: []string{"Field", "Value"},
		Widths: map[string]float64{"A": 25, "B": 45},
		Rows: [][]string{
			{"Report", rc.ReportName},
			{"Report version", rc.ReportVersion},
			{"Code Insight release", rc.ReleaseVersion},
			{"Generated", rc.ReportTimeStamp},
			{"Project", rc.TopLevelProjectName},
			{"Project ID", rc.ProjectID},
			{"Projects", strconv.Itoa(rc.LockSummary.Total)},
			{"Locked", strconv.Itoa(rc.LockSummary.Locked)},
			{"Unlocked", strconv.Itoa(rc.LockSummary.Unlocked)},
		},
	}

	return []sheet{hierarchy, summary}
}

// renderMarkdown converts a markdown body to HTML
func (rg *ReportGenerator) renderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := rg.markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "|", "\\|")
}

// emphasisRestorer brings back the <b> markup error messages use once everything else is escaped
var emphasisRestorer = strings.NewReplacer("&lt;b&gt;", "<b>", "&lt;/b&gt;", "</b>")

// escapeMessage escapes an error message for the markdown body, keeping only <b> emphasis.
// Messages quote option values and server responses verbatim.
func escapeMessage(msg string) string {
	return emphasisRestorer.Replace(html.EscapeString(msg))
}

func parentCell(parentID int) string {
	if parentID == 0 {
		return ""
	}
	return strconv.Itoa(parentID)
}

func lockStatus(locked bool) string {
	if locked {
		return "Locked"
	}
	return "Unlocked"
}
