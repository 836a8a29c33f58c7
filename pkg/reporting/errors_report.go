package reporting

import (
	"fmt"
	"strings"
)

// CreateErrorReport renders the artifacts explaining why the report could not be created.
// It produces the same formats and the same Artifacts shape as CreateReportArtifacts.
func (rg *ReportGenerator) CreateErrorReport(rc *ReportContext) (*Artifacts, error) {
	if rc.FileNameBase == "" {
		return nil, fmt.Errorf("report file name base is not set")
	}

	rows := make([][]string, 0, len(rc.Error))
	for i, msg := range rc.Error {
		rows = append(rows, []string{fmt.Sprint(i + 1), stripMarkup(msg)})
	}

	doc := &document{
		Title:    fmt.Sprintf("%s - Creation Error", rc.ReportName),
		Markdown: buildErrorMarkdown(rc),
		Sheets: []sheet{{
			Name:   "Errors",
			Header: []string{"#", "Error"},
			Rows:   rows,
			Widths: map[string]float64{"A": 6, "B": 100},
		}},
		Payload:  rc,
		Context:  rc,
		HasError: true,
	}

	return rg.export(doc, rc.FileNameBase)
}

var markupReplacer = strings.NewReplacer("<b>", "", "</b>", "")

// stripMarkup removes the emphasis tags option errors carry for the HTML report
func stripMarkup(s string) string {
	return markupReplacer.Replace(s)
}
