package reporting

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// exportJSON exports the report data as a JSON file
func (rg *ReportGenerator) exportJSON(doc *document, fileNameBase string) (string, error) {
	path := filepath.Join(rg.outputDir, fileNameBase+".json")

	// Marshal to JSON with indentation
	jsonData, err := json.MarshalIndent(doc.Payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report data: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}

	return path, nil
}

// htmlPage is the data handed to the HTML template
type htmlPage struct {
	Title          string
	Body           template.HTML
	ReportName     string
	ReportVersion  string
	ReleaseVersion string
	Generated      string
	HasError       bool
}

// exportHTML exports the report as an HTML file
func (rg *ReportGenerator) exportHTML(doc *document, fileNameBase string) (string, error) {
	path := filepath.Join(rg.outputDir, fileNameBase+".html")

	body, err := rg.renderMarkdown(doc.Markdown)
	if err != nil {
		return "", err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create HTML file: %w", err)
	}
	defer file.Close()

	page := htmlPage{
		Title: doc.Title,
		// markdown escapes every supplied value; only <b> emphasis survives in error messages
		Body:           template.HTML(body),
		ReportName:     doc.Context.ReportName,
		ReportVersion:  doc.Context.ReportVersion,
		ReleaseVersion: doc.Context.ReleaseVersion,
		Generated:      doc.Context.ReportTimeStamp,
		HasError:       doc.HasError,
	}

	if err := rg.template.Execute(file, page); err != nil {
		return "", fmt.Errorf("failed to execute HTML template: %w", err)
	}

	return path, nil
}

// exportXLSX exports the report as an Excel workbook
func (rg *ReportGenerator) exportXLSX(doc *document, fileNameBase string) (string, error) {
	path := filepath.Join(rg.outputDir, fileNameBase+".xlsx")

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2C3E50"}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sh := range doc.Sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.Name); err != nil {
				return "", fmt.Errorf("failed to name sheet %s: %w", sh.Name, err)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			return "", fmt.Errorf("failed to create sheet %s: %w", sh.Name, err)
		}

		if err := writeSheet(f, sh, headerStyle); err != nil {
			return "", err
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to write XLSX file: %w", err)
	}

	return path, nil
}

func writeSheet(f *excelize.File, sh sheet, headerStyle int) error {
	header := make([]interface{}, len(sh.Header))
	for i, h := range sh.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sh.Name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", sh.Name, err)
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(sh.Header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sh.Name, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", sh.Name, err)
	}

	for i, row := range sh.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sh.Name, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sh.Name, err)
		}
	}

	for col, width := range sh.Widths {
		if err := f.SetColWidth(sh.Name, col, col, width); err != nil {
			return fmt.Errorf("failed to size column %s of %s: %w", col, sh.Name, err)
		}
	}

	return nil
}
