package reporting

import (
	"fmt"
	"html/template"
)

func (rg *ReportGenerator) initializeTemplate() error {
	htmlTemplate := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        :root {
            --primary-color: #2c3e50;
            --secondary-color: #3498db;
            --danger-color: #e74c3c;
            --light-bg: #f8f9fa;
            --border-color: #dee2e6;
            --text-primary: #212529;
            --text-secondary: #6c757d;
            --border-radius: 8px;
        }

        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            color: var(--text-primary);
            background: var(--light-bg);
            margin: 0;
        }

        header {
            background: var(--primary-color);
            color: #fff;
            padding: 16px 32px;
        }

        header.error {
            background: var(--danger-color);
        }

        main {
            max-width: 1100px;
            margin: 24px auto;
            background: #fff;
            padding: 24px 32px;
            border-radius: var(--border-radius);
            border: 1px solid var(--border-color);
        }

        table {
            border-collapse: collapse;
            width: 100%;
            margin-bottom: 24px;
        }

        th, td {
            border: 1px solid var(--border-color);
            padding: 6px 10px;
        }

        th {
            background: var(--light-bg);
            text-align: left;
        }

        footer {
            text-align: center;
            color: var(--text-secondary);
            font-size: 0.85em;
            padding: 16px;
        }
    </style>
</head>
<body>
    <header{{if .HasError}} class="error"{{end}}>
        <strong>{{.ReportName}}</strong> &middot; {{.Generated}}
    </header>
    <main>
{{.Body}}
    </main>
    <footer>
        {{.ReportName}} {{.ReportVersion}} &middot; Code Insight {{.ReleaseVersion}}
    </footer>
</body>
</html>`

	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse HTML template: %w", err)
	}

	rg.template = tmpl
	return nil
}
