package codeinsight

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
)

// UploadProjectReport attaches a report archive to the report run of a project
func (c *Client) UploadProjectReport(ctx context.Context, projectID, reportID, archivePath string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open report archive: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, filepath.Base(archivePath)))
	header.Set("Content-Type", "application/zip")

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read report archive: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish upload form: %w", err)
	}

	path := fmt.Sprintf("/projects/%s/reports/%s/data", url.PathEscape(projectID), url.PathEscape(reportID))
	headers := map[string]string{"Content-Type": writer.FormDataContentType()}

	if _, err := c.Do(ctx, http.MethodPost, path, &body, headers); err != nil {
		return fmt.Errorf("failed to upload report archive: %w", err)
	}

	return nil
}
