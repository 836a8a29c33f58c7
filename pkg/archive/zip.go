// Package archive packages report artifacts into the single file uploaded to Code Insight
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/ajkula/projectlockutility/pkg/reporting"
)

// Builder creates upload archives
type Builder struct {
	logger zerolog.Logger

	// Remove the artifact files once they are inside the archive
	removeArtifacts bool
}

// NewBuilder creates a new archive builder
func NewBuilder(logger zerolog.Logger, removeArtifacts bool) *Builder {
	return &Builder{
		logger:          logger,
		removeArtifacts: removeArtifacts,
	}
}

// Pack writes every artifact into <OutputDir>/<fileNameBase>.zip and returns its path
func (b *Builder) Pack(artifacts *reporting.Artifacts, fileNameBase string) (string, error) {
	if artifacts == nil || len(artifacts.Files) == 0 {
		return "", fmt.Errorf("no report artifacts to archive")
	}

	archivePath := filepath.Join(artifacts.OutputDir, fileNameBase+".zip")

	out, err := os.Create(archivePath)
	if err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}

	zw := zip.NewWriter(out)
	for _, path := range artifacts.Files {
		if err := addFile(zw, path); err != nil {
			zw.Close()
			out.Close()
			os.Remove(archivePath)
			return "", err
		}
	}

	if err := zw.Close(); err != nil {
		out.Close()
		return "", fmt.Errorf("failed to finish archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close archive: %w", err)
	}

	b.logger.Debug().Str("archive", archivePath).Int("files", len(artifacts.Files)).Msg("Report archive created")

	if b.removeArtifacts {
		for _, path := range artifacts.Files {
			if err := os.Remove(path); err != nil {
				b.logger.Warn().Err(err).Str("file", path).Msg("Unable to remove archived artifact")
			}
		}
	}

	return archivePath, nil
}

func addFile(zw *zip.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open artifact: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat artifact: %w", err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("failed to create archive entry for %s: %w", path, err)
	}
	header.Name = filepath.Base(path)
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create archive entry for %s: %w", path, err)
	}

	if _, err := io.Copy(w, file); err != nil {
		return fmt.Errorf("failed to write %s to archive: %w", path, err)
	}

	return nil
}
