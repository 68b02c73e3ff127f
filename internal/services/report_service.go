package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"trunkreport/internal/exporter"
	"trunkreport/internal/files"
	"trunkreport/internal/ingest"
	"trunkreport/internal/pipeline"
)

// OutputFormat selects the artifact serialization.
type OutputFormat string

const (
	FormatCSV  OutputFormat = "csv"
	FormatXLSX OutputFormat = "xlsx"
)

// previewLimit caps how many output rows the upload response carries back
// for display.
const previewLimit = 20

// ProcessResult is what one successful upload produces. Preview holds the
// header plus the first rows of the artifact so the caller can show the
// result without a second request.
type ProcessResult struct {
	Artifact string           `json:"artifact"`
	Summary  pipeline.Summary `json:"summary"`
	Preview  [][]string       `json:"preview"`
}

// ReportService runs the transformation for uploaded files and manages the
// resulting artifacts.
type ReportService struct {
	cfg       pipeline.Config
	artifacts *files.Manager
	logger    *slog.Logger
	now       func() time.Time
}

// NewReportService creates a report service using the given pipeline
// configuration and artifact manager.
func NewReportService(cfg pipeline.Config, artifacts *files.Manager, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		cfg:       cfg,
		artifacts: artifacts,
		logger:    logger.With(slog.String("component", "report_service")),
		now:       time.Now,
	}
}

// Process decodes the uploaded file, runs the pipeline, and writes the
// output artifact in the requested format. The original filename drives both
// input decoding (by extension) and the artifact name.
func (s *ReportService) Process(ctx context.Context, originalName string, r io.Reader, format OutputFormat) (*ProcessResult, error) {
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatXLSX {
		return nil, fmt.Errorf("%w: output format %q", ErrUnsupportedFileType, format)
	}

	var (
		table pipeline.RawTable
		err   error
	)
	switch strings.ToLower(filepath.Ext(originalName)) {
	case ".csv":
		table, err = ingest.ReadCSV(r)
	case ".xlsx":
		table, err = ingest.ReadWorkbook(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, filepath.Ext(originalName))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", originalName, err)
	}

	result, err := pipeline.Run(ctx, s.cfg, s.logger, table)
	if err != nil {
		return nil, err
	}

	name := files.OutputName(originalName, s.now(), "."+string(format))
	out, err := s.artifacts.Create(name)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	switch format {
	case FormatXLSX:
		err = exporter.WriteWorkbook(out, result)
	default:
		err = exporter.WriteCSV(out, result)
	}
	if err != nil {
		// Half-written artifacts must not show up in listings.
		os.Remove(out.Name())
		return nil, fmt.Errorf("write artifact %s: %w", name, err)
	}

	s.logger.InfoContext(ctx, "processed upload",
		slog.String("input", originalName),
		slog.String("artifact", name),
		slog.Int("groups", result.Summary.Groups),
		slog.Int("output_rows", result.Summary.OutputRows))

	return &ProcessResult{
		Artifact: name,
		Summary:  result.Summary,
		Preview:  exporter.Preview(result, previewLimit),
	}, nil
}

// Delete removes a processed artifact by name.
func (s *ReportService) Delete(ctx context.Context, name string) error {
	path, err := s.artifacts.Resolve(name)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	if err := s.artifacts.Remove(name); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "artifact deleted", slog.String("name", name))
	return nil
}

// List returns the processed artifacts, newest first.
func (s *ReportService) List(ctx context.Context) ([]files.Artifact, error) {
	return s.artifacts.List()
}

// Download streams a processed artifact to the HTTP response.
func (s *ReportService) Download(ctx context.Context, w http.ResponseWriter, r *http.Request, name string) error {
	path, err := s.artifacts.Resolve(name)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("open artifact %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat artifact %s: %w", name, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	http.ServeContent(w, r, name, info.ModTime(), f)
	return nil
}
