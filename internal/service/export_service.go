package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/export"
	"fitplan/training-planner/internal/storage"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	// ErrNothingToExport is raised before any formatter runs when the
	// workspace has no training weeks.
	ErrNothingToExport = errors.New("no training weeks to export")
	ErrUnknownFormat   = errors.New("unknown export format")
	ErrArchiveDisabled = errors.New("export archiving is not configured")
)

// archiveURLLifetime is how long presigned archive links stay valid.
const archiveURLLifetime = 24 * time.Hour

// ExportFormat selects the rendering.
type ExportFormat string

const (
	FormatCSV      ExportFormat = "csv"
	FormatDocument ExportFormat = "document"
)

// ExportResult carries a rendered export plus its transport metadata.
type ExportResult struct {
	Format      ExportFormat
	ContentType string
	Filename    string
	Data        []byte
	// ArchiveURL is a presigned download link, set only when the export
	// was also archived.
	ArchiveURL string
}

// ExportService renders a workspace's full plan into CSV or a
// print-oriented document, optionally archiving the result to object
// storage.
type ExportService interface {
	Export(ctx context.Context, actor *domain.User, format ExportFormat, archive bool) (*ExportResult, error)
}

// exportService implements the ExportService interface.
type exportService struct {
	planner PlannerService
	archive storage.FileStorage // nil when archiving is disabled
}

// NewExportService creates a new instance of exportService. Pass a nil
// archive to disable archiving.
func NewExportService(planner PlannerService, archive storage.FileStorage) ExportService {
	return &exportService{
		planner: planner,
		archive: archive,
	}
}

func (s *exportService) Export(ctx context.Context, actor *domain.User, format ExportFormat, archive bool) (*ExportResult, error) {
	weeks, err := s.planner.WeeksWithTrainings(ctx, actor)
	if err != nil {
		return nil, err
	}
	if len(weeks) == 0 {
		return nil, ErrNothingToExport
	}

	result := &ExportResult{Format: format}
	stamp := time.Now().UTC().Format("20060102-150405")
	switch format {
	case FormatCSV:
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, weeks); err != nil {
			return nil, err
		}
		result.Data = buf.Bytes()
		result.ContentType = "text/csv"
		result.Filename = fmt.Sprintf("training-plan-%s.csv", stamp)
	case FormatDocument:
		result.Data = []byte(export.WriteDocument(weeks))
		result.ContentType = "text/plain; charset=utf-8"
		result.Filename = fmt.Sprintf("training-plan-%s.txt", stamp)
	default:
		return nil, ErrUnknownFormat
	}

	if archive {
		url, err := s.archiveExport(ctx, actor, result)
		if err != nil {
			return nil, err
		}
		result.ArchiveURL = url
	}
	return result, nil
}

// archiveExport uploads the rendered export and returns a presigned
// download link.
func (s *exportService) archiveExport(ctx context.Context, actor *domain.User, result *ExportResult) (string, error) {
	if s.archive == nil {
		return "", ErrArchiveDisabled
	}

	key := fmt.Sprintf("exports/%s/%s-%s", actor.WorkspaceID(), uuid.NewString(), result.Filename)
	if err := s.archive.UploadObject(ctx, key, result.ContentType, result.Data); err != nil {
		return "", err
	}

	url, err := s.archive.GeneratePresignedDownloadURL(ctx, key, archiveURLLifetime)
	if err != nil {
		// an archive entry nobody got a link for is an orphan; remove it
		// so a retry starts clean under a fresh key
		log.WithError(err).WithField("key", key).Warn("archived export but presigning failed")
		if delErr := s.archive.DeleteObject(ctx, key); delErr != nil {
			log.WithError(delErr).WithField("key", key).Warn("could not remove orphaned archive object")
		}
		return "", err
	}
	return url, nil
}
