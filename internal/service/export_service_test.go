package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_CSV(t *testing.T) {
	repos := seededRepos(t)
	svc := NewExportService(newPlannerService(repos), nil)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	result, err := svc.Export(context.Background(), owner, FormatCSV, false)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))
	assert.Empty(t, result.ArchiveURL)

	lines := strings.Split(strings.TrimSpace(string(result.Data)), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "week_number,"))
	assert.Greater(t, len(lines), 1, "seeded plan flattens to data rows")
}

func TestExport_Document(t *testing.T) {
	repos := seededRepos(t)
	svc := NewExportService(newPlannerService(repos), nil)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	result, err := svc.Export(context.Background(), owner, FormatDocument, false)
	require.NoError(t, err)
	assert.Contains(t, string(result.Data), "TRAINING PLAN")
	assert.Contains(t, string(result.Data), "Hypertrophy")
}

func TestExport_EmptyWorkspaceRefused(t *testing.T) {
	// an owner outside the seeded workspace has no weeks at all
	repos := seededRepos(t)
	svc := NewExportService(newPlannerService(repos), nil)
	stranger := &domain.User{ID: uuid.New(), Role: domain.RoleOwner, Active: true}

	_, err := svc.Export(context.Background(), stranger, FormatCSV, false)
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestExport_UnknownFormat(t *testing.T) {
	repos := seededRepos(t)
	svc := NewExportService(newPlannerService(repos), nil)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	_, err := svc.Export(context.Background(), owner, ExportFormat("pdf"), false)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestExport_ArchiveWithoutStorage(t *testing.T) {
	repos := seededRepos(t)
	svc := NewExportService(newPlannerService(repos), nil)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	_, err := svc.Export(context.Background(), owner, FormatCSV, true)
	assert.ErrorIs(t, err, ErrArchiveDisabled)
}

// fakeArchive records uploads and deletions and hands out canned links.
type fakeArchive struct {
	keys       []string
	deleted    []string
	presignErr error
}

func (f *fakeArchive) UploadObject(ctx context.Context, key, contentType string, body []byte) error {
	f.keys = append(f.keys, key)
	return nil
}

func (f *fakeArchive) GeneratePresignedDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://archive.test/" + key, nil
}

func (f *fakeArchive) DeleteObject(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func TestExport_ArchivePath(t *testing.T) {
	repos := seededRepos(t)
	archive := &fakeArchive{}
	svc := NewExportService(newPlannerService(repos), archive)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	result, err := svc.Export(context.Background(), owner, FormatCSV, true)
	require.NoError(t, err)

	require.Len(t, archive.keys, 1)
	assert.Contains(t, archive.keys[0], "exports/"+owner.ID.String())
	assert.Equal(t, "https://archive.test/"+archive.keys[0], result.ArchiveURL)
	assert.Empty(t, archive.deleted)
}

func TestExport_ArchivePresignFailureRemovesObject(t *testing.T) {
	repos := seededRepos(t)
	archive := &fakeArchive{presignErr: errors.New("sts outage")}
	svc := NewExportService(newPlannerService(repos), archive)
	owner := seededUser(t, repos, memory.SeedOwnerEmail)

	_, err := svc.Export(context.Background(), owner, FormatCSV, true)
	require.Error(t, err)

	require.Len(t, archive.keys, 1, "object was uploaded before presigning")
	assert.Equal(t, archive.keys, archive.deleted, "orphaned object cleaned up")
}
