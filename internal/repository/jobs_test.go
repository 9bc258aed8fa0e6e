package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtrajkov/attendance-tracker/constants"
	"github.com/dtrajkov/attendance-tracker/internal/common"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	db, err := Open(context.Background(), Config{DSN: dsn}, nil)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.EnsureSchema(context.Background()))
	return db
}

func TestJobCreateAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepository(openTestDB(t), nil)

	first, err := repo.Create(ctx, "files/a.png")
	require.NoError(t, err)
	second, err := repo.Create(ctx, "files/b.png")
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID)
	assert.Equal(t, constants.JobStatusProcessing, first.Status)
	assert.Empty(t, first.ReportPath)
	assert.False(t, first.SubmittedAt.IsZero())
}

func TestJobFinishSuccess(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepository(openTestDB(t), nil)

	rec, err := repo.Create(ctx, "files/a.png")
	require.NoError(t, err)
	require.NoError(t, repo.FinishSuccess(ctx, rec.ID, "files/output_report_1.pdf"))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusFinished, got.Status)
	assert.Equal(t, "files/output_report_1.pdf", got.ReportPath)
	assert.NotNil(t, got.FinishedAt)
}

func TestJobFinishFailureRecordsNoReportPath(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepository(openTestDB(t), nil)

	rec, err := repo.Create(ctx, "files/a.png")
	require.NoError(t, err)
	require.NoError(t, repo.FinishFailure(ctx, rec.ID, "tesseract: exit status 1"))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusFailed, got.Status)
	assert.Empty(t, got.ReportPath)
	assert.Equal(t, "tesseract: exit status 1", got.ErrorMessage)
}

func TestJobTerminalStatesAreFinal(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepository(openTestDB(t), nil)

	rec, err := repo.Create(ctx, "files/a.png")
	require.NoError(t, err)
	require.NoError(t, repo.FinishSuccess(ctx, rec.ID, "files/output_report_1.pdf"))

	// a second transition must not apply
	assert.Error(t, repo.FinishFailure(ctx, rec.ID, "late failure"))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusFinished, got.Status)
	assert.Equal(t, "files/output_report_1.pdf", got.ReportPath)
}

func TestJobGetByIDNotFound(t *testing.T) {
	repo := NewJobRepository(openTestDB(t), nil)

	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestJobListPagination(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRepository(openTestDB(t), nil)

	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, "files/a.png")
		require.NoError(t, err)
	}

	page, err := repo.List(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(2), page[0].ID)
	assert.Equal(t, int64(3), page[1].ID)
}
