package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtrajkov/attendance-tracker/internal/entity"
)

type stubExtractor struct {
	lines []string
	err   error
}

func (s stubExtractor) ExtractLines(context.Context, string) ([]string, error) {
	return s.lines, s.err
}

type stubMatcher struct {
	err error
}

func (s stubMatcher) Match(_ context.Context, lines []string) ([]entity.MatchResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]entity.MatchResult, len(lines))
	for i, l := range lines {
		out[i] = entity.MatchResult{Name: l}
	}
	return out, nil
}

type stubRenderer struct {
	err error
}

func (s stubRenderer) Render(_ context.Context, jobID int64, _ []entity.MatchResult) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return fmt.Sprintf("files/output_report_%d.pdf", jobID), nil
}

type recordingStore struct {
	successID   int64
	successPath string
	successErr  error
	failureID   int64
	failureMsg  string
}

func (r *recordingStore) FinishSuccess(_ context.Context, jobID int64, reportPath string) error {
	if r.successErr != nil {
		return r.successErr
	}
	r.successID = jobID
	r.successPath = reportPath
	return nil
}

func (r *recordingStore) FinishFailure(_ context.Context, jobID int64, message string) error {
	r.failureID = jobID
	r.failureMsg = message
	return nil
}

func TestProcessSuccessPersistsFinished(t *testing.T) {
	store := &recordingStore{}
	p := NewProcessor(stubExtractor{lines: []string{"Ana Petrova"}}, stubMatcher{}, stubRenderer{}, store, nil)

	err := p.Process(context.Background(), 42, "files/sheet.png")
	require.NoError(t, err)
	assert.Equal(t, int64(42), store.successID)
	assert.Equal(t, "files/output_report_42.pdf", store.successPath)
	assert.Zero(t, store.failureID)
}

func TestProcessExtractFailurePersistsFailed(t *testing.T) {
	store := &recordingStore{}
	cause := errors.New("ocr down")
	p := NewProcessor(stubExtractor{err: cause}, stubMatcher{}, stubRenderer{}, store, nil)

	err := p.Process(context.Background(), 7, "files/sheet.png")
	require.ErrorIs(t, err, cause)
	assert.Equal(t, int64(7), store.failureID)
	assert.Contains(t, store.failureMsg, "ocr down")
	assert.Zero(t, store.successID)
	assert.Empty(t, store.successPath)
}

func TestProcessMatchFailurePersistsFailed(t *testing.T) {
	store := &recordingStore{}
	cause := errors.New("roster unavailable")
	p := NewProcessor(stubExtractor{lines: []string{"x"}}, stubMatcher{err: cause}, stubRenderer{}, store, nil)

	err := p.Process(context.Background(), 8, "files/sheet.png")
	require.ErrorIs(t, err, cause)
	assert.Equal(t, int64(8), store.failureID)
}

func TestProcessRenderFailurePersistsFailedWithoutPath(t *testing.T) {
	store := &recordingStore{}
	cause := errors.New("disk full")
	p := NewProcessor(stubExtractor{lines: []string{"x"}}, stubMatcher{}, stubRenderer{err: cause}, store, nil)

	err := p.Process(context.Background(), 9, "files/sheet.png")
	require.ErrorIs(t, err, cause)
	assert.Equal(t, int64(9), store.failureID)
	assert.Empty(t, store.successPath)
}

func TestProcessPersistFailureFallsBackToFailed(t *testing.T) {
	store := &recordingStore{successErr: errors.New("db gone")}
	p := NewProcessor(stubExtractor{lines: []string{"x"}}, stubMatcher{}, stubRenderer{}, store, nil)

	err := p.Process(context.Background(), 10, "files/sheet.png")
	require.ErrorIs(t, err, store.successErr)
	assert.Equal(t, int64(10), store.failureID)
	assert.Contains(t, store.failureMsg, "db gone")
	assert.Empty(t, store.successPath)
}

func TestProcessFailurePersistsEvenWhenContextExpired(t *testing.T) {
	store := &recordingStore{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewProcessor(stubExtractor{err: context.Canceled}, stubMatcher{}, stubRenderer{}, store, nil)

	err := p.Process(ctx, 11, "files/sheet.png")
	require.Error(t, err)
	assert.Equal(t, int64(11), store.failureID)
}
