package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtrajkov/attendance-tracker/internal/common"
	"github.com/dtrajkov/attendance-tracker/internal/entity"
)

func TestBuildRows(t *testing.T) {
	results := []entity.MatchResult{
		{Name: "Ana Petrova", IsPresent: true},
		{Name: "", IsPresent: false},
		{Name: "Mira Iloska", IsPresent: false},
	}
	rows := buildRows(results)
	assert.Equal(t, []string{
		"Name: Ana Petrova, Status: Present",
		"Name: Mira Iloska, Status: Not Present",
	}, rows)
}

func TestBuildRowsAllBlank(t *testing.T) {
	results := []entity.MatchResult{{Name: ""}, {Name: ""}}
	assert.Empty(t, buildRows(results))
}

func TestRenderWritesDeterministicPath(t *testing.T) {
	dir := t.TempDir()
	r := NewPDFRenderer(dir, "", nil)

	path, err := r.Render(context.Background(), 7, []entity.MatchResult{
		{Name: "Ana Petrova", IsPresent: true},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "output_report_7.pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	r := NewPDFRenderer(dir, "", nil)
	results := []entity.MatchResult{{Name: "Ana Petrova", IsPresent: true}}

	first, err := r.Render(context.Background(), 3, results)
	require.NoError(t, err)
	second, err := r.Render(context.Background(), 3, results)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRenderTitleOnlyWhenNoRows(t *testing.T) {
	dir := t.TempDir()
	r := NewPDFRenderer(dir, "", nil)

	path, err := r.Render(context.Background(), 9, nil)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderUnwritableDestination(t *testing.T) {
	r := NewPDFRenderer(filepath.Join(t.TempDir(), "missing", "nested"), "", nil)

	_, err := r.Render(context.Background(), 1, []entity.MatchResult{{Name: "Ana Petrova"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrRenderIO)
}
