package server

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	// Raster decoders for submission-time validation. GIF and JPEG come from
	// the standard library; the rest cover common scanner and phone outputs.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/dtrajkov/attendance-tracker/internal/async"
	"github.com/dtrajkov/attendance-tracker/internal/common"
	"github.com/dtrajkov/attendance-tracker/internal/entity"
	"github.com/dtrajkov/attendance-tracker/internal/repository"
)

// Enqueuer dispatches a created job to the pipeline workers.
type Enqueuer interface {
	Enqueue(ctx context.Context, job async.Job) (<-chan error, error)
}

// Service handles sheet submission: decode, store, record, dispatch. It
// returns to the caller right after the job record exists; pipeline progress
// is observed by polling the record.
type Service struct {
	jobs       repository.JobRepository
	queue      Enqueuer
	contentDir string
	logger     *slog.Logger
}

func NewService(jobs repository.JobRepository, queue Enqueuer, contentDir string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{jobs: jobs, queue: queue, contentDir: contentDir, logger: logger}
}

// SubmitImage validates raw image bytes, stores them as PNG under the content
// directory, creates the job record, and dispatches the pipeline. Undecodable
// input fails with ErrInvalidImage before any record exists.
func (s *Service) SubmitImage(ctx context.Context, data []byte) (*entity.JobRecord, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		s.logger.Warn("submitted image failed to decode", "error", err)
		return nil, fmt.Errorf("decode image: %w: %w", common.ErrInvalidImage, err)
	}

	if err := os.MkdirAll(s.contentDir, 0o755); err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%d_%s.png", time.Now().Unix(), uuid.NewString()[:8])
	path := filepath.Join(s.contentDir, name)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		s.logger.Error("failed to store image", "path", path, "error", err)
		_ = os.Remove(path)
		return nil, err
	}

	rec, err := s.jobs.Create(ctx, path)
	if err != nil {
		return nil, err
	}

	if _, err := s.queue.Enqueue(ctx, async.Job{JobID: rec.ID, ImagePath: path}); err != nil {
		s.logger.Error("failed to dispatch job", "job_id", rec.ID, "error", err)
		// The record already exists; it must not stay in processing when no
		// worker will ever pick it up.
		if ferr := s.jobs.FinishFailure(context.WithoutCancel(ctx), rec.ID, fmt.Sprintf("dispatch: %v", err)); ferr != nil {
			s.logger.Error("failed to mark undispatched job failed", "job_id", rec.ID, "error", ferr)
		}
		return nil, err
	}
	s.logger.Info("sheet submitted", "job_id", rec.ID, "path", path, "request_id", common.RequestIDFromContext(ctx))
	return rec, nil
}

// SubmitFile submits an image already on disk (drop-folder ingestion).
func (s *Service) SubmitFile(ctx context.Context, path string) (*entity.JobRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.SubmitImage(ctx, data)
}
