package pipeline

import (
	"context"
	"log/slog"

	"github.com/dtrajkov/attendance-tracker/internal/entity"
	"github.com/dtrajkov/attendance-tracker/internal/extract"
	"github.com/dtrajkov/attendance-tracker/internal/report"
)

// NameMatcher is Stage 2: lines -> presence verdicts.
type NameMatcher interface {
	Match(ctx context.Context, lines []string) ([]entity.MatchResult, error)
}

// JobStore is the slice of the job repository the pipeline mutates.
type JobStore interface {
	FinishSuccess(ctx context.Context, jobID int64, reportPath string) error
	FinishFailure(ctx context.Context, jobID int64, message string) error
}

// Processor owns the end-to-end sequencing for one job: extract lines from
// the stored image, match them against the roster, render the report, then
// persist the terminal state. Stages run strictly in order; any stage error
// moves the record to failed with no report path recorded.
type Processor struct {
	Extractor extract.LineExtractor
	Matcher   NameMatcher
	Renderer  report.Renderer
	Jobs      JobStore
	Logger    *slog.Logger
}

func NewProcessor(ex extract.LineExtractor, m NameMatcher, rr report.Renderer, jobs JobStore, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Extractor: ex, Matcher: m, Renderer: rr, Jobs: jobs, Logger: logger}
}

// Process runs the pipeline for a job already recorded in status processing.
// The returned error is the stage error, after the failed state has been
// persisted.
func (p *Processor) Process(ctx context.Context, jobID int64, imagePath string) error {
	lines, err := p.Extractor.ExtractLines(ctx, imagePath)
	if err != nil {
		p.Logger.Error("pipeline.extract.failed", "job_id", jobID, "path", imagePath, "error", err)
		p.fail(ctx, jobID, err)
		return err
	}
	p.Logger.Info("pipeline.extract.ok", "job_id", jobID, "lines", len(lines))

	results, err := p.Matcher.Match(ctx, lines)
	if err != nil {
		p.Logger.Error("pipeline.match.failed", "job_id", jobID, "error", err)
		p.fail(ctx, jobID, err)
		return err
	}
	p.Logger.Info("pipeline.match.ok", "job_id", jobID, "results", len(results))

	reportPath, err := p.Renderer.Render(ctx, jobID, results)
	if err != nil {
		p.Logger.Error("pipeline.render.failed", "job_id", jobID, "error", err)
		p.fail(ctx, jobID, err)
		return err
	}

	if err := p.Jobs.FinishSuccess(ctx, jobID, reportPath); err != nil {
		p.Logger.Error("pipeline.persist.failed", "job_id", jobID, "error", err)
		// Best effort: the record is still in processing, so the failed
		// transition is the only way to keep it out of a stuck state.
		p.fail(ctx, jobID, err)
		return err
	}
	p.Logger.Info("pipeline.ok", "job_id", jobID, "report_path", reportPath)
	return nil
}

// fail persists the failed transition. It detaches from ctx's cancellation
// so a timed-out OCR call cannot also starve the status update.
func (p *Processor) fail(ctx context.Context, jobID int64, cause error) {
	if err := p.Jobs.FinishFailure(context.WithoutCancel(ctx), jobID, cause.Error()); err != nil {
		p.Logger.Error("pipeline.fail-persist.failed", "job_id", jobID, "error", err)
	}
}
