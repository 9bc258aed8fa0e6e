package extract

import (
	"context"
	"log/slog"

	"github.com/dtrajkov/attendance-tracker/internal/ocr"
)

// OCRAdapter adapts the tesseract extractor to the LineExtractor contract.
type OCRAdapter struct {
	e      *ocr.Extractor
	logger *slog.Logger
}

func NewOCRAdapter(e *ocr.Extractor, logger *slog.Logger) *OCRAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &OCRAdapter{e: e, logger: logger}
}

func (a *OCRAdapter) ExtractLines(ctx context.Context, path string) ([]string, error) {
	res, err := a.e.Extract(ctx, path)
	if err != nil {
		return nil, err
	}
	lines := DropEndOfTextLine(SplitLines(res.Text))
	a.logger.Debug("extracted lines", "path", path, "lines", len(lines), "lang", res.Language, "duration_ms", res.Duration.Milliseconds())
	return lines, nil
}
