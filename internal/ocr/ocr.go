package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dtrajkov/attendance-tracker/internal/common"
)

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Language string // language model identifier, default "eng"

	TessdataDir string

	PSM int // e.g., 6 is good for uniform block of text
	OEM int // 1 = LSTM; leave 0 to use default
}

type Result struct {
	Text     string
	Language string
	Duration time.Duration
}

// Extractor turns a sheet image on disk into raw text by shelling out to
// tesseract. Engine failures surface as ErrExtractionUnavailable so callers
// can tell them apart from malformed input.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	return &Extractor{cfg: cfg, runner: engineRunner{}, logger: logger}
}

// NewExtractorWithRunner is NewExtractor with the command runner swapped out,
// for tests that stub the engine.
func NewExtractorWithRunner(cfg Config, r Runner, logger *slog.Logger) *Extractor {
	e := NewExtractor(cfg, logger)
	e.runner = r
	return e
}

// Extract runs OCR over the image at path and returns the raw engine text
// with line endings normalized to '\n'.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	e.logger.Debug("starting ocr extraction", "path", path, "lang", e.cfg.Language)

	args := []string{path, "stdout", "-l", e.cfg.Language}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", fmt.Sprintf("%d", e.cfg.OEM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}

	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	dur := time.Since(start)
	if err != nil {
		e.logger.Error("tesseract failed",
			"path", path,
			"duration_ms", dur.Milliseconds(),
			"stderr", truncate(string(errb), 8<<10), // cap at 8KB
			"error", err,
		)
		return Result{Language: e.cfg.Language}, fmt.Errorf("tesseract: %w: %w", common.ErrExtractionUnavailable, err)
	}
	e.logger.Debug("tesseract ok",
		"path", path,
		"duration_ms", dur.Milliseconds(),
		"stdout_bytes", len(out),
	)

	txt := strings.ReplaceAll(string(out), "\r\n", "\n")
	return Result{
		Text:     txt,
		Language: e.cfg.Language,
		Duration: dur,
	}, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
