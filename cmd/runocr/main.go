package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dtrajkov/attendance-tracker/internal/common"
	"github.com/dtrajkov/attendance-tracker/internal/extract"
	"github.com/dtrajkov/attendance-tracker/internal/ocr"
)

// runocr extracts lines from a sheet image and prints them with their
// positions, for checking what the matcher will see.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "runocr <image-path>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg := common.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	extractor := ocr.NewExtractor(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Language:    cfg.OCR.Language,
		TessdataDir: cfg.OCR.TessdataDir,
		PSM:         cfg.OCR.PSM,
		OEM:         cfg.OCR.OEM,
	}, logger)

	start := time.Now()
	lines, err := extract.NewOCRAdapter(extractor, logger).ExtractLines(ctx, path)
	if err != nil {
		logger.Error("extraction failed", "path", path, "error", err)
		os.Exit(1)
	}

	for i, line := range lines {
		fmt.Printf("%3d  %q\n", i, line)
	}
	logger.Info("extraction ok", "path", path, "lines", len(lines), "duration_ms", time.Since(start).Milliseconds())
}
