package report

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/dtrajkov/attendance-tracker/constants"
	"github.com/dtrajkov/attendance-tracker/internal/common"
	"github.com/dtrajkov/attendance-tracker/internal/entity"
)

const reportTitle = "Name Presence Report"

// Renderer is Stage 3: match results -> report document on disk.
type Renderer interface {
	Render(ctx context.Context, jobID int64, results []entity.MatchResult) (string, error)
}

// PDFRenderer writes one paginated PDF per job at a deterministic path under
// the content directory. Re-rendering the same job overwrites the same file.
type PDFRenderer struct {
	contentDir string
	fontPath   string
	logger     *slog.Logger
}

// NewPDFRenderer builds a renderer. fontPath should point at a UTF-8 capable
// TTF covering the OCR language's script; when empty the built-in Helvetica
// is used, which only covers basic Latin.
func NewPDFRenderer(contentDir, fontPath string, logger *slog.Logger) *PDFRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFRenderer{contentDir: contentDir, fontPath: fontPath, logger: logger}
}

func (r *PDFRenderer) Render(ctx context.Context, jobID int64, results []entity.MatchResult) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	family := "Helvetica"
	if r.fontPath != "" {
		family = "reportfont"
		pdf.SetFontLocation(filepath.Dir(r.fontPath))
		pdf.AddUTF8Font(family, "", filepath.Base(r.fontPath))
	}
	pdf.SetFont(family, "", 12)

	rows := buildRows(results)
	pdf.CellFormat(190, 10, reportTitle, "", 1, "C", false, 0, "")
	for _, row := range rows {
		pdf.CellFormat(190, 10, row, "", 1, "L", false, 0, "")
	}

	path := filepath.Join(r.contentDir, constants.ReportFilename(jobID))
	if err := pdf.OutputFileAndClose(path); err != nil {
		r.logger.Error("report write failed", "job_id", jobID, "path", path, "error", err)
		return "", fmt.Errorf("render report: %w: %w", common.ErrRenderIO, err)
	}

	r.logger.Info("report rendered", "job_id", jobID, "path", path, "rows", len(rows))
	return path, nil
}

// buildRows formats one report row per result whose name is non-empty, in
// input order. Blank names were counted during matching but occupy no visual
// row; this filter is deliberate and distinct from the matcher keeping them.
func buildRows(results []entity.MatchResult) []string {
	rows := make([]string, 0, len(results))
	for _, res := range results {
		if res.Name == "" {
			continue
		}
		status := "Not Present"
		if res.IsPresent {
			status = "Present"
		}
		rows = append(rows, fmt.Sprintf("Name: %s, Status: %s", res.Name, status))
	}
	return rows
}
