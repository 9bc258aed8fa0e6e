package extract

import (
	"context"
)

// LineExtractor is Stage 1: sheet image -> ordered text lines.
// Implementations apply DropEndOfTextLine before returning.
type LineExtractor interface {
	ExtractLines(ctx context.Context, path string) ([]string, error)
}
