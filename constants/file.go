package constants

import (
	"fmt"
	"strings"
)

// AllowedExtensions holds the default allowed file extensions for sheet images.
var AllowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"bmp":  {},
	"tif":  {},
	"tiff": {},
	"webp": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IsAllowedExt checks if a file extension is in the allowed set.
func IsAllowedExt(ext string) bool {
	_, ok := AllowedExtensions[NormalizeExt(ext)]
	return ok
}

// ReportFilename is the deterministic report name for a job. Re-rendering a
// job always targets the same file.
func ReportFilename(jobID int64) string {
	return fmt.Sprintf("output_report_%d.pdf", jobID)
}
