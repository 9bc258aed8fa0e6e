package extract

import "strings"

// SplitLines breaks raw OCR text into lines in reading order. CRLF is
// normalized first so the split never leaves stray '\r'.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// DropEndOfTextLine removes the final line of the sequence, which the OCR
// engine appends as its end-of-text marker.
//
// The removal is positional and unconditional: only the last element goes,
// and it goes even when non-empty. Blank lines elsewhere in the sequence are
// kept, since they are meaningful spacing on the sheet and filtering them
// would shift report rows out of correspondence with the image.
func DropEndOfTextLine(lines []string) []string {
	if len(lines) == 0 {
		return lines
	}
	return lines[:len(lines)-1]
}
