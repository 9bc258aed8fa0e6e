package ocr

import (
	"bytes"
	"context"
	"os/exec"
)

// Runner executes the engine binary. The indirection exists so tests can feed
// canned engine output without a tesseract install.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// engineRunner shells out for real. Timing and failure logging belong to the
// Extractor, which knows the image being processed.
type engineRunner struct{}

func (engineRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
