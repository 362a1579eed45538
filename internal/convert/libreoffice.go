package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// SofficeTranscoder turns slide decks into PDFs via headless LibreOffice.
type SofficeTranscoder struct {
	binary string
}

func NewSofficeTranscoder(binary string) *SofficeTranscoder {
	if binary == "" {
		binary = "libreoffice"
	}
	return &SofficeTranscoder{binary: binary}
}

// Transcode produces <outDir>/<deck base name>.pdf. A non-zero exit or a
// missing output file comes back as a ConversionError carrying stderr.
func (t *SofficeTranscoder) Transcode(ctx context.Context, deckPath, outDir string) (string, error) {
	var stderr bytes.Buffer

	cmd := exec.CommandContext(
		ctx,
		t.binary,
		"--headless",
		"--convert-to", "pdf",
		deckPath,
		"--outdir", outDir,
	)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: %s", ErrTimeout, t.binary)
		}
		return "", &ConversionError{Stage: "transcode", Output: strings.TrimSpace(stderr.String()), Err: err}
	}

	base := filepath.Base(deckPath)
	pdfPath := filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+".pdf")

	if _, err := os.Stat(pdfPath); err != nil {
		return "", &ConversionError{
			Stage:  "transcode",
			Output: strings.TrimSpace(stderr.String()),
			Err:    fmt.Errorf("no output file: %w", err),
		}
	}

	return pdfPath, nil
}
