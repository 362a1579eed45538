package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Stager writes inbound uploads to local disk under unique names.
type Stager struct {
	dir string
}

func NewStager(dir string) (*Stager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &Stager{dir: dir}, nil
}

// Stage copies r to <dir>/<uuid>_<base name>. Only the base name of the
// original filename is used, so a crafted name cannot escape the dir.
func (s *Stager) Stage(r io.Reader, originalName string) (string, error) {
	safe := filepath.Base(filepath.Clean(originalName))
	if safe == "." || safe == string(filepath.Separator) || safe == "" {
		safe = "upload"
	}

	path := filepath.Join(s.dir, uuid.NewString()+"_"+safe)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("stage file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("stage file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("stage file: %w", err)
	}

	return path, nil
}

// Remove is safe to call more than once for the same path.
func (s *Stager) Remove(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
