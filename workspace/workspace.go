package workspace

// Package workspace provides per-document scratch directories. Each directory
// is uniquely named, exclusively owned by the worker that created it, and
// released on every exit path; removal is best-effort and never fatal.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Dir is a scoped temporary directory.
type Dir struct {
	path string
}

// New creates a uniquely named directory under parent. An empty parent means
// the operating system's temporary directory.
func New(parent string) (*Dir, error) {
	if parent == "" {
		parent = os.TempDir()
	}
	path := filepath.Join(parent, "ocrkit-"+uuid.NewString())
	if err := os.MkdirAll(path, 0o700); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Dir{path: path}, nil
}

// Path returns the directory's absolute location.
func (d *Dir) Path() string { return d.path }

// Release removes the directory and everything in it. Callers log a non-nil
// error rather than treating it as a processing failure.
func (d *Dir) Release() error {
	return os.RemoveAll(d.path)
}
