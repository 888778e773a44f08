package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewCreatesUniqueDirs(t *testing.T) {
	parent := t.TempDir()
	a, err := New(parent)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	b, err := New(parent)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if a.Path() == b.Path() {
		t.Fatalf("workspaces share a path: %s", a.Path())
	}
	for _, d := range []*Dir{a, b} {
		info, err := os.Stat(d.Path())
		if err != nil || !info.IsDir() {
			t.Fatalf("workspace %s not a directory: %v", d.Path(), err)
		}
	}
}

func TestReleaseRemovesContents(t *testing.T) {
	d, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := os.WriteFile(filepath.Join(d.Path(), "page-1.png"), []byte("img"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := d.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := os.Stat(d.Path()); !os.IsNotExist(err) {
		t.Fatalf("workspace still present after release")
	}
}

func TestNewDefaultsToOSTempDir(t *testing.T) {
	d, err := New("")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer d.Release()
	if filepath.Dir(d.Path()) != filepath.Clean(os.TempDir()) {
		t.Fatalf("workspace %s not under os temp dir", d.Path())
	}
}
