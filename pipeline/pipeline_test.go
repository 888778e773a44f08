package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/wudi/ocrkit/ocr"
)

// fakeRasterizer renders each configured document as one small text file per
// page, mimicking the dense 1-based page sequence of the real rasterizer.
type fakeRasterizer struct {
	pages map[string][]string
	delay bool
}

func (f *fakeRasterizer) Rasterize(_ context.Context, docPath, outPrefix string) error {
	if f.delay {
		time.Sleep(time.Duration(rand.Intn(10)) * time.Millisecond)
	}
	contents, ok := f.pages[docPath]
	if !ok {
		return fmt.Errorf("pdftoppm exited with status 1")
	}
	for i, c := range contents {
		path := f.PagePath(outPrefix, i+1)
		if err := os.WriteFile(path, []byte(c), 0o600); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRasterizer) PagePath(outPrefix string, page int) string {
	return fmt.Sprintf("%s-%d.png", outPrefix, page)
}

var errCorrupt = errors.New("corrupt page image")

// fakeEngine recognizes a page by reading the file back; a page whose content
// is "CORRUPT" fails recognition.
type fakeEngine struct {
	initErr error
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) NewSession(ocr.Config) (ocr.Session, error) {
	if f.initErr != nil {
		return nil, f.initErr
	}
	return &fakeSession{}, nil
}

type fakeSession struct{ closed bool }

func (s *fakeSession) Recognize(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if string(data) == "CORRUPT" {
		return "", errCorrupt
	}
	return string(data), nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

func newTestPipeline(t *testing.T, rz *fakeRasterizer, eng ocr.Engine, workers int) (*Pipeline, string) {
	t.Helper()
	root := t.TempDir()
	return New(Config{
		Engine:        eng,
		Rasterizer:    rz,
		Workers:       workers,
		WorkspaceRoot: root,
	}), root
}

func TestRunPreservesInputOrder(t *testing.T) {
	pages := make(map[string][]string)
	var paths []string
	for i := 0; i < 16; i++ {
		p := fmt.Sprintf("doc-%02d.pdf", i)
		paths = append(paths, p)
		pages[p] = []string{fmt.Sprintf("first-%d ", i), fmt.Sprintf("second-%d", i)}
	}
	pl, _ := newTestPipeline(t, &fakeRasterizer{pages: pages, delay: true}, &fakeEngine{}, 4)

	results, failures := pl.Run(context.Background(), paths)
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}
	if len(results) != len(paths) {
		t.Fatalf("got %d results for %d inputs", len(results), len(paths))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Fatalf("result %d is for %q, want %q", i, r.Path, paths[i])
		}
		want := fmt.Sprintf("first-%d second-%d", i, i)
		if r.Text != want {
			t.Fatalf("result %d text = %q, want %q", i, r.Text, want)
		}
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	pages := map[string][]string{
		"a.pdf": {"alpha"},
		"c.pdf": {"gamma"},
	}
	pl, _ := newTestPipeline(t, &fakeRasterizer{pages: pages}, &fakeEngine{}, 0)

	results, failures := pl.Run(context.Background(), []string{"a.pdf", "missing.pdf", "c.pdf"})
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Text != "alpha" || results[2].Text != "gamma" {
		t.Fatalf("surviving documents corrupted: %+v", results)
	}
	if results[1].Err == nil {
		t.Fatal("expected failure for missing.pdf")
	}
	if len(failures) != 1 {
		t.Fatalf("got %d failures, want 1", len(failures))
	}
	if failures[0].Path != "missing.pdf" {
		t.Fatalf("failure tagged with %q", failures[0].Path)
	}
	if !strings.Contains(failures[0].Error(), "missing.pdf") {
		t.Fatalf("diagnostic does not reference the path: %q", failures[0].Error())
	}
}

func TestRunCleansWorkspaces(t *testing.T) {
	pages := map[string][]string{"a.pdf": {"alpha"}, "b.pdf": {"beta"}}
	pl, root := newTestPipeline(t, &fakeRasterizer{pages: pages}, &fakeEngine{}, 2)

	pl.Run(context.Background(), []string{"a.pdf", "broken.pdf", "b.pdf"})

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read workspace root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("workspaces left behind: %v", entries)
	}
}

func TestCorruptPageStopsLoopKeepingText(t *testing.T) {
	pages := map[string][]string{"a.pdf": {"one ", "CORRUPT", "three"}}
	pl, _ := newTestPipeline(t, &fakeRasterizer{pages: pages}, &fakeEngine{}, 1)

	results, failures := pl.Run(context.Background(), []string{"a.pdf"})
	if len(failures) != 0 {
		t.Fatalf("corrupt page should not fail the document: %v", failures)
	}
	if results[0].Text != "one " {
		t.Fatalf("text = %q, want text recognized before the corrupt page", results[0].Text)
	}
}

func TestSessionInitFailure(t *testing.T) {
	pages := map[string][]string{"a.pdf": {"alpha"}}
	pl, _ := newTestPipeline(t, &fakeRasterizer{pages: pages}, &fakeEngine{initErr: errors.New("no tessdata")}, 1)

	results, failures := pl.Run(context.Background(), []string{"a.pdf"})
	if len(failures) != 1 || results[0].Err == nil {
		t.Fatalf("expected init failure to surface, got %+v / %v", results, failures)
	}
}

func TestRunCanceledContext(t *testing.T) {
	pages := map[string][]string{"a.pdf": {"alpha"}}
	pl, _ := newTestPipeline(t, &fakeRasterizer{pages: pages}, &fakeEngine{}, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, failures := pl.Run(ctx, []string{"a.pdf", "b.pdf"})
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if len(failures) != 2 {
		t.Fatalf("canceled run should fail unclaimed documents, got %v", failures)
	}
	for _, f := range failures {
		if !errors.Is(f, context.Canceled) {
			t.Fatalf("failure should wrap context.Canceled: %v", f)
		}
	}
}

func TestRunEmptyInput(t *testing.T) {
	pl, _ := newTestPipeline(t, &fakeRasterizer{}, &fakeEngine{}, 0)
	results, failures := pl.Run(context.Background(), nil)
	if len(results) != 0 || len(failures) != 0 {
		t.Fatalf("empty batch should be a no-op, got %v / %v", results, failures)
	}
}

func TestWorkerCountBounds(t *testing.T) {
	pl := New(Config{})
	if got := pl.workers(1); got != 1 {
		t.Fatalf("workers(1) = %d", got)
	}
	pl = New(Config{Workers: 8})
	if got := pl.workers(3); got != 3 {
		t.Fatalf("workers capped by input count: got %d, want 3", got)
	}
}
