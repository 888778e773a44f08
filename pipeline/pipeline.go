package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/wudi/ocrkit/observability"
	"github.com/wudi/ocrkit/ocr"
	"github.com/wudi/ocrkit/raster"
	"github.com/wudi/ocrkit/workspace"
)

// Config assembles the collaborators for a batch run. Zero values select the
// defaults noted per field.
type Config struct {
	// Engine produces per-document OCR sessions. Nil selects
	// ocr.DefaultEngine().
	Engine ocr.Engine
	// Rasterizer renders document pages to images. Nil selects a Poppler
	// rasterizer with default command and resolution.
	Rasterizer raster.Rasterizer
	// OCR carries the trained-data directory and recognition language handed
	// to every session.
	OCR ocr.Config
	// Workers caps the pool size. Zero means min(GOMAXPROCS, len(paths)).
	Workers int
	// WorkspaceRoot is the parent for per-document scratch directories. Empty
	// means the OS temporary directory.
	WorkspaceRoot string
	// Logger defaults to observability.NopLogger.
	Logger observability.Logger
}

// Result is the per-document outcome, positionally aligned to the input list.
// Exactly one of Text and Err is meaningful.
type Result struct {
	Path string
	Text string
	Err  error
}

// ItemError tags a per-document failure with the originating path.
type ItemError struct {
	Path string
	Err  error
}

func (e ItemError) Error() string { return fmt.Sprintf("failed to process %s: %v", e.Path, e.Err) }

func (e ItemError) Unwrap() error { return e.Err }

// Pipeline extracts text from batches of scanned documents by rasterizing
// each one externally and feeding the rendered pages through an OCR session.
type Pipeline struct {
	cfg Config
}

func New(cfg Config) *Pipeline {
	if cfg.Logger == nil {
		cfg.Logger = observability.NopLogger{}
	}
	return &Pipeline{cfg: cfg}
}

func (p *Pipeline) engine() ocr.Engine {
	if p.cfg.Engine != nil {
		return p.cfg.Engine
	}
	return ocr.DefaultEngine()
}

func (p *Pipeline) rasterizer() raster.Rasterizer {
	if p.cfg.Rasterizer != nil {
		return p.cfg.Rasterizer
	}
	return &raster.Poppler{}
}

func (p *Pipeline) workers(n int) int {
	w := p.cfg.Workers
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	return w
}

// Run processes every path and returns one Result per input, in input order,
// regardless of completion order. Failures are isolated to their document and
// additionally collected into the returned ItemError list; Run never fails
// the batch as a whole.
//
// Workers claim indices from a shared atomic cursor, so documents with wildly
// different page counts still balance across the pool. Canceling ctx stops
// unclaimed documents from being processed; their results carry the context
// error.
func (p *Pipeline) Run(ctx context.Context, paths []string) ([]Result, []ItemError) {
	results := make([]Result, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	var (
		cursor   atomic.Int64
		mu       sync.Mutex
		failures []ItemError
		wg       sync.WaitGroup
	)
	fail := func(i int, err error) {
		results[i] = Result{Path: paths[i], Err: err}
		mu.Lock()
		failures = append(failures, ItemError{Path: paths[i], Err: err})
		mu.Unlock()
		p.cfg.Logger.Error("document failed",
			observability.String("path", paths[i]),
			observability.Error("err", err))
	}

	workers := p.workers(len(paths))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(cursor.Add(1)) - 1
				if i >= len(paths) {
					return
				}
				if err := ctx.Err(); err != nil {
					fail(i, err)
					continue
				}
				text, err := p.extractOne(ctx, paths[i])
				if err != nil {
					fail(i, err)
					continue
				}
				// Each index is written by exactly one worker; no lock needed.
				results[i] = Result{Path: paths[i], Text: text}
			}
		}()
	}
	wg.Wait()
	return results, failures
}

// extractOne rasterizes a single document into a private scratch workspace
// and recognizes its pages as a dense 1-based sequence. The workspace is
// released on every exit path; each page image is deleted right after
// recognition to bound disk usage.
func (p *Pipeline) extractOne(ctx context.Context, docPath string) (string, error) {
	ws, err := workspace.New(p.cfg.WorkspaceRoot)
	if err != nil {
		return "", err
	}
	defer func() {
		if rerr := ws.Release(); rerr != nil {
			p.cfg.Logger.Warn("workspace cleanup failed",
				observability.String("workspace", ws.Path()),
				observability.Error("err", rerr))
		}
	}()

	rz := p.rasterizer()
	prefix := filepath.Join(ws.Path(), "page")
	if err := rz.Rasterize(ctx, docPath, prefix); err != nil {
		return "", fmt.Errorf("rasterize: %w", err)
	}

	sess, err := p.engine().NewSession(p.cfg.OCR)
	if err != nil {
		return "", fmt.Errorf("init ocr session: %w", err)
	}
	defer sess.Close()

	var text strings.Builder
	pages := 0
	for n := 1; ; n++ {
		page := rz.PagePath(prefix, n)
		if _, err := os.Stat(page); err != nil {
			break
		}
		out, err := sess.Recognize(ctx, page)
		if err != nil {
			// An unreadable page ends this document's page loop; text
			// recognized so far is kept.
			p.cfg.Logger.Warn("page unreadable",
				observability.String("path", docPath),
				observability.Int("page", n),
				observability.Error("err", err))
			break
		}
		text.WriteString(out)
		pages++
		_ = os.Remove(page)
	}
	p.cfg.Logger.Debug("document extracted",
		observability.String("path", docPath),
		observability.Int("pages", pages))
	return text.String(), nil
}
