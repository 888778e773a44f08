package ocr

import "context"

// Config carries the engine settings fixed for the lifetime of one session.
type Config struct {
	// TessdataDir is an optional path to the engine's trained-data directory.
	// Empty means the engine's own default lookup applies.
	TessdataDir string
	// Language is the recognition language identifier (e.g. "pol", "eng").
	Language string
}

// Engine creates recognition sessions. Implementations must be safe for
// concurrent use; the sessions they hand out need not be.
type Engine interface {
	Name() string
	// NewSession initializes one recognition session. A session is scoped to a
	// single document: it consumes that document's rendered pages in order and
	// must be closed after the last page.
	NewSession(cfg Config) (Session, error)
}

// Session recognizes one page image at a time. A session holds engine state
// that is not assumed to be shareable across goroutines; each pipeline worker
// opens its own.
type Session interface {
	// Recognize runs OCR over the image file at path and returns the
	// recognized UTF-8 text, which may be empty.
	Recognize(ctx context.Context, path string) (string, error)
	// Close finalizes the session and releases engine resources.
	Close() error
}

var defaultEngine Engine = noopEngine{}

// DefaultEngine returns the process-wide default OCR engine. Importing the
// tesseract subpackage replaces the initial no-op engine.
func DefaultEngine() Engine {
	return defaultEngine
}

// SetDefaultEngine sets the process-wide default OCR engine.
func SetDefaultEngine(engine Engine) {
	defaultEngine = engine
}

type noopEngine struct{}

func (noopEngine) Name() string { return "noop" }

func (noopEngine) NewSession(Config) (Session, error) { return noopSession{}, nil }

type noopSession struct{}

func (noopSession) Recognize(context.Context, string) (string, error) { return "", nil }
func (noopSession) Close() error                                      { return nil }
