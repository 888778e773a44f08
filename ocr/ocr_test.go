package ocr

import (
	"context"
	"testing"
)

func TestDefaultEngineIsNoop(t *testing.T) {
	engine := DefaultEngine()
	if engine.Name() != "noop" {
		t.Fatalf("expected noop default, got %q", engine.Name())
	}
	sess, err := engine.NewSession(Config{Language: "eng"})
	if err != nil {
		t.Fatalf("noop session: %v", err)
	}
	defer sess.Close()
	text, err := sess.Recognize(context.Background(), "missing.png")
	if err != nil || text != "" {
		t.Fatalf("noop recognize = (%q, %v), want empty", text, err)
	}
}

type stubEngine struct{}

func (stubEngine) Name() string                       { return "stub" }
func (stubEngine) NewSession(Config) (Session, error) { return noopSession{}, nil }

func TestSetDefaultEngine(t *testing.T) {
	orig := DefaultEngine()
	defer SetDefaultEngine(orig)

	SetDefaultEngine(stubEngine{})
	if DefaultEngine().Name() != "stub" {
		t.Fatalf("default engine not replaced")
	}
}
