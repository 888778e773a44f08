package raster

// Package raster drives the external rasterizer that renders document pages
// to image files. Process spawning sits behind a single narrow Runner
// interface so the pipeline never branches on platform details.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
)

// ErrExitStatus marks a rasterizer run that spawned correctly but exited
// non-zero.
var ErrExitStatus = errors.New("raster: non-zero exit status")

// Result holds the outcome of one external command run.
type Result struct {
	ExitCode int
	// Output is the combined stdout/stderr, populated only when capture was
	// requested.
	Output []byte
}

// Runner spawns an external process and waits for it to complete. A non-zero
// exit is reported through Result, not through the error; the error is
// reserved for spawn failures.
type Runner interface {
	Run(ctx context.Context, capture bool, name string, args ...string) (Result, error)
}

// ExecRunner is the os/exec backed Runner used outside of tests.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, capture bool, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var buf bytes.Buffer
	if capture {
		cmd.Stdout = &buf
		cmd.Stderr = &buf
	}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{ExitCode: exitErr.ExitCode(), Output: buf.Bytes()}, nil
		}
		return Result{ExitCode: -1}, fmt.Errorf("spawn %s: %w", name, err)
	}
	return Result{ExitCode: 0, Output: buf.Bytes()}, nil
}

// Rasterizer renders every page of a document to image files named after
// outPrefix. Pages form a dense 1-based sequence with no gaps; PagePath maps
// a page number to the file the rasterizer produced for it.
type Rasterizer interface {
	Rasterize(ctx context.Context, docPath, outPrefix string) error
	PagePath(outPrefix string, page int) string
}

// Poppler rasterizes PDFs by invoking poppler-utils' pdftoppm. Its stdout and
// stderr are discarded; success is exit code 0.
type Poppler struct {
	// Command is the pdftoppm executable, defaulting to "pdftoppm" on PATH.
	Command string
	// DPI is the render resolution, defaulting to 300.
	DPI int
	// Runner defaults to ExecRunner.
	Runner Runner
}

func (p *Poppler) command() string {
	if p.Command != "" {
		return p.Command
	}
	return "pdftoppm"
}

func (p *Poppler) dpi() int {
	if p.DPI > 0 {
		return p.DPI
	}
	return 300
}

func (p *Poppler) runner() Runner {
	if p.Runner != nil {
		return p.Runner
	}
	return ExecRunner{}
}

func (p *Poppler) Rasterize(ctx context.Context, docPath, outPrefix string) error {
	res, err := p.runner().Run(ctx, false, p.command(), "-png", "-r", strconv.Itoa(p.dpi()), docPath, outPrefix)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("%s exited with status %d: %w", p.command(), res.ExitCode, ErrExitStatus)
	}
	return nil
}

func (p *Poppler) PagePath(outPrefix string, page int) string {
	return fmt.Sprintf("%s-%d.png", outPrefix, page)
}
