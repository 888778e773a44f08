// Command batchocr extracts text from a batch of scanned PDF documents.
//
// Document paths are given as arguments. Output is a JSON array of strings on
// stdout, one entry per document in argument order; entries for failed
// documents are empty. Each failure additionally produces one diagnostic line
// on stderr, and the exit status is non-zero when any document failed.
//
// The rasterizer location and trained-data directory come from POPPLER_PATH
// and TESSDATA_PREFIX (a .env file in the working directory is honored).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/wudi/ocrkit/observability"
	"github.com/wudi/ocrkit/ocr"
	"github.com/wudi/ocrkit/ocr/tesseract"
	"github.com/wudi/ocrkit/pipeline"
	"github.com/wudi/ocrkit/raster"
)

type options struct {
	paths    []string
	lang     string
	tessdata string
	poppler  string
	dpi      int
	workers  int
	verbose  bool
}

func main() {
	_ = godotenv.Load()

	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "batchocr: %v\n", err)
		os.Exit(2)
	}
	failed, err := run(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "batchocr: %v\n", err)
		os.Exit(2)
	}
	if failed {
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: batchocr [flags] <document>...\n")
		flag.PrintDefaults()
	}
	lang := flag.String("lang", "pol", "Recognition language passed to the OCR engine")
	tessdata := flag.String("tessdata", os.Getenv("TESSDATA_PREFIX"), "Tesseract trained-data directory")
	poppler := flag.String("poppler", os.Getenv("POPPLER_PATH"), "Directory containing the pdftoppm executable")
	dpi := flag.Int("dpi", 300, "Rasterization resolution")
	workers := flag.Int("workers", 0, "Worker pool size (0 = one per CPU, capped at the batch size)")
	verbose := flag.Bool("v", false, "Log per-document progress to stderr")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return options{}, fmt.Errorf("no documents given")
	}
	opts.paths = flag.Args()
	opts.lang = *lang
	opts.tessdata = *tessdata
	opts.poppler = *poppler
	opts.dpi = *dpi
	opts.workers = *workers
	opts.verbose = *verbose
	return opts, nil
}

func run(opts options) (failed bool, err error) {
	logger := observability.Logger(observability.NopLogger{})
	if opts.verbose {
		logger = observability.NewWriterLogger(os.Stderr)
	}

	rz := &raster.Poppler{DPI: opts.dpi}
	if opts.poppler != "" {
		rz.Command = filepath.Join(opts.poppler, "pdftoppm")
	}

	p := pipeline.New(pipeline.Config{
		Engine:     tesseract.NewEngine(),
		Rasterizer: rz,
		OCR:        ocr.Config{TessdataDir: opts.tessdata, Language: opts.lang},
		Workers:    opts.workers,
		Logger:     logger,
	})

	results, failures := p.Run(context.Background(), opts.paths)
	for _, f := range failures {
		fmt.Fprintln(os.Stderr, f.Error())
	}
	if err := writeTexts(os.Stdout, results); err != nil {
		return len(failures) > 0, err
	}
	return len(failures) > 0, nil
}

// writeTexts emits the positionally aligned JSON array; failed entries stay
// empty so downstream consumers can reconcile against the diagnostics.
func writeTexts(w io.Writer, results []pipeline.Result) error {
	texts := make([]string, len(results))
	for i, r := range results {
		if r.Err == nil {
			texts[i] = r.Text
		}
	}
	data, err := json.Marshal(texts)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
