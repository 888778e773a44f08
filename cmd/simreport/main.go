// Command simreport scores previously extracted documents pairwise and
// writes the resulting similarity matrix and duplicate candidates to an XLSX
// workbook. Inputs are plain-text files produced by batchocr (or any other
// extraction step).
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/wudi/ocrkit/report"
	"github.com/wudi/ocrkit/similarity"
)

type options struct {
	paths     []string
	out       string
	threshold float64
	metric    string
}

func main() {
	_ = godotenv.Load()

	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "simreport: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "simreport: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: simreport [flags] <text file>... | -dir <directory>\n")
		flag.PrintDefaults()
	}
	dir := flag.String("dir", "", "Score every .txt file in this directory")
	out := flag.String("o", "report.xlsx", "Output workbook path")
	threshold := flag.Float64("threshold", 0.8, "Duplicate candidate threshold")
	metric := flag.String("metric", "token", "Similarity metric: token or edit")
	flag.Parse()

	opts.paths = flag.Args()
	if *dir != "" {
		globbed, err := filepath.Glob(filepath.Join(*dir, "*.txt"))
		if err != nil {
			return options{}, err
		}
		sort.Strings(globbed)
		opts.paths = append(opts.paths, globbed...)
	}
	if len(opts.paths) < 2 {
		flag.Usage()
		return options{}, fmt.Errorf("need at least two documents")
	}
	if *metric != "token" && *metric != "edit" {
		return options{}, fmt.Errorf("unknown metric %q", *metric)
	}
	opts.out = *out
	opts.threshold = *threshold
	opts.metric = *metric
	return opts, nil
}

func run(opts options) error {
	texts := make([]string, len(opts.paths))
	for i, p := range opts.paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		texts[i] = string(data)
	}

	m, err := scoreAll(texts, opts.paths, opts.metric)
	if err != nil {
		return err
	}
	if err := report.WriteXLSX(opts.out, m, opts.threshold); err != nil {
		return err
	}

	for _, c := range m.Candidates(opts.threshold) {
		fmt.Printf("%.4f\t%s\t%s\n", c.Score, c.A, c.B)
	}
	return nil
}

// scoreAll fills the symmetric pairwise matrix, one goroutine per row pair,
// bounded to the CPU count. Matrix cells are disjoint per pair so no locking
// is needed.
func scoreAll(texts, names []string, metric string) (report.Matrix, error) {
	n := len(texts)
	scores := make([][]float64, n)
	for i := range scores {
		scores[i] = make([]float64, n)
		scores[i][i] = 1
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			i, j := i, j
			g.Go(func() error {
				s, err := score(texts[i], texts[j], metric)
				if err != nil {
					return fmt.Errorf("%s vs %s: %w", names[i], names[j], err)
				}
				scores[i][j] = s
				scores[j][i] = s
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return report.Matrix{}, err
	}
	return report.Matrix{Names: names, Scores: scores}, nil
}

func score(a, b string, metric string) (float64, error) {
	switch metric {
	case "edit":
		return editSimilarity(a, b)
	default:
		return similarity.TokenSimilarity(a, b), nil
	}
}

// editSimilarity normalizes Levenshtein distance into [0, 1] so both metrics
// share the threshold convention.
func editSimilarity(a, b string) (float64, error) {
	d, err := similarity.Distance(a, b)
	if err != nil {
		return 0, err
	}
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1, nil
	}
	return 1 - float64(d)/float64(longest), nil
}
