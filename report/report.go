package report

// Package report renders pairwise similarity results as an XLSX workbook so
// archival decisions can be reviewed outside the toolchain.

import (
	"fmt"
	"os"
	"sort"

	"github.com/xuri/excelize/v2"
)

// Matrix is a symmetric pairwise score table over a set of documents.
// Scores[i][j] is the similarity of Names[i] and Names[j].
type Matrix struct {
	Names  []string
	Scores [][]float64
}

// Candidate is one document pair at or above the duplicate threshold.
type Candidate struct {
	A, B  string
	Score float64
}

// Candidates returns the i<j pairs scoring at or above threshold, highest
// first.
func (m Matrix) Candidates(threshold float64) []Candidate {
	var out []Candidate
	for i := range m.Names {
		for j := i + 1; j < len(m.Names); j++ {
			if m.Scores[i][j] >= threshold {
				out = append(out, Candidate{A: m.Names[i], B: m.Names[j], Score: m.Scores[i][j]})
			}
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	return out
}

const (
	scoreSheet     = "Scores"
	candidateSheet = "Candidates"
)

// XLSX returns a workbook with the full score matrix on one sheet and the
// duplicate candidates over threshold on another.
func XLSX(m Matrix, threshold float64) ([]byte, error) {
	if len(m.Scores) != len(m.Names) {
		return nil, fmt.Errorf("report: %d score rows for %d names", len(m.Scores), len(m.Names))
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", scoreSheet); err != nil {
		return nil, err
	}
	for i, name := range m.Names {
		cell, _ := excelize.CoordinatesToCellName(i+2, 1)
		_ = f.SetCellValue(scoreSheet, cell, name)
		cell, _ = excelize.CoordinatesToCellName(1, i+2)
		_ = f.SetCellValue(scoreSheet, cell, name)
	}
	for i, row := range m.Scores {
		if len(row) != len(m.Names) {
			return nil, fmt.Errorf("report: score row %d has %d columns for %d names", i, len(row), len(m.Names))
		}
		for j, score := range row {
			cell, _ := excelize.CoordinatesToCellName(j+2, i+2)
			_ = f.SetCellValue(scoreSheet, cell, score)
		}
	}

	if _, err := f.NewSheet(candidateSheet); err != nil {
		return nil, err
	}
	for i, h := range []string{"Document A", "Document B", "Score"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(candidateSheet, cell, h)
	}
	for i, c := range m.Candidates(threshold) {
		cellA, _ := excelize.CoordinatesToCellName(1, i+2)
		cellB, _ := excelize.CoordinatesToCellName(2, i+2)
		cellS, _ := excelize.CoordinatesToCellName(3, i+2)
		_ = f.SetCellValue(candidateSheet, cellA, c.A)
		_ = f.SetCellValue(candidateSheet, cellB, c.B)
		_ = f.SetCellValue(candidateSheet, cellS, c.Score)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteXLSX renders the workbook and writes it to path.
func WriteXLSX(path string, m Matrix, threshold float64) error {
	data, err := XLSX(m, threshold)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
