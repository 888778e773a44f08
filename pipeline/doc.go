package pipeline

// Package pipeline implements the concurrent batch extraction pipeline: for a
// list of scanned document paths it drives the external rasterizer and an OCR
// engine over every input under a fixed-size worker pool, preserving input
// order in its results and isolating per-document failures from the batch.
