package similarity

// Package similarity provides three stateless document-similarity metrics:
// cosine similarity over numeric feature vectors, character-level Levenshtein
// distance, and Jaccard overlap of whitespace-delimited token sets. All
// functions are pure, never mutate their inputs, and are safe to call
// concurrently from any number of goroutines.
