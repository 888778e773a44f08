package similarity

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// accelMinLen is the vector length from which the float64 path hands its
// reductions to gonum; below it the fused loop wins on call overhead.
const accelMinLen = 64

// Cosine returns the cosine similarity of two equal-length float64 vectors,
// in [0, 1] for vectors with non-negative components. A zero-magnitude vector
// yields exactly 0 rather than a divide-by-zero.
//
// Equal lengths are a caller contract: Cosine panics on mismatched lengths,
// the same policy as gonum's floats.Dot.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("similarity: vector length mismatch")
	}
	if len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	if len(a) >= accelMinLen {
		dot = floats.Dot(a, b)
		na = floats.Dot(a, a)
		nb = floats.Dot(b, b)
	} else {
		// One pass, three fused reductions.
		for i := range a {
			dot += a[i] * b[i]
			na += a[i] * a[i]
			nb += b[i] * b[i]
		}
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Cosine32 is the reduced-precision variant of Cosine for embeddings produced
// in single precision. It shares Cosine's zero-vector guard and equal-length
// contract.
func Cosine32(a, b []float32) float32 {
	if len(a) != len(b) {
		panic("similarity: vector length mismatch")
	}
	var dot, na, nb float32
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(na))) * float32(math.Sqrt(float64(nb))))
}
