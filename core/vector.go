package core

import "math"

// Dot computes the inner product of two vectors. For unit-norm vectors this
// equals their cosine similarity. Mismatched lengths score zero.
func Dot(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Norm computes the L2 norm of a vector.
func Norm(v []float32) float32 {
	var sumSquares float64
	for _, x := range v {
		sumSquares += float64(x) * float64(x)
	}
	return float32(math.Sqrt(sumSquares))
}

// NormalizeL2 divides a vector by its own L2 norm in place, yielding a unit
// vector. Returns ErrZeroVector for empty or all-zero input, leaving the
// vector untouched.
func NormalizeL2(v []float32) error {
	norm := Norm(v)
	if len(v) == 0 || norm == 0 {
		return ErrZeroVector
	}
	for i := range v {
		v[i] /= norm
	}
	return nil
}
