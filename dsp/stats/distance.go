package stats

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch signals that two vectors of different lengths were
// compared. This is a programming fault, not a data condition: every vector
// pair reaching a distance function must share the same extraction contract.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// EuclideanDistance calculates the Euclidean (L2) distance between two vectors
func EuclideanDistance(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum), nil
}

// CosineSimilarity calculates cosine similarity between two vectors.
// The vectors are normalized internally by their magnitudes, so callers may
// pass raw feature vectors. A zero vector yields similarity 0.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	dotProduct := 0.0
	normA := 0.0
	normB := 0.0

	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
