package stats

import (
	"errors"
	"math"
	"testing"
)

func TestCosineSimilaritySelf(t *testing.T) {
	v := []float64{1.0, 2.0, 3.0, -4.0}
	sim, err := CosineSimilarity(v, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(sim-1.0) > 1e-9 {
		t.Errorf("self similarity = %f, want 1.0", sim)
	}
}

func TestCosineSimilaritySymmetric(t *testing.T) {
	a := []float64{0.2, -1.5, 3.0}
	b := []float64{1.1, 0.4, -0.9}
	ab, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := CosineSimilarity(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(ab-ba) > 1e-12 {
		t.Errorf("similarity not symmetric: %f vs %f", ab, ba)
	}
}

func TestCosineSimilarityOrthogonalAndOpposite(t *testing.T) {
	a := []float64{1, 0}
	b := []float64{0, 1}
	c := []float64{-1, 0}

	sim, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(sim) > 1e-12 {
		t.Errorf("orthogonal similarity = %f, want 0", sim)
	}

	sim, err = CosineSimilarity(a, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(sim+1.0) > 1e-12 {
		t.Errorf("anti-parallel similarity = %f, want -1", sim)
	}
}

func TestCosineSimilarityZeroVector(t *testing.T) {
	sim, err := CosineSimilarity([]float64{0, 0, 0}, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim != 0 {
		t.Errorf("zero vector similarity = %f, want 0", sim)
	}
}

func TestCosineSimilarityDimensionMismatch(t *testing.T) {
	_, err := CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestEuclideanDistance(t *testing.T) {
	d, err := EuclideanDistance([]float64{0, 0, 0}, []float64{3, 4, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(d-5.0) > 1e-12 {
		t.Errorf("distance = %f, want 5", d)
	}

	_, err = EuclideanDistance([]float64{1}, []float64{1, 2})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(s.Mean-5.0) > 1e-12 {
		t.Errorf("mean = %f, want 5", s.Mean)
	}
	if math.Abs(s.Std-2.0) > 1e-12 {
		t.Errorf("std = %f, want 2 (population)", s.Std)
	}
	if s.Min != 2 || s.Max != 9 {
		t.Errorf("min/max = %f/%f, want 2/9", s.Min, s.Max)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Mean != 0 || s.Std != 0 || s.Min != 0 || s.Max != 0 {
		t.Errorf("empty summary = %+v, want zeros", s)
	}
}

func TestFilterPositive(t *testing.T) {
	got := FilterPositive([]float64{0, 120, -1, 200, 0})
	if len(got) != 2 || got[0] != 120 || got[1] != 200 {
		t.Errorf("FilterPositive = %v, want [120 200]", got)
	}
}
