package spectral

import (
	"fmt"
)

// Delta computes time-derivatives of framed feature matrices using local
// least-squares slope estimation over a sliding window. First-order deltas
// capture feature velocity, second-order deltas capture acceleration.
type Delta struct {
	width int // Window width, must be odd and >= 3
}

// NewDelta creates a delta computer with the default window width of 9 frames
func NewDelta() *Delta {
	return &Delta{width: 9}
}

// NewDeltaWithWidth creates a delta computer with a custom window width
func NewDeltaWithWidth(width int) (*Delta, error) {
	if width < 3 || width%2 == 0 {
		return nil, fmt.Errorf("delta width must be odd and >= 3, got %d", width)
	}
	return &Delta{width: width}, nil
}

// Compute calculates the time-derivative of a feature matrix indexed
// [frame][coefficient]. Order 1 returns the first derivative, order 2 the
// second. The output has the same shape as the input; edges are handled by
// replicating the first and last frames.
func (d *Delta) Compute(features [][]float64, order int) ([][]float64, error) {
	if order < 1 || order > 2 {
		return nil, fmt.Errorf("delta order must be 1 or 2, got %d", order)
	}

	result := features
	var err error
	for range order {
		result, err = d.computeFirstOrder(result)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (d *Delta) computeFirstOrder(features [][]float64) ([][]float64, error) {
	numFrames := len(features)
	if numFrames == 0 {
		return [][]float64{}, nil
	}

	numCoeffs := len(features[0])
	for t, frame := range features {
		if len(frame) != numCoeffs {
			return nil, fmt.Errorf("ragged feature matrix at frame %d: %d vs %d coefficients", t, len(frame), numCoeffs)
		}
	}

	halfWidth := d.width / 2

	// Normalization term: 2 * sum(n^2) for n in 1..halfWidth
	norm := 0.0
	for n := 1; n <= halfWidth; n++ {
		norm += float64(n * n)
	}
	norm *= 2.0

	deltas := make([][]float64, numFrames)

	for t := range numFrames {
		deltas[t] = make([]float64, numCoeffs)

		for k := range numCoeffs {
			sum := 0.0
			for n := 1; n <= halfWidth; n++ {
				forward := clampFrameIndex(t+n, numFrames)
				backward := clampFrameIndex(t-n, numFrames)
				sum += float64(n) * (features[forward][k] - features[backward][k])
			}
			deltas[t][k] = sum / norm
		}
	}

	return deltas, nil
}

// clampFrameIndex replicates edge frames for out-of-range indices
func clampFrameIndex(idx, numFrames int) int {
	if idx < 0 {
		return 0
	}
	if idx >= numFrames {
		return numFrames - 1
	}
	return idx
}
