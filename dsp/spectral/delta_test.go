package spectral

import (
	"math"
	"testing"
)

func TestDeltaConstantIsZero(t *testing.T) {
	frames := make([][]float64, 20)
	for i := range frames {
		frames[i] = []float64{3.5, -1.0, 0.25}
	}

	d := NewDelta()
	out, err := d.Compute(frames, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != len(frames) {
		t.Fatalf("got %d frames, want %d", len(out), len(frames))
	}
	for i, frame := range out {
		for c, v := range frame {
			if math.Abs(v) > 1e-12 {
				t.Errorf("frame %d coeff %d = %f, want 0 for constant input", i, c, v)
			}
		}
	}
}

func TestDeltaLinearRamp(t *testing.T) {
	// coefficient that rises by 2 per frame has a first derivative of 2
	frames := make([][]float64, 30)
	for i := range frames {
		frames[i] = []float64{float64(2 * i)}
	}

	d := NewDelta()
	out, err := d.Compute(frames, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// interior frames are unaffected by edge replication
	for i := 5; i < 25; i++ {
		if math.Abs(out[i][0]-2.0) > 1e-9 {
			t.Errorf("frame %d delta = %f, want 2.0", i, out[i][0])
		}
	}
}

func TestDeltaSecondOrder(t *testing.T) {
	frames := make([][]float64, 30)
	for i := range frames {
		frames[i] = []float64{float64(i)}
	}

	d := NewDelta()
	out, err := d.Compute(frames, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// the second derivative of a linear ramp is zero away from the edges
	for i := 10; i < 20; i++ {
		if math.Abs(out[i][0]) > 1e-9 {
			t.Errorf("frame %d delta-delta = %f, want 0", i, out[i][0])
		}
	}
}

func TestDeltaInvalidOrder(t *testing.T) {
	d := NewDelta()
	if _, err := d.Compute([][]float64{{1}}, 3); err == nil {
		t.Error("expected error for order 3")
	}
}

func TestDeltaEmptyInput(t *testing.T) {
	d := NewDelta()
	out, err := d.Compute(nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("got %d frames for empty input, want 0", len(out))
	}
}
