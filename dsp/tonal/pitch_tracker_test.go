package tonal

import (
	"math"
	"testing"
)

func sineWave(freq float64, sampleRate, samples int) []float64 {
	signal := make([]float64, samples)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return signal
}

func TestTrackFrameSine(t *testing.T) {
	const sampleRate = 16000
	tracker := NewPitchTracker(sampleRate)

	for _, freq := range []float64{110.0, 220.0, 330.0} {
		frame := sineWave(freq, sampleRate, 2048)
		pitch, err := tracker.TrackFrame(frame)
		if err != nil {
			t.Fatalf("freq %.0f: unexpected error: %v", freq, err)
		}
		if math.Abs(pitch-freq) > freq*0.05 {
			t.Errorf("freq %.0f: tracked %.2f, want within 5%%", freq, pitch)
		}
	}
}

func TestTrackFrameSilence(t *testing.T) {
	tracker := NewPitchTracker(16000)
	pitch, err := tracker.TrackFrame(make([]float64, 2048))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pitch != 0 {
		t.Errorf("silent frame pitch = %f, want 0 (unvoiced)", pitch)
	}
}

func TestTrackOutOfBandRejected(t *testing.T) {
	const sampleRate = 16000
	tracker := NewPitchTracker(sampleRate)

	// 1 kHz sits above the vocal search band
	frame := sineWave(1000.0, sampleRate, 2048)
	pitch, err := tracker.TrackFrame(frame)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pitch != 0 {
		t.Errorf("out-of-band pitch = %f, want 0", pitch)
	}
}

func TestTrackContour(t *testing.T) {
	const sampleRate = 16000
	tracker := NewPitchTracker(sampleRate)
	signal := sineWave(200.0, sampleRate, sampleRate) // 1 second

	pitches, err := tracker.Track(signal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantFrames := (len(signal)-2048)/512 + 1
	if len(pitches) != wantFrames {
		t.Fatalf("got %d frames, want %d", len(pitches), wantFrames)
	}
	voiced := 0
	for _, p := range pitches {
		if p > 0 {
			if math.Abs(p-200.0) > 10.0 {
				t.Errorf("voiced frame pitch %.2f, want near 200", p)
			}
			voiced++
		}
	}
	if voiced < wantFrames/2 {
		t.Errorf("only %d/%d frames voiced for a steady tone", voiced, wantFrames)
	}
}

func TestTrackTooShort(t *testing.T) {
	tracker := NewPitchTracker(16000)
	if _, err := tracker.Track(make([]float64, 100)); err == nil {
		t.Error("expected error for short signal")
	}
}
