package spectral

import (
	"math"
	"testing"

	"github.com/RyanBlaney/voicematch/dsp/windowing"
)

func testSine(freq float64, sampleRate, samples int) []float64 {
	signal := make([]float64, samples)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return signal
}

func TestSTFTShape(t *testing.T) {
	const (
		sampleRate = 16000
		windowSize = 2048
		hopSize    = 512
	)
	signal := testSine(440.0, sampleRate, sampleRate)

	stft := NewSTFT()
	result, err := stft.ComputeWithWindow(signal, windowSize, hopSize, sampleRate,
		windowing.NewHann(windowSize, false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantFrames := (len(signal)-windowSize)/hopSize + 1
	if result.TimeFrames != wantFrames || len(result.Magnitude) != wantFrames {
		t.Errorf("frames = %d, want %d", result.TimeFrames, wantFrames)
	}
	if result.FreqBins != windowSize/2+1 {
		t.Errorf("freq bins = %d, want %d", result.FreqBins, windowSize/2+1)
	}
}

func TestSTFTPeakBin(t *testing.T) {
	const (
		sampleRate = 16000
		windowSize = 2048
		hopSize    = 512
		freq       = 1000.0
	)
	signal := testSine(freq, sampleRate, sampleRate/2)

	stft := NewSTFT()
	result, err := stft.ComputeWithWindow(signal, windowSize, hopSize, sampleRate,
		windowing.NewHann(windowSize, false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	frame := result.Magnitude[result.TimeFrames/2]
	peakBin := 0
	for i, m := range frame {
		if m > frame[peakBin] {
			peakBin = i
		}
	}
	peakFreq := float64(peakBin) * result.FreqResolution
	if math.Abs(peakFreq-freq) > result.FreqResolution*2 {
		t.Errorf("peak at %.1f Hz, want near %.1f", peakFreq, freq)
	}
}

func TestSTFTEmptySignal(t *testing.T) {
	stft := NewSTFT()
	if _, err := stft.ComputeWithWindow(nil, 2048, 512, 16000, nil); err == nil {
		t.Error("expected error for empty signal")
	}
}

func TestMFCCComputeFrames(t *testing.T) {
	const (
		sampleRate = 16000
		windowSize = 2048
		hopSize    = 512
	)
	signal := testSine(220.0, sampleRate, sampleRate)

	stft := NewSTFT()
	result, err := stft.ComputeWithWindow(signal, windowSize, hopSize, sampleRate,
		windowing.NewHann(windowSize, false))
	if err != nil {
		t.Fatalf("stft error: %v", err)
	}

	mfcc := NewMFCC(sampleRate, 20)
	frames, err := mfcc.ComputeFrames(result.Magnitude)
	if err != nil {
		t.Fatalf("mfcc error: %v", err)
	}
	if len(frames) != result.TimeFrames {
		t.Errorf("got %d mfcc frames, want %d", len(frames), result.TimeFrames)
	}
	for i, frame := range frames {
		if len(frame) != 20 {
			t.Fatalf("frame %d has %d coefficients, want 20", i, len(frame))
		}
		for c, v := range frame {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("frame %d coeff %d is %f", i, c, v)
			}
		}
	}
}

func TestSpectralCentroidSilence(t *testing.T) {
	sc := NewSpectralCentroid(16000)
	if got := sc.Compute(make([]float64, 1025)); got != 0 {
		t.Errorf("silent centroid = %f, want 0", got)
	}
}
