package tonal

import (
	"fmt"
	"math"
)

// PitchTrackerParams contains parameters for frame-wise pitch tracking
type PitchTrackerParams struct {
	SampleRate int `json:"sample_rate"`
	WindowSize int `json:"window_size"`
	HopSize    int `json:"hop_size"`

	// Frequency range constraints
	MinFreq float64 `json:"min_freq"` // Minimum frequency (Hz)
	MaxFreq float64 `json:"max_freq"` // Maximum frequency (Hz)

	// Voicing decision
	VoicingThreshold float64 `json:"voicing_threshold"` // Normalized ACF peak threshold
}

// PitchTracker estimates the dominant pitch of each analysis frame using
// normalized autocorrelation (ACF) with parabolic peak interpolation.
//
// References:
//   - Rabiner, L.R. (1977). "On the use of autocorrelation analysis for pitch detection"
//
// Frames whose strongest in-band autocorrelation peak falls below the voicing
// threshold are reported as 0 Hz (unvoiced).
type PitchTracker struct {
	params PitchTrackerParams
}

// NewPitchTracker creates a pitch tracker with sensible defaults for vocal
// analysis: a 60-500 Hz search band covering sung fundamentals.
func NewPitchTracker(sampleRate int) *PitchTracker {
	return &PitchTracker{
		params: PitchTrackerParams{
			SampleRate:       sampleRate,
			WindowSize:       2048,
			HopSize:          512,
			MinFreq:          60.0,
			MaxFreq:          500.0,
			VoicingThreshold: 0.3,
		},
	}
}

// NewPitchTrackerWithParams creates a pitch tracker with custom parameters
func NewPitchTrackerWithParams(params PitchTrackerParams) *PitchTracker {
	return &PitchTracker{params: params}
}

// Track computes the per-frame pitch contour for the whole signal.
// The returned slice has one entry per frame; unvoiced frames are 0.
func (pt *PitchTracker) Track(signal []float64) ([]float64, error) {
	if len(signal) < pt.params.WindowSize {
		return nil, fmt.Errorf("signal too short for pitch tracking: %d < %d",
			len(signal), pt.params.WindowSize)
	}

	numFrames := (len(signal)-pt.params.WindowSize)/pt.params.HopSize + 1
	pitches := make([]float64, numFrames)

	for i := range numFrames {
		start := i * pt.params.HopSize
		frame := signal[start : start+pt.params.WindowSize]
		pitches[i] = pt.trackFrame(frame)
	}

	return pitches, nil
}

// TrackFrame estimates the dominant pitch of a single frame, 0 if unvoiced.
func (pt *PitchTracker) TrackFrame(frame []float64) (float64, error) {
	if len(frame) < pt.maxLag()+2 {
		return 0, fmt.Errorf("frame too short for pitch tracking: %d", len(frame))
	}
	return pt.trackFrame(frame), nil
}

func (pt *PitchTracker) trackFrame(frame []float64) float64 {
	minLag := pt.minLag()
	maxLag := pt.maxLag()
	if maxLag+1 >= len(frame) {
		maxLag = len(frame) - 2
	}
	if minLag < 1 {
		minLag = 1
	}

	energy := 0.0
	for _, s := range frame {
		energy += s * s
	}
	if energy == 0 {
		return 0
	}

	// Normalized autocorrelation over the candidate lag range
	correlations := make([]float64, maxLag+2)
	for lag := minLag - 1; lag <= maxLag+1; lag++ {
		sum := 0.0
		for n := 0; n+lag < len(frame); n++ {
			sum += frame[n] * frame[n+lag]
		}
		correlations[lag-(minLag-1)] = sum / energy
	}

	// Pick the strongest local maximum inside the search band
	bestIdx := -1
	bestCorr := pt.params.VoicingThreshold
	for i := 1; i < len(correlations)-1; i++ {
		corr := correlations[i]
		if corr > correlations[i-1] && corr > correlations[i+1] && corr > bestCorr {
			bestCorr = corr
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return 0
	}

	lag := float64(bestIdx+minLag-1) + parabolicOffset(correlations, bestIdx)
	if lag <= 0 {
		return 0
	}

	frequency := float64(pt.params.SampleRate) / lag
	if frequency < pt.params.MinFreq || frequency > pt.params.MaxFreq {
		return 0
	}
	return frequency
}

func (pt *PitchTracker) minLag() int {
	return int(math.Floor(float64(pt.params.SampleRate) / pt.params.MaxFreq))
}

func (pt *PitchTracker) maxLag() int {
	return int(math.Ceil(float64(pt.params.SampleRate) / pt.params.MinFreq))
}

// parabolicOffset refines a peak location with parabolic interpolation over
// the peak and its immediate neighbors. Returns a fractional offset in [-1, 1].
func parabolicOffset(data []float64, peakIdx int) float64 {
	if peakIdx <= 0 || peakIdx >= len(data)-1 {
		return 0
	}
	y1 := data[peakIdx-1]
	y2 := data[peakIdx]
	y3 := data[peakIdx+1]
	denom := 2.0 * (2.0*y2 - y1 - y3)
	if denom == 0 {
		return 0
	}
	offset := (y3 - y1) / denom
	if offset > 1 || offset < -1 {
		return 0
	}
	return offset
}

// GetParams returns the current parameters
func (pt *PitchTracker) GetParams() PitchTrackerParams {
	return pt.params
}
