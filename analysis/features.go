package analysis

import (
	"fmt"

	"github.com/RyanBlaney/voicematch/analysis/config"
)

// RawFeatures holds the per-clip acoustic measurements computed by the
// extractor. Computed once per clip and consumed immediately; not persisted.
type RawFeatures struct {
	Duration   float64 `json:"duration"`    // seconds
	SampleRate int     `json:"sample_rate"` // Hz

	// Pitch statistics over voiced frames only
	PitchMean float64 `json:"pitch_mean"` // Hz
	PitchStd  float64 `json:"pitch_std"`
	PitchMin  float64 `json:"pitch_min"`
	PitchMax  float64 `json:"pitch_max"`

	SpectralCentroidMean  float64 `json:"spectral_centroid_mean"` // "brightness", Hz
	SpectralBandwidthMean float64 `json:"spectral_bandwidth_mean"`
	SpectralRolloffMean   float64 `json:"spectral_rolloff_mean"`

	RMSMean float64 `json:"rms_mean"` // "energy"
	RMSStd  float64 `json:"rms_std"`

	ZeroCrossingRateMean float64 `json:"zero_crossing_rate_mean"`

	// Fallback is non-empty when pitch statistics come from the unvoiced
	// defaults instead of the clip itself.
	Fallback FallbackReason `json:"fallback,omitempty"`
}

// TimbreVector is a fixed-length acoustic fingerprint: the time averages of
// an MFCC matrix and its first and second derivatives, concatenated in that
// order. The layout is a hard contract shared with stored catalog vectors,
// so every vector carries the layout version it was extracted under.
type TimbreVector struct {
	Version      int       `json:"version"`
	Coefficients []float64 `json:"coefficients"`
}

// Validate checks the vector against the current layout contract
func (v TimbreVector) Validate() error {
	if v.Version != config.VectorVersion {
		return fmt.Errorf("%w: vector version %d, current %d",
			ErrDimensionMismatch, v.Version, config.VectorVersion)
	}
	if len(v.Coefficients) != config.VectorLength {
		return fmt.Errorf("%w: vector length %d, expected %d",
			ErrDimensionMismatch, len(v.Coefficients), config.VectorLength)
	}
	return nil
}

// Compatible reports whether two vectors may be compared
func (v TimbreVector) Compatible(other TimbreVector) error {
	if err := v.Validate(); err != nil {
		return err
	}
	return other.Validate()
}
