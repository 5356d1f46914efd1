package analysis

import (
	"github.com/RyanBlaney/voicematch/analysis/config"
)

// NormalizedFeatures maps each raw measurement onto a bounded comparable
// scale using fixed reference ranges. Normalization is a pure function of
// one clip's RawFeatures; no calibration against other requests.
type NormalizedFeatures struct {
	// Profile-matching coordinates, each roughly in [0,1]
	Pitch      float64 `json:"pitch"`      // pitch_mean / 500 Hz
	Brightness float64 `json:"brightness"` // centroid_mean / 5000 Hz
	Energy     float64 `json:"energy"`     // RMS mean, already in [0,1]

	// Display scores
	Clarity         float64 `json:"clarity"`          // [40,100]
	PitchStability  float64 `json:"pitch_stability"`  // [0,100]
	EnergyStability float64 `json:"energy_stability"` // [0,100]
	Stability       float64 `json:"stability"`        // [50,100]
	RangeScore      float64 `json:"range_score"`      // [0,100]
}

// Normalizer converts raw features to normalized features using the
// configured reference ranges and clamp bands.
type Normalizer struct {
	cfg *config.ScoringConfig
}

// NewNormalizer creates a normalizer. A nil config uses the defaults.
func NewNormalizer(cfg *config.ScoringConfig) *Normalizer {
	if cfg == nil {
		cfg = config.DefaultScoringConfig()
	}
	return &Normalizer{cfg: cfg}
}

// Normalize maps raw features to their bounded scales
func (n *Normalizer) Normalize(raw *RawFeatures) *NormalizedFeatures {
	cfg := n.cfg

	pitchStability := stabilityScore(raw.PitchStd, raw.PitchMean, 100.0)
	energyStability := stabilityScore(raw.RMSStd, raw.RMSMean, 50.0)

	centroidNorm := Clamp((raw.SpectralCentroidMean-cfg.CentroidOffset)/cfg.CentroidScale, 0, 100)
	zcrNorm := Clamp(raw.ZeroCrossingRateMean*cfg.ZCRScale, 0, 100)
	clarity := Clamp(cfg.ClarityCentroidWeight*centroidNorm+cfg.ClarityZCRWeight*zcrNorm,
		cfg.ClarityFloor, cfg.ScoreCeiling)

	stability := Clamp(0.5*pitchStability+0.5*energyStability,
		cfg.StabilityFloor, cfg.ScoreCeiling)

	rangeScore := Clamp((raw.PitchMax-raw.PitchMin)/cfg.RangeSpanDivisor*100, 0, 100)

	return &NormalizedFeatures{
		Pitch:           raw.PitchMean / cfg.PitchDivisor,
		Brightness:      raw.SpectralCentroidMean / cfg.BrightnessDivisor,
		Energy:          raw.RMSMean,
		Clarity:         clarity,
		PitchStability:  pitchStability,
		EnergyStability: energyStability,
		Stability:       stability,
		RangeScore:      rangeScore,
	}
}

// MatchCoordinates returns the 3-d point used for profile matching
func (f *NormalizedFeatures) MatchCoordinates() []float64 {
	return []float64{f.Pitch, f.Brightness, f.Energy}
}

// stabilityScore maps a coefficient of variation onto a 0-100 scale:
// 100 minus the cv times the penalty weight, floored at 0. A zero mean has
// no meaningful cv and scores the neutral 50.
func stabilityScore(std, mean, penalty float64) float64 {
	if mean == 0 {
		return 50
	}
	return Clamp(100-(std/mean)*penalty, 0, 100)
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
