package analysis

import (
	"fmt"
	"math/rand"

	"github.com/RyanBlaney/voicematch/analysis/config"
)

// Tier identifies a recommendation bucket
type Tier string

const (
	TierComfort   Tier = "comfortable"
	TierChallenge Tier = "challenge"
)

// Clarity labels, thresholded on the clarity score
const (
	ClarityExcellent = "excellent"
	ClarityGood      = "good"
	ClarityFair      = "fair"
	ClarityLow       = "low"
)

// Comfort-tier tag ladder (high-similarity end)
const (
	TagPerfectFit = "perfect fit"
	TagGreatFit   = "great fit"
	TagGoodFit    = "good fit"
)

// Challenge-tier tag ladder (low-similarity end)
const (
	TagSomewhatChallenging  = "somewhat challenging"
	TagVeryChallenging      = "very challenging"
	TagExtremelyChallenging = "extremely challenging"
)

// RadarPoint is one axis of the perceptual radar chart
type RadarPoint struct {
	Axis      string `json:"axis"`
	UserValue int    `json:"user_value"`
	Reference int    `json:"reference_value"`
	Ceiling   int    `json:"ceiling"`
}

// Synthesis holds the user-facing scores derived from one analysis
type Synthesis struct {
	Score     int          `json:"score"`     // 0-100
	Clarity   string       `json:"clarity"`   // label
	Stability string       `json:"stability"` // "NN%"
	Radar     []RadarPoint `json:"radar"`
}

// Synthesizer converts match results and normalized features into display
// labels and radar data. Aside from the injectable radar jitter, every
// output is a pure function of its inputs.
type Synthesizer struct {
	cfg *config.ScoringConfig
	rng *rand.Rand // nil disables radar jitter
}

// NewSynthesizer creates a synthesizer. Pass a seeded *rand.Rand to enable
// the cosmetic radar jitter, or nil for fully deterministic output.
func NewSynthesizer(cfg *config.ScoringConfig, rng *rand.Rand) *Synthesizer {
	if cfg == nil {
		cfg = config.DefaultScoringConfig()
	}
	return &Synthesizer{cfg: cfg, rng: rng}
}

// Synthesize builds the display scores for one analysis
func (s *Synthesizer) Synthesize(raw *RawFeatures, norm *NormalizedFeatures, match *SongMatch) *Synthesis {
	return &Synthesis{
		Score:     s.SimilarityScore(match.Similarity),
		Clarity:   s.ClarityLabel(norm.Clarity),
		Stability: fmt.Sprintf("%d%%", int(norm.Stability)),
		Radar:     s.Radar(raw, norm),
	}
}

// SimilarityScore converts a raw cosine similarity to the surfaced 0-100
// integer. Negative similarities floor at 0, never a negative percentage.
func (s *Synthesizer) SimilarityScore(similarity float64) int {
	return int(Clamp(similarity, 0, 1) * 100)
}

// ClarityLabel buckets a clarity score into its display label
func (s *Synthesizer) ClarityLabel(clarity float64) string {
	switch {
	case clarity >= 90:
		return ClarityExcellent
	case clarity >= 75:
		return ClarityGood
	case clarity >= 60:
		return ClarityFair
	default:
		return ClarityLow
	}
}

// TagLabel picks the qualitative per-song label. The two tiers use
// deliberately asymmetric ladders: comfort songs sit at the high end of the
// similarity spectrum, challenge songs at the low end.
func (s *Synthesizer) TagLabel(similarity float64, tier Tier) string {
	if tier == TierComfort {
		switch {
		case similarity >= 0.90:
			return TagPerfectFit
		case similarity >= 0.80:
			return TagGreatFit
		default:
			return TagGoodFit
		}
	}
	switch {
	case similarity >= 0.70:
		return TagSomewhatChallenging
	case similarity >= 0.50:
		return TagVeryChallenging
	default:
		return TagExtremelyChallenging
	}
}

// Radar builds the five-axis radar chart. User values derive from the
// clip's features, reference values from a fixed display ladder, and the
// optional jitter stays inside [0, ceiling].
func (s *Synthesizer) Radar(raw *RawFeatures, norm *NormalizedFeatures) []RadarPoint {
	ceiling := int(s.cfg.RadarCeiling)

	warmth := s.jittered(0.8*norm.Stability, 10)
	brightness := s.jittered(0.9*norm.Clarity, 5)
	power := s.jittered(Clamp(norm.Energy/s.cfg.EnergyDivisor*100, 40, 100), 15)
	vocalRange := s.jittered(norm.RangeScore, 0)
	breathiness := s.jittered(Clamp(raw.ZeroCrossingRateMean*600, 0, 100), 10)

	return []RadarPoint{
		{Axis: "warmth", UserValue: warmth, Reference: 95, Ceiling: ceiling},
		{Axis: "brightness", UserValue: brightness, Reference: 90, Ceiling: ceiling},
		{Axis: "power", UserValue: power, Reference: 85, Ceiling: ceiling},
		{Axis: "range", UserValue: vocalRange, Reference: 80, Ceiling: ceiling},
		{Axis: "breathiness", UserValue: breathiness, Reference: 80, Ceiling: ceiling},
	}
}

// jittered rounds a base value and applies bounded cosmetic jitter of up to
// +/-span, clamped so the result never leaves [0, ceiling]
func (s *Synthesizer) jittered(base float64, span int) int {
	v := int(base)
	if s.rng != nil && span > 0 {
		v += s.rng.Intn(2*span+1) - span
	}
	return int(Clamp(float64(v), 0, s.cfg.RadarCeiling))
}
