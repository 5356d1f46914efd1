package config

// VectorVersion tags the timbre vector layout. Vectors persisted with a
// different version are incompatible and must be re-extracted.
const VectorVersion = 1

// VectorLength is the fixed timbre vector dimensionality:
// 20 MFCC means, 20 delta means, 20 delta-delta means.
const VectorLength = 60

// ExtractionConfig configures raw feature extraction
type ExtractionConfig struct {
	SampleRate int     `json:"sample_rate"`
	WindowSize int     `json:"window_size"`
	HopSize    int     `json:"hop_size"`
	MaxSeconds float64 `json:"max_seconds"` // analysis window from the start of the clip

	// MFCC parameters
	MFCCCoefficients int `json:"mfcc_coefficients"`
	MelFilters       int `json:"mel_filters"`
	DeltaWidth       int `json:"delta_width"`

	// Pitch search band (Hz)
	PitchMinFreq float64 `json:"pitch_min_freq"`
	PitchMaxFreq float64 `json:"pitch_max_freq"`
}

// DefaultExtractionConfig returns the extraction parameters for voice clips
func DefaultExtractionConfig() *ExtractionConfig {
	return &ExtractionConfig{
		SampleRate:       16000,
		WindowSize:       2048,
		HopSize:          512,
		MaxSeconds:       10.0,
		MFCCCoefficients: 20,
		MelFilters:       26,
		DeltaWidth:       9,
		PitchMinFreq:     60.0,
		PitchMaxFreq:     500.0,
	}
}

// ScoringConfig configures normalization and score synthesis
type ScoringConfig struct {
	// Score-form divisors for the normalized profile coordinates
	PitchDivisor      float64 `json:"pitch_divisor"`
	BrightnessDivisor float64 `json:"brightness_divisor"`
	EnergyDivisor     float64 `json:"energy_divisor"`

	// Clarity axis composition
	ClarityCentroidWeight float64 `json:"clarity_centroid_weight"`
	ClarityZCRWeight      float64 `json:"clarity_zcr_weight"`
	CentroidOffset        float64 `json:"centroid_offset"`
	CentroidScale         float64 `json:"centroid_scale"`
	ZCRScale              float64 `json:"zcr_scale"`

	// Range score divisor (Hz spanned for a full score)
	RangeSpanDivisor float64 `json:"range_span_divisor"`

	// Clamp bands
	ClarityFloor   float64 `json:"clarity_floor"`
	StabilityFloor float64 `json:"stability_floor"`
	ScoreCeiling   float64 `json:"score_ceiling"`
	RadarCeiling   float64 `json:"radar_ceiling"`

	// Matching
	ConfidenceBase    float64 `json:"confidence_base"`
	ConfidenceSlope   float64 `json:"confidence_slope"`
	ConfidenceFloor   float64 `json:"confidence_floor"`
	ConfidenceCeiling float64 `json:"confidence_ceiling"`
	DefaultDistance   float64 `json:"default_distance"`
	DefaultSimilarity float64 `json:"default_similarity"`

	// Recommendation tier caps
	ComfortCap   int `json:"comfort_cap"`
	ChallengeCap int `json:"challenge_cap"`
}

// DefaultScoringConfig returns the scoring parameters
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		PitchDivisor:          500.0,
		BrightnessDivisor:     5000.0,
		EnergyDivisor:         0.3,
		ClarityCentroidWeight: 0.7,
		ClarityZCRWeight:      0.3,
		CentroidOffset:        1000.0,
		CentroidScale:         30.0,
		ZCRScale:              500.0,
		RangeSpanDivisor:      300.0,
		ClarityFloor:          40.0,
		StabilityFloor:        50.0,
		ScoreCeiling:          100.0,
		RadarCeiling:          150.0,
		ConfidenceBase:        98.0,
		ConfidenceSlope:       40.0,
		ConfidenceFloor:       60.0,
		ConfidenceCeiling:     98.0,
		DefaultDistance:       0.5,
		DefaultSimilarity:     0.5,
		ComfortCap:            5,
		ChallengeCap:          5,
	}
}

// UnvoicedFallback holds the pitch statistics substituted when a clip has no
// voiced frames. Results built from these are flagged degraded.
type UnvoicedFallback struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// DefaultUnvoicedFallback returns the assumed mid-range speaking voice
func DefaultUnvoicedFallback() UnvoicedFallback {
	return UnvoicedFallback{Mean: 200.0, Std: 40.0, Min: 150.0, Max: 250.0}
}
