package analysis

// ReferenceProfile is one entry of the static voice-archetype catalog.
// Reference values are raw (pitch/brightness in Hz, energy as RMS) and are
// normalized with the same divisors as user features before matching.
type ReferenceProfile struct {
	Name            string            `json:"name"`
	PitchMean       float64           `json:"pitch_mean"` // Hz
	PitchStd        float64           `json:"pitch_std"`
	Brightness      float64           `json:"brightness"` // spectral centroid, Hz
	Energy          float64           `json:"energy"`     // RMS
	Description     string            `json:"description"`
	Style           string            `json:"style"`
	Characteristics map[string]string `json:"characteristics"`
}

// DefaultProfiles returns the built-in reference catalog: ten voice
// archetypes spanning sopranos down to low basses. The catalog is static
// configuration; matchers receive it at construction and never mutate it.
func DefaultProfiles() []ReferenceProfile {
	return []ReferenceProfile{
		{
			Name:        "Bright Soprano",
			PitchMean:   280, PitchStd: 50, Brightness: 3800, Energy: 0.16,
			Description: "Clear ringing highs with strong projection and rich expression",
			Style:       "pop/ballad",
			Characteristics: map[string]string{
				"range":    "wide",
				"timbre":   "bright and clear",
				"strength": "stable highs, explosive delivery",
			},
		},
		{
			Name:        "Power Tenor",
			PitchMean:   260, PitchStd: 55, Brightness: 3600, Energy: 0.18,
			Description: "Outstanding high-register technique with piercing projection",
			Style:       "pop/rock",
			Characteristics: map[string]string{
				"range":    "very wide",
				"timbre":   "bright and forceful",
				"strength": "high-note technique, explosive power",
			},
		},
		{
			Name:        "Ethereal Alto",
			PitchMean:   240, PitchStd: 35, Brightness: 3200, Energy: 0.12,
			Description: "Airy and crystalline with an unmistakable identity",
			Style:       "pop/alternative",
			Characteristics: map[string]string{
				"range":    "moderate",
				"timbre":   "airy and crystalline",
				"strength": "distinctive character, instantly recognizable",
			},
		},
		{
			Name:        "Silky R&B Tenor",
			PitchMean:   220, PitchStd: 45, Brightness: 3400, Energy: 0.14,
			Description: "Layered R&B delivery, delicate and finely controlled",
			Style:       "r&b/pop",
			Characteristics: map[string]string{
				"range":    "wide",
				"timbre":   "delicate and clear",
				"strength": "melisma technique, nuanced emotion",
			},
		},
		{
			Name:        "Warm Baritone",
			PitchMean:   200, PitchStd: 40, Brightness: 2800, Energy: 0.13,
			Description: "Emotionally rich with a warm magnetic tone",
			Style:       "pop/ballad",
			Characteristics: map[string]string{
				"range":    "moderate",
				"timbre":   "warm and magnetic",
				"strength": "emotional storytelling, fine detail",
			},
		},
		{
			Name:        "Velvet Low Baritone",
			PitchMean:   180, PitchStd: 30, Brightness: 2600, Energy: 0.11,
			Description: "Magnetic lows with a relaxed laid-back comfort",
			Style:       "pop/folk",
			Characteristics: map[string]string{
				"range":    "moderate",
				"timbre":   "magnetic and laid-back",
				"strength": "steady lows, distinctive identity",
			},
		},
		{
			Name:        "Rhythmic Stylist",
			PitchMean:   210, PitchStd: 48, Brightness: 3000, Energy: 0.15,
			Description: "Signature diction with a strong sense of rhythm",
			Style:       "pop/rap",
			Characteristics: map[string]string{
				"range":    "wide",
				"timbre":   "unmistakably individual",
				"strength": "rhythmic drive, versatile styling",
			},
		},
		{
			Name:        "Gravel Rock Bass",
			PitchMean:   170, PitchStd: 35, Brightness: 2400, Energy: 0.17,
			Description: "Raspy rock grit, rough-edged and powerful",
			Style:       "rock/blues",
			Characteristics: map[string]string{
				"range":    "moderate",
				"timbre":   "raspy and heavy",
				"strength": "rock attitude, explosive power",
			},
		},
		{
			Name:        "Tender Crooner",
			PitchMean:   195, PitchStd: 42, Brightness: 2900, Energy: 0.13,
			Description: "Delicate emotional shading with a gentle tone",
			Style:       "pop/ballad",
			Characteristics: map[string]string{
				"range":    "moderate",
				"timbre":   "gentle and delicate",
				"strength": "rich emotion, resonant warmth",
			},
		},
		{
			Name:        "Fresh Mezzo",
			PitchMean:   250, PitchStd: 38, Brightness: 3300, Energy: 0.14,
			Description: "Fresh and natural with a highly recognizable voice",
			Style:       "pop/rock",
			Characteristics: map[string]string{
				"range":    "wide",
				"timbre":   "fresh and bright",
				"strength": "natural authenticity, recognizable tone",
			},
		},
	}
}

// DefaultFallbackProfile is the profile reported when the catalog is empty
// or matching cannot run. Neutral mid-range reference values.
func DefaultFallbackProfile() ReferenceProfile {
	return ReferenceProfile{
		Name:        "Neutral Voice",
		PitchMean:   200, PitchStd: 40, Brightness: 3000, Energy: 0.14,
		Description: "Balanced mid-range reference used when no match is available",
		Style:       "neutral",
		Characteristics: map[string]string{
			"range":    "moderate",
			"timbre":   "balanced",
			"strength": "neutral reference",
		},
	}
}

// NormalizedCoordinates returns the profile's 3-d matching point using the
// same divisors applied to user features
func (p ReferenceProfile) NormalizedCoordinates(pitchDivisor, brightnessDivisor float64) []float64 {
	return []float64{
		p.PitchMean / pitchDivisor,
		p.Brightness / brightnessDivisor,
		p.Energy,
	}
}
