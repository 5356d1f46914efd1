package analysis

import (
	"github.com/RyanBlaney/voicematch/analysis/config"
	"github.com/RyanBlaney/voicematch/dsp/stats"
	"github.com/RyanBlaney/voicematch/logging"
)

// ProfileMatch is the outcome of matching a user's normalized features
// against the reference profile catalog.
type ProfileMatch struct {
	Profile    ReferenceProfile `json:"profile"`
	Distance   float64          `json:"distance"`
	Confidence float64          `json:"confidence"` // within the configured band
	Fallback   FallbackReason   `json:"fallback,omitempty"`
}

// ProfileMatcher selects the closest reference profile by Euclidean distance
// in the normalized {pitch, brightness, energy} space. The catalog is a
// read-only snapshot; concurrent matches need no locking.
type ProfileMatcher struct {
	profiles []ReferenceProfile
	cfg      *config.ScoringConfig
	logger   logging.Logger
}

// NewProfileMatcher creates a matcher over the given catalog. A nil or empty
// catalog is allowed; matches then degrade to the fallback profile.
func NewProfileMatcher(profiles []ReferenceProfile, cfg *config.ScoringConfig) *ProfileMatcher {
	if cfg == nil {
		cfg = config.DefaultScoringConfig()
	}
	return &ProfileMatcher{
		profiles: profiles,
		cfg:      cfg,
		logger:   logging.WithFields(logging.Fields{"component": "profile_matcher"}),
	}
}

// Match returns the closest profile. Never fails: an empty catalog yields
// the fallback profile with an assumed distance, flagged degraded. Ties go
// to the first minimum in catalog order.
func (pm *ProfileMatcher) Match(features *NormalizedFeatures) *ProfileMatch {
	if len(pm.profiles) == 0 {
		pm.logger.Warn("Empty profile catalog, using fallback profile")
		return &ProfileMatch{
			Profile:    DefaultFallbackProfile(),
			Distance:   pm.cfg.DefaultDistance,
			Confidence: pm.confidence(pm.cfg.DefaultDistance),
			Fallback:   FallbackEmptyProfileSet,
		}
	}

	user := features.MatchCoordinates()
	bestIdx := 0
	bestDistance := -1.0
	for i, profile := range pm.profiles {
		ref := profile.NormalizedCoordinates(pm.cfg.PitchDivisor, pm.cfg.BrightnessDivisor)
		d, err := stats.EuclideanDistance(user, ref)
		if err != nil {
			// both points are built 3-d above, unreachable in practice
			continue
		}
		if bestDistance < 0 || d < bestDistance {
			bestDistance = d
			bestIdx = i
		}
	}

	match := &ProfileMatch{
		Profile:    pm.profiles[bestIdx],
		Distance:   bestDistance,
		Confidence: pm.confidence(bestDistance),
	}
	pm.logger.Debug("Profile matched", logging.Fields{
		"profile":    match.Profile.Name,
		"distance":   match.Distance,
		"confidence": match.Confidence,
	})
	return match
}

// confidence maps a distance onto the configured score band. Distance 0
// scores the ceiling; large distances floor out instead of going to zero.
func (pm *ProfileMatcher) confidence(distance float64) float64 {
	return Clamp(pm.cfg.ConfidenceBase-distance*pm.cfg.ConfidenceSlope,
		pm.cfg.ConfidenceFloor, pm.cfg.ConfidenceCeiling)
}

// Profiles returns the catalog snapshot the matcher was built with
func (pm *ProfileMatcher) Profiles() []ReferenceProfile {
	return pm.profiles
}
