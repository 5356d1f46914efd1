package analysis

import (
	"testing"
)

func TestMatchIdenticalProfile(t *testing.T) {
	profiles := DefaultProfiles()
	target := profiles[2]
	matcher := NewProfileMatcher(profiles, nil)

	// features that normalize to exactly the target's coordinates
	norm := &NormalizedFeatures{
		Pitch:      target.PitchMean / 500.0,
		Brightness: target.Brightness / 5000.0,
		Energy:     target.Energy,
	}

	match := matcher.Match(norm)
	if match.Profile.Name != target.Name {
		t.Fatalf("matched %q, want %q", match.Profile.Name, target.Name)
	}
	if match.Distance != 0 {
		t.Errorf("distance = %f, want 0", match.Distance)
	}
	if match.Confidence != 98 {
		t.Errorf("confidence = %f, want 98 at zero distance", match.Confidence)
	}
	if match.Fallback != FallbackNone {
		t.Errorf("unexpected fallback %q", match.Fallback)
	}
}

func TestMatchConfidenceBand(t *testing.T) {
	profiles := []ReferenceProfile{{Name: "only", PitchMean: 500, Brightness: 5000, Energy: 1.0}}
	matcher := NewProfileMatcher(profiles, nil)

	// far away from the single profile, confidence must floor at 60
	match := matcher.Match(&NormalizedFeatures{Pitch: 0, Brightness: 0, Energy: 0})
	if match.Confidence != 60 {
		t.Errorf("confidence = %f, want floor 60", match.Confidence)
	}
}

func TestMatchEmptyCatalog(t *testing.T) {
	matcher := NewProfileMatcher(nil, nil)
	match := matcher.Match(&NormalizedFeatures{Pitch: 0.4, Brightness: 0.6, Energy: 0.14})

	if match.Fallback != FallbackEmptyProfileSet {
		t.Errorf("fallback = %q, want %q", match.Fallback, FallbackEmptyProfileSet)
	}
	if match.Profile.Name != DefaultFallbackProfile().Name {
		t.Errorf("matched %q, want fallback profile", match.Profile.Name)
	}
	if match.Distance != 0.5 {
		t.Errorf("assumed distance = %f, want 0.5", match.Distance)
	}
}

func TestMatchTieBreaksFirst(t *testing.T) {
	twin := ReferenceProfile{PitchMean: 200, Brightness: 3000, Energy: 0.15}
	first := twin
	first.Name = "first"
	second := twin
	second.Name = "second"

	matcher := NewProfileMatcher([]ReferenceProfile{first, second}, nil)
	norm := &NormalizedFeatures{
		Pitch:      twin.PitchMean / 500.0,
		Brightness: twin.Brightness / 5000.0,
		Energy:     twin.Energy,
	}
	match := matcher.Match(norm)
	if match.Profile.Name != "first" {
		t.Errorf("tie matched %q, want first catalog entry", match.Profile.Name)
	}
}
