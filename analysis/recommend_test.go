package analysis

import (
	"testing"
)

func tierIDs(recs []Recommendation) map[string]bool {
	ids := make(map[string]bool, len(recs))
	for _, r := range recs {
		ids[r.ID] = true
	}
	return ids
}

func TestPartitionExcludesBestAndPlaceholders(t *testing.T) {
	r := NewRecommender(nil, nil)
	best := &SongMatch{Entry: SongEntry{ID: "best", Artist: "A", Tag: 2}, Similarity: 0.9}

	songs := []SongEntry{
		best.Entry,
		{ID: "s1", Artist: "A", Tag: 2},
		{ID: "bulk", Artist: "A", Tag: 2, BulkImported: true},
		{ID: "s2", Artist: "B", Tag: 3},
	}

	comfort, challenge := r.Partition(best, nil, songs)
	for _, recs := range [][]Recommendation{comfort, challenge} {
		ids := tierIDs(recs)
		if ids["best"] {
			t.Error("best match leaked into a tier")
		}
		if ids["bulk"] {
			t.Error("bulk-imported placeholder leaked into a tier")
		}
	}
}

func TestPartitionTiersDisjoint(t *testing.T) {
	r := NewRecommender(nil, nil)
	best := &SongMatch{Entry: SongEntry{ID: "best", Artist: "A", Tag: 1}, Similarity: 0.9}

	songs := []SongEntry{
		best.Entry,
		{ID: "c1", Artist: "A", Tag: 1},
		{ID: "c2", Artist: "A", Tag: 2},
		{ID: "h1", Artist: "B", Tag: 3},
		{ID: "h2", Artist: "C", Tag: 2},
		{ID: "n1", Artist: "D", Tag: 1},
	}

	comfort, challenge := r.Partition(best, nil, songs)
	comfortIDs := tierIDs(comfort)
	for _, rec := range challenge {
		if comfortIDs[rec.ID] {
			t.Errorf("song %s appears in both tiers", rec.ID)
		}
	}
}

func TestPartitionCaps(t *testing.T) {
	r := NewRecommender(nil, nil)
	best := &SongMatch{Entry: SongEntry{ID: "best", Artist: "A", Tag: 1}, Similarity: 0.9}

	songs := []SongEntry{best.Entry}
	for i := range 20 {
		songs = append(songs, SongEntry{
			ID: string(rune('a' + i)), Artist: "A", Tag: 1,
		})
	}
	for i := range 20 {
		songs = append(songs, SongEntry{
			ID: "x" + string(rune('a'+i)), Artist: "B", Tag: 5,
		})
	}

	comfort, challenge := r.Partition(best, nil, songs)
	if len(comfort) != 5 {
		t.Errorf("comfort tier has %d entries, want cap 5", len(comfort))
	}
	if len(challenge) != 5 {
		t.Errorf("challenge tier has %d entries, want cap 5", len(challenge))
	}
}

func TestPartitionNoPadding(t *testing.T) {
	r := NewRecommender(nil, nil)
	best := &SongMatch{Entry: SongEntry{ID: "best", Artist: "A", Tag: 1}, Similarity: 0.9}
	songs := []SongEntry{
		best.Entry,
		{ID: "only", Artist: "A", Tag: 1},
	}

	comfort, challenge := r.Partition(best, nil, songs)
	if len(comfort) != 1 {
		t.Errorf("comfort tier has %d entries, want 1 (no padding)", len(comfort))
	}
	if len(challenge) != 0 {
		t.Errorf("challenge tier has %d entries, want 0 (no padding)", len(challenge))
	}
}

func TestPartitionComfortPriority(t *testing.T) {
	r := NewRecommender(nil, nil)
	best := &SongMatch{Entry: SongEntry{ID: "best", Artist: "A", Tag: 1}, Similarity: 0.9}
	songs := []SongEntry{
		best.Entry,
		{ID: "sametag", Artist: "B", Tag: 1},
		{ID: "sameartist", Artist: "A", Tag: 4},
	}

	comfort, _ := r.Partition(best, nil, songs)
	if len(comfort) != 2 {
		t.Fatalf("comfort tier has %d entries, want 2", len(comfort))
	}
	if comfort[0].ID != "sameartist" {
		t.Errorf("first comfort pick = %s, want same-artist entry", comfort[0].ID)
	}
}

func TestPartitionChallengeFallsBackToDifferentArtist(t *testing.T) {
	r := NewRecommender(nil, nil)
	best := &SongMatch{Entry: SongEntry{ID: "best", Artist: "A", Tag: 5}, Similarity: 0.9}
	songs := []SongEntry{
		best.Entry,
		{ID: "easyA", Artist: "A", Tag: 1},
		{ID: "easyB", Artist: "B", Tag: 1},
	}

	_, challenge := r.Partition(best, nil, songs)
	if len(challenge) != 1 || challenge[0].ID != "easyB" {
		t.Errorf("challenge fallback = %+v, want the different-artist entry", challenge)
	}
}

func TestPartitionSimilarityDefaults(t *testing.T) {
	r := NewRecommender(nil, nil)
	best := &SongMatch{Entry: SongEntry{ID: "best", Artist: "A", Tag: 1}, Similarity: 0.9}
	ranked := []RankedSong{{Entry: SongEntry{ID: "withvec"}, Similarity: 0.85}}
	songs := []SongEntry{
		best.Entry,
		{ID: "withvec", Artist: "A", Tag: 1},
		{ID: "novec", Artist: "A", Tag: 1},
	}

	comfort, _ := r.Partition(best, ranked, songs)
	byID := make(map[string]Recommendation)
	for _, rec := range comfort {
		byID[rec.ID] = rec
	}

	if rec := byID["withvec"]; rec.SimilarityScore != 85 || rec.Fallback != FallbackNone {
		t.Errorf("ranked entry = %+v, want score 85 with no fallback", rec)
	}
	if rec := byID["novec"]; rec.SimilarityScore != 50 || rec.Fallback != FallbackMissingVector {
		t.Errorf("vectorless entry = %+v, want default score 50 flagged degraded", rec)
	}
}

func TestPartitionTagLabelsPerTier(t *testing.T) {
	r := NewRecommender(nil, nil)
	best := &SongMatch{Entry: SongEntry{ID: "best", Artist: "A", Tag: 1}, Similarity: 0.95}
	ranked := []RankedSong{
		{Entry: SongEntry{ID: "close"}, Similarity: 0.92},
		{Entry: SongEntry{ID: "far"}, Similarity: 0.40},
	}
	songs := []SongEntry{
		best.Entry,
		{ID: "close", Artist: "A", Tag: 1},
		{ID: "far", Artist: "B", Tag: 5},
	}

	comfort, challenge := r.Partition(best, ranked, songs)
	if len(comfort) != 1 || comfort[0].TagLabel != TagPerfectFit {
		t.Errorf("comfort = %+v, want %q", comfort, TagPerfectFit)
	}
	if len(challenge) != 1 || challenge[0].TagLabel != TagExtremelyChallenging {
		t.Errorf("challenge = %+v, want %q", challenge, TagExtremelyChallenging)
	}
}
