package analysis

import (
	"sort"

	"github.com/RyanBlaney/voicematch/analysis/config"
	"github.com/RyanBlaney/voicematch/logging"
)

// Recommendation is one song in a tier, ready for the output contract
type Recommendation struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Artist          string         `json:"artist"`
	SimilarityScore int            `json:"similarity_score"` // 0-100
	Tier            Tier           `json:"tier"`
	TagLabel        string         `json:"tag_label"`
	Fallback        FallbackReason `json:"fallback,omitempty"`
}

// Recommender partitions the catalog into comfort and challenge tiers
// around the best-matched song.
type Recommender struct {
	cfg    *config.ScoringConfig
	synth  *Synthesizer
	logger logging.Logger
}

// NewRecommender creates a recommender sharing the synthesizer's tag ladders
func NewRecommender(cfg *config.ScoringConfig, synth *Synthesizer) *Recommender {
	if cfg == nil {
		cfg = config.DefaultScoringConfig()
	}
	if synth == nil {
		synth = NewSynthesizer(cfg, nil)
	}
	return &Recommender{
		cfg:    cfg,
		synth:  synth,
		logger: logging.WithFields(logging.Fields{"component": "recommender"}),
	}
}

// Partition splits the catalog into the two tiers. The best match and
// placeholder rows never appear in either tier, the tiers never overlap,
// and each tier is capped. A catalog smaller than the caps yields short
// lists, never padding or duplication.
func (r *Recommender) Partition(best *SongMatch, ranking []RankedSong, songs []SongEntry) (comfort, challenge []Recommendation) {
	similarities := make(map[string]float64, len(ranking))
	for _, rs := range ranking {
		similarities[rs.Entry.ID] = rs.Similarity
	}

	used := map[string]bool{best.Entry.ID: true}

	comfortEntries := r.comfortCandidates(best.Entry, songs)
	for _, entry := range comfortEntries {
		if len(comfort) >= r.cfg.ComfortCap {
			break
		}
		if used[entry.ID] {
			continue
		}
		used[entry.ID] = true
		comfort = append(comfort, r.build(entry, similarities, TierComfort))
	}

	challengeEntries := r.challengeCandidates(best.Entry, songs, used)
	for _, entry := range challengeEntries {
		if len(challenge) >= r.cfg.ChallengeCap {
			break
		}
		if used[entry.ID] {
			continue
		}
		used[entry.ID] = true
		challenge = append(challenge, r.build(entry, similarities, TierChallenge))
	}

	r.logger.Debug("Recommendations partitioned", logging.Fields{
		"comfort":   len(comfort),
		"challenge": len(challenge),
	})
	return comfort, challenge
}

// comfortCandidates orders eligible entries by same artist first, then same
// difficulty tag as the best match
func (r *Recommender) comfortCandidates(best SongEntry, songs []SongEntry) []SongEntry {
	type ranked struct {
		entry    SongEntry
		priority int
	}
	candidates := make([]ranked, 0, len(songs))
	for _, song := range songs {
		if song.ID == best.ID || song.BulkImported {
			continue
		}
		switch {
		case song.Artist == best.Artist:
			candidates = append(candidates, ranked{song, 1})
		case song.Tag == best.Tag:
			candidates = append(candidates, ranked{song, 2})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].priority < candidates[j].priority
	})
	out := make([]SongEntry, len(candidates))
	for i, c := range candidates {
		out[i] = c.entry
	}
	return out
}

// challengeCandidates orders eligible entries by how much harder their tag
// is than the best match's. If nothing is strictly harder, entries by a
// different artist stand in.
func (r *Recommender) challengeCandidates(best SongEntry, songs []SongEntry, used map[string]bool) []SongEntry {
	type ranked struct {
		entry SongEntry
		gap   int
	}
	candidates := make([]ranked, 0, len(songs))
	for _, song := range songs {
		if used[song.ID] || song.BulkImported {
			continue
		}
		if song.Tag > best.Tag {
			candidates = append(candidates, ranked{song, song.Tag - best.Tag})
		}
	}
	if len(candidates) == 0 {
		for _, song := range songs {
			if used[song.ID] || song.BulkImported {
				continue
			}
			if song.Artist != best.Artist {
				candidates = append(candidates, ranked{song, 0})
			}
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].gap < candidates[j].gap
	})
	out := make([]SongEntry, len(candidates))
	for i, c := range candidates {
		out[i] = c.entry
	}
	return out
}

// build resolves an entry's similarity from the ranking, falling back to
// the documented default for vectorless entries, and attaches its tag label
func (r *Recommender) build(entry SongEntry, similarities map[string]float64, tier Tier) Recommendation {
	similarity, ok := similarities[entry.ID]
	fallback := FallbackNone
	if !ok {
		similarity = r.cfg.DefaultSimilarity
		fallback = FallbackMissingVector
	}
	return Recommendation{
		ID:              entry.ID,
		Title:           entry.Title,
		Artist:          entry.Artist,
		SimilarityScore: r.synth.SimilarityScore(similarity),
		Tier:            tier,
		TagLabel:        r.synth.TagLabel(similarity, tier),
		Fallback:        fallback,
	}
}
