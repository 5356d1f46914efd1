package analysis

import (
	"fmt"
	"sort"

	"github.com/RyanBlaney/voicematch/analysis/config"
	"github.com/RyanBlaney/voicematch/dsp/stats"
	"github.com/RyanBlaney/voicematch/logging"
)

// SongEntry is one catalog row as seen by the matchers: identity, an
// optional precomputed timbre vector, and the coarse difficulty tag used by
// tier partitioning. Entries flagged BulkImported are placeholder rows from
// batch imports with no curated metadata.
type SongEntry struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Artist       string        `json:"artist"`
	Tag          int           `json:"tag"` // difficulty classification, higher is harder
	BulkImported bool          `json:"bulk_imported"`
	Vector       *TimbreVector `json:"vector,omitempty"`
}

// SongMatch is the best-match outcome of a catalog similarity search
type SongMatch struct {
	Entry      SongEntry      `json:"entry"`
	Similarity float64        `json:"similarity"`
	Fallback   FallbackReason `json:"fallback,omitempty"`
}

// RankedSong pairs a catalog entry with its similarity to the user vector
type RankedSong struct {
	Entry      SongEntry `json:"entry"`
	Similarity float64   `json:"similarity"`
}

// SongMatcher ranks a song catalog against a user timbre vector by cosine
// similarity. Entries without a vector are excluded from ranking entirely
// rather than scored 0, so they cannot bias the ordering.
type SongMatcher struct {
	cfg    *config.ScoringConfig
	logger logging.Logger
}

// NewSongMatcher creates a song matcher. A nil config uses the defaults.
func NewSongMatcher(cfg *config.ScoringConfig) *SongMatcher {
	if cfg == nil {
		cfg = config.DefaultScoringConfig()
	}
	return &SongMatcher{
		cfg:    cfg,
		logger: logging.WithFields(logging.Fields{"component": "song_matcher"}),
	}
}

// Match returns the highest-similarity entry and the full descending ranking
// over every vector-bearing entry. Ties go to the earliest catalog entry.
//
// A vector length or version mismatch is a contract violation and fails the
// match with ErrDimensionMismatch. If no entry carries a vector, Match
// returns ErrNoMatch; callers degrade to a documented fallback instead of
// failing the analysis.
func (sm *SongMatcher) Match(user TimbreVector, songs []SongEntry) (*SongMatch, []RankedSong, error) {
	if err := user.Validate(); err != nil {
		return nil, nil, err
	}

	ranking := make([]RankedSong, 0, len(songs))
	for _, song := range songs {
		if song.Vector == nil {
			continue
		}
		if err := user.Compatible(*song.Vector); err != nil {
			return nil, nil, fmt.Errorf("song %s: %w", song.ID, err)
		}
		similarity, err := stats.CosineSimilarity(user.Coefficients, song.Vector.Coefficients)
		if err != nil {
			return nil, nil, fmt.Errorf("song %s: %w", song.ID, err)
		}
		ranking = append(ranking, RankedSong{Entry: song, Similarity: similarity})
	}

	if len(ranking) == 0 {
		return nil, nil, ErrNoMatch
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Similarity > ranking[j].Similarity
	})

	best := &SongMatch{
		Entry:      ranking[0].Entry,
		Similarity: ranking[0].Similarity,
	}
	sm.logger.Debug("Song matched", logging.Fields{
		"song":       best.Entry.Title,
		"artist":     best.Entry.Artist,
		"similarity": best.Similarity,
		"ranked":     len(ranking),
	})
	return best, ranking, nil
}

// FallbackMatch builds the degraded best-match used when no catalog entry
// carries a vector: the first entry with the documented default similarity.
func (sm *SongMatcher) FallbackMatch(songs []SongEntry) (*SongMatch, error) {
	if len(songs) == 0 {
		return nil, ErrNoMatch
	}
	sm.logger.Warn("No vector-bearing songs, falling back to first catalog entry")
	return &SongMatch{
		Entry:      songs[0],
		Similarity: sm.cfg.DefaultSimilarity,
		Fallback:   FallbackNoSongVectors,
	}, nil
}
