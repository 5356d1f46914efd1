package analysis

import "time"

// MatchedProfileView is the profile portion of the output contract
type MatchedProfileView struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Characteristics map[string]string `json:"characteristics"`
}

// Result is the complete outcome of one analysis: scores, the matched
// profile and song, and the tiered recommendations. Always schema-valid;
// degraded stages record their reasons instead of failing.
type Result struct {
	ID        string    `json:"id"`
	UserRef   string    `json:"user_ref,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Score     int          `json:"score"` // 0-100
	Clarity   string       `json:"clarity"`
	Stability string       `json:"stability"`
	Radar     []RadarPoint `json:"radar"`

	MatchedProfile    MatchedProfileView `json:"matched_profile"`
	MatchedSongID     string             `json:"matched_song_id,omitempty"`
	MatchedSongTitle  string             `json:"matched_song_title,omitempty"`
	MatchedSongArtist string             `json:"matched_song_artist,omitempty"`

	Comfort   []Recommendation `json:"comfort"`
	Challenge []Recommendation `json:"challenge"`

	// Degraded lists every fallback taken while producing this result
	Degraded []FallbackReason `json:"degraded,omitempty"`
}

// Snapshot is the flattened scalar form of a Result kept for history.
// Radar data and recommendation lists are not persisted.
type Snapshot struct {
	ID             string    `json:"id"`
	UserRef        string    `json:"user_ref"`
	Score          int       `json:"score"`
	Clarity        string    `json:"clarity"`
	Stability      string    `json:"stability"`
	MatchedProfile string    `json:"matched_profile"`
	MatchedSongID  string    `json:"matched_song_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// Snapshot flattens the result for persistence
func (r *Result) Snapshot() Snapshot {
	return Snapshot{
		ID:             r.ID,
		UserRef:        r.UserRef,
		Score:          r.Score,
		Clarity:        r.Clarity,
		Stability:      r.Stability,
		MatchedProfile: r.MatchedProfile.Name,
		MatchedSongID:  r.MatchedSongID,
		CreatedAt:      r.CreatedAt,
	}
}
