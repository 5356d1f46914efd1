package catalog

import (
	"github.com/RyanBlaney/voicematch/analysis"
)

// Store is the song catalog and analysis history persistence contract.
// ListSongsWithVectors is the only read the matching pipeline needs; the
// rest serve import, history and favorites.
type Store interface {
	// ListSongsWithVectors returns the full catalog snapshot. Entries whose
	// stored vector is absent or unreadable come back with a nil Vector.
	ListSongsWithVectors() ([]analysis.SongEntry, error)

	// UpsertSong creates or updates a song by (title, artist) and returns
	// its id. Used by offline catalog import.
	UpsertSong(entry analysis.SongEntry) (string, error)

	// SaveAnalysis persists a history snapshot. Called best-effort; the
	// analyzer never waits on it.
	SaveAnalysis(snapshot analysis.Snapshot) error

	// RecentAnalyses returns the newest records for a user, newest first
	RecentAnalyses(userRef string, limit int) ([]analysis.Snapshot, error)

	// ToggleFavorite flips a user's favorite mark on a song and reports the
	// new state
	ToggleFavorite(userRef, songID string) (bool, error)

	// ListFavorites returns the songs a user has marked
	ListFavorites(userRef string) ([]analysis.SongEntry, error)

	Close() error
}
