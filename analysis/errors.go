package analysis

import (
	"errors"

	"github.com/RyanBlaney/voicematch/dsp/stats"
)

// ErrDimensionMismatch is returned when two timbre vectors of different
// length or layout version are compared. Vectors are only ever produced by
// this package's extractor, so hitting this means a stored catalog vector
// predates the current layout or a caller built one by hand.
var ErrDimensionMismatch = stats.ErrDimensionMismatch

// ErrCatalogUnavailable indicates the song catalog could not be read.
// The analyzer responds with a neutral fallback result, not a failure.
var ErrCatalogUnavailable = errors.New("song catalog unavailable")

// ErrNoMatch indicates no catalog entry carried a usable timbre vector.
var ErrNoMatch = errors.New("no vector-bearing catalog entry")

// FallbackReason labels why a stage produced a degraded value instead of a
// genuine computation, so callers and tests can tell the two apart.
type FallbackReason string

const (
	FallbackNone               FallbackReason = ""
	FallbackUnvoiced           FallbackReason = "unvoiced_input"
	FallbackEmptyProfileSet    FallbackReason = "empty_profile_catalog"
	FallbackNoSongVectors      FallbackReason = "no_song_vectors"
	FallbackMissingVector      FallbackReason = "missing_song_vector"
	FallbackCatalogUnavailable FallbackReason = "catalog_unavailable"
)
