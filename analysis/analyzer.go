package analysis

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/RyanBlaney/voicematch/analysis/config"
	"github.com/RyanBlaney/voicematch/logging"
	"github.com/RyanBlaney/voicematch/transcode"
)

// CatalogStore is the persistence surface the analyzer consumes. The
// catalog package's SQLite store satisfies it; tests use in-memory fakes.
type CatalogStore interface {
	ListSongsWithVectors() ([]SongEntry, error)
	SaveAnalysis(snapshot Snapshot) error
}

// AnalyzerConfig bundles the pipeline configuration. Zero fields fall back
// to package defaults.
type AnalyzerConfig struct {
	Extraction *config.ExtractionConfig
	Scoring    *config.ScoringConfig
	Profiles   []ReferenceProfile
	Jitter     *rand.Rand // nil disables radar jitter
}

// Analyzer runs the full pipeline: decode, extract, normalize, match
// against profiles and songs, synthesize scores, partition recommendations.
// It holds no mutable state across requests; concurrent Analyze calls share
// the same read-only configuration and catalog snapshots.
type Analyzer struct {
	decoder        *transcode.Decoder
	extractor      *FeatureExtractor
	normalizer     *Normalizer
	profileMatcher *ProfileMatcher
	songMatcher    *SongMatcher
	synth          *Synthesizer
	recommender    *Recommender
	scoring        *config.ScoringConfig
	store          CatalogStore
	logger         logging.Logger
}

// NewAnalyzer builds an analyzer. The store may be nil, in which case song
// matching degrades to the catalog-unavailable fallback and nothing is
// persisted.
func NewAnalyzer(store CatalogStore, cfg *AnalyzerConfig) (*Analyzer, error) {
	if cfg == nil {
		cfg = &AnalyzerConfig{}
	}
	extraction := cfg.Extraction
	if extraction == nil {
		extraction = config.DefaultExtractionConfig()
	}
	scoring := cfg.Scoring
	if scoring == nil {
		scoring = config.DefaultScoringConfig()
	}
	profiles := cfg.Profiles
	if profiles == nil {
		profiles = DefaultProfiles()
	}

	extractor, err := NewFeatureExtractor(extraction)
	if err != nil {
		return nil, err
	}
	synth := NewSynthesizer(scoring, cfg.Jitter)

	return &Analyzer{
		decoder: transcode.NewDecoder(&transcode.DecoderConfig{
			TargetSampleRate: extraction.SampleRate,
			TargetChannels:   1,
			MaxDuration:      time.Duration(extraction.MaxSeconds * float64(time.Second)),
			BufferSize:       8192,
		}),
		extractor:      extractor,
		normalizer:     NewNormalizer(scoring),
		profileMatcher: NewProfileMatcher(profiles, scoring),
		songMatcher:    NewSongMatcher(scoring),
		synth:          synth,
		recommender:    NewRecommender(scoring, synth),
		scoring:        scoring,
		store:          store,
		logger:         logging.WithFields(logging.Fields{"component": "analyzer"}),
	}, nil
}

// Analyze decodes the clip at path and runs the pipeline. Decode failures
// are fatal for the request; everything downstream degrades to documented
// fallbacks so the caller always receives a complete result.
func (a *Analyzer) Analyze(ctx context.Context, path, userRef string) (*Result, error) {
	audio, err := a.decoder.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return a.AnalyzePCM(ctx, audio.PCM, audio.SampleRate, userRef)
}

// AnalyzePCM runs the pipeline on already-decoded mono PCM
func (a *Analyzer) AnalyzePCM(ctx context.Context, pcm []float64, sampleRate int, userRef string) (*Result, error) {
	start := time.Now()
	logger := a.logger.WithContext(ctx).WithFields(logging.Fields{
		"function": "AnalyzePCM",
		"user_ref": userRef,
	})

	raw, err := a.extractor.ExtractRawFeatures(pcm, sampleRate)
	if err != nil {
		return nil, err
	}
	vector, err := a.extractor.ExtractTimbreVector(pcm, sampleRate)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	norm := a.normalizer.Normalize(raw)
	profileMatch := a.profileMatcher.Match(norm)

	result := &Result{
		ID:        uuid.NewString(),
		UserRef:   userRef,
		CreatedAt: time.Now(),
		Clarity:   a.synth.ClarityLabel(norm.Clarity),
		Stability: stabilityPercent(norm.Stability),
		Radar:     a.synth.Radar(raw, norm),
		MatchedProfile: MatchedProfileView{
			Name:            profileMatch.Profile.Name,
			Description:     profileMatch.Profile.Description,
			Characteristics: profileMatch.Profile.Characteristics,
		},
		Comfort:   []Recommendation{},
		Challenge: []Recommendation{},
	}
	result.noteFallback(raw.Fallback)
	result.noteFallback(profileMatch.Fallback)

	songs, err := a.listSongs()
	if err != nil || len(songs) == 0 {
		if err != nil {
			logger.Error(err, "Catalog unavailable, returning fallback result")
		}
		return a.fallbackResult(result), nil
	}

	songMatch, ranking, err := a.songMatcher.Match(vector, songs)
	if errors.Is(err, ErrNoMatch) {
		songMatch, err = a.songMatcher.FallbackMatch(songs)
	}
	if err != nil {
		// dimension/version mismatch, a contract violation
		return nil, err
	}
	result.noteFallback(songMatch.Fallback)

	result.Score = a.synth.SimilarityScore(songMatch.Similarity)
	result.MatchedSongID = songMatch.Entry.ID
	result.MatchedSongTitle = songMatch.Entry.Title
	result.MatchedSongArtist = songMatch.Entry.Artist
	result.Comfort, result.Challenge = a.recommender.Partition(songMatch, ranking, songs)

	a.persist(result)

	logger.Info("Analysis complete", logging.Fields{
		"score":    result.Score,
		"profile":  result.MatchedProfile.Name,
		"song":     result.MatchedSongTitle,
		"elapsed":  time.Since(start).String(),
		"degraded": len(result.Degraded),
	})
	return result, nil
}

// listSongs reads the catalog snapshot, treating a missing store the same
// as an unavailable one
func (a *Analyzer) listSongs() ([]SongEntry, error) {
	if a.store == nil {
		return nil, ErrCatalogUnavailable
	}
	return a.store.ListSongsWithVectors()
}

// fallbackResult completes a result when no song matching is possible:
// locally computed scores stay, the score goes neutral, the profile goes to
// the default, and both tiers stay empty.
func (a *Analyzer) fallbackResult(result *Result) *Result {
	fallback := DefaultFallbackProfile()
	result.Score = 75
	result.MatchedProfile = MatchedProfileView{
		Name:            fallback.Name,
		Description:     fallback.Description,
		Characteristics: fallback.Characteristics,
	}
	result.noteFallback(FallbackCatalogUnavailable)
	return result
}

// persist saves the snapshot best-effort. Result delivery never waits on
// it, and a save failure is logged and swallowed.
func (a *Analyzer) persist(result *Result) {
	if a.store == nil {
		return
	}
	snapshot := result.Snapshot()
	go func() {
		if err := a.store.SaveAnalysis(snapshot); err != nil {
			a.logger.Warn("Best-effort analysis save failed", logging.Fields{
				"analysis_id": snapshot.ID,
				"error":       err.Error(),
			})
		}
	}()
}

func (r *Result) noteFallback(reason FallbackReason) {
	if reason != FallbackNone {
		r.Degraded = append(r.Degraded, reason)
	}
}

func stabilityPercent(stability float64) string {
	return fmt.Sprintf("%d%%", int(stability))
}
