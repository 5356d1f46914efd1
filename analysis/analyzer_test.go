package analysis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeStore is an in-memory CatalogStore for pipeline tests
type fakeStore struct {
	mu       sync.Mutex
	songs    []SongEntry
	listErr  error
	saveErr  error
	saved    []Snapshot
	saveDone chan struct{}
}

func newFakeStore(songs []SongEntry) *fakeStore {
	return &fakeStore{songs: songs, saveDone: make(chan struct{}, 8)}
}

func (f *fakeStore) ListSongsWithVectors() ([]SongEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.songs, nil
}

func (f *fakeStore) SaveAnalysis(snapshot Snapshot) error {
	f.mu.Lock()
	f.saved = append(f.saved, snapshot)
	f.mu.Unlock()
	f.saveDone <- struct{}{}
	return f.saveErr
}

func (f *fakeStore) waitForSave(t *testing.T) Snapshot {
	t.Helper()
	select {
	case <-f.saveDone:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for best-effort save")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saved[len(f.saved)-1]
}

func testCatalog(t *testing.T, userLeading float64) []SongEntry {
	t.Helper()
	return []SongEntry{
		{ID: "match", Title: "Match", Artist: "A", Tag: 2,
			Vector: vectorRef(testVector(t, userLeading))},
		{ID: "comfort", Title: "Comfort", Artist: "A", Tag: 2,
			Vector: vectorRef(testVector(t, userLeading, 0.2))},
		{ID: "hard", Title: "Hard", Artist: "B", Tag: 5,
			Vector: vectorRef(testVector(t, 0, 1))},
	}
}

func TestAnalyzePCMEndToEnd(t *testing.T) {
	store := newFakeStore(testCatalog(t, 1))
	analyzer, err := NewAnalyzer(store, nil)
	if err != nil {
		t.Fatalf("constructor: %v", err)
	}

	pcm := voicedClip(t, 220.0, 16000, 2.0)
	result, err := analyzer.AnalyzePCM(context.Background(), pcm, 16000, "tester")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ID == "" {
		t.Error("result has no id")
	}
	if result.Score < 0 || result.Score > 100 {
		t.Errorf("score = %d outside [0,100]", result.Score)
	}
	if result.Clarity == "" || result.Stability == "" {
		t.Errorf("missing labels: clarity %q stability %q", result.Clarity, result.Stability)
	}
	if len(result.Radar) != 5 {
		t.Errorf("radar has %d axes, want 5", len(result.Radar))
	}
	if result.MatchedProfile.Name == "" {
		t.Error("no matched profile")
	}
	if result.MatchedSongID == "" {
		t.Error("no matched song with a populated catalog")
	}
	for _, rec := range append(result.Comfort, result.Challenge...) {
		if rec.ID == result.MatchedSongID {
			t.Error("best match leaked into recommendations")
		}
	}

	snapshot := store.waitForSave(t)
	if snapshot.ID != result.ID {
		t.Errorf("saved snapshot id %q, want %q", snapshot.ID, result.ID)
	}
	if snapshot.UserRef != "tester" {
		t.Errorf("saved user %q, want tester", snapshot.UserRef)
	}
	if snapshot.Score != result.Score {
		t.Errorf("saved score %d, want %d", snapshot.Score, result.Score)
	}
}

func TestAnalyzeSilentClip(t *testing.T) {
	store := newFakeStore(testCatalog(t, 1))
	analyzer, err := NewAnalyzer(store, nil)
	if err != nil {
		t.Fatalf("constructor: %v", err)
	}

	pcm := make([]float64, 16000*2)
	result, err := analyzer.AnalyzePCM(context.Background(), pcm, 16000, "tester")
	if err != nil {
		t.Fatalf("silent clip errored: %v", err)
	}

	found := false
	for _, reason := range result.Degraded {
		if reason == FallbackUnvoiced {
			found = true
		}
	}
	if !found {
		t.Errorf("silent clip not flagged unvoiced: %v", result.Degraded)
	}
	if result.Stability == "" {
		t.Error("silent clip missing stability output")
	}
}

func TestAnalyzeCatalogUnavailable(t *testing.T) {
	store := newFakeStore(nil)
	store.listErr = errors.New("connection refused")
	analyzer, err := NewAnalyzer(store, nil)
	if err != nil {
		t.Fatalf("constructor: %v", err)
	}

	pcm := voicedClip(t, 220.0, 16000, 2.0)
	result, err := analyzer.AnalyzePCM(context.Background(), pcm, 16000, "tester")
	if err != nil {
		t.Fatalf("catalog failure surfaced as error: %v", err)
	}

	if result.Score != 75 {
		t.Errorf("fallback score = %d, want neutral 75", result.Score)
	}
	if result.MatchedProfile.Name != DefaultFallbackProfile().Name {
		t.Errorf("fallback profile = %q", result.MatchedProfile.Name)
	}
	if len(result.Comfort) != 0 || len(result.Challenge) != 0 {
		t.Error("fallback result must have empty tiers")
	}
	degraded := false
	for _, reason := range result.Degraded {
		if reason == FallbackCatalogUnavailable {
			degraded = true
		}
	}
	if !degraded {
		t.Errorf("missing catalog_unavailable reason: %v", result.Degraded)
	}
}

func TestAnalyzeNilStore(t *testing.T) {
	analyzer, err := NewAnalyzer(nil, nil)
	if err != nil {
		t.Fatalf("constructor: %v", err)
	}
	pcm := voicedClip(t, 220.0, 16000, 2.0)
	result, err := analyzer.AnalyzePCM(context.Background(), pcm, 16000, "")
	if err != nil {
		t.Fatalf("nil store errored: %v", err)
	}
	if result.Score != 75 {
		t.Errorf("score = %d, want neutral 75 without a catalog", result.Score)
	}
}

func TestAnalyzeVectorlessCatalog(t *testing.T) {
	store := newFakeStore([]SongEntry{
		{ID: "first", Title: "First", Artist: "A"},
		{ID: "second", Title: "Second", Artist: "B"},
	})
	analyzer, err := NewAnalyzer(store, nil)
	if err != nil {
		t.Fatalf("constructor: %v", err)
	}

	pcm := voicedClip(t, 220.0, 16000, 2.0)
	result, err := analyzer.AnalyzePCM(context.Background(), pcm, 16000, "tester")
	if err != nil {
		t.Fatalf("vectorless catalog errored: %v", err)
	}
	if result.MatchedSongID != "first" {
		t.Errorf("degraded match = %q, want first catalog entry", result.MatchedSongID)
	}
	if result.Score != 50 {
		t.Errorf("degraded score = %d, want default 50", result.Score)
	}
	degraded := false
	for _, reason := range result.Degraded {
		if reason == FallbackNoSongVectors {
			degraded = true
		}
	}
	if !degraded {
		t.Errorf("missing no_song_vectors reason: %v", result.Degraded)
	}
}

func TestAnalyzeSaveFailureSwallowed(t *testing.T) {
	store := newFakeStore(testCatalog(t, 1))
	store.saveErr = errors.New("disk full")
	analyzer, err := NewAnalyzer(store, nil)
	if err != nil {
		t.Fatalf("constructor: %v", err)
	}

	pcm := voicedClip(t, 220.0, 16000, 2.0)
	result, err := analyzer.AnalyzePCM(context.Background(), pcm, 16000, "tester")
	if err != nil {
		t.Fatalf("save failure surfaced: %v", err)
	}
	if result == nil || result.Score < 0 {
		t.Error("result missing despite persistence failure")
	}
	store.waitForSave(t)
}

func TestAnalyzeContextCancelled(t *testing.T) {
	analyzer, err := NewAnalyzer(newFakeStore(testCatalog(t, 1)), nil)
	if err != nil {
		t.Fatalf("constructor: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pcm := voicedClip(t, 220.0, 16000, 2.0)
	if _, err := analyzer.AnalyzePCM(ctx, pcm, 16000, "tester"); err == nil {
		t.Error("expected error for cancelled context")
	}
}
