package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/RyanBlaney/voicematch/analysis"
	"github.com/RyanBlaney/voicematch/logging"
)

const DefaultDBFile = "voicematch.sqlite3"

// Song is the stored catalog row. The timbre vector is kept as JSON with
// its layout version so a contract change is detected at read time instead
// of silently producing nonsense similarities.
type Song struct {
	ID            string `gorm:"primaryKey;type:varchar(36)"`
	Title         string `gorm:"uniqueIndex:idx_song_unique,priority:1" json:"title"`
	Artist        string `gorm:"uniqueIndex:idx_song_unique,priority:2" json:"artist"`
	Tag           int    `json:"tag"`
	BulkImported  bool   `json:"bulk_imported"`
	Vector        string `gorm:"type:text" json:"vector"` // JSON TimbreVector, empty if not extracted
	VectorVersion int    `json:"vector_version"`
	CreatedAt     time.Time
}

// Analysis is the stored history snapshot
type Analysis struct {
	ID             string `gorm:"primaryKey;type:varchar(36)"`
	UserRef        string `gorm:"index:idx_analysis_user"`
	Score          int
	Clarity        string
	Stability      string
	MatchedProfile string
	MatchedSongID  string `gorm:"type:varchar(36)"`
	CreatedAt      time.Time
}

// Favorite marks a song for a user
type Favorite struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	UserRef   string `gorm:"uniqueIndex:idx_fav_unique,priority:1"`
	SongID    string `gorm:"uniqueIndex:idx_fav_unique,priority:2;type:varchar(36)"`
	CreatedAt time.Time
}

// SQLiteStore implements Store over a local SQLite database
type SQLiteStore struct {
	db     *gorm.DB
	logger logging.Logger
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// migrates the schema
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		dbPath = DefaultDBFile
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.AutoMigrate(&Song{}, &Analysis{}, &Favorite{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logging.WithFields(logging.Fields{"component": "catalog"}),
	}, nil
}

// ListSongsWithVectors returns the catalog snapshot in insertion order.
// Rows with no stored vector, or a vector from another layout version, come
// back with a nil Vector and stay eligible only for fallback paths.
func (s *SQLiteStore) ListSongsWithVectors() ([]analysis.SongEntry, error) {
	var rows []Song
	if err := s.db.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", analysis.ErrCatalogUnavailable, err)
	}

	entries := make([]analysis.SongEntry, 0, len(rows))
	for _, row := range rows {
		entry := analysis.SongEntry{
			ID:           row.ID,
			Title:        row.Title,
			Artist:       row.Artist,
			Tag:          row.Tag,
			BulkImported: row.BulkImported,
		}
		if row.Vector != "" {
			vector, err := decodeVector(row.Vector)
			if err != nil {
				s.logger.Warn("Skipping unreadable song vector", logging.Fields{
					"song_id": row.ID,
					"error":   err.Error(),
				})
			} else {
				entry.Vector = vector
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// UpsertSong creates or updates a song keyed by (title, artist)
func (s *SQLiteStore) UpsertSong(entry analysis.SongEntry) (string, error) {
	var vectorJSON string
	var vectorVersion int
	if entry.Vector != nil {
		if err := entry.Vector.Validate(); err != nil {
			return "", err
		}
		encoded, err := json.Marshal(entry.Vector)
		if err != nil {
			return "", fmt.Errorf("encoding vector: %w", err)
		}
		vectorJSON = string(encoded)
		vectorVersion = entry.Vector.Version
	}

	var existing Song
	err := s.db.Where("title = ? AND artist = ?", entry.Title, entry.Artist).First(&existing).Error
	if err == nil {
		updates := map[string]any{
			"tag":           entry.Tag,
			"bulk_imported": entry.BulkImported,
		}
		if vectorJSON != "" {
			updates["vector"] = vectorJSON
			updates["vector_version"] = vectorVersion
		}
		if err := s.db.Model(&existing).Updates(updates).Error; err != nil {
			return "", fmt.Errorf("updating song: %w", err)
		}
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("querying existing song: %w", err)
	}

	song := Song{
		ID:            uuid.NewString(),
		Title:         entry.Title,
		Artist:        entry.Artist,
		Tag:           entry.Tag,
		BulkImported:  entry.BulkImported,
		Vector:        vectorJSON,
		VectorVersion: vectorVersion,
	}
	if err := s.db.Create(&song).Error; err != nil {
		return "", fmt.Errorf("creating song: %w", err)
	}
	return song.ID, nil
}

// SaveAnalysis persists a history snapshot, assigning an id if absent
func (s *SQLiteStore) SaveAnalysis(snapshot analysis.Snapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.NewString()
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now()
	}
	row := Analysis{
		ID:             snapshot.ID,
		UserRef:        snapshot.UserRef,
		Score:          snapshot.Score,
		Clarity:        snapshot.Clarity,
		Stability:      snapshot.Stability,
		MatchedProfile: snapshot.MatchedProfile,
		MatchedSongID:  snapshot.MatchedSongID,
		CreatedAt:      snapshot.CreatedAt,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return fmt.Errorf("saving analysis: %w", err)
	}
	return nil
}

// RecentAnalyses returns the newest history records for a user
func (s *SQLiteStore) RecentAnalyses(userRef string, limit int) ([]analysis.Snapshot, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []Analysis
	err := s.db.Where("user_ref = ?", userRef).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("querying analyses: %w", err)
	}

	records := make([]analysis.Snapshot, len(rows))
	for i, row := range rows {
		records[i] = analysis.Snapshot{
			ID:             row.ID,
			UserRef:        row.UserRef,
			Score:          row.Score,
			Clarity:        row.Clarity,
			Stability:      row.Stability,
			MatchedProfile: row.MatchedProfile,
			MatchedSongID:  row.MatchedSongID,
			CreatedAt:      row.CreatedAt,
		}
	}
	return records, nil
}

// ToggleFavorite flips the favorite mark and reports the new state
func (s *SQLiteStore) ToggleFavorite(userRef, songID string) (bool, error) {
	var existing Favorite
	err := s.db.Where("user_ref = ? AND song_id = ?", userRef, songID).First(&existing).Error
	if err == nil {
		if err := s.db.Delete(&existing).Error; err != nil {
			return false, fmt.Errorf("removing favorite: %w", err)
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("querying favorite: %w", err)
	}
	if err := s.db.Create(&Favorite{UserRef: userRef, SongID: songID}).Error; err != nil {
		return false, fmt.Errorf("adding favorite: %w", err)
	}
	return true, nil
}

// ListFavorites returns the user's favorited songs
func (s *SQLiteStore) ListFavorites(userRef string) ([]analysis.SongEntry, error) {
	var rows []Song
	err := s.db.
		Joins("JOIN favorites ON favorites.song_id = songs.id").
		Where("favorites.user_ref = ?", userRef).
		Order("favorites.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("querying favorites: %w", err)
	}

	entries := make([]analysis.SongEntry, len(rows))
	for i, row := range rows {
		entries[i] = analysis.SongEntry{
			ID:           row.ID,
			Title:        row.Title,
			Artist:       row.Artist,
			Tag:          row.Tag,
			BulkImported: row.BulkImported,
		}
	}
	return entries, nil
}

// Close releases the underlying database handle
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// decodeVector parses a stored vector and enforces the layout contract
func decodeVector(raw string) (*analysis.TimbreVector, error) {
	var vector analysis.TimbreVector
	if err := json.Unmarshal([]byte(raw), &vector); err != nil {
		return nil, fmt.Errorf("decoding vector: %w", err)
	}
	if err := vector.Validate(); err != nil {
		return nil, err
	}
	return &vector, nil
}
