// Package cache persists the last successfully published status as a
// single JSON record, so restarts and transient API failures do not
// cause redundant README writes.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Record is the last status that was successfully written to the
// README, plus the wall-clock time of that write. It deliberately
// omits the observation timestamp: only the five compared fields and
// the write time matter for change detection.
type Record struct {
	Title         string `json:"title"`
	Artist        string `json:"artist"`
	Album         string `json:"album,omitempty"`
	ArtworkURL    string `json:"artwork_url,omitempty"`
	NowPlaying    bool   `json:"now_playing"`
	LastWrittenAt string `json:"last_written_at"` // RFC3339
}

// WrittenAt parses the record's write timestamp. The second return is
// false when the stamp is missing or unparseable, which callers treat
// the same as an absent record.
func (r *Record) WrittenAt() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, r.LastWrittenAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Store reads and writes the single cached record at a fixed path.
type Store struct {
	filePath string
}

// NewStore creates a store backed by the given file path.
func NewStore(filePath string) *Store {
	return &Store{filePath: filePath}
}

// Load returns the cached record, or nil when no usable record exists.
//
// A missing file is not an error: it means "never written". A corrupt
// file is downgraded to the same outcome rather than propagated -- the
// next successful write overwrites it.
func (s *Store) Load() (*Record, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, nil
	}

	return &r, nil
}

// Save overwrites the cached record, creating parent directories as
// needed. The write goes through a temp file + rename so a crash never
// leaves a half-written record.
func (s *Store) Save(r Record) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmpPath, s.filePath)
}
