package daemon

import (
	"testing"
	"time"

	"github.com/april-ivy/april-ivy/internal/cache"
	"github.com/april-ivy/april-ivy/pkg/lastfm"
)

func baseStatus() *lastfm.Status {
	return &lastfm.Status{
		Title:      "Song A",
		Artist:     "Artist X",
		Album:      "Album Z",
		ArtworkURL: "https://x/a.jpg",
		NowPlaying: false,
	}
}

func recordFor(s *lastfm.Status, writtenAt string) *cache.Record {
	return &cache.Record{
		Title:         s.Title,
		Artist:        s.Artist,
		Album:         s.Album,
		ArtworkURL:    s.ArtworkURL,
		NowPlaying:    s.NowPlaying,
		LastWrittenAt: writtenAt,
	}
}

func TestShouldUpdate_NoRecord(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	statuses := []*lastfm.Status{
		baseStatus(),
		{Title: "Unknown Track", Artist: "Unknown Artist"},
		{Title: "B", Artist: "C", NowPlaying: true},
	}
	for _, s := range statuses {
		if !ShouldUpdate(s, nil, now, 10*time.Minute) {
			t.Errorf("ShouldUpdate(%q, nil) = false, want true", s.Title)
		}
	}
}

func TestShouldUpdate_ContentChange(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// Record written just now: the TTL window is wide open, so only a
	// content difference can force an update.
	fresh := now.Format(time.RFC3339)

	tests := []struct {
		name   string
		modify func(*lastfm.Status)
		want   bool
	}{
		{name: "identical", modify: func(s *lastfm.Status) {}, want: false},
		{name: "title differs", modify: func(s *lastfm.Status) { s.Title = "Song B" }, want: true},
		{name: "artist differs", modify: func(s *lastfm.Status) { s.Artist = "Artist Y" }, want: true},
		{name: "album differs", modify: func(s *lastfm.Status) { s.Album = "" }, want: true},
		{name: "artwork differs", modify: func(s *lastfm.Status) { s.ArtworkURL = "https://x/b.jpg" }, want: true},
		{name: "live flag differs", modify: func(s *lastfm.Status) { s.NowPlaying = true }, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := baseStatus()
			r := recordFor(baseStatus(), fresh)
			tt.modify(s)
			if got := ShouldUpdate(s, r, now, 10*time.Minute); got != tt.want {
				t.Errorf("ShouldUpdate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldUpdate_CorruptTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, stamp := range []string{"", "not-a-time", "2026-13-99"} {
		r := recordFor(baseStatus(), stamp)
		if !ShouldUpdate(baseStatus(), r, now, 10*time.Minute) {
			t.Errorf("ShouldUpdate with stamp %q = false, want true", stamp)
		}
	}
}

func TestShouldUpdate_TTLExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ttl := 10 * time.Minute

	tests := []struct {
		name    string
		written time.Time
		want    bool
	}{
		{name: "just written", written: now, want: false},
		{name: "within window", written: now.Add(-9 * time.Minute), want: false},
		{name: "exactly at ttl", written: now.Add(-ttl), want: false},
		{name: "past ttl", written: now.Add(-ttl - time.Second), want: true},
		{name: "long past ttl", written: now.Add(-24 * time.Hour), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := recordFor(baseStatus(), tt.written.Format(time.RFC3339))
			if got := ShouldUpdate(baseStatus(), r, now, ttl); got != tt.want {
				t.Errorf("ShouldUpdate() = %v, want %v", got, tt.want)
			}
		})
	}
}
