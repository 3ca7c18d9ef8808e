package snippet

import (
	"strings"
	"testing"
	"time"

	"github.com/april-ivy/april-ivy/pkg/lastfm"
)

var renderNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestRender_WithArtwork(t *testing.T) {
	s := &lastfm.Status{
		Title:      "Song A",
		Artist:     "Artist X",
		Album:      "Album Z",
		ArtworkURL: "https://x/a.jpg",
		PlayedAt:   renderNow.Add(-5 * time.Minute),
	}

	out := Render(s, renderNow)

	for _, want := range []string{
		`<img src="https://x/a.jpg" width="96" height="96"`,
		"**Song A**",
		"Artist X<br />",
		"Album Z<br />",
		"<sub>5 minutes ago</sub>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q in:\n%s", want, out)
		}
	}
}

func TestRender_WithArtworkNoAlbum(t *testing.T) {
	s := &lastfm.Status{
		Title:      "Song A",
		Artist:     "Artist X",
		ArtworkURL: "https://x/a.jpg",
		PlayedAt:   renderNow.Add(-5 * time.Minute),
	}

	out := Render(s, renderNow)
	if strings.Count(out, "<br />") != 2 {
		t.Errorf("expected exactly title and artist line breaks, got:\n%s", out)
	}
}

func TestRender_NowPlaying(t *testing.T) {
	s := &lastfm.Status{
		Title:      "Song A",
		Artist:     "Artist X",
		ArtworkURL: "https://x/a.jpg",
		NowPlaying: true,
		// Stale observation stamp must be ignored for a live track
		PlayedAt: renderNow.Add(-3 * time.Hour),
	}

	out := Render(s, renderNow)
	if !strings.Contains(out, "<sub>now playing</sub>") {
		t.Errorf("expected now-playing marker, got:\n%s", out)
	}
	if strings.Contains(out, "ago") {
		t.Errorf("live track must not carry a relative time, got:\n%s", out)
	}
}

func TestRender_NoArtwork(t *testing.T) {
	s := &lastfm.Status{
		Title:    "Song A",
		Artist:   "Artist X",
		Album:    "Album Z",
		PlayedAt: renderNow.Add(-5 * time.Minute),
	}

	out := Render(s, renderNow)

	if out != "**Song A**<br />Artist X" {
		t.Errorf("no-artwork branch changed, got %q", out)
	}
	// Album and time are dropped here. That asymmetry is the existing
	// contract; do not consolidate the branches.
	if strings.Contains(out, "Album Z") || strings.Contains(out, "ago") {
		t.Errorf("no-artwork branch must drop album and time, got %q", out)
	}
}

func TestRender_Deterministic(t *testing.T) {
	s := &lastfm.Status{
		Title:      "Song A",
		Artist:     "Artist X",
		ArtworkURL: "https://x/a.jpg",
		PlayedAt:   renderNow.Add(-90 * time.Minute),
	}

	first := Render(s, renderNow)
	for i := 0; i < 5; i++ {
		if got := Render(s, renderNow); got != first {
			t.Fatalf("Render() not deterministic: %q vs %q", got, first)
		}
	}
}

func TestRelative(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{name: "zero", elapsed: 0, want: "just now"},
		{name: "under a minute", elapsed: 59 * time.Second, want: "just now"},
		{name: "one minute", elapsed: 61 * time.Second, want: "1 minutes ago"},
		{name: "half hour", elapsed: 30 * time.Minute, want: "30 minutes ago"},
		{name: "floor within hour", elapsed: 59*time.Minute + 59*time.Second, want: "59 minutes ago"},
		{name: "one hour", elapsed: 60 * time.Minute, want: "1 hours ago"},
		{name: "floor within day", elapsed: 23*time.Hour + 59*time.Minute, want: "23 hours ago"},
		{name: "one day", elapsed: 24 * time.Hour, want: "1 days ago"},
		{name: "ten days", elapsed: 252 * time.Hour, want: "10 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := relative(tt.elapsed); got != tt.want {
				t.Errorf("relative(%v) = %q, want %q", tt.elapsed, got, tt.want)
			}
		})
	}
}
