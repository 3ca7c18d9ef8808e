package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Status is the normalized "now playing / last played" state for a user.
type Status struct {
	Title      string    // Track title; never empty (fallback literal applied)
	Artist     string    // Artist name; never empty (fallback literal applied)
	Album      string    // Album name; may be empty
	ArtworkURL string    // Largest available artwork URL; may be empty
	NowPlaying bool      // True when Last.fm reports the track as currently playing
	PlayedAt   time.Time // When the track was played; not guaranteed monotonic
}

// Fallback literals used when Last.fm returns empty fields.
const (
	UnknownTitle  = "Unknown Track"
	UnknownArtist = "Unknown Artist"
)

// Artwork sizes in preference order.
var artworkSizes = []string{"extralarge", "large", "medium"}

// Wire types for the recenttracks JSON payload. Artist and album come
// back as {"#text": "..."} objects, the now-playing flag hides under
// "@attr", and the played-at timestamp is epoch seconds as a string.
type recentTracksResponse struct {
	RecentTracks struct {
		Track []recentTrack `json:"track"`
	} `json:"recenttracks"`
}

type recentTrack struct {
	Name   string       `json:"name"`
	Artist textValue    `json:"artist"`
	Album  textValue    `json:"album"`
	Image  []trackImage `json:"image"`
	Attr   struct {
		NowPlaying string `json:"nowplaying"`
	} `json:"@attr"`
	Date struct {
		UTS string `json:"uts"`
	} `json:"date"`
}

type textValue struct {
	Text string `json:"#text"`
}

type trackImage struct {
	Size string `json:"size"`
	URL  string `json:"#text"`
}

// RecentStatus fetches the user's most recent track and normalizes it.
//
// Returns (nil, nil) when the user has no listening history at all --
// an empty track list is a valid "nothing to report" outcome, not an
// error. Title and Artist in the returned Status are always populated.
func (c *Client) RecentStatus(ctx context.Context, user string) (*Status, error) {
	if user == "" {
		return nil, fmt.Errorf("lastfm: user is required")
	}

	query := url.Values{
		"method":  {"user.getrecenttracks"},
		"user":    {user},
		"api_key": {c.apiKey},
		"format":  {"json"},
		"limit":   {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("lastfm: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lastfm: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("lastfm: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Last.fm reports errors as {"error": N, "message": "..."}
		// even on non-200 responses.
		var apiErr Error
		if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && apiErr.Code != 0 {
			return nil, &apiErr
		}
		return nil, fmt.Errorf("lastfm: unexpected status code: %d", resp.StatusCode)
	}

	var parsed recentTracksResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("lastfm: failed to parse response: %w", err)
	}

	tracks := parsed.RecentTracks.Track
	if len(tracks) == 0 {
		return nil, nil
	}

	return c.normalize(tracks[0]), nil
}

// normalize maps a wire track to a Status, applying fallback literals
// and artwork size preference.
func (c *Client) normalize(t recentTrack) *Status {
	s := &Status{
		Title:      t.Name,
		Artist:     t.Artist.Text,
		Album:      t.Album.Text,
		ArtworkURL: selectArtwork(t.Image),
		NowPlaying: t.Attr.NowPlaying == "true",
		PlayedAt:   c.now(),
	}

	if s.Title == "" {
		s.Title = UnknownTitle
	}
	if s.Artist == "" {
		s.Artist = UnknownArtist
	}

	// A now-playing track carries no date; a historical one carries
	// epoch seconds as a string. Fall back to the fetch time when the
	// stamp is absent or unparseable.
	if uts, err := strconv.ParseInt(t.Date.UTS, 10, 64); err == nil {
		s.PlayedAt = time.Unix(uts, 0)
	}

	return s
}

// selectArtwork returns the URL of the largest preferred image variant,
// or empty when no usable variant exists.
func selectArtwork(images []trackImage) string {
	for _, size := range artworkSizes {
		for _, img := range images {
			if img.Size == size && img.URL != "" {
				return img.URL
			}
		}
	}
	return ""
}
