// Package snippet renders a listening status into the markup block
// embedded in the README. Rendering is pure: same status and same
// clock reading produce byte-identical output.
package snippet

import (
	"fmt"
	"strings"
	"time"

	"github.com/april-ivy/april-ivy/pkg/lastfm"
)

const (
	// Fixed artwork dimensions in the rendered image element.
	artworkWidth  = 96
	artworkHeight = 96

	nowPlayingLabel = "now playing"
)

// Render produces the markup for a status as of the given time.
//
// With artwork present the block carries the image, title, artist,
// album (when set) and a relative-time line. Without artwork only
// title and artist are emitted; album and time are dropped in that
// branch, matching the long-standing rendered output.
func Render(s *lastfm.Status, now time.Time) string {
	if s.ArtworkURL == "" {
		return fmt.Sprintf("**%s**<br />%s", s.Title, s.Artist)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<img src=%q width=\"%d\" height=\"%d\" align=\"left\" />\n\n",
		s.ArtworkURL, artworkWidth, artworkHeight)
	fmt.Fprintf(&b, "**%s**<br />\n", s.Title)
	fmt.Fprintf(&b, "%s<br />\n", s.Artist)
	if s.Album != "" {
		fmt.Fprintf(&b, "%s<br />\n", s.Album)
	}
	fmt.Fprintf(&b, "<sub>%s</sub>", timeLabel(s, now))
	return b.String()
}

// timeLabel returns the relative-time line, or the now-playing marker
// when the track is live.
func timeLabel(s *lastfm.Status, now time.Time) string {
	if s.NowPlaying {
		return nowPlayingLabel
	}
	return relative(now.Sub(s.PlayedAt))
}

// relative formats an elapsed duration into a coarse human label.
// Unit words are not pluralized per count ("1 minutes ago"); that
// matches the output this block has always had, and downstream
// snapshots depend on it staying stable.
func relative(elapsed time.Duration) string {
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(elapsed.Hours())/24)
	}
}
