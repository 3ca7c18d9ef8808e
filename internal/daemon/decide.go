package daemon

import (
	"time"

	"github.com/april-ivy/april-ivy/internal/cache"
	"github.com/april-ivy/april-ivy/pkg/lastfm"
)

// ShouldUpdate reports whether a freshly observed status needs to be
// published, given the last published record (nil when none exists).
//
// Rules, in order: no record always publishes; any content difference
// in the five compared fields always publishes; an unparseable write
// stamp counts as no record; otherwise publish only once the minimum
// re-announce interval has elapsed since the last write, so relative
// time labels get re-stamped without churning the document every poll.
func ShouldUpdate(s *lastfm.Status, r *cache.Record, now time.Time, ttl time.Duration) bool {
	if r == nil {
		return true
	}

	if s.Title != r.Title ||
		s.Artist != r.Artist ||
		s.Album != r.Album ||
		s.ArtworkURL != r.ArtworkURL ||
		s.NowPlaying != r.NowPlaying {
		return true
	}

	written, ok := r.WrittenAt()
	if !ok {
		return true
	}

	return now.Sub(written) > ttl
}
