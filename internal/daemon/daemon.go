// Package daemon drives the reconcile loop: fetch the latest status,
// decide whether the README needs a new snippet, patch it, and record
// the write. Every failure is confined to its own cycle.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/april-ivy/april-ivy/internal/cache"
	"github.com/april-ivy/april-ivy/internal/readme"
	"github.com/april-ivy/april-ivy/internal/snippet"
	"github.com/april-ivy/april-ivy/pkg/github"
	"github.com/april-ivy/april-ivy/pkg/lastfm"
	"github.com/rs/zerolog"
)

// Fetcher produces the current listening status. A (nil, nil) return
// means there is nothing to report.
type Fetcher interface {
	RecentStatus(ctx context.Context, user string) (*lastfm.Status, error)
}

// Patcher reconciles rendered content into the remote document,
// reporting whether a remote write occurred.
type Patcher interface {
	Patch(ctx context.Context, rendered, message string) (bool, error)
}

// Config holds daemon configuration.
type Config struct {
	User          string        // Last.fm username to poll
	PollInterval  time.Duration // Spacing between cycle starts
	ReannounceTTL time.Duration // Minimum spacing between identical-content writes
}

// Daemon coordinates one status source, one document and one cache.
type Daemon struct {
	cfg     Config
	fetcher Fetcher
	patcher Patcher
	store   *cache.Store
	logger  zerolog.Logger
	now     func() time.Time
}

// New creates a new Daemon instance.
func New(cfg Config, fetcher Fetcher, patcher Patcher, store *cache.Store, logger zerolog.Logger) *Daemon {
	return &Daemon{
		cfg:     cfg,
		fetcher: fetcher,
		patcher: patcher,
		store:   store,
		logger:  logger.With().Str("component", "daemon").Logger(),
		now:     time.Now,
	}
}

// Run executes reconcile cycles until the context is cancelled.
//
// The interval is measured cycle start to cycle start: a cycle's own
// execution time is subtracted from the sleep, clamped at zero, so a
// slow cycle does not push every later one further out. Cycle errors
// are logged and swallowed; only cancellation ends the loop.
func (d *Daemon) Run(ctx context.Context) error {
	d.logger.Info().
		Dur("interval", d.cfg.PollInterval).
		Str("user", d.cfg.User).
		Msg("Starting reconcile loop")

	for {
		start := d.now()
		d.cycle(ctx)

		wait := d.cfg.PollInterval - d.now().Sub(start)
		if wait < 0 {
			wait = 0
		}

		select {
		case <-ctx.Done():
			d.logger.Info().Msg("Reconcile loop stopped")
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// cycle runs one reconcile pass, classifying and logging any failure.
func (d *Daemon) cycle(ctx context.Context) {
	err := d.RunOnce(ctx)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}

	switch {
	case errors.Is(err, readme.ErrTargetMissing), errors.Is(err, readme.ErrAmbiguousTarget):
		d.logger.Warn().Err(err).Msg("Document has no usable update target")
	case errors.Is(err, github.ErrConflict):
		d.logger.Warn().Err(err).Msg("Document changed concurrently, deferring to next cycle")
	default:
		d.logger.Error().Err(err).Msg("Reconcile cycle failed")
	}
}

// RunOnce performs a single fetch/decide/patch/record pass.
//
// The cache is read once at the start of the decision and written at
// most once, only after the document host confirms a write.
func (d *Daemon) RunOnce(ctx context.Context) error {
	status, err := d.fetcher.RecentStatus(ctx, d.cfg.User)
	if err != nil {
		return fmt.Errorf("fetch status: %w", err)
	}
	if status == nil {
		d.logger.Info().Msg("Nothing found, no recent tracks to report")
		return nil
	}

	record, err := d.store.Load()
	if err != nil {
		// An unreadable cache must never block publishing; treat it
		// as absent and let the next save replace it.
		d.logger.Warn().Err(err).Msg("Cache unreadable, treating as absent")
		record = nil
	}

	now := d.now()
	if !ShouldUpdate(status, record, now, d.cfg.ReannounceTTL) {
		d.logger.Debug().
			Str("track", status.Title).
			Str("artist", status.Artist).
			Msg("Status unchanged within re-announce window")
		return nil
	}

	rendered := snippet.Render(status, now)
	wrote, err := d.patcher.Patch(ctx, rendered, commitMessage(status))
	if err != nil {
		return err
	}
	if !wrote {
		return nil
	}

	if err := d.store.Save(cache.Record{
		Title:         status.Title,
		Artist:        status.Artist,
		Album:         status.Album,
		ArtworkURL:    status.ArtworkURL,
		NowPlaying:    status.NowPlaying,
		LastWrittenAt: now.Format(time.RFC3339),
	}); err != nil {
		return fmt.Errorf("save cache: %w", err)
	}

	d.logger.Info().
		Str("track", status.Title).
		Str("artist", status.Artist).
		Bool("now_playing", status.NowPlaying).
		Msg("Published status")
	return nil
}

// commitMessage summarizes the status for the document host's history.
func commitMessage(s *lastfm.Status) string {
	if s.NowPlaying {
		return fmt.Sprintf("now playing: %s - %s", s.Artist, s.Title)
	}
	return fmt.Sprintf("last played: %s - %s", s.Artist, s.Title)
}
