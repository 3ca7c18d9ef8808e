// Package readme locates the music section inside the remote README
// and rewrites it through a read-then-conditional-write cycle against
// the document host.
package readme

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/april-ivy/april-ivy/pkg/github"
	"github.com/rs/zerolog"
)

// Markers delimiting the update zone. Only the content strictly
// between them is ever rewritten; the markers stay in place.
const (
	StartMarker = "<!--START_SECTION:music-->"
	EndMarker   = "<!--END_SECTION:music-->"
)

var (
	// ErrTargetMissing means the document contains neither an update
	// zone nor the placeholder. Nothing is written; the condition
	// recurs every cycle until the document is fixed externally.
	ErrTargetMissing = errors.New("readme: no update zone or placeholder found")

	// ErrAmbiguousTarget means the document contains more than one
	// update zone or placeholder. Patching would be guesswork, so
	// nothing is written.
	ErrAmbiguousTarget = errors.New("readme: multiple update zones or placeholders found")
)

// Host is the document provider: fetch a file with its revision SHA,
// and conditionally update it.
type Host interface {
	GetFile(ctx context.Context, owner, repo, path, branch string) (*github.File, error)
	UpdateFile(ctx context.Context, owner, repo, path, branch, message, content, sha string) error
}

// Config identifies the document to patch.
type Config struct {
	Owner       string
	Repo        string
	Path        string
	Branch      string
	Placeholder string // Literal token upgraded to an update zone on first patch
}

// Patcher reconciles rendered content into the remote document.
type Patcher struct {
	host   Host
	cfg    Config
	logger zerolog.Logger
}

// New creates a Patcher for a single remote document.
func New(host Host, cfg Config, logger zerolog.Logger) *Patcher {
	return &Patcher{
		host:   host,
		cfg:    cfg,
		logger: logger.With().Str("component", "patcher").Logger(),
	}
}

// Patch fetches the document, splices the rendered content into its
// update zone (installing one over the placeholder on first use) and
// writes the result back conditionally on the fetched revision SHA.
//
// Returns true only when a remote write actually occurred. A document
// that comes out byte-identical is left alone. A write rejected for a
// stale SHA propagates github.ErrConflict; it is never retried here.
func (p *Patcher) Patch(ctx context.Context, rendered, message string) (bool, error) {
	file, err := p.host.GetFile(ctx, p.cfg.Owner, p.cfg.Repo, p.cfg.Path, p.cfg.Branch)
	if err != nil {
		return false, fmt.Errorf("fetch document: %w", err)
	}

	updated, err := splice(file.Content, rendered, p.cfg.Placeholder)
	if err != nil {
		return false, err
	}

	if updated == file.Content {
		p.logger.Debug().Msg("Document already up to date")
		return false, nil
	}

	if err := p.host.UpdateFile(ctx, p.cfg.Owner, p.cfg.Repo, p.cfg.Path, p.cfg.Branch,
		message, updated, file.SHA); err != nil {
		return false, fmt.Errorf("write document: %w", err)
	}

	p.logger.Info().Str("path", p.cfg.Path).Str("sha", file.SHA).Msg("Document updated")
	return true, nil
}

// splice replaces the update zone of doc with rendered content.
//
// The scan is an explicit two-phase match: find the opening marker,
// then the first closing marker after it. When no zone exists, a
// document holding the placeholder exactly once gets the placeholder
// replaced by a full zone (markers included) -- a one-time upgrade.
func splice(doc, rendered, placeholder string) (string, error) {
	start := strings.Index(doc, StartMarker)
	if start >= 0 {
		if strings.Contains(doc[start+len(StartMarker):], StartMarker) {
			return "", ErrAmbiguousTarget
		}
		interior := start + len(StartMarker)
		endOffset := strings.Index(doc[interior:], EndMarker)
		if endOffset < 0 {
			// An opening marker without a closing one is as unusable
			// as no marker at all.
			return "", ErrTargetMissing
		}
		end := interior + endOffset
		return doc[:interior] + "\n" + rendered + "\n" + doc[end:], nil
	}

	switch strings.Count(doc, placeholder) {
	case 0:
		return "", ErrTargetMissing
	case 1:
		zone := StartMarker + "\n" + rendered + "\n" + EndMarker
		return strings.Replace(doc, placeholder, zone, 1), nil
	default:
		return "", ErrAmbiguousTarget
	}
}
