// Package detail loads the first-episode summary shown next to a
// selected character.
package detail

import (
	"context"
	"errors"

	"github.com/glabrego/rickmorty-cli/internal/catalog"
)

// ErrNoEpisode means the character carries no usable episode reference.
// No fetch is issued in that case.
var ErrNoEpisode = errors.New("no episode data")

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

type EpisodeFetcher interface {
	FetchEpisode(ctx context.Context, id string) (catalog.EpisodeSummary, error)
}

type Request struct {
	Seq         uint64
	CharacterID int
	EpisodeID   string
}

type Response struct {
	Seq         uint64
	CharacterID int
	Summary     catalog.EpisodeSummary
	Err         error
}

// Execute runs req against f.
func Execute(ctx context.Context, f EpisodeFetcher, req Request) Response {
	summary, err := f.FetchEpisode(ctx, req.EpisodeID)
	return Response{Seq: req.Seq, CharacterID: req.CharacterID, Summary: summary, Err: err}
}

// Enricher tracks the episode lookup for the character currently open.
// Results for any other character, or for an earlier open of the same
// one, are dropped.
type Enricher struct {
	seq       uint64
	character int
	open      bool

	status  Status
	summary *catalog.EpisodeSummary
	err     error
}

func NewEnricher() *Enricher {
	return &Enricher{}
}

// Open selects c and returns the episode fetch to run. ok is false when
// c has no parsable first episode; the enricher is then already Failed
// with ErrNoEpisode.
func (e *Enricher) Open(c catalog.Character) (Request, bool) {
	e.seq++
	e.character = c.ID
	e.open = true
	e.summary = nil
	e.err = nil

	ref, ok := c.FirstEpisodeRef()
	if !ok {
		e.fail(ErrNoEpisode)
		return Request{}, false
	}
	id, ok := catalog.EpisodeIDFromURL(ref)
	if !ok {
		e.fail(ErrNoEpisode)
		return Request{}, false
	}

	e.status = StatusLoading
	return Request{Seq: e.seq, CharacterID: c.ID, EpisodeID: id}, true
}

func (e *Enricher) fail(err error) {
	e.status = StatusFailed
	e.err = err
}

// Apply folds a finished lookup in. It reports false when the response
// belongs to a character that is no longer shown.
func (e *Enricher) Apply(resp Response) bool {
	if !e.open || resp.Seq != e.seq || resp.CharacterID != e.character {
		return false
	}
	if resp.Err != nil {
		e.fail(resp.Err)
		return true
	}
	summary := resp.Summary
	e.status = StatusLoaded
	e.summary = &summary
	e.err = nil
	return true
}

// Close leaves the detail view. In-flight lookups become stale.
func (e *Enricher) Close() {
	e.seq++
	e.open = false
	e.character = 0
	e.status = StatusIdle
	e.summary = nil
	e.err = nil
}

func (e *Enricher) State() (Status, *catalog.EpisodeSummary, error) {
	return e.status, e.summary, e.err
}

func (e *Enricher) CharacterID() int { return e.character }
func (e *Enricher) IsOpen() bool { return e.open }
