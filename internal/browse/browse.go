// Package browse holds the paginated, filterable character list.
//
// The controller never performs I/O. Page changes return a Request that
// the caller executes; the finished fetch comes back through Apply. Each
// request carries a sequence number and only the latest one may change
// state, so out-of-order responses cannot overwrite a newer intent.
package browse

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/glabrego/rickmorty-cli/internal/catalog"
)

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

type Fetcher interface {
	FetchPage(ctx context.Context, page int) (catalog.Page, error)
}

// Request describes one page fetch issued by the controller.
type Request struct {
	Seq  uint64
	Page int
}

// Response is the outcome of executing a Request.
type Response struct {
	Seq    uint64
	Page   int
	Result catalog.Page
	Err    error
}

// Execute runs req against f.
func Execute(ctx context.Context, f Fetcher, req Request) Response {
	page, err := f.FetchPage(ctx, req.Page)
	return Response{Seq: req.Seq, Page: req.Page, Result: page, Err: err}
}

type Controller struct {
	status Status
	err    error

	seq        uint64
	target     int
	failedPage int
	loadedPage int
	totalPages int
	totalCount int

	records  []catalog.Character
	filtered []catalog.Character
	query    string
	folded   string
}

func NewController() *Controller {
	return &Controller{target: 1}
}

// GoToPage clamps n into range, enters Loading and returns the fetch to run.
func (c *Controller) GoToPage(n int) (Request, bool) {
	if n < 1 {
		n = 1
	}
	if c.totalPages > 0 && n > c.totalPages {
		n = c.totalPages
	}
	c.seq++
	c.target = n
	c.status = StatusLoading
	c.err = nil
	return Request{Seq: c.seq, Page: n}, true
}

// NextPage is a no-op returning ok=false on the last page.
func (c *Controller) NextPage() (Request, bool) {
	if !c.HasNext() {
		return Request{}, false
	}
	return c.GoToPage(c.target + 1)
}

// PreviousPage is a no-op returning ok=false on the first page.
func (c *Controller) PreviousPage() (Request, bool) {
	if !c.HasPrevious() {
		return Request{}, false
	}
	return c.GoToPage(c.target - 1)
}

// Retry re-issues the page that last failed.
func (c *Controller) Retry() (Request, bool) {
	if c.status != StatusFailed {
		return Request{}, false
	}
	target := c.target
	if c.failedPage > 0 {
		target = c.failedPage
	}
	return c.GoToPage(target)
}

func (c *Controller) HasNext() bool {
	return c.totalPages > 0 && c.target < c.totalPages
}

func (c *Controller) HasPrevious() bool {
	return c.target > 1
}

// Apply folds a finished fetch into the controller. It reports false
// when the response is stale and was discarded.
func (c *Controller) Apply(resp Response) bool {
	if resp.Seq != c.seq {
		return false
	}

	if resp.Err != nil {
		c.status = StatusFailed
		c.err = resp.Err
		c.failedPage = resp.Page
		// Keep showing the last good page and point the cursor back at it.
		if c.loadedPage > 0 {
			c.target = c.loadedPage
		}
		return true
	}

	c.status = StatusLoaded
	c.err = nil
	c.failedPage = 0
	c.totalCount = resp.Result.Info.Count
	c.totalPages = max(1, resp.Result.TotalPages())
	c.target = min(max(resp.Page, 1), c.totalPages)
	c.loadedPage = c.target
	c.records = append([]catalog.Character(nil), resp.Result.Results...)
	c.refilter()
	return true
}

// SetFilter narrows the loaded page to names containing q, ignoring case.
// It never triggers a fetch.
func (c *Controller) SetFilter(q string) {
	c.query = strings.TrimSpace(q)
	c.folded = fold(c.query)
	c.refilter()
}

func (c *Controller) refilter() {
	if c.folded == "" {
		c.filtered = c.records
		return
	}
	out := make([]catalog.Character, 0, len(c.records))
	for _, rec := range c.records {
		if strings.Contains(fold(rec.Name), c.folded) {
			out = append(out, rec)
		}
	}
	c.filtered = out
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// Records returns a copy of the loaded page after filtering, in server order.
func (c *Controller) Records() []catalog.Character {
	return slices.Clone(c.filtered)
}

// AllRecords returns a copy of the loaded page ignoring the filter.
func (c *Controller) AllRecords() []catalog.Character {
	return slices.Clone(c.records)
}

func (c *Controller) CurrentPage() int { return c.target }
func (c *Controller) LoadedPage() int { return c.loadedPage }
func (c *Controller) TotalPages() int { return c.totalPages }
func (c *Controller) TotalCount() int { return c.totalCount }
func (c *Controller) FilterQuery() string { return c.query }
func (c *Controller) Status() Status { return c.status }
func (c *Controller) Err() error { return c.err }

// ErrMessage is the human-readable form of the last failure.
func (c *Controller) ErrMessage() string {
	return Describe(c.err)
}
