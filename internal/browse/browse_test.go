package browse

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glabrego/rickmorty-cli/internal/catalog"
)

func makePage(number, count int, names ...string) catalog.Page {
	results := make([]catalog.Character, 0, len(names))
	for i, name := range names {
		results = append(results, catalog.Character{ID: (number-1)*catalog.PageSize + i + 1, Name: name})
	}
	return catalog.Page{Number: number, Info: catalog.PageInfo{Count: count}, Results: results}
}

func namesOf(records []catalog.Character) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

// loaded returns a controller that already shows page 1 of an 826 record catalog.
func loaded(t *testing.T, names ...string) *Controller {
	t.Helper()
	c := NewController()
	req, ok := c.GoToPage(1)
	require.True(t, ok)
	require.True(t, c.Apply(Response{Seq: req.Seq, Page: 1, Result: makePage(1, 826, names...)}))
	return c
}

type fakeFetcher struct {
	pages map[int]catalog.Page
	err   error
	calls []int
}

func (f *fakeFetcher) FetchPage(_ context.Context, page int) (catalog.Page, error) {
	f.calls = append(f.calls, page)
	if f.err != nil {
		return catalog.Page{}, f.err
	}
	return f.pages[page], nil
}

func TestController_InitialState(t *testing.T) {
	c := NewController()
	assert.Equal(t, StatusIdle, c.Status())
	assert.Equal(t, 1, c.CurrentPage())
	assert.Equal(t, 0, c.TotalPages())
	assert.False(t, c.HasPrevious())
	assert.False(t, c.HasNext())
	assert.Empty(t, c.Records())
}

func TestController_LoadDerivesTotalPages(t *testing.T) {
	c := loaded(t, "Rick Sanchez", "Morty Smith")

	assert.Equal(t, StatusLoaded, c.Status())
	assert.Equal(t, 42, c.TotalPages())
	assert.Equal(t, 826, c.TotalCount())
	assert.Equal(t, 1, c.CurrentPage())
	assert.Equal(t, []string{"Rick Sanchez", "Morty Smith"}, namesOf(c.Records()))
}

func TestController_EmptyCatalogStillHasOnePage(t *testing.T) {
	c := NewController()
	req, _ := c.GoToPage(1)
	c.Apply(Response{Seq: req.Seq, Page: 1, Result: makePage(1, 0)})
	assert.Equal(t, 1, c.TotalPages())
	assert.False(t, c.HasNext())
}

func TestController_GoToPageClamps(t *testing.T) {
	c := loaded(t, "Rick Sanchez")

	for _, n := range []int{-5, 0, 43, 1000} {
		req, ok := c.GoToPage(n)
		require.True(t, ok)
		assert.GreaterOrEqual(t, req.Page, 1, "n=%d", n)
		assert.LessOrEqual(t, req.Page, 42, "n=%d", n)
		assert.GreaterOrEqual(t, c.CurrentPage(), 1)
		assert.LessOrEqual(t, c.CurrentPage(), c.TotalPages())
	}

	req, _ := c.GoToPage(0)
	assert.Equal(t, 1, req.Page)
	req, _ = c.GoToPage(99)
	assert.Equal(t, 42, req.Page)
	assert.Equal(t, StatusLoading, c.Status())
}

func TestController_GoToPageBeforeFirstLoadClampsLowerBoundOnly(t *testing.T) {
	c := NewController()
	req, _ := c.GoToPage(-1)
	assert.Equal(t, 1, req.Page)
	req, _ = c.GoToPage(7)
	assert.Equal(t, 7, req.Page)
}

func TestController_BoundariesAreNoOps(t *testing.T) {
	c := loaded(t, "Rick Sanchez")

	_, ok := c.PreviousPage()
	assert.False(t, ok)
	assert.Equal(t, StatusLoaded, c.Status())

	req, _ := c.GoToPage(42)
	c.Apply(Response{Seq: req.Seq, Page: 42, Result: makePage(42, 826, "Last")})
	assert.False(t, c.HasNext())
	assert.True(t, c.HasPrevious())

	_, ok = c.NextPage()
	assert.False(t, ok)
	assert.Equal(t, 42, c.CurrentPage())
	assert.Equal(t, StatusLoaded, c.Status())
}

func TestController_StaleResponseDiscarded(t *testing.T) {
	c := loaded(t, "Page one")

	req2, _ := c.GoToPage(2)
	req3, _ := c.GoToPage(3)

	assert.True(t, c.Apply(Response{Seq: req3.Seq, Page: 3, Result: makePage(3, 826, "Page three")}))
	assert.False(t, c.Apply(Response{Seq: req2.Seq, Page: 2, Result: makePage(2, 826, "Page two")}))

	assert.Equal(t, 3, c.CurrentPage())
	assert.Equal(t, []string{"Page three"}, namesOf(c.Records()))
	assert.Equal(t, StatusLoaded, c.Status())
}

func TestController_StaleFailureDiscarded(t *testing.T) {
	c := loaded(t, "Page one")

	req2, _ := c.GoToPage(2)
	req3, _ := c.GoToPage(3)
	c.Apply(Response{Seq: req3.Seq, Page: 3, Result: makePage(3, 826, "Page three")})
	assert.False(t, c.Apply(Response{Seq: req2.Seq, Page: 2, Err: errors.New("late failure")}))

	assert.Equal(t, StatusLoaded, c.Status())
	assert.NoError(t, c.Err())
}

func TestController_NextThenPreviousSettlesOnFirstPage(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[int]catalog.Page{
		1: makePage(1, 826, pageNames(1)...),
		2: makePage(2, 826, pageNames(2)...),
	}}
	c := NewController()

	first, _ := c.GoToPage(1)
	require.True(t, c.Apply(Execute(context.Background(), fetcher, first)))
	require.Len(t, c.Records(), 20)
	require.Equal(t, 42, c.TotalPages())

	next, ok := c.NextPage()
	require.True(t, ok)
	assert.Equal(t, 2, next.Page)

	prev, ok := c.PreviousPage()
	require.True(t, ok)
	assert.Equal(t, 1, prev.Page)

	// The page 1 response lands first, the page 2 response after it.
	respPrev := Execute(context.Background(), fetcher, prev)
	respNext := Execute(context.Background(), fetcher, next)
	assert.True(t, c.Apply(respPrev))
	assert.False(t, c.Apply(respNext))

	assert.Equal(t, []int{1, 1, 2}, fetcher.calls)
	assert.Equal(t, 1, c.CurrentPage())
	assert.Equal(t, "Character 1-1", c.Records()[0].Name)
}

func pageNames(page int) []string {
	names := make([]string, 0, catalog.PageSize)
	for i := 1; i <= catalog.PageSize; i++ {
		names = append(names, fmt.Sprintf("Character %d-%d", page, i))
	}
	return names
}

func TestController_FailureRetainsPreviousPage(t *testing.T) {
	c := loaded(t, "Rick Sanchez", "Morty Smith")

	req, _ := c.NextPage()
	require.True(t, c.Apply(Response{Seq: req.Seq, Page: req.Page, Err: &catalog.NetworkError{Op: "fetch", Reason: catalog.ReasonTimeout, Err: context.DeadlineExceeded}}))

	assert.Equal(t, StatusFailed, c.Status())
	assert.Equal(t, 1, c.CurrentPage())
	assert.Equal(t, []string{"Rick Sanchez", "Morty Smith"}, namesOf(c.Records()))
	assert.Contains(t, c.ErrMessage(), "did not answer in time")

	retry, ok := c.Retry()
	require.True(t, ok)
	assert.Equal(t, 2, retry.Page)
	assert.Equal(t, StatusLoading, c.Status())
}

func TestController_RetryOnlyAfterFailure(t *testing.T) {
	c := loaded(t, "Rick Sanchez")
	_, ok := c.Retry()
	assert.False(t, ok)
}

func TestController_FirstLoadFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: &catalog.APIError{Op: "fetch", Status: 500, Message: "boom"}}
	c := NewController()

	req, _ := c.GoToPage(1)
	require.True(t, c.Apply(Execute(context.Background(), fetcher, req)))

	assert.Equal(t, StatusFailed, c.Status())
	assert.Empty(t, c.Records())
	assert.Equal(t, "Catalog error (500): boom", c.ErrMessage())
}

func TestController_FilterIsCaseInsensitiveAndOrderPreserving(t *testing.T) {
	c := loaded(t, "Rick Sanchez", "Morty Smith", "Adjudicator Rick", "Summer Smith", "Pickle RICK")

	c.SetFilter("RICK")
	upper := namesOf(c.Records())
	c.SetFilter("rick")
	lower := namesOf(c.Records())

	assert.Equal(t, []string{"Rick Sanchez", "Adjudicator Rick", "Pickle RICK"}, lower)
	assert.Equal(t, lower, upper)
	assert.Equal(t, "rick", c.FilterQuery())
}

func TestController_EmptyFilterRestoresPage(t *testing.T) {
	all := []string{"Rick Sanchez", "Morty Smith", "Summer Smith"}
	c := loaded(t, all...)

	c.SetFilter("smith")
	assert.Equal(t, []string{"Morty Smith", "Summer Smith"}, namesOf(c.Records()))

	c.SetFilter("")
	assert.Equal(t, all, namesOf(c.Records()))

	c.SetFilter("   ")
	assert.Equal(t, all, namesOf(c.Records()))
	assert.Equal(t, "", c.FilterQuery())
}

func TestController_FilterSurvivesPageChangeWithoutFetching(t *testing.T) {
	c := loaded(t, "Rick Sanchez", "Morty Smith")
	seq := c.seq

	c.SetFilter("morty")
	assert.Equal(t, seq, c.seq)

	req, _ := c.NextPage()
	c.Apply(Response{Seq: req.Seq, Page: 2, Result: makePage(2, 826, "Evil Morty", "Birdperson")})
	assert.Equal(t, []string{"Evil Morty"}, namesOf(c.Records()))
	assert.Len(t, c.AllRecords(), 2)
}

func TestController_FilterUsesUnicodeFolding(t *testing.T) {
	c := loaded(t, "Élodie", "Morty")
	c.SetFilter("éLODIE")
	assert.Equal(t, []string{"Élodie"}, namesOf(c.Records()))

	c.SetFilter("ÉLO")
	assert.Equal(t, []string{"Élodie"}, namesOf(c.Records()))
}

func TestController_NoMatches(t *testing.T) {
	c := loaded(t, "Rick Sanchez")
	c.SetFilter("jerry")
	assert.Empty(t, c.Records())
	assert.Len(t, c.AllRecords(), 1)
}

func TestController_RecordsAreCopies(t *testing.T) {
	c := loaded(t, "Rick Sanchez", "Morty Smith")

	records := c.Records()
	records[0].Name = "Doofus Rick"
	all := c.AllRecords()
	all[1].Name = "Evil Morty"

	assert.Equal(t, []string{"Rick Sanchez", "Morty Smith"}, namesOf(c.Records()))
	assert.Equal(t, []string{"Rick Sanchez", "Morty Smith"}, namesOf(c.AllRecords()))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "loaded", StatusLoaded.String())
	assert.Equal(t, "failed", StatusFailed.String())
}
