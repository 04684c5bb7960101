package search

import (
	"context"
	"sync"
	"testing"

	"github.com/Xunop/gutenbrowse/internal/model"
	"github.com/Xunop/gutenbrowse/internal/queryparam"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu      sync.Mutex
	calls   []model.FilterState
	results []*model.SearchResponse
	errs    []error
}

func (f *fakeFetcher) Search(ctx context.Context, filter model.FilterState) (*model.SearchResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := len(f.calls)
	f.calls = append(f.calls, filter)
	var (
		resp *model.SearchResponse
		err  error
	)
	if i < len(f.results) {
		resp = f.results[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return resp, err
}

func fullStore() *queryparam.MemoryStore {
	s := queryparam.NewMemoryStore()
	queryparam.Apply(s, model.FilterState{
		Search:          "whale",
		AuthorYearStart: "1800",
		AuthorYearEnd:   "1900",
		Copyright:       "false",
		Languages:       "en,fr",
		Sort:            "ascending",
		Topic:           "sea",
		Page:            "4",
	})
	return s
}

func page(count int, titles ...string) *model.SearchResponse {
	resp := &model.SearchResponse{Count: count}
	for i, title := range titles {
		resp.Results = append(resp.Results, model.Book{ID: i + 1, Title: title})
	}
	return resp
}

func TestInitialStateIsIdle(t *testing.T) {
	c := NewController(&fakeFetcher{})
	snap := c.Snapshot()
	assert.Equal(t, StatusIdle, snap.Status)
	assert.Nil(t, snap.Response)
	assert.False(t, snap.Failed)
}

func TestOnSearchResetsPage(t *testing.T) {
	fetcher := &fakeFetcher{results: []*model.SearchResponse{page(65, "Moby Dick")}}
	c := NewController(fetcher)
	params := fullStore()

	require.NoError(t, c.OnSearch(context.Background(), params))

	assert.Equal(t, "1", params.Get(model.KeyPage))
	require.Len(t, fetcher.calls, 1)
	assert.Equal(t, "1", fetcher.calls[0].Page)
	assert.Equal(t, "whale", fetcher.calls[0].Search)

	snap := c.Snapshot()
	assert.Equal(t, StatusSuccess, snap.Status)
	assert.Equal(t, 3, snap.PageCount)
	assert.False(t, snap.NoResults)
}

func TestOnPageChangeKeepsFilters(t *testing.T) {
	fetcher := &fakeFetcher{results: []*model.SearchResponse{page(65)}}
	c := NewController(fetcher)
	params := fullStore()

	require.NoError(t, c.OnPageChange(context.Background(), params, "2"))

	want := queryparam.FilterFromStore(fullStore())
	want.Page = "2"
	assert.Equal(t, []model.FilterState{want}, fetcher.calls)
	assert.Equal(t, "2", params.Get(model.KeyPage))
}

func TestOnSubjectClickResetsFilters(t *testing.T) {
	fetcher := &fakeFetcher{results: []*model.SearchResponse{page(1, "Tom Sawyer")}}
	c := NewController(fetcher)
	params := fullStore()

	require.NoError(t, c.OnSubjectClick(context.Background(), params, "Fiction"))

	assert.Equal(t, []model.FilterState{{Topic: "Fiction", Page: "1"}}, fetcher.calls)
	assert.Equal(t, "page=1&topic=Fiction", params.Encode())
}

func TestOnFieldChangeDoesNotFetch(t *testing.T) {
	fetcher := &fakeFetcher{}
	c := NewController(fetcher)
	params := queryparam.NewMemoryStore()

	c.OnFieldChange(params, model.KeySearch, "dracula")
	c.OnFieldChange(params, model.KeySort, "popular")
	c.OnFieldChange(params, model.KeySort, "")

	assert.Empty(t, fetcher.calls)
	assert.Equal(t, "search=dracula", params.Encode())
	assert.Equal(t, StatusIdle, c.Snapshot().Status)
}

func TestNoResults(t *testing.T) {
	c := NewController(&fakeFetcher{results: []*model.SearchResponse{page(0)}})
	require.NoError(t, c.OnSearch(context.Background(), queryparam.NewMemoryStore()))

	snap := c.Snapshot()
	assert.Equal(t, 0, snap.PageCount)
	assert.True(t, snap.NoResults)
}

func TestFailureClearsResultsAndSuccessClearsError(t *testing.T) {
	boom := errors.New("boom")
	fetcher := &fakeFetcher{
		results: []*model.SearchResponse{page(32, "Emma"), nil, page(1, "Persuasion")},
		errs:    []error{nil, boom, nil},
	}
	c := NewController(fetcher)
	params := queryparam.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, c.OnSearch(ctx, params))
	assert.Equal(t, 1, c.Snapshot().PageCount)

	err := c.OnPageChange(ctx, params, "2")
	require.ErrorIs(t, err, boom)
	snap := c.Snapshot()
	assert.Equal(t, StatusError, snap.Status)
	assert.True(t, snap.Failed)
	assert.Nil(t, snap.Response)
	assert.ErrorIs(t, c.Err(), boom)

	require.NoError(t, c.OnSearch(ctx, params))
	snap = c.Snapshot()
	assert.False(t, snap.Failed)
	assert.Equal(t, "Persuasion", snap.Response.Results[0].Title)
	assert.NoError(t, c.Err())
}

// blockingFetcher holds every call until its release channel is closed.
type blockingFetcher struct {
	started chan model.FilterState
	release map[string]chan struct{}
}

func (f *blockingFetcher) Search(ctx context.Context, filter model.FilterState) (*model.SearchResponse, error) {
	f.started <- filter
	<-f.release[filter.Page]
	return page(1, "page "+filter.Page), nil
}

func TestStaleResponseIsDropped(t *testing.T) {
	fetcher := &blockingFetcher{
		started: make(chan model.FilterState, 2),
		release: map[string]chan struct{}{
			"2": make(chan struct{}),
			"3": make(chan struct{}),
		},
	}
	c := NewController(fetcher)
	ctx := context.Background()

	older := make(chan error, 1)
	go func() {
		older <- c.OnPageChange(ctx, queryparam.NewMemoryStore(), "2")
	}()
	<-fetcher.started

	newer := make(chan error, 1)
	go func() {
		newer <- c.OnPageChange(ctx, queryparam.NewMemoryStore(), "3")
	}()
	<-fetcher.started
	assert.Equal(t, StatusLoading, c.Snapshot().Status)

	// the newer request finishes first, then the older one resolves late
	close(fetcher.release["3"])
	require.NoError(t, <-newer)
	close(fetcher.release["2"])
	assert.ErrorIs(t, <-older, ErrStale)

	snap := c.Snapshot()
	assert.Equal(t, StatusSuccess, snap.Status)
	assert.Equal(t, "page 3", snap.Response.Results[0].Title)
	assert.Equal(t, "3", snap.Filter.Page)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "loading", StatusLoading.String())
	text, err := StatusError.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "error", string(text))
	assert.Equal(t, "unknown", Status(42).String())
}
