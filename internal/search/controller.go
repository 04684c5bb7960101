// Package search implements the submit, pagination and subject drill-down
// protocol on top of a queryparam.Store and a Fetcher.
package search

import (
	"context"
	"sync"

	"github.com/Xunop/gutenbrowse/internal/log"
	"github.com/Xunop/gutenbrowse/internal/model"
	"github.com/Xunop/gutenbrowse/internal/queryparam"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrStale is returned by a fetch whose result was dropped because a newer
// fetch started while it was in flight.
var ErrStale = errors.New("search: response superseded by a newer request")

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Fetcher performs the actual search. *gutendex.Client implements it.
type Fetcher interface {
	Search(ctx context.Context, f model.FilterState) (*model.SearchResponse, error)
}

// resetOnSubject lists the keys cleared when drilling into a subject.
var resetOnSubject = []string{
	model.KeySearch,
	model.KeyAuthorYearStart,
	model.KeyAuthorYearEnd,
	model.KeyCopyright,
	model.KeyLanguages,
	model.KeySort,
}

// Controller owns the last response of one browser session.
//
// Only the most recently started fetch may publish its result. A failed fetch
// clears the previous results.
type Controller struct {
	fetcher Fetcher

	mu       sync.Mutex
	seq      uint64
	status   Status
	response *model.SearchResponse
	err      error
	filter   model.FilterState
}

func NewController(fetcher Fetcher) *Controller {
	return &Controller{fetcher: fetcher}
}

// OnFieldChange records a single edit. It never fetches.
func (c *Controller) OnFieldChange(params queryparam.Store, key, value string) {
	params.Set(key, value)
}

// OnSearch resets to the first page and fetches with the current filters.
func (c *Controller) OnSearch(ctx context.Context, params queryparam.Store) error {
	params.Set(model.KeyPage, model.DefaultPage)
	return c.fetch(ctx, queryparam.FilterFromStore(params))
}

// OnPageChange moves to page and fetches. Other filters are kept.
func (c *Controller) OnPageChange(ctx context.Context, params queryparam.Store, page string) error {
	params.Set(model.KeyPage, page)
	return c.fetch(ctx, queryparam.FilterFromStore(params))
}

// OnSubjectClick drops every filter except the clicked subject, which becomes
// the topic, and fetches its first page.
func (c *Controller) OnSubjectClick(ctx context.Context, params queryparam.Store, subject string) error {
	for _, key := range resetOnSubject {
		params.Remove(key)
	}
	params.Set(model.KeyTopic, subject)
	params.Set(model.KeyPage, model.DefaultPage)
	return c.fetch(ctx, queryparam.FilterFromStore(params))
}

func (c *Controller) fetch(ctx context.Context, f model.FilterState) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.status = StatusLoading
	c.filter = f
	c.mu.Unlock()

	resp, err := c.fetcher.Search(ctx, f)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		log.Debug("Dropping stale search response",
			zap.Uint64("seq", seq),
			zap.Uint64("latest", c.seq),
		)
		return ErrStale
	}
	if err != nil {
		c.status = StatusError
		c.response = nil
		c.err = err
		log.Warn("Search failed", zap.Any("filter", f), zap.Error(err))
		return err
	}
	c.status = StatusSuccess
	c.response = resp
	c.err = nil
	return nil
}

// Snapshot is a consistent copy of the controller state for rendering.
type Snapshot struct {
	Status   Status                `json:"status"`
	Response *model.SearchResponse `json:"response,omitempty"`
	// Filter is what the last started fetch asked for.
	Filter    model.FilterState `json:"filter"`
	Failed    bool              `json:"failed"`
	PageCount int               `json:"page_count"`
	// NoResults is set after a successful fetch that matched nothing.
	NoResults bool `json:"no_results"`
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Status:   c.status,
		Response: c.response,
		Filter:   c.filter,
		Failed:   c.status == StatusError,
	}
	if c.response != nil {
		s.PageCount = model.PageCount(c.response.Count)
		s.NoResults = c.status == StatusSuccess && c.response.Count == 0
	}
	return s
}

// Err returns the error of the last failed fetch, for logging only.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
