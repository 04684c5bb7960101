// Package gutendex is a client for the read-only Gutendex book catalog API.
package gutendex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Xunop/gutenbrowse/internal/model"
	"github.com/Xunop/gutenbrowse/internal/queryparam"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	booksPath      = "/books"
	defaultTimeout = 15 * time.Second
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gutendex: unexpected status code %d from %s", e.StatusCode, e.URL)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
	timeout    time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the default client. Its transport is used as is and
// the client itself is never modified.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithTimeout bounds each request, whichever HTTP client ends up in use.
// d <= 0 keeps the client's own timeout.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.timeout = d }
}

func WithUserAgent(ua string) Option {
	return func(cl *Client) { cl.userAgent = ua }
}

// WithRateLimit caps outbound requests per second. rps <= 0 means no limit.
func WithRateLimit(rps float64) Option {
	return func(cl *Client) {
		if rps <= 0 {
			cl.limiter = nil
			return
		}
		cl.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient returns a client for the API rooted at baseURL (without /books).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &LoggingTransport{},
			Timeout:   defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 && c.httpClient.Timeout != c.timeout {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// SearchURL returns the URL Search would request for f.
func (c *Client) SearchURL(f model.FilterState) string {
	u := c.baseURL + booksPath
	if qs := queryparam.QueryString(f); qs != "" {
		u += "?" + qs
	}
	return u
}

// BookURL returns the API URL of a single book.
func (c *Client) BookURL(id int) string {
	return c.baseURL + booksPath + "/" + strconv.Itoa(id)
}

// Search fetches one page of books matching f. It does not retry.
func (c *Client) Search(ctx context.Context, f model.FilterState) (*model.SearchResponse, error) {
	var res model.SearchResponse
	if err := c.get(ctx, c.SearchURL(f), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) get(ctx context.Context, url string, target interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return errors.Wrap(err, "gutendex: rate limiter")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "gutendex: build request")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "gutendex: GET %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return errors.Wrap(err, "gutendex: decode response")
	}
	return nil
}
