// Package catalog fetches job postings from The Muse public API. Records
// are opaque to the rest of the system: fetched, annotated for display,
// never persisted.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Sanmit243/KodJobs/internal/model"
)

const (
	museBaseURL = "https://www.themuse.com/api/public"
	httpTimeout = 10 * time.Second
)

var (
	// ErrUpstreamUnavailable covers every upstream failure mode uniformly:
	// network error, timeout, non-2xx status and malformed body. The UI
	// surfaces it as a retryable error.
	ErrUpstreamUnavailable = errors.New("job catalog unavailable")

	// ErrJobNotFound is returned when a detail fetch hits a 404.
	ErrJobNotFound = errors.New("job not found")
)

// Catalog is the read-only interface the HTTP layer and the cache warmer
// consume.
type Catalog interface {
	FetchPage(ctx context.Context, page int) ([]model.Job, error)
	FetchByID(ctx context.Context, id int) (*model.Job, error)
}

// MuseClient fetches postings from The Muse. An empty APIKey is allowed —
// the public endpoint serves unauthenticated requests at a lower rate
// limit, so the key is simply omitted from the query.
type MuseClient struct {
	BaseURL string
	APIKey  string
	client  *http.Client
}

// NewMuseClient constructs a client with a shared HTTP client and timeout.
// baseURL overrides the production endpoint when non-empty (tests).
func NewMuseClient(baseURL, apiKey string) *MuseClient {
	if baseURL == "" {
		baseURL = museBaseURL
	}
	return &MuseClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		client:  &http.Client{Timeout: httpTimeout},
	}
}

// pageResponse mirrors the top-level Muse jobs listing.
type pageResponse struct {
	Results []model.Job `json:"results"`
	Page    int         `json:"page"`
}

// FetchPage retrieves one page of postings.
func (c *MuseClient) FetchPage(ctx context.Context, page int) ([]model.Job, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if c.APIKey != "" {
		params.Set("api_key", c.APIKey)
	}

	body, status, err := c.get(ctx, c.BaseURL+"/jobs?"+params.Encode())
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, status)
	}

	var resp pageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode page: %v", ErrUpstreamUnavailable, err)
	}
	return resp.Results, nil
}

// FetchByID retrieves a single posting for the detail view.
func (c *MuseClient) FetchByID(ctx context.Context, id int) (*model.Job, error) {
	endpoint := fmt.Sprintf("%s/jobs/%d", c.BaseURL, id)
	if c.APIKey != "" {
		endpoint += "?api_key=" + url.QueryEscape(c.APIKey)
	}

	body, status, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrJobNotFound
	default:
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, status)
	}

	var job model.Job
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("%w: decode job: %v", ErrUpstreamUnavailable, err)
	}
	return &job, nil
}

func (c *MuseClient) get(ctx context.Context, reqURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request: %v", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: read body: %v", ErrUpstreamUnavailable, err)
	}
	return body, resp.StatusCode, nil
}
