package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/voyagen/dramarail/internal/models"
)

// Request names one list endpoint: a path relative to the API origin plus its query.
type Request struct {
	Path   string
	Params url.Values
}

// FeaturedRequest is the ranked list used by the featured rail.
func FeaturedRequest(rankID int, lang string) Request {
	return Request{
		Path:   "/api/rank/" + strconv.Itoa(rankID),
		Params: url.Values{"lang": {lang}},
	}
}

// TrendingRequest is the newly-added list used by the trending rail.
func TrendingRequest(page, pageSize int, lang string) Request {
	return Request{
		Path: "/api/new/" + strconv.Itoa(page),
		Params: url.Values{
			"pageSize": {strconv.Itoa(pageSize)},
			"lang":     {lang},
		},
	}
}

// Query returns the encoded query string (keys sorted).
func (r Request) Query() string {
	return r.Params.Encode()
}

// Result is a decoded list and the envelope variant it came from.
type Result struct {
	Items   []models.ContentItem
	Shape   Shape
	Skipped int // elements left out because they did not decode
}

// maxBodyBytes caps how much of a response body is read. A longer body is
// cut off and fails to decode.
const maxBodyBytes = 8 << 20

type envelope struct {
	Success json.RawMessage `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// Client reads content lists from the upstream API. The origin is fixed per process.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	maxBody    int64
}

// NewClient creates a Client for baseURL. userAgent is optional; timeout bounds each request.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		maxBody:    maxBodyBytes,
	}
}

// BaseURL returns the configured API origin.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchList performs one GET and extracts the list from the envelope.
// Every failure comes back as an error with an empty, non-nil item slice;
// callers decide whether to apply the result.
// A non-2xx status is a *StatusError even when the body is a successful envelope.
func (c *Client) FetchList(ctx context.Context, r Request) (Result, error) {
	empty := Result{Items: []models.ContentItem{}, Shape: ShapeNone}

	u := c.baseURL + r.Path
	if q := r.Query(); q != "" {
		u += "?" + q
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return empty, fmt.Errorf("NewRequest: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, fmt.Errorf("Do: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return empty, &StatusError{Code: resp.StatusCode, URL: u}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return empty, fmt.Errorf("ReadAll: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return empty, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !truthy(env.Success) {
		return empty, ErrUnsuccessful
	}
	res, err := ExtractList(env.Data)
	if err != nil {
		return empty, err
	}
	return res, nil
}

// Lister is anything that can fetch a content list. *Client implements it,
// and so do decorators such as the Redis rail cache.
type Lister interface {
	FetchList(ctx context.Context, r Request) (Result, error)
}
