package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go"

	"github.com/vmunix/namebot/pkg/release"
)

const defaultBaseURL = "https://api.themoviedb.org"

var (
	// ErrNotFound is returned when a movie or show doesn't exist in TMDB.
	ErrNotFound = errors.New("title not found")

	// ErrNoAPIKey is returned when the client was created without an API key.
	ErrNoAPIKey = errors.New("tmdb api key not configured")

	errDecode = errors.New("decode response")
)

// StatusError is a non-success TMDB response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("TMDB API error: %s", e.Status)
}

// Client is a TMDB API client.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	attempts   uint
	retryDelay time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLanguage sets the TMDB response language, e.g. "en-US".
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = strings.TrimSpace(lang)
	}
}

// WithRetry sets the attempt count and the delay between attempts.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.attempts = attempts
		}
		c.retryDelay = delay
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		attempts:   3,
		retryDelay: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetMovie fetches movie metadata by TMDB ID.
func (c *Client) GetMovie(ctx context.Context, tmdbID int64) (*Movie, error) {
	var movie Movie
	if err := c.get(ctx, fmt.Sprintf("/3/movie/%d", tmdbID), &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// GetShow fetches TV series metadata by TMDB ID.
func (c *Client) GetShow(ctx context.Context, tmdbID int64) (*Show, error) {
	var show Show
	if err := c.get(ctx, fmt.Sprintf("/3/tv/%d", tmdbID), &show); err != nil {
		return nil, err
	}
	return &show, nil
}

// Record fetches the movie or show and converts it to a naming record.
func (c *Client) Record(ctx context.Context, tmdbID int64, kind release.ContentType) (release.TitleRecord, error) {
	if kind == release.Movie {
		movie, err := c.GetMovie(ctx, tmdbID)
		if err != nil {
			return release.TitleRecord{}, err
		}
		return movie.Record(), nil
	}
	show, err := c.GetShow(ctx, tmdbID)
	if err != nil {
		return release.TitleRecord{}, err
	}
	return show.Record(), nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if c.apiKey == "" {
		return ErrNoAPIKey
	}

	query := url.Values{}
	query.Set("api_key", c.apiKey)
	if c.language != "" {
		query.Set("language", c.language)
	}
	endpoint := c.baseURL + path + "?" + query.Encode()

	return retry.Do(
		func() error { return c.fetch(ctx, endpoint, out) },
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
	)
}

func (c *Client) fetch(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", errDecode, err)
	}
	return nil
}

// isTransient retries network failures, rate limits and server errors.
func isTransient(err error) bool {
	if errors.Is(err, ErrNotFound) || errors.Is(err, errDecode) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}
	return true
}
