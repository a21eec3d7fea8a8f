// Package paste fetches MediaInfo JSON reports from paste sites.
package paste

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go"

	"github.com/vmunix/namebot/pkg/mediainfo"
)

// DefaultHost is the only host accepted when none are configured.
const DefaultHost = "pastebin.com"

// maxDocumentSize caps the size of a fetched report.
const maxDocumentSize = 8 << 20

var (
	// ErrInvalidLink is returned for links that are not on an accepted paste host.
	ErrInvalidLink = errors.New("invalid paste link")

	// ErrFetch is returned when the paste could not be downloaded.
	ErrFetch = errors.New("fetch paste")

	errTooLarge = fmt.Errorf("%w: document exceeds %d bytes", ErrFetch, maxDocumentSize)
)

// Fetcher downloads and parses MediaInfo reports.
type Fetcher struct {
	hosts      []string
	httpClient *http.Client
	attempts   uint
	retryDelay time.Duration
	log        *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHosts sets the accepted paste hosts. Empty entries are ignored.
func WithHosts(hosts ...string) Option {
	return func(f *Fetcher) {
		var clean []string
		for _, h := range hosts {
			if h = normalizeHost(h); h != "" {
				clean = append(clean, h)
			}
		}
		if len(clean) > 0 {
			f.hosts = clean
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(f *Fetcher) {
		if hc != nil {
			f.httpClient = hc
		}
	}
}

// WithRetry sets the attempt count and the delay between attempts.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(f *Fetcher) {
		if attempts > 0 {
			f.attempts = attempts
		}
		f.retryDelay = delay
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(f *Fetcher) {
		if log != nil {
			f.log = log
		}
	}
}

// NewFetcher creates a Fetcher that accepts pastebin.com links by default.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		hosts:      []string{DefaultHost},
		httpClient: &http.Client{Timeout: 15 * time.Second},
		attempts:   3,
		retryDelay: time.Second,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func normalizeHost(h string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(h)), "www.")
}

// RawURL validates link and returns the URL of its raw text.
// "pastebin.com/<id>" becomes "pastebin.com/raw/<id>"; other hosts are used as given.
func (f *Fetcher) RawURL(link string) (string, error) {
	link = strings.TrimSpace(strings.Trim(link, "<>"))
	if link == "" {
		return "", fmt.Errorf("%w: empty link", ErrInvalidLink)
	}
	if !strings.Contains(link, "://") {
		link = "https://" + link
	}
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLink, u.Scheme)
	}

	host := normalizeHost(u.Hostname())
	accepted := false
	for _, h := range f.hosts {
		if host == h {
			accepted = true
			break
		}
	}
	if !accepted {
		return "", fmt.Errorf("%w: host %q not accepted", ErrInvalidLink, u.Hostname())
	}

	path := strings.Trim(u.Path, "/")
	if path == "" || path == "raw" {
		return "", fmt.Errorf("%w: no paste id", ErrInvalidLink)
	}
	if host == DefaultHost && !strings.HasPrefix(path, "raw/") {
		path = "raw/" + path
	}
	u.Path = "/" + path
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

// Fetch downloads the paste at link and parses it as a MediaInfo JSON report.
func (f *Fetcher) Fetch(ctx context.Context, link string) (*mediainfo.Document, error) {
	raw, err := f.RawURL(link)
	if err != nil {
		return nil, err
	}

	var body []byte
	err = retry.Do(
		func() error {
			b, err := f.download(ctx, raw)
			if err != nil {
				return err
			}
			body = b
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(f.attempts),
		retry.Delay(f.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
		retry.OnRetry(func(n uint, err error) {
			f.log.Debug("retrying paste fetch", "url", raw, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}

	doc, err := mediainfo.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("paste %s: %w", raw, err)
	}
	f.log.Debug("fetched mediainfo", "url", raw, "ref", doc.Ref)
	return doc, nil
}

// statusError is a non-success paste response.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s: status %d", ErrFetch, e.code)
}

func (e *statusError) Unwrap() error { return ErrFetch }

func (f *Fetcher) download(ctx context.Context, raw string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrFetch, err)
	}
	if len(body) > maxDocumentSize {
		return nil, errTooLarge
	}
	return body, nil
}

func isTransient(err error) bool {
	if errors.Is(err, errTooLarge) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= 500
	}
	return true
}
