package paste

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/namebot/pkg/mediainfo"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "pkg", "mediainfo", "testdata", name))
	require.NoError(t, err)
	return data
}

// newPasteServer serves body on every path and accepts its own host.
func newPasteServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Fetcher) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	f := NewFetcher(WithHosts(u.Hostname()), WithRetry(3, 0), WithLogger(testLogger()))
	return server, f
}

func TestFetcher_RawURL(t *testing.T) {
	f := NewFetcher()

	tests := []struct {
		name string
		link string
		want string
	}{
		{"plain link", "https://pastebin.com/abc123", "https://pastebin.com/raw/abc123"},
		{"already raw", "https://pastebin.com/raw/abc123", "https://pastebin.com/raw/abc123"},
		{"no scheme", "pastebin.com/abc123", "https://pastebin.com/raw/abc123"},
		{"www and trailing slash", "https://www.pastebin.com/abc123/", "https://www.pastebin.com/raw/abc123"},
		{"angle brackets", "<https://pastebin.com/abc123>", "https://pastebin.com/raw/abc123"},
		{"query dropped", "https://pastebin.com/abc123?lang=json", "https://pastebin.com/raw/abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.RawURL(tt.link)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFetcher_RawURL_Invalid(t *testing.T) {
	f := NewFetcher()

	for _, link := range []string{
		"",
		"https://example.com/abc123",
		"https://notpastebin.com/abc123",
		"ftp://pastebin.com/abc123",
		"https://pastebin.com/",
		"https://pastebin.com/raw/",
	} {
		t.Run(link, func(t *testing.T) {
			_, err := f.RawURL(link)
			assert.ErrorIs(t, err, ErrInvalidLink)
		})
	}
}

func TestFetcher_RawURL_CustomHosts(t *testing.T) {
	f := NewFetcher(WithHosts(" Paste.Example.org ", ""))

	got, err := f.RawURL("https://paste.example.org/p/xyz")
	require.NoError(t, err)
	assert.Equal(t, "https://paste.example.org/p/xyz", got)

	_, err = f.RawURL("https://pastebin.com/abc123")
	assert.ErrorIs(t, err, ErrInvalidLink, "custom hosts replace the default")
}

func TestFetcher_Fetch(t *testing.T) {
	body := fixture(t, "show_sdr.json")
	server, f := newPasteServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/raw/abc123", r.URL.Path)
		_, _ = w.Write(body)
	})

	doc, err := f.Fetch(context.Background(), server.URL+"/raw/abc123")
	require.NoError(t, err)
	assert.Equal(t, "Example.Show.S05E01.1080p.BluRay.x265-GRP.mkv", doc.Filename())
	assert.Equal(t, 1920, doc.Video.Width)
}

func TestFetcher_Fetch_RetriesServerErrors(t *testing.T) {
	body := fixture(t, "show_sdr.json")
	var calls atomic.Int32
	server, f := newPasteServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write(body)
	})

	_, err := f.Fetch(context.Background(), server.URL+"/abc")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetcher_Fetch_NotFound(t *testing.T) {
	var calls atomic.Int32
	server, f := newPasteServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := f.Fetch(context.Background(), server.URL+"/missing")
	assert.ErrorIs(t, err, ErrFetch)
	assert.Equal(t, int32(1), calls.Load(), "not found must not be retried")
}

func TestFetcher_Fetch_NotMediaInfo(t *testing.T) {
	server, f := newPasteServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("General\nComplete name : movie.mkv\n"))
	})

	_, err := f.Fetch(context.Background(), server.URL+"/text")
	assert.ErrorIs(t, err, mediainfo.ErrMalformedDocument)
}

func TestFetcher_Fetch_InvalidLinkSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	f := NewFetcher(WithLogger(testLogger()))
	_, err := f.Fetch(context.Background(), server.URL+"/abc")
	assert.ErrorIs(t, err, ErrInvalidLink)
	assert.Zero(t, calls.Load())
}
