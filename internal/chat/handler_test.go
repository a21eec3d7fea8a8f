package chat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/namebot/internal/namer"
	"github.com/vmunix/namebot/internal/paste"
	"github.com/vmunix/namebot/internal/tmdb"
	"github.com/vmunix/namebot/pkg/mediainfo"
	"github.com/vmunix/namebot/pkg/release"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// namerFunc adapts a function to the Namer interface.
type namerFunc func(ctx context.Context, req namer.Request) (*namer.Result, error)

func (f namerFunc) Name(ctx context.Context, req namer.Request) (*namer.Result, error) {
	return f(ctx, req)
}

func failWith(err error) namerFunc {
	return func(context.Context, namer.Request) (*namer.Result, error) { return nil, err }
}

func TestHandler_Handle_Success(t *testing.T) {
	var got namer.Request
	h := NewHandler(namerFunc(func(_ context.Context, req namer.Request) (*namer.Result, error) {
		got = req
		return &namer.Result{Name: "Example Show (2020) S05 (1080p x265 SDR DD 5.1 English - GRP)"}, nil
	}), Prefixes{}, testLogger())

	reply, ok := h.Handle(context.Background(), "!tv https://pastebin.com/abc 1399 GRP")
	require.True(t, ok)
	assert.Equal(t, "`Example Show (2020) S05 (1080p x265 SDR DD 5.1 English - GRP)`", reply)
	assert.Equal(t, namer.Request{Link: "https://pastebin.com/abc", TMDBID: 1399, Kind: release.Show, Group: "GRP"}, got)
}

func TestHandler_Handle_Ignored(t *testing.T) {
	h := NewHandler(failWith(errors.New("must not be called")), DefaultPrefixes(), testLogger())

	_, ok := h.Handle(context.Background(), "good morning")
	assert.False(t, ok)
}

func TestHandler_Handle_Usage(t *testing.T) {
	h := NewHandler(failWith(errors.New("must not be called")), DefaultPrefixes(), testLogger())

	reply, ok := h.Handle(context.Background(), "!mo https://pastebin.com/abc")
	assert.True(t, ok)
	assert.Equal(t, DefaultPrefixes().Usage(), reply)
}

func TestHandler_Handle_ErrorReplies(t *testing.T) {
	stage := func(s namer.Stage, err error) error {
		return &namer.StageError{Stage: s, Err: err}
	}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"invalid link", stage(namer.StageDocument, fmt.Errorf("%w: host", paste.ErrInvalidLink)), ReplyInvalidLink},
		{"not mediainfo", stage(namer.StageDocument, mediainfo.ErrMalformedDocument), ReplyNotMediaInfo},
		{"fetch failed", stage(namer.StageDocument, paste.ErrFetch), ReplyFetchFailed},
		{"tmdb not found", stage(namer.StageTitle, tmdb.ErrNotFound), "TMDB has no movie with ID 550."},
		{"tmdb failure", stage(namer.StageTitle, &tmdb.StatusError{Code: 500, Status: "500 Internal Server Error"}), ReplyTMDBFailed},
		{"engine error", stage(namer.StageCompose, release.ErrAudioFormatUnresolved), "Could not build a name: " + release.ErrAudioFormatUnresolved.Error()},
		{"invalid request", namer.ErrInvalidRequest, DefaultPrefixes().Usage()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(failWith(tt.err), DefaultPrefixes(), testLogger())
			reply, ok := h.Handle(context.Background(), "!mo https://pastebin.com/abc 550 GRP")
			assert.True(t, ok)
			assert.Equal(t, tt.want, reply)
		})
	}
}

func TestREPL_Serve(t *testing.T) {
	h := NewHandler(namerFunc(func(_ context.Context, req namer.Request) (*namer.Result, error) {
		return &namer.Result{Name: fmt.Sprintf("%s-%d", req.Group, req.TMDBID)}, nil
	}), DefaultPrefixes(), testLogger())

	in := strings.NewReader("!tv link 1 A\n\nnot a command\n!mo link 2 B\n!tv too few\n")
	var out bytes.Buffer

	require.NoError(t, NewREPL(in, &out, "").Serve(context.Background(), h))
	assert.Equal(t, "`A-1`\n`B-2`\n"+DefaultPrefixes().Usage()+"\n", out.String())
}

func TestREPL_Serve_Prompt(t *testing.T) {
	h := NewHandler(failWith(nil), DefaultPrefixes(), testLogger())
	var out bytes.Buffer

	require.NoError(t, NewREPL(strings.NewReader("hello\n"), &out, "> ").Serve(context.Background(), h))
	assert.Equal(t, "> > ", out.String())
}

func TestREPL_Serve_ContextCanceled(t *testing.T) {
	h := NewHandler(failWith(nil), DefaultPrefixes(), testLogger())
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, NewREPL(pr, io.Discard, "").Serve(ctx, h))
}
