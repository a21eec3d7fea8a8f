package v1

//go:generate mockgen -destination=mocks/mock_deps.go -package=mocks . Namer,ChatHandler,HistoryStore,CacheStats

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vmunix/namebot/internal/history"
	"github.com/vmunix/namebot/internal/namer"
)

// Namer composes release names.
type Namer interface {
	Name(ctx context.Context, req namer.Request) (*namer.Result, error)
}

// ChatHandler answers chat command text.
type ChatHandler interface {
	Handle(ctx context.Context, text string) (reply string, ok bool)
}

// HistoryStore lists recorded naming requests.
type HistoryStore interface {
	List(ctx context.Context, f history.Filter) ([]*history.Entry, int, error)
	Get(ctx context.Context, requestID string) (*history.Entry, error)
}

// CacheStats reports the size of the metadata cache.
type CacheStats interface {
	Len(ctx context.Context) (int, error)
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Namer Namer
	Chat  ChatHandler

	// Optional dependencies (nil if not configured)
	History HistoryStore
	Cache   CacheStats
	Log     *slog.Logger
	Version string
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Namer == nil {
		return errors.New("namer is required")
	}
	if d.Chat == nil {
		return errors.New("chat handler is required")
	}
	return nil
}
