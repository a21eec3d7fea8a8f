package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmunix/namebot/internal/tmdb"
	"github.com/vmunix/namebot/pkg/release"
)

// DefaultTTL is how long a title record stays cached.
const DefaultTTL = 7 * 24 * time.Hour

// Cache key prefixes
const (
	keyPrefixMovie = "tmdb:movie:"
	keyPrefixShow  = "tmdb:tv:"
)

// Source fetches title records from TMDB.
type Source interface {
	GetMovie(ctx context.Context, tmdbID int64) (*tmdb.Movie, error)
	GetShow(ctx context.Context, tmdbID int64) (*tmdb.Show, error)
}

// TitleService provides cached access to TMDB title records.
type TitleService struct {
	source Source
	cache  *Cache
	ttl    time.Duration
	log    *slog.Logger
}

// NewTitleService creates a title service. A nil cache disables caching
// and a non-positive ttl uses DefaultTTL.
func NewTitleService(source Source, cache *Cache, ttl time.Duration, log *slog.Logger) *TitleService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &TitleService{source: source, cache: cache, ttl: ttl, log: log}
}

func cacheKey(tmdbID int64, kind release.ContentType) string {
	if kind == release.Movie {
		return fmt.Sprintf("%s%d", keyPrefixMovie, tmdbID)
	}
	return fmt.Sprintf("%s%d", keyPrefixShow, tmdbID)
}

// Record returns the title record for a movie or show (cached).
func (s *TitleService) Record(ctx context.Context, tmdbID int64, kind release.ContentType) (release.TitleRecord, error) {
	key := cacheKey(tmdbID, kind)

	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, key); ok {
			var rec release.TitleRecord
			if err := json.Unmarshal(data, &rec); err == nil {
				s.log.Debug("cache hit for title", "key", key, "title", rec.DisplayTitle(kind))
				return rec, nil
			}
			s.log.Warn("failed to unmarshal cached title", "key", key)
		}
	}

	s.log.Debug("cache miss for title, calling API", "key", key)
	rec, err := s.fetch(ctx, tmdbID, kind)
	if err != nil {
		return release.TitleRecord{}, err
	}

	if s.cache != nil {
		data, err := json.Marshal(rec)
		if err != nil {
			s.log.Warn("failed to marshal title for cache", "key", key, "error", err)
			return rec, nil
		}
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.log.Warn("failed to cache title", "key", key, "error", err)
		}
	}
	return rec, nil
}

func (s *TitleService) fetch(ctx context.Context, tmdbID int64, kind release.ContentType) (release.TitleRecord, error) {
	if kind == release.Movie {
		movie, err := s.source.GetMovie(ctx, tmdbID)
		if err != nil {
			return release.TitleRecord{}, fmt.Errorf("get movie %d: %w", tmdbID, err)
		}
		return movie.Record(), nil
	}
	show, err := s.source.GetShow(ctx, tmdbID)
	if err != nil {
		return release.TitleRecord{}, fmt.Errorf("get show %d: %w", tmdbID, err)
	}
	return show.Record(), nil
}

// Invalidate removes the cached record for a title.
func (s *TitleService) Invalidate(ctx context.Context, tmdbID int64, kind release.ContentType) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, cacheKey(tmdbID, kind))
}

// Prune drops expired cache entries.
func (s *TitleService) Prune(ctx context.Context) (int64, error) {
	if s.cache == nil {
		return 0, nil
	}
	return s.cache.Prune(ctx)
}
