package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vmunix/namebot/internal/chat"
	"github.com/vmunix/namebot/internal/config"
	"github.com/vmunix/namebot/internal/history"
	"github.com/vmunix/namebot/internal/metadata"
	"github.com/vmunix/namebot/internal/migrations"
	"github.com/vmunix/namebot/internal/namer"
	"github.com/vmunix/namebot/internal/paste"
	"github.com/vmunix/namebot/internal/tmdb"
	"github.com/vmunix/namebot/pkg/release"
)

const pasteRetryDelay = time.Second

// app holds the services shared by every command.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	db      *sql.DB
	cache   *metadata.Cache
	titles  *metadata.TitleService
	history *history.Store
	namer   *namer.Service
	chat    *chat.Handler
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(level),
	}))
}

// loadConfig loads path, or the discovered config file when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			return nil, err
		}
		path = found
	}
	return config.Load(path)
}

func openDB(ctx context.Context, path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if err := migrations.Apply(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func newApp(ctx context.Context, cfg *config.Config, logOut io.Writer) (*app, error) {
	logger := newLogger(logOut, cfg.Server.LogLevel)

	style, err := release.ParseLanguageStyle(cfg.Naming.LanguageStyle)
	if err != nil {
		return nil, fmt.Errorf("naming: %w", err)
	}

	db, err := openDB(ctx, cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	// === Stores ===
	cache := metadata.NewCache(db)
	historyStore := history.NewStore(db)

	// === Clients ===
	tmdbClient := tmdb.NewClient(cfg.TMDB.APIKey,
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithLanguage(cfg.TMDB.Language),
	)
	fetcher := paste.NewFetcher(
		paste.WithHosts(cfg.Paste.Hosts...),
		paste.WithTimeout(cfg.Paste.Timeout),
		paste.WithRetry(uint(cfg.Paste.Retries), pasteRetryDelay),
		paste.WithLogger(logger.With("component", "paste")),
	)

	// === Services ===
	titles := metadata.NewTitleService(tmdbClient, cache, cfg.TMDB.CacheTTL, logger.With("component", "metadata"))
	composer := release.NewComposer(
		release.WithTemplates(cfg.Naming.MovieTemplate, cfg.Naming.SeriesTemplate),
		release.WithLanguageStyle(style),
		release.WithDefaultGroup(cfg.Naming.DefaultGroup),
		release.WithLogger(logger.With("component", "release")),
	)
	svc := namer.New(fetcher, titles, composer,
		namer.WithHistory(historyStore),
		namer.WithLogger(logger.With("component", "namer")),
	)
	prefixes := chat.Prefixes{TV: cfg.Chat.PrefixTV, Movie: cfg.Chat.PrefixMovie}

	return &app{
		cfg:     cfg,
		log:     logger,
		db:      db,
		cache:   cache,
		titles:  titles,
		history: historyStore,
		namer:   svc,
		chat:    chat.NewHandler(svc, prefixes, logger.With("component", "chat")),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// withApp loads the config, builds the app and runs fn with it.
func withApp(ctx context.Context, logOut io.Writer, fn func(*app) error) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	a, err := newApp(ctx, cfg, logOut)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	return fn(a)
}
