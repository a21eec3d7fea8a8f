// Package namer turns a MediaInfo link and a TMDB ID into a release name.
package namer

//go:generate mockgen -destination=mocks/mock_namer.go -package=mocks . DocumentFetcher,TitleFetcher,Recorder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vmunix/namebot/internal/history"
	"github.com/vmunix/namebot/pkg/mediainfo"
	"github.com/vmunix/namebot/pkg/release"
)

// DocumentFetcher downloads and parses a MediaInfo report.
type DocumentFetcher interface {
	Fetch(ctx context.Context, link string) (*mediainfo.Document, error)
}

// TitleFetcher looks up the TMDB title record for a movie or show.
type TitleFetcher interface {
	Record(ctx context.Context, tmdbID int64, kind release.ContentType) (release.TitleRecord, error)
}

// Recorder stores the outcome of each request.
type Recorder interface {
	Add(ctx context.Context, e *history.Entry) error
}

// Request is one naming request. Document takes precedence over Link.
type Request struct {
	Link     string
	Document *mediainfo.Document
	Source   string // recorded instead of Link when Document is set
	TMDBID   int64
	Kind     release.ContentType
	Group    string
}

// Result is a composed release name.
type Result struct {
	RequestID string              `json:"request_id"`
	Name      string              `json:"name"`
	Kind      release.ContentType `json:"kind"`
	Tokens    release.Tokens      `json:"tokens"`
	Title     release.TitleRecord `json:"title"`
	Warnings  []string            `json:"warnings,omitempty"`
}

// Service runs naming requests.
type Service struct {
	docs     DocumentFetcher
	titles   TitleFetcher
	composer *release.Composer
	history  Recorder
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithHistory records every request to r.
func WithHistory(r Recorder) Option {
	return func(s *Service) {
		s.history = r
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Service. A nil composer uses release defaults.
func New(docs DocumentFetcher, titles TitleFetcher, composer *release.Composer, opts ...Option) *Service {
	if composer == nil {
		composer = release.NewComposer()
	}
	s := &Service{
		docs:     docs,
		titles:   titles,
		composer: composer,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name fetches the MediaInfo document and the title record concurrently and composes the name.
func (s *Service) Name(ctx context.Context, req Request) (*Result, error) {
	requestID := uuid.NewString()
	log := s.log.With("request_id", requestID, "tmdb_id", req.TMDBID, "kind", req.Kind.String())

	result, err := s.name(ctx, req, requestID, log)
	s.record(ctx, req, requestID, result, err, log)
	if err != nil {
		log.Warn("naming failed", "error", err)
		return nil, err
	}
	log.Info("named release", "name", result.Name, "warnings", len(result.Warnings))
	return result, nil
}

func (s *Service) name(ctx context.Context, req Request, requestID string, log *slog.Logger) (*Result, error) {
	if req.Document == nil && strings.TrimSpace(req.Link) == "" {
		return nil, fmt.Errorf("%w: no mediainfo link or document", ErrInvalidRequest)
	}
	if req.TMDBID <= 0 {
		return nil, fmt.Errorf("%w: tmdb id must be positive, got %d", ErrInvalidRequest, req.TMDBID)
	}

	doc := req.Document
	var rec release.TitleRecord

	g, gctx := errgroup.WithContext(ctx)
	if doc == nil {
		g.Go(func() error {
			d, err := s.docs.Fetch(gctx, strings.TrimSpace(req.Link))
			if err != nil {
				return &StageError{Stage: StageDocument, Err: err}
			}
			doc = d
			return nil
		})
	}
	g.Go(func() error {
		r, err := s.titles.Record(gctx, req.TMDBID, req.Kind)
		if err != nil {
			return &StageError{Stage: StageTitle, Err: err}
		}
		rec = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Debug("fetched inputs", "ref", doc.Ref, "title", rec.DisplayTitle(req.Kind))

	name, err := s.composer.Build(doc, rec, req.Kind, req.Group)
	if err != nil {
		return nil, &StageError{Stage: StageCompose, Err: err}
	}

	return &Result{
		RequestID: requestID,
		Name:      name.Value,
		Kind:      req.Kind,
		Tokens:    name.Tokens,
		Title:     rec,
		Warnings:  name.Warnings,
	}, nil
}

func (s *Service) record(ctx context.Context, req Request, requestID string, result *Result, nameErr error, log *slog.Logger) {
	if s.history == nil {
		return
	}
	source := req.Link
	if req.Document != nil && req.Source != "" {
		source = req.Source
	}
	group := strings.TrimSpace(req.Group)
	if group == "" {
		group = s.composer.DefaultGroup()
	}

	entry := &history.Entry{
		RequestID: requestID,
		Kind:      req.Kind,
		TMDBID:    req.TMDBID,
		Source:    source,
		Group:     group,
	}
	if nameErr != nil {
		entry.Error = nameErr.Error()
	} else {
		entry.Name = result.Name
		entry.Warnings = result.Warnings
	}

	// A cancelled request still gets recorded.
	if err := s.history.Add(context.WithoutCancel(ctx), entry); err != nil {
		log.Warn("failed to record history", "error", err)
	}
}
