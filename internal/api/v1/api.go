// Package v1 implements the REST API.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vmunix/namebot/internal/history"
	"github.com/vmunix/namebot/internal/namer"
	"github.com/vmunix/namebot/internal/paste"
	"github.com/vmunix/namebot/internal/tmdb"
	"github.com/vmunix/namebot/pkg/mediainfo"
	"github.com/vmunix/namebot/pkg/release"
)

// maxBodySize caps request bodies.
const maxBodySize = 1 << 20

// Server is the v1 API server.
type Server struct {
	deps ServerDeps
	log  *slog.Logger
}

// New creates a v1 API server.
func New(deps ServerDeps) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingDependency, err)
	}
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	return &Server{deps: deps, log: log}, nil
}

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/name", s.name)
	mux.HandleFunc("POST /api/v1/chat", s.chat)

	// History
	mux.HandleFunc("GET /api/v1/history", s.requireHistory(s.listHistory))
	mux.HandleFunc("GET /api/v1/history/{request_id}", s.requireHistory(s.getHistory))

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

// Handler returns the routes wrapped with request ID middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return WithRequestID(s.log, mux)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func (s *Server) name(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	kind, err := release.ParseContentType(req.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_KIND", err.Error())
		return
	}

	result, err := s.deps.Namer.Name(r.Context(), namer.Request{
		Link:   req.Link,
		TMDBID: req.TMDBID,
		Kind:   kind,
		Group:  req.Group,
	})
	if err != nil {
		status, code := classifyError(err)
		s.log.Debug("name request failed", "request_id", RequestID(r.Context()), "code", code, "error", err)
		writeError(w, status, code, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, nameResponse{
		RequestID: result.RequestID,
		Name:      result.Name,
		Kind:      result.Kind.String(),
		Tokens:    result.Tokens,
		Warnings:  result.Warnings,
	})
}

// classifyError maps a naming failure to an HTTP status and error code.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, namer.ErrInvalidRequest):
		return http.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, paste.ErrInvalidLink):
		return http.StatusUnprocessableEntity, "INVALID_LINK"
	case errors.Is(err, mediainfo.ErrMalformedDocument):
		return http.StatusUnprocessableEntity, "MALFORMED_DOCUMENT"
	case errors.Is(err, paste.ErrFetch):
		return http.StatusBadGateway, "FETCH_FAILED"
	case errors.Is(err, tmdb.ErrNotFound):
		return http.StatusNotFound, "TITLE_NOT_FOUND"
	case errors.Is(err, release.ErrResolutionUnresolved):
		return http.StatusUnprocessableEntity, "RESOLUTION_UNRESOLVED"
	case errors.Is(err, release.ErrAudioFormatUnresolved):
		return http.StatusUnprocessableEntity, "AUDIO_FORMAT_UNRESOLVED"
	case errors.Is(err, release.ErrMalformedTitleRecord):
		return http.StatusUnprocessableEntity, "MALFORMED_TITLE_RECORD"
	}

	switch namer.StageOf(err) {
	case namer.StageTitle:
		return http.StatusBadGateway, "TMDB_ERROR"
	case namer.StageDocument:
		return http.StatusBadGateway, "FETCH_FAILED"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	reply, ok := s.deps.Chat.Handle(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, chatResponse{Handled: ok, Reply: reply})
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	filter := history.Filter{
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}
	if v := r.URL.Query().Get("tmdb_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_ID", "tmdb_id must be a number")
			return
		}
		filter.TMDBID = &id
	}
	if v := r.URL.Query().Get("kind"); v != "" {
		kind, err := release.ParseContentType(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_KIND", err.Error())
			return
		}
		filter.Kind = &kind
	}
	if v := r.URL.Query().Get("failed"); v != "" {
		failed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_FILTER", "failed must be a boolean")
			return
		}
		filter.Failed = &failed
	}

	entries, total, err := s.deps.History.List(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := listHistoryResponse{
		Items:  make([]historyResponse, len(entries)),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	for i, e := range entries {
		resp.Items[i] = historyToResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	e, err := s.deps.History.Get(r.Context(), r.PathValue("request_id"))
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Request not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, historyToResponse(e))
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	resp := statusResponse{
		Status:  "ok",
		Version: s.deps.Version,
		History: s.deps.History != nil,
	}
	if s.deps.Cache != nil {
		n, err := s.deps.Cache.Len(r.Context())
		if err != nil {
			s.log.Warn("cache stats unavailable", "error", err)
			resp.Status = "degraded"
		} else {
			resp.CacheEntries = &n
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
