package v1

import (
	"time"

	"github.com/vmunix/namebot/internal/history"
	"github.com/vmunix/namebot/pkg/release"
)

// nameRequest is the body of POST /name.
type nameRequest struct {
	Link   string `json:"link"`
	TMDBID int64  `json:"tmdb_id"`
	Kind   string `json:"kind"` // movie|mo|show|tv|series
	Group  string `json:"group"`
}

// nameResponse is a composed release name.
type nameResponse struct {
	RequestID string         `json:"request_id"`
	Name      string         `json:"name"`
	Kind      string         `json:"kind"`
	Tokens    release.Tokens `json:"tokens"`
	Warnings  []string       `json:"warnings,omitempty"`
}

// chatRequest is the body of POST /chat.
type chatRequest struct {
	Text string `json:"text"`
}

// chatResponse carries the reply to a chat command; Handled is false for non-commands.
type chatResponse struct {
	Handled bool   `json:"handled"`
	Reply   string `json:"reply,omitempty"`
}

// historyResponse is the API representation of a history entry.
type historyResponse struct {
	ID        int64     `json:"id"`
	RequestID string    `json:"request_id"`
	Kind      string    `json:"kind"`
	TMDBID    int64     `json:"tmdb_id"`
	Source    string    `json:"source"`
	Group     string    `json:"group"`
	Name      string    `json:"name,omitempty"`
	Error     string    `json:"error,omitempty"`
	Warnings  []string  `json:"warnings,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// listHistoryResponse is the response for GET /history.
type listHistoryResponse struct {
	Items  []historyResponse `json:"items"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// statusResponse is the response for GET /status.
type statusResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version,omitempty"`
	History      bool   `json:"history"`
	CacheEntries *int   `json:"cache_entries,omitempty"`
}

func historyToResponse(e *history.Entry) historyResponse {
	return historyResponse{
		ID:        e.ID,
		RequestID: e.RequestID,
		Kind:      e.Kind.String(),
		TMDBID:    e.TMDBID,
		Source:    e.Source,
		Group:     e.Group,
		Name:      e.Name,
		Error:     e.Error,
		Warnings:  e.Warnings,
		CreatedAt: e.CreatedAt,
	}
}
