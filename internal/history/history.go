// Package history records every naming request and its outcome.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vmunix/namebot/pkg/release"
)

// Entry is one naming request.
type Entry struct {
	ID        int64               `json:"id"`
	RequestID string              `json:"request_id"`
	Kind      release.ContentType `json:"kind"`
	TMDBID    int64               `json:"tmdb_id"`
	Source    string              `json:"source"` // paste link or local file
	Group     string              `json:"group"`
	Name      string              `json:"name,omitempty"`
	Error     string              `json:"error,omitempty"`
	Warnings  []string            `json:"warnings,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// Failed reports whether the request ended in an error.
func (e *Entry) Failed() bool { return e.Error != "" }

// Filter specifies criteria for listing entries.
type Filter struct {
	TMDBID *int64
	Kind   *release.ContentType
	Failed *bool
	Limit  int // 0 = no limit
	Offset int
}

// Store persists entries in the names table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore creates a history store. The names table must exist.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Add inserts an entry and sets its ID and CreatedAt.
func (s *Store) Add(ctx context.Context, e *Entry) error {
	warnings, err := json.Marshal(nonNil(e.Warnings))
	if err != nil {
		return fmt.Errorf("encode warnings: %w", err)
	}
	now := s.now().UTC()

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO names (request_id, kind, tmdb_id, source, grp, name, error, warnings, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RequestID, e.Kind.String(), e.TMDBID, e.Source, e.Group, e.Name, e.Error, string(warnings), now,
	)
	if err != nil {
		return fmt.Errorf("insert entry %s: %w", e.RequestID, mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	e.ID = id
	e.CreatedAt = now
	return nil
}

const selectColumns = "SELECT id, request_id, kind, tmdb_id, source, grp, name, error, warnings, created_at FROM names"

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	var (
		e        Entry
		kind     string
		warnings string
	)
	if err := row.Scan(&e.ID, &e.RequestID, &kind, &e.TMDBID, &e.Source, &e.Group, &e.Name, &e.Error, &warnings, &e.CreatedAt); err != nil {
		return nil, err
	}
	if err := e.Kind.UnmarshalText([]byte(kind)); err != nil {
		return nil, fmt.Errorf("entry %d: %w", e.ID, err)
	}
	if err := json.Unmarshal([]byte(warnings), &e.Warnings); err != nil {
		return nil, fmt.Errorf("entry %d warnings: %w", e.ID, err)
	}
	return &e, nil
}

// Get retrieves an entry by request ID.
// Returns ErrNotFound if no such request was recorded.
func (s *Store) Get(ctx context.Context, requestID string) (*Entry, error) {
	e, err := scanEntry(s.db.QueryRowContext(ctx, selectColumns+" WHERE request_id = ?", requestID))
	if err != nil {
		return nil, fmt.Errorf("get entry %s: %w", requestID, mapSQLiteError(err))
	}
	return e, nil
}

// List returns entries matching the filter, newest first, with the total match count.
func (s *Store) List(ctx context.Context, f Filter) ([]*Entry, int, error) {
	var conditions []string
	var args []any

	if f.TMDBID != nil {
		conditions = append(conditions, "tmdb_id = ?")
		args = append(args, *f.TMDBID)
	}
	if f.Kind != nil {
		conditions = append(conditions, "kind = ?")
		args = append(args, f.Kind.String())
	}
	if f.Failed != nil {
		if *f.Failed {
			conditions = append(conditions, "error != ''")
		} else {
			conditions = append(conditions, "error = ''")
		}
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM names"+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count entries: %w", err)
	}

	query := selectColumns + whereClause + " ORDER BY id DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan entry: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate entries: %w", err)
	}
	return results, total, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
