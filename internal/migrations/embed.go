// Package migrations provides embedded SQL migration files.
package migrations

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed sql/001_initial.sql
var InitialSQL string

//go:embed sql/002_names.sql
var Migration002Names string

// Apply runs every migration in order. All statements are idempotent.
func Apply(ctx context.Context, db *sql.DB) error {
	for i, stmt := range []string{InitialSQL, Migration002Names} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %03d: %w", i+1, err)
		}
	}
	return nil
}
