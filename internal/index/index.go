// Package index mirrors a loaded store into an in-memory SQLite database for
// aggregate statistics.
//
// The database never touches disk: each Index owns a private ":memory:"
// connection that disappears on Close. Rows carry the load sequence number so
// every aggregate can break ties deterministically:
//
//	ORDER BY count DESC, first_seq ASC
//
// which reproduces the registry's first-encountered tie rule.
package index

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/evreg/internal/ev"
	"github.com/roach88/evreg/internal/store"
)

//go:embed schema.sql
var schemaSQL string

// Index is an in-memory SQLite mirror of one store snapshot.
type Index struct {
	db       *sql.DB
	snapshot string
}

// Open creates an empty in-memory index.
func Open() (*Index, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Every connection to ":memory:" is a separate database, so pin the pool
	// to a single connection that lives as long as the Index.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Build opens an index and loads every registration of s into it.
func Build(ctx context.Context, s *store.Store) (*Index, error) {
	idx, err := Open()
	if err != nil {
		return nil, err
	}
	if err := idx.Load(ctx, s); err != nil {
		idx.Close()
		return nil, err
	}
	return idx, nil
}

// Close releases the database. The index contents are discarded.
func (idx *Index) Close() error {
	if idx.db == nil {
		return nil
	}
	return idx.db.Close()
}

// Snapshot returns the snapshot ID of the loaded store, or "" before Load.
func (idx *Index) Snapshot() string {
	return idx.snapshot
}

// Load replaces the index contents with the registrations of s, in one transaction.
func (idx *Index) Load(ctx context.Context, s *store.Store) error {
	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM registrations`); err != nil {
		return fmt.Errorf("clear registrations: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO registrations
		(seq, vehicle_id, position, is_current, county, county_key, city, state,
		 model_year, make_model, ev_type, ev_range, clean_fuel_eligible)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	var seq int64
	for _, group := range s.Registrations() {
		for pos, v := range group {
			seq++
			if _, err := stmt.ExecContext(ctx,
				seq,
				v.ID,
				pos,
				boolInt(pos == 0),
				v.County,
				ev.FoldKey(v.County),
				v.City,
				v.State,
				v.ModelYear,
				v.MakeAndModel(),
				string(v.EVType),
				v.EVRange,
				boolInt(v.CleanFuelEligible),
			); err != nil {
				return fmt.Errorf("insert registration %s/%d: %w", v.ID, pos, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}

	idx.snapshot = s.SnapshotID()
	return nil
}

// applyPragmas sets SQLite configuration for a throwaway in-memory database.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = MEMORY",
		"PRAGMA synchronous = OFF",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
