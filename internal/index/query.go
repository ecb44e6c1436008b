package index

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/evreg/internal/ev"
)

// Count is one row of an aggregate: a grouping key and its number of current vehicles.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Totals summarises the whole index.
type Totals struct {
	Vehicles      int `json:"vehicles"`
	Registrations int `json:"registrations"`
	Transferred   int `json:"transferred"` // vehicles with more than one registration
}

// Totals counts vehicles, registrations, and vehicles with registration history.
func (idx *Index) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := idx.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(is_current), 0),
			COUNT(*),
			COALESCE(SUM(CASE WHEN position = 1 THEN 1 ELSE 0 END), 0)
		FROM registrations
	`).Scan(&t.Vehicles, &t.Registrations, &t.Transferred)
	if err != nil {
		return Totals{}, fmt.Errorf("query totals: %w", err)
	}
	return t, nil
}

// TopModels returns make-and-model counts over current vehicles, optionally
// limited to county (case-insensitive). A limit <= 0 returns every model.
func (idx *Index) TopModels(ctx context.Context, county string, limit int) ([]Count, error) {
	query := `
		SELECT make_model, COUNT(*) AS n, MIN(seq) AS first_seq
		FROM registrations
		WHERE is_current = 1 AND (? = '' OR county_key = ?)
		GROUP BY make_model
		ORDER BY n DESC, first_seq ASC
		LIMIT ?
	`
	key := ""
	if county != "" {
		key = ev.FoldKey(county)
	}
	return idx.counts(ctx, "top models", query, key, key, sqlLimit(limit))
}

// CountyCounts returns current vehicles per county, largest first.
func (idx *Index) CountyCounts(ctx context.Context, limit int) ([]Count, error) {
	// With a single min() aggregate, SQLite takes the bare county column from
	// the row holding MIN(seq): the first-seen spelling.
	query := `
		SELECT county, COUNT(*) AS n, MIN(seq) AS first_seq
		FROM registrations
		WHERE is_current = 1
		GROUP BY county_key
		ORDER BY n DESC, first_seq ASC
		LIMIT ?
	`
	return idx.counts(ctx, "county counts", query, sqlLimit(limit))
}

// TypeCounts returns current vehicles per EV type, largest first.
func (idx *Index) TypeCounts(ctx context.Context) ([]Count, error) {
	query := `
		SELECT ev_type, COUNT(*) AS n, MIN(seq) AS first_seq
		FROM registrations
		WHERE is_current = 1
		GROUP BY ev_type
		ORDER BY n DESC, first_seq ASC
	`
	return idx.counts(ctx, "type counts", query)
}

func (idx *Index) counts(ctx context.Context, what, query string, args ...any) ([]Count, error) {
	rows, err := idx.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", what, err)
	}
	defer rows.Close()

	var out []Count
	for rows.Next() {
		var c Count
		var firstSeq sql.NullInt64
		if err := rows.Scan(&c.Key, &c.Count, &firstSeq); err != nil {
			return nil, fmt.Errorf("scan %s: %w", what, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", what, err)
	}

	if out == nil {
		out = []Count{}
	}
	return out, nil
}

// sqlLimit maps "no limit" to SQLite's LIMIT -1.
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
