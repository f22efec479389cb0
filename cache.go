package ecoweb

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const cacheSchemaSQL = `
CREATE TABLE IF NOT EXISTS robustness (
	network_id TEXT    NOT NULL,
	trial      INTEGER NOT NULL,
	value      REAL    NOT NULL,
	PRIMARY KEY (network_id, trial)
);
`

// SampleCache persists per-network robustness sample vectors in a single
// SQLite file, keyed by network identifier. It lets expensive simulation
// batches be reused across runs.
type SampleCache struct {
	conn *sql.DB
}

// OpenSampleCache opens (or creates) the cache database and applies the
// schema.
func OpenSampleCache(path string) (*SampleCache, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("cache: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("cache: ping: %w", err)
	}
	if _, err := conn.Exec(cacheSchemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("cache: apply schema: %w", err)
	}
	return &SampleCache{conn: conn}, nil
}

// Put replaces the stored sample vector for a network.
func (c *SampleCache) Put(id string, samples []float64) error {
	tx, err := c.conn.Begin()
	if err != nil {
		return fmt.Errorf("cache: begin put: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM robustness WHERE network_id = ?`, id); err != nil {
		return fmt.Errorf("cache: clear %s: %w", id, err)
	}
	stmt, err := tx.Prepare(`INSERT INTO robustness (network_id, trial, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("cache: prepare insert: %w", err)
	}
	defer stmt.Close()
	for i, v := range samples {
		if _, err := stmt.Exec(id, i, v); err != nil {
			return fmt.Errorf("cache: insert %s trial %d: %w", id, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("cache: commit put: %w", err)
	}
	return nil
}

// Get returns the stored sample vector for a network, in trial order.
// A network with no stored samples returns ErrCacheMismatch.
func (c *SampleCache) Get(id string) ([]float64, error) {
	rows, err := c.conn.Query(
		`SELECT value FROM robustness WHERE network_id = ? ORDER BY trial`, id)
	if err != nil {
		return nil, fmt.Errorf("cache: query %s: %w", id, err)
	}
	defer rows.Close()

	var samples []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("cache: scan %s: %w", id, err)
		}
		samples = append(samples, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cache: iterate %s: %w", id, err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no cached samples for %s: %w", id, ErrCacheMismatch)
	}
	return samples, nil
}

// IDs lists every network identifier with stored samples.
func (c *SampleCache) IDs() ([]string, error) {
	rows, err := c.conn.Query(`SELECT DISTINCT network_id FROM robustness ORDER BY network_id`)
	if err != nil {
		return nil, fmt.Errorf("cache: list ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("cache: scan id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cache: iterate ids: %w", err)
	}
	return ids, nil
}

// LoadAll returns the sample vectors for every requested network. A missing
// network, or one whose stored vector does not match the expected trial
// count, returns ErrCacheMismatch: stale caches must not silently feed the
// pipeline.
func (c *SampleCache) LoadAll(ids []string, trials int) (map[string][]float64, error) {
	out := make(map[string][]float64, len(ids))
	for _, id := range ids {
		samples, err := c.Get(id)
		if err != nil {
			return nil, err
		}
		if len(samples) != trials {
			return nil, fmt.Errorf("cached %d trials for %s, want %d: %w",
				len(samples), id, trials, ErrCacheMismatch)
		}
		out[id] = samples
	}
	return out, nil
}

// Close releases the underlying database handle.
func (c *SampleCache) Close() error {
	return c.conn.Close()
}
