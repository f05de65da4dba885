package metrics

import (
	"database/sql"
	"sync"

	"github.com/charmbracelet/log"
)

// tallies is the SQL-backed MetricsStore.
type tallies struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a MetricsStore backed by the metrics table.
func New(db *sql.DB) MetricsStore {
	return &tallies{
		db: db,
	}
}

// Increment upserts a tally and adds one to it. Failures are logged, never returned.
func (t *tallies) Increment(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, err := t.db.Exec(`
		INSERT INTO metrics (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1;
	`, key)
	if err != nil {
		log.Error("Failed to increment tally", "error", err, "key", key)
		return
	}
	log.Debug("Incremented tally", "key", key)
}

// GetAll returns every tally.
func (t *tallies) GetAll() (map[string]int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows, err := t.db.Query("SELECT key, value FROM metrics")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make(map[string]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, rows.Err()
}
