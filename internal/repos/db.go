// Package repos persists the small client-side state that survives a
// restart: preferences, the last-submitted order snapshot, cleared
// notification ids, and cached generated copy. The remote service stays the
// source of truth for all entity data; nothing here is authoritative.
package repos

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS preferences(
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Single-row table: the most recently submitted order, kept for display
-- continuity until the remote echoes it back.
CREATE TABLE IF NOT EXISTS order_snapshots(
  slot INTEGER PRIMARY KEY CHECK (slot = 1),
  order_id TEXT NOT NULL,
  body_json TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS cleared_notifications(
  id TEXT PRIMARY KEY,
  cleared_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS copy_cache(
  key TEXT PRIMARY KEY,
  body TEXT NOT NULL,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);
`
	_, err := db.Exec(schema)
	return err
}
