package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// CopyRepo caches generated UI copy (empty-state blurbs and the like) so
// it is not regenerated on every reload. Opaque to the sync core.
type CopyRepo struct {
	db *sqlx.DB
}

func NewCopyRepo(db *sqlx.DB) *CopyRepo {
	return &CopyRepo{db: db}
}

func (r *CopyRepo) Get(key string) (string, bool, error) {
	var body string
	err := r.db.Get(&body, `SELECT body FROM copy_cache WHERE key = ?`, key)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return body, true, nil
}

func (r *CopyRepo) Put(key, body string) error {
	_, err := r.db.Exec(`
		INSERT INTO copy_cache(key, body, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP`,
		key, body)
	return err
}
