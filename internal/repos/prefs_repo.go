package repos

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"cafepos/internal/config"
)

const (
	prefRefreshInterval = "refresh_interval_seconds"
	prefAutoSync        = "auto_sync"
)

type PrefsRepo struct {
	db *sqlx.DB
}

func NewPrefsRepo(db *sqlx.DB) *PrefsRepo {
	return &PrefsRepo{db: db}
}

func (r *PrefsRepo) get(key string) (string, bool, error) {
	var v string
	err := r.db.Get(&v, `SELECT value FROM preferences WHERE key = ?`, key)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *PrefsRepo) set(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO preferences(key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	return err
}

// RefreshInterval returns the stored poll interval, clamped to the floor.
// The fallback is used when nothing was persisted yet.
func (r *PrefsRepo) RefreshInterval(fallback time.Duration) (time.Duration, error) {
	v, ok, err := r.get(prefRefreshInterval)
	if err != nil || !ok {
		return fallback, err
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return fallback, nil
	}
	d := time.Duration(secs) * time.Second
	if d < config.MinPollInterval {
		d = config.MinPollInterval
	}
	return d, nil
}

func (r *PrefsRepo) SetRefreshInterval(d time.Duration) error {
	if d < config.MinPollInterval {
		d = config.MinPollInterval
	}
	return r.set(prefRefreshInterval, strconv.Itoa(int(d/time.Second)))
}

func (r *PrefsRepo) AutoSync(fallback bool) (bool, error) {
	v, ok, err := r.get(prefAutoSync)
	if err != nil || !ok {
		return fallback, err
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, nil
	}
	return b, nil
}

func (r *PrefsRepo) SetAutoSync(on bool) error {
	return r.set(prefAutoSync, strconv.FormatBool(on))
}
