package repos

import (
	"strconv"

	"github.com/jmoiron/sqlx"
)

// NotificationRepo remembers which relay notifications the operator has
// dismissed so they are not re-shown after a reload.
type NotificationRepo struct {
	db *sqlx.DB
}

func NewNotificationRepo(db *sqlx.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

func (r *NotificationRepo) MarkCleared(id string) error {
	_, err := r.db.Exec(`INSERT INTO cleared_notifications(id) VALUES (?) ON CONFLICT(id) DO NOTHING`, id)
	return err
}

func (r *NotificationRepo) ClearedIDs() (map[string]bool, error) {
	var ids []string
	if err := r.db.Select(&ids, `SELECT id FROM cleared_notifications`); err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// Prune drops dismissal records older than the retention window so the
// table does not grow forever.
func (r *NotificationRepo) Prune(keepDays int) error {
	if keepDays < 0 {
		keepDays = 0
	}
	_, err := r.db.Exec(`DELETE FROM cleared_notifications WHERE cleared_at < datetime('now', ?)`,
		"-"+strconv.Itoa(keepDays)+" days")
	return err
}
