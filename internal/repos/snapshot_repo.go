package repos

import (
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"cafepos/internal/domain"
)

// SnapshotRepo keeps the single last-submitted order across restarts.
type SnapshotRepo struct {
	db *sqlx.DB
}

func NewSnapshotRepo(db *sqlx.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

func (r *SnapshotRepo) SaveLastOrder(o domain.Order) error {
	body, err := json.Marshal(o)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`
		INSERT INTO order_snapshots(slot, order_id, body_json, created_at)
		VALUES (1, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slot) DO UPDATE SET
		  order_id = excluded.order_id,
		  body_json = excluded.body_json,
		  created_at = CURRENT_TIMESTAMP`,
		o.OrderID, string(body))
	return err
}

// LastOrder returns nil when no snapshot is held.
func (r *SnapshotRepo) LastOrder() (*domain.Order, error) {
	var body string
	err := r.db.Get(&body, `SELECT body_json FROM order_snapshots WHERE slot = 1`)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var o domain.Order
	if err := json.Unmarshal([]byte(body), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Discard drops the snapshot once the remote has confirmed the order (or
// the user dismissed it).
func (r *SnapshotRepo) Discard() error {
	_, err := r.db.Exec(`DELETE FROM order_snapshots WHERE slot = 1`)
	return err
}
