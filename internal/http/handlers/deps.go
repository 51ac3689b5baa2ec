package handlers

import (
	"github.com/jmoiron/sqlx"

	"cafepos/internal/gateway"
	"cafepos/internal/repos"
	"cafepos/internal/store"
	syncer "cafepos/internal/sync"
	"cafepos/internal/ws"
)

type Deps struct {
	MenuHandler         *MenuHandler
	OrderHandler        *OrderHandler
	InventoryHandler    *InventoryHandler
	TransactionHandler  *TransactionHandler
	StatusHandler       *StatusHandler
	PrefsHandler        *PrefsHandler
	NotificationHandler *NotificationHandler
	CopyHandler         *CopyHandler
}

func NewDeps(db *sqlx.DB, st *store.Store, gw *gateway.Gateway, sched *syncer.Scheduler, hub *ws.Hub) *Deps {
	prefsRepo := repos.NewPrefsRepo(db)
	notesRepo := repos.NewNotificationRepo(db)

	return &Deps{
		MenuHandler:         &MenuHandler{Store: st, Gateway: gw},
		OrderHandler:        &OrderHandler{Store: st, Gateway: gw},
		InventoryHandler:    &InventoryHandler{Store: st, Gateway: gw},
		TransactionHandler:  &TransactionHandler{Store: st, Gateway: gw},
		StatusHandler:       &StatusHandler{Store: st, Sched: sched, Gateway: gw},
		PrefsHandler:        &PrefsHandler{Prefs: prefsRepo, Sched: sched},
		NotificationHandler: &NotificationHandler{Hub: hub, Notes: notesRepo},
		CopyHandler:         &CopyHandler{Cache: repos.NewCopyRepo(db)},
	}
}
