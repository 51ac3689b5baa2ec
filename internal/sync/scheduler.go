// Package sync drives the polling refresh cycle against the remote store.
package sync

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"cafepos/internal/config"
	"cafepos/internal/inventory"
	applog "cafepos/internal/log"
	"cafepos/internal/normalize"
	"cafepos/internal/remote"
	"cafepos/internal/store"
)

// Mode selects the refresh semantics.
//
// Full is a user-blocking refresh with the heavy loading indicator; it is
// never rate-limited. Incremental is background polling with the light
// refreshing indicator, dropped when it lands inside the minimum interval.
// Resync is the post-mutation variant: refreshing indicator, no interval
// floor, because the caller must observe the mutation's effects.
type Mode int

const (
	Full Mode = iota
	Incremental
	Resync
)

var (
	// ErrFetchInFlight: a fetch was requested while one is running. The
	// request is dropped, never queued.
	ErrFetchInFlight = errors.New("fetch already in flight")
	// ErrTooSoon: an incremental fetch landed inside the minimum interval.
	ErrTooSoon = errors.New("incremental fetch inside minimum interval")
)

// minFetchGap is the floor between a completed fetch and the next
// incremental one; the remote rate-limits tighter loops.
const minFetchGap = 5 * time.Second

// Source is the read side of the remote service.
type Source interface {
	FetchRows(ctx context.Context, action string) ([]remote.Row, error)
	FetchInventory(ctx context.Context) (*remote.InventoryPayload, error)
}

type Scheduler struct {
	src   Source
	store *store.Store

	inFlight atomic.Bool
	active   atomic.Bool

	mu       sync.Mutex
	lastDone time.Time
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	kick   chan struct{} // wakes the poll loop after an interval change
}

func New(src Source, st *store.Store, pollInterval time.Duration) *Scheduler {
	if pollInterval < config.MinPollInterval {
		pollInterval = config.MinPollInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{src: src, store: st, interval: pollInterval, ctx: ctx, cancel: cancel, kick: make(chan struct{}, 1)}
	s.active.Store(true)
	return s
}

// SetActive gates background polling; the foreground/visibility signal of
// the UI shell and the auto-sync preference both land here. Ticks while
// inactive are skipped, not batched.
func (s *Scheduler) SetActive(on bool) { s.active.Store(on) }

func (s *Scheduler) Active() bool { return s.active.Load() }

// SetInterval changes the polling period, clamped to the configured floor.
func (s *Scheduler) SetInterval(d time.Duration) {
	if d < config.MinPollInterval {
		d = config.MinPollInterval
	}
	s.mu.Lock()
	s.interval = d
	s.mu.Unlock()
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Refresh runs one fetch cycle. At most one fetch is in flight at any
// time; a second trigger is dropped with ErrFetchInFlight. Incremental
// triggers inside the minimum gap after the previous completion are dropped
// with ErrTooSoon. Full triggers always proceed.
func (s *Scheduler) Refresh(ctx context.Context, mode Mode) error {
	if mode == Incremental {
		s.mu.Lock()
		tooSoon := !s.lastDone.IsZero() && time.Since(s.lastDone) < minFetchGap
		s.mu.Unlock()
		if tooSoon {
			return ErrTooSoon
		}
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return ErrFetchInFlight
	}
	defer s.inFlight.Store(false)

	full := mode == Full
	s.store.SetIndicator(full, true)
	defer s.store.SetIndicator(full, false)

	err := s.fetchCycle(ctx)

	s.mu.Lock()
	s.lastDone = time.Now()
	s.mu.Unlock()
	return err
}

// fetchCycle pulls all feeds, normalizes, cross-references, and installs
// the snapshot. Menu and orders are critical: their failure aborts the
// cycle and leaves the last-known-good lists untouched. Inventory and
// finance are best-effort.
func (s *Scheduler) fetchCycle(ctx context.Context) error {
	menuRows, err := s.src.FetchRows(ctx, remote.ActionGetAllMenu)
	if err != nil {
		return s.fail("fetch.menu", err)
	}
	orderRows, err := s.src.FetchRows(ctx, remote.ActionGetOrders)
	if err != nil {
		return s.fail("fetch.orders", err)
	}

	// Non-critical feeds: a failure means no new data, and the previous
	// cycle's records are carried so quantity overrides on menu items do not
	// flap (and re-fire the out-of-stock edge) across a one-cycle outage.
	records := s.store.Inventory()
	if payload, err := s.src.FetchInventory(ctx); err != nil {
		applog.Info(nil, "fetch.inventory.skip", map[string]any{"reason": err.Error()})
	} else {
		records = normalize.InventoryRecords(payload.Materials)
	}

	txns := s.store.Transactions()
	if rows, err := s.src.FetchRows(ctx, remote.ActionGetFinanceData); err != nil {
		applog.Info(nil, "fetch.finance.skip", map[string]any{"reason": err.Error()})
	} else {
		txns = normalize.Transactions(rows)
	}

	items := normalize.MenuItems(menuRows)
	items = inventory.Apply(items, records)

	prev := s.store.Menu()
	newlyOut := inventory.DiffOutOfStock(prev, items)

	orders := normalize.Orders(orderRows)

	s.store.ReplaceAll(items, orders, records, txns)

	for i := range newlyOut {
		item := newlyOut[i]
		s.store.Publish(store.Event{Type: store.EventOutOfStock, Item: &item})
	}
	applog.Info(nil, "fetch.ok", map[string]any{
		"menu": len(items), "orders": len(orders), "inventory": len(records), "out_of_stock_events": len(newlyOut),
	})
	return nil
}

func (s *Scheduler) fail(action string, err error) error {
	s.store.Fail(remote.CategoryOf(err), remote.MessageOf(err))
	applog.Error(nil, action, err, nil)
	return err
}

// StartPolling runs the background ticker. A tick fires an incremental
// refresh only when the scheduler is active and idle; missed ticks are
// skipped, never batched.
func (s *Scheduler) StartPolling() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.Interval())
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if !s.active.Load() || s.inFlight.Load() {
					continue
				}
				err := s.Refresh(s.ctx, Incremental)
				if err != nil && !errors.Is(err, ErrTooSoon) && !errors.Is(err, ErrFetchInFlight) {
					applog.Error(nil, "poll.refresh", err, nil)
				}
			case <-s.kick:
				ticker.Reset(s.Interval())
			case <-s.ctx.Done():
				return
			}
		}
	}()
}

// Stop ends background polling and waits for the loop to exit. An in-flight
// fetch is not cancelled; it completes and still updates the store, so
// consumers must tolerate one stale-arrival update after Stop.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}
