package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"cafepos/internal/config"
	"cafepos/internal/gateway"
	"cafepos/internal/http/handlers"
	applog "cafepos/internal/log"
	"cafepos/internal/remote"
	"cafepos/internal/repos"
	"cafepos/internal/store"
	syncer "cafepos/internal/sync"
	"cafepos/internal/ws"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	st := store.New()

	// Restore the last-submitted order for display continuity; the first
	// successful fetch discards it once the remote echoes the id back.
	snaps := repos.NewSnapshotRepo(db)
	restored := false
	if last, err := snaps.LastOrder(); err != nil {
		log.Printf("[warn] could not restore order snapshot: %v", err)
	} else if last != nil {
		st.SetLastSubmitted(*last)
		restored = true
	}

	if err := repos.NewNotificationRepo(db).Prune(30); err != nil {
		log.Printf("[warn] could not prune cleared notifications: %v", err)
	}

	// Persisted preferences override the env defaults.
	prefs := repos.NewPrefsRepo(db)
	pollInterval, _ := prefs.RefreshInterval(cfg.PollInterval)
	autoSync, _ := prefs.AutoSync(cfg.AutoSync)

	client := remote.NewClient(cfg.RemoteURL)
	sched := syncer.New(client, st, pollInterval)
	sched.SetActive(autoSync)
	gw := gateway.New(client, sched, st, snaps)

	hub := ws.NewHub()
	go hub.Run()
	go hub.RelayStore(st)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong"})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	app.Use(logger.New())

	deps := handlers.NewDeps(db, st, gw, sched, hub)

	api := app.Group("/api/v1")
	api.Get("/menu", deps.MenuHandler.List)
	api.Post("/menu", deps.MenuHandler.Create)
	api.Put("/menu/:id", deps.MenuHandler.Update)
	api.Delete("/menu/:id", deps.MenuHandler.Delete)

	api.Get("/orders", deps.OrderHandler.List)
	api.Post("/orders", deps.OrderHandler.Place)
	api.Get("/orders/:id", deps.OrderHandler.Get)
	api.Post("/orders/:id/status", deps.OrderHandler.UpdateStatus)
	api.Post("/orders/:id/edit", deps.OrderHandler.Edit)

	api.Get("/inventory", deps.InventoryHandler.List)
	api.Post("/inventory", deps.InventoryHandler.Adjust)
	api.Post("/inventory/receipts", deps.InventoryHandler.Receipt)

	api.Get("/transactions", deps.TransactionHandler.List)
	api.Post("/transactions", deps.TransactionHandler.Create)
	api.Delete("/transactions/:id", deps.TransactionHandler.Delete)

	api.Get("/status", deps.StatusHandler.Status)
	api.Post("/sync", deps.StatusHandler.Sync)
	api.Post("/sync/database", deps.StatusHandler.SyncDatabase)

	api.Get("/prefs", deps.PrefsHandler.Get)
	api.Put("/prefs", deps.PrefsHandler.Update)

	api.Get("/notifications", deps.NotificationHandler.List)
	api.Post("/notifications/:id/clear", deps.NotificationHandler.Clear)

	api.Get("/copy/:key", deps.CopyHandler.Get)
	api.Put("/copy/:key", deps.CopyHandler.Put)

	// Notification relay
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(hub.Handle))

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// Initial full load, then background polling.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := sched.Refresh(ctx, syncer.Full); err != nil {
			applog.Error(nil, "sync.initial", err, nil)
			return
		}
		if restored {
			// Remote echoed the restored order back; the on-disk copy has
			// served its purpose.
			if _, pending := st.LastSubmitted(); !pending {
				if err := snaps.Discard(); err != nil {
					log.Printf("[warn] could not discard order snapshot: %v", err)
				}
			}
		}
	}()
	sched.StartPolling()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("[shutdown] stopping poller and server")
	sched.Stop()
	hub.Stop()
	if err := app.Shutdown(); err != nil {
		log.Printf("[shutdown] server: %v", err)
	}
}
