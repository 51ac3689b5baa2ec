package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// MinPollInterval is the floor for background polling; the remote service
// rate-limits aggressive callers.
const MinPollInterval = 15 * time.Second

type Config struct {
	Port         string
	DBDSN        string
	RemoteURL    string
	LogFile      string
	PollInterval time.Duration
	AutoSync     bool
}

func Load() Config {
	// .env is optional; deployments may set env vars directly.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8090"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "cafepos.db" // sqlite file in project root
	}
	remote := os.Getenv("REMOTE_URL")
	if remote == "" {
		remote = "http://localhost:9090/exec" // local stub endpoint
	}
	logFile := os.Getenv("LOG_FILE")

	poll := MinPollInterval
	if raw := os.Getenv("POLL_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			poll = d
		} else if secs, aerr := strconv.Atoi(raw); aerr == nil {
			poll = time.Duration(secs) * time.Second
		}
	}
	if poll < MinPollInterval {
		poll = MinPollInterval
	}

	autoSync := true
	if raw := os.Getenv("AUTO_SYNC"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			autoSync = v
		}
	}

	cfg := Config{Port: port, DBDSN: dsn, RemoteURL: remote, LogFile: logFile, PollInterval: poll, AutoSync: autoSync}
	log.Printf("[config] PORT=%s DB_DSN=%s REMOTE_URL=%s POLL_INTERVAL=%s AUTO_SYNC=%v", cfg.Port, cfg.DBDSN, cfg.RemoteURL, cfg.PollInterval, cfg.AutoSync)
	return cfg
}
