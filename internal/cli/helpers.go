package cli

import (
	"fmt"
	"time"

	"github.com/planward/planward/internal/config"
	"github.com/planward/planward/internal/store"
)

// openStore opens the store configured in ~/.planward/config.yaml
func openStore() (*store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL != "" {
		return store.OpenDSN("postgres", cfg.DatabaseURL)
	}
	if cfg.DataPath != "" {
		return store.Open(cfg.DataPath)
	}
	return store.OpenDefault()
}

// parseDay parses a YYYY-MM-DD argument, with "" meaning today
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	day, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return day, nil
}

// shortID truncates an ID for display
func shortID(id string) string {
	if len(id) > 10 {
		return id[:10]
	}
	return id
}
