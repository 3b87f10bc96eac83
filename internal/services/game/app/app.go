package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/hitstand/internal/platform/id"
	"github.com/louisbranch/hitstand/internal/services/game/domain/chart"
	"github.com/louisbranch/hitstand/internal/services/game/storage"
	"github.com/louisbranch/hitstand/internal/services/game/storage/memory"
	"github.com/louisbranch/hitstand/internal/services/game/storage/sqlite"
)

const (
	// DriverSQLite stores everything in a SQLite file.
	DriverSQLite = "sqlite"
	// DriverMemory keeps everything in process memory.
	DriverMemory = "memory"
)

// StoreConfig selects the storage backend.
type StoreConfig struct {
	Driver string
	Path   string
}

// OpenStore opens the configured backend.
func OpenStore(cfg StoreConfig) (storage.Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverSQLite:
		store, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil
	case DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// EnsureChart creates chartID from def when the chart has no rows yet.
// Existing rows are left alone. It reports whether rows were written.
func EnsureChart(ctx context.Context, store storage.ChartStore, chartID int64, def chart.Definition) (bool, error) {
	count, err := store.CountChartRows(ctx, chartID)
	if err != nil {
		return false, fmt.Errorf("count chart rows: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if err := InstallChart(ctx, store, chartID, def); err != nil {
		return false, err
	}
	log.Printf("chart seeded chart_id=%d name=%s rows=%d", chartID, def.Name, len(def.Rows))
	return true, nil
}

// InstallChart writes def as chartID, replacing any existing rows.
func InstallChart(ctx context.Context, store storage.ChartStore, chartID int64, def chart.Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	if err := store.PutChart(ctx, storage.ChartRecord{ID: chartID, Name: def.Name, Notes: def.Notes}); err != nil {
		return fmt.Errorf("put chart: %w", err)
	}
	if err := store.ReplaceChartRows(ctx, chartID, def.Rows); err != nil {
		return fmt.Errorf("replace chart rows: %w", err)
	}
	return nil
}

// StartSession creates a new play session against chartID.
func StartSession(ctx context.Context, store storage.SessionStore, chartID int64) (storage.PlaySession, error) {
	sessionID, err := id.NewID()
	if err != nil {
		return storage.PlaySession{}, fmt.Errorf("generate session id: %w", err)
	}
	session := storage.PlaySession{ID: sessionID, ChartID: chartID, StartedAt: time.Now().UTC()}
	if err := store.CreateSession(ctx, session); err != nil {
		return storage.PlaySession{}, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}
