// Package seed parses chart seeding flags and installs strategy charts.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	entrypoint "github.com/louisbranch/hitstand/internal/platform/cmd"
	"github.com/louisbranch/hitstand/internal/services/game/app"
	"github.com/louisbranch/hitstand/internal/services/game/domain/chart"
	"github.com/louisbranch/hitstand/internal/services/game/storage"
)

// Config holds seed command configuration.
type Config struct {
	Store     string `env:"HITSTAND_STORE" envDefault:"sqlite"`
	DBPath    string `env:"HITSTAND_DB_PATH" envDefault:"data/hitstand.db"`
	ChartID   int64  `env:"HITSTAND_CHART_ID" envDefault:"1"`
	ChartFile string
	Replace   bool
	List      bool
	Export    bool
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Store, "store", cfg.Store, "Storage driver (sqlite or memory)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.Int64Var(&cfg.ChartID, "chart-id", cfg.ChartID, "Strategy chart id")
	fs.StringVar(&cfg.ChartFile, "chart-file", "", "JSON chart definition (default: built-in basic strategy)")
	fs.BoolVar(&cfg.Replace, "replace", false, "overwrite rows of an existing chart")
	fs.BoolVar(&cfg.List, "list", false, "print the chart and its row count")
	fs.BoolVar(&cfg.Export, "export", false, "print the chart definition as JSON and exit")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.ChartID <= 0 {
		return Config{}, fmt.Errorf("chart id must be positive, got %d", cfg.ChartID)
	}
	return cfg, nil
}

// Run executes the seed command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		def, err := loadDefinition(cfg.ChartFile)
		if err != nil {
			return err
		}
		if cfg.Export {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(def)
		}

		store, err := app.OpenStore(app.StoreConfig{Driver: cfg.Store, Path: cfg.DBPath})
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("close store: %v", err)
			}
		}()

		if cfg.List {
			return listChart(ctx, store, cfg.ChartID, out)
		}
		return seedChart(ctx, store, cfg, def, out)
	})
}

func loadDefinition(path string) (chart.Definition, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return chart.DefaultDefinition(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return chart.Definition{}, fmt.Errorf("open chart file: %w", err)
	}
	defer file.Close()
	def, err := chart.ParseDefinition(file)
	if err != nil {
		return chart.Definition{}, fmt.Errorf("chart file %s: %w", path, err)
	}
	return def, nil
}

func seedChart(ctx context.Context, store storage.ChartStore, cfg Config, def chart.Definition, out io.Writer) error {
	if cfg.Replace {
		if err := app.InstallChart(ctx, store, cfg.ChartID, def); err != nil {
			return err
		}
		fmt.Fprintf(out, "Installed chart %d (%s): %d rows\n", cfg.ChartID, def.Name, len(def.Rows))
		return nil
	}

	seeded, err := app.EnsureChart(ctx, store, cfg.ChartID, def)
	if err != nil {
		return err
	}
	if seeded {
		fmt.Fprintf(out, "Seeded chart %d (%s): %d rows\n", cfg.ChartID, def.Name, len(def.Rows))
		return nil
	}
	count, err := store.CountChartRows(ctx, cfg.ChartID)
	if err != nil {
		return fmt.Errorf("count chart rows: %w", err)
	}
	fmt.Fprintf(out, "Chart %d already has %d rows; use -replace to overwrite\n", cfg.ChartID, count)
	return nil
}

func listChart(ctx context.Context, store storage.ChartStore, chartID int64, out io.Writer) error {
	record, err := store.GetChart(ctx, chartID)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(out, "Chart %d is not installed\n", chartID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get chart: %w", err)
	}
	count, err := store.CountChartRows(ctx, chartID)
	if err != nil {
		return fmt.Errorf("count chart rows: %w", err)
	}
	fmt.Fprintf(out, "Chart %d (%s): %d rows\n", record.ID, record.Name, count)
	if record.Notes != "" {
		fmt.Fprintf(out, "  %s\n", record.Notes)
	}
	return nil
}
