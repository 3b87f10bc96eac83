// Package web parses web trainer flags and launches the HTTP server.
package web

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/hitstand/internal/platform/cmd"
	"github.com/louisbranch/hitstand/internal/platform/i18n"
	"github.com/louisbranch/hitstand/internal/services/game/app"
	"github.com/louisbranch/hitstand/internal/services/web"
)

// Config holds web command configuration.
type Config struct {
	HTTPAddr       string        `env:"HITSTAND_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	Store          string        `env:"HITSTAND_STORE" envDefault:"sqlite"`
	DBPath         string        `env:"HITSTAND_DB_PATH" envDefault:"data/hitstand.db"`
	ChartID        int64         `env:"HITSTAND_CHART_ID" envDefault:"1"`
	NumDecks       int           `env:"HITSTAND_NUM_DECKS" envDefault:"6"`
	HitsSoft17     bool          `env:"HITSTAND_DEALER_HITS_SOFT_17" envDefault:"false"`
	ReshuffleBelow int           `env:"HITSTAND_WEB_RESHUFFLE_BELOW" envDefault:"67"`
	SessionSecret  string        `env:"HITSTAND_WEB_SESSION_SECRET"`
	SessionTTL     time.Duration `env:"HITSTAND_WEB_SESSION_TTL" envDefault:"6h"`
	Lang           string        `env:"HITSTAND_LANG"`
	Seed           int64
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "Storage driver (sqlite or memory)")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.Int64Var(&cfg.ChartID, "chart-id", cfg.ChartID, "Strategy chart id")
	fs.IntVar(&cfg.NumDecks, "decks", cfg.NumDecks, "Number of decks in each session's shoe")
	fs.BoolVar(&cfg.HitsSoft17, "hits-soft-17", cfg.HitsSoft17, "Dealer hits soft 17")
	fs.IntVar(&cfg.ReshuffleBelow, "reshuffle-below", cfg.ReshuffleBelow, "Rebuild the shoe when fewer cards remain")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Session cookie lifetime")
	fs.Int64Var(&cfg.Seed, "seed", 0, "random seed for reproducibility (0 = random)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.ChartID <= 0 {
		return Config{}, fmt.Errorf("chart id must be positive, got %d", cfg.ChartID)
	}
	return cfg, nil
}

// serverConfig maps command settings onto the web server.
func serverConfig(cfg Config) web.Config {
	serverCfg := web.Config{
		HTTPAddr: cfg.HTTPAddr,
		Store:    app.StoreConfig{Driver: cfg.Store, Path: cfg.DBPath},
		Rules: web.Rules{
			ChartID:        cfg.ChartID,
			NumDecks:       cfg.NumDecks,
			ReshuffleBelow: cfg.ReshuffleBelow,
			HitsSoft17:     cfg.HitsSoft17,
			Seed:           cfg.Seed,
		},
		SessionSecret: cfg.SessionSecret,
		SessionTTL:    cfg.SessionTTL,
	}
	if lang := strings.TrimSpace(cfg.Lang); lang != "" {
		serverCfg.DefaultLang = i18n.ParseTag(lang)
	}
	return serverCfg
}

// Run starts the web trainer.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		server, err := web.NewServer(ctx, serverConfig(cfg))
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
