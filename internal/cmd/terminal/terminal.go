// Package terminal parses terminal trainer flags and runs a play session.
package terminal

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"

	entrypoint "github.com/louisbranch/hitstand/internal/platform/cmd"
	"github.com/louisbranch/hitstand/internal/platform/i18n"
	"github.com/louisbranch/hitstand/internal/random"
	"github.com/louisbranch/hitstand/internal/services/game/app"
	"github.com/louisbranch/hitstand/internal/services/game/domain/blackjack"
	"github.com/louisbranch/hitstand/internal/services/game/domain/chart"
	"github.com/louisbranch/hitstand/internal/services/terminal"
)

// Config holds terminal command configuration.
type Config struct {
	Store          string `env:"HITSTAND_STORE" envDefault:"sqlite"`
	DBPath         string `env:"HITSTAND_DB_PATH" envDefault:"data/hitstand.db"`
	ChartID        int64  `env:"HITSTAND_CHART_ID" envDefault:"1"`
	NumDecks       int    `env:"HITSTAND_NUM_DECKS" envDefault:"1"`
	HitsSoft17     bool   `env:"HITSTAND_DEALER_HITS_SOFT_17" envDefault:"false"`
	Lang           string `env:"HITSTAND_LANG" envDefault:"en"`
	ReshuffleBelow int    `env:"HITSTAND_TERMINAL_RESHUFFLE_BELOW" envDefault:"15"`
	Seed           int64
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
	fs.IntVar(&cfg.NumDecks, "decks", cfg.NumDecks, "Number of decks in the shoe")
	fs.BoolVar(&cfg.HitsSoft17, "hits-soft-17", cfg.HitsSoft17, "Dealer hits soft 17")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "Language for prompts (en, pt-BR)")
	fs.IntVar(&cfg.ReshuffleBelow, "reshuffle-below", cfg.ReshuffleBelow, "Rebuild the shoe before a deal when fewer cards remain")
	fs.Int64Var(&cfg.Seed, "seed", 0, "random seed for reproducibility (0 = random)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.ChartID <= 0 {
		return Config{}, fmt.Errorf("chart id must be positive, got %d", cfg.ChartID)
	}
	if cfg.ReshuffleBelow < 0 {
		return Config{}, fmt.Errorf("reshuffle threshold must not be negative, got %d", cfg.ReshuffleBelow)
	}
	return cfg, nil
}

// Run plays one terminal session over in and out.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceTerminal, func(ctx context.Context) error {
		store, err := app.OpenStore(app.StoreConfig{Driver: cfg.Store, Path: cfg.DBPath})
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("close store: %v", err)
			}
		}()
		if _, err := app.EnsureChart(ctx, store, cfg.ChartID, chart.DefaultDefinition()); err != nil {
			return fmt.Errorf("ensure chart: %w", err)
		}

		rng, err := random.NewRand(cfg.Seed)
		if err != nil {
			return fmt.Errorf("seed deck: %w", err)
		}
		deck, err := blackjack.NewDeck(cfg.NumDecks, 0, rng)
		if err != nil {
			return fmt.Errorf("build shoe: %w", err)
		}

		game := terminal.NewGame(terminal.Options{
			ChartID:            cfg.ChartID,
			HitsSoft17:         cfg.HitsSoft17,
			MinCardsBeforeDeal: cfg.ReshuffleBelow,
			Lang:               i18n.ParseTag(strings.TrimSpace(cfg.Lang)),
		}, store, deck, in, out)
		if _, err := game.Run(ctx); err != nil {
			return fmt.Errorf("play session: %w", err)
		}
		return nil
	})
}
