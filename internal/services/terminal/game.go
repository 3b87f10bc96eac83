package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	apperrors "github.com/louisbranch/hitstand/internal/platform/errors"
	"github.com/louisbranch/hitstand/internal/platform/i18n"
	"github.com/louisbranch/hitstand/internal/services/game/app"
	"github.com/louisbranch/hitstand/internal/services/game/domain/accuracy"
	"github.com/louisbranch/hitstand/internal/services/game/domain/blackjack"
	"github.com/louisbranch/hitstand/internal/services/game/domain/chart"
	"github.com/louisbranch/hitstand/internal/services/game/domain/round"
	"github.com/louisbranch/hitstand/internal/services/game/storage"
	terminali18n "github.com/louisbranch/hitstand/internal/services/terminal/i18n"
	"golang.org/x/text/language"
)

// Options holds the house rules and presentation settings of a Game.
type Options struct {
	ChartID    int64
	HitsSoft17 bool
	// MinCardsBeforeDeal rebuilds the shoe before a deal when fewer cards remain.
	MinCardsBeforeDeal int
	Lang               language.Tag
}

// Game is one interactive play session.
type Game struct {
	opts    Options
	store   storage.Store
	deck    *blackjack.Deck
	input   *bufio.Scanner
	render  renderer
	tracker *accuracy.Tracker
	engine  *round.Engine
	now     func() time.Time

	session storage.PlaySession
	current round.State
}

// NewGame binds a session to its store, deck and terminal streams.
func NewGame(opts Options, store storage.Store, deck *blackjack.Deck, in io.Reader, out io.Writer) *Game {
	if opts.Lang == language.Und {
		opts.Lang = i18n.Default()
	}
	return &Game{
		opts:    opts,
		store:   store,
		deck:    deck,
		input:   bufio.NewScanner(in),
		render:  renderer{out: out, printer: i18n.Printer(opts.Lang)},
		tracker: accuracy.NewTracker(),
		now:     time.Now,
	}
}

// decisionLog writes each decision to the store under the game's session.
type decisionLog struct {
	game *Game
}

func (l decisionLog) RecordDecision(ctx context.Context, decision accuracy.Decision) error {
	return l.game.store.LogDecision(ctx, storage.Decision{
		SessionID: l.game.session.ID,
		Decision:  decision,
		DecidedAt: l.game.now().UTC(),
	})
}

// Run plays rounds until the player quits or input ends, then prints the
// summary. It returns the session tally.
func (g *Game) Run(ctx context.Context) (accuracy.Stats, error) {
	session, err := app.StartSession(ctx, g.store, g.opts.ChartID)
	if err != nil {
		return accuracy.Stats{}, err
	}
	g.session = session
	log.Printf("session started session_id=%s chart_id=%d", session.ID, session.ChartID)

	oracle := chart.NewStoreOracle(g.store, g.opts.ChartID)
	recorder := round.Recorders(decisionLog{game: g}, g.tracker)
	g.engine = round.NewEngine(g.deck, blackjack.DealerPolicy{HitsSoft17: g.opts.HitsSoft17}, oracle, recorder,
		round.WithDealerObserver(g.dealerStep))

	g.render.header(g.opts.ChartID, g.deck.Size()/blackjack.CardsPerDeck, g.opts.HitsSoft17)

	var runErr error
	for {
		if g.deck.EnsureRemaining(g.opts.MinCardsBeforeDeal) {
			g.render.notice(terminali18n.ShuffleKey)
		}
		keepPlaying, err := g.playRound(ctx)
		if err != nil {
			runErr = err
			g.reportFailure(err)
			break
		}
		if !keepPlaying || !g.askAgain() {
			break
		}
	}

	g.printSummary(ctx)
	g.render.line(g.render.printer.Sprintf(terminali18n.GoodbyeKey))
	stats := g.tracker.Stats()
	log.Printf("session ended session_id=%s counted=%d correct=%d skipped=%d", session.ID, stats.Counted, stats.Correct, stats.Skipped)
	return stats, runErr
}

// playRound plays one round. It returns false when the player quit.
func (g *Game) playRound(ctx context.Context) (bool, error) {
	state := g.engine.Deal()
	g.current = state
	g.render.table(state.Player, state.Dealer, true)

	if state.Over() {
		g.render.table(state.Player, state.Dealer, false)
		g.render.result(state.Outcome)
		return true, nil
	}

	for {
		point, err := g.engine.DecisionPoint(ctx, state)
		if err != nil {
			return false, err
		}
		action, ok := g.promptAction()
		if !ok {
			return false, nil
		}

		g.current = state
		next, _, err := g.engine.Decide(ctx, state, point, action)
		if err != nil {
			return false, err
		}
		state = next
		g.current = next

		if action == chart.ActionStand {
			g.render.result(state.Outcome)
			return true, nil
		}
		g.render.table(state.Player, state.Dealer, true)
		if state.Over() {
			g.render.table(state.Player, state.Dealer, false)
			g.render.result(state.Outcome)
			return true, nil
		}
	}
}

// dealerStep prints the dealer turn as the engine plays it.
func (g *Game) dealerStep(hit bool, dealer blackjack.Hand) {
	g.render.table(g.current.Player, dealer, false)
	switch {
	case hit:
		g.render.line(g.render.printer.Sprintf(terminali18n.DealerHitsKey))
	case !dealer.IsBust():
		g.render.line(g.render.printer.Sprintf(terminali18n.DealerStandsKey))
	}
}

// promptAction reads until a hit or stand token. The bool is false on quit
// or end of input.
func (g *Game) promptAction() (chart.Action, bool) {
	for {
		fmt.Fprint(g.render.out, g.render.printer.Sprintf(terminali18n.PromptActionKey))
		line, ok := g.readLine()
		if !ok {
			g.render.line("")
			return chart.ActionNone, false
		}
		token := strings.ToLower(strings.TrimSpace(line))
		if token == "q" || token == "quit" {
			return chart.ActionNone, false
		}
		action, err := chart.ParseAction(token)
		if err == nil {
			return action, true
		}
		g.render.line(g.render.printer.Sprintf(terminali18n.PromptInvalidKey))
	}
}

func (g *Game) askAgain() bool {
	g.render.line("")
	fmt.Fprint(g.render.out, g.render.printer.Sprintf(terminali18n.PromptAgainKey))
	line, ok := g.readLine()
	if !ok {
		g.render.line("")
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (g *Game) readLine() (string, bool) {
	if !g.input.Scan() {
		if err := g.input.Err(); err != nil {
			log.Printf("read input: %v", err)
		}
		return "", false
	}
	return g.input.Text(), true
}

func (g *Game) printSummary(ctx context.Context) {
	var allTime *accuracy.Stats
	stats, err := g.store.AllTimeAccuracy(ctx, g.opts.ChartID)
	if err != nil {
		log.Printf("all-time accuracy chart_id=%d: %v", g.opts.ChartID, err)
	} else {
		allTime = &stats
	}
	g.render.summary(g.tracker.Stats(), g.opts.ChartID, allTime)
}

func (g *Game) reportFailure(err error) {
	log.Printf("round aborted session_id=%s code=%s: %v", g.session.ID, apperrors.CodeOf(err), err)
	switch apperrors.CodeOf(err) {
	case apperrors.CodeDecisionLogFailed:
		g.render.failure(terminali18n.DecisionFailedKey)
	default:
		g.render.failure(terminali18n.ChartUnavailableKey)
	}
}
