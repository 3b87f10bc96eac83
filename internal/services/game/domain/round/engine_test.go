package round

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	apperrors "github.com/louisbranch/hitstand/internal/platform/errors"
	"github.com/louisbranch/hitstand/internal/services/game/domain/accuracy"
	"github.com/louisbranch/hitstand/internal/services/game/domain/blackjack"
	"github.com/louisbranch/hitstand/internal/services/game/domain/chart"
)

func card(rank blackjack.Rank) blackjack.Card {
	return blackjack.Card{Rank: rank, Suit: blackjack.SuitHearts}
}

// stacked returns a deck that draws cards in the given order.
func stacked(t *testing.T, cards ...blackjack.Card) *blackjack.Deck {
	t.Helper()
	stack := make([]blackjack.Card, len(cards))
	for i, c := range cards {
		stack[len(cards)-1-i] = c
	}
	deck, err := blackjack.RestoreDeck(blackjack.DeckState{NumDecks: 1, Cards: stack}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("restore deck: %v", err)
	}
	return deck
}

func defaultOracle() chart.Oracle {
	index := map[chart.Situation]chart.Action{}
	for _, row := range chart.DefaultDefinition().Rows {
		index[row.Situation()] = row.Action
	}
	return chart.OracleFunc(func(_ context.Context, s chart.Situation) (chart.Action, error) {
		return index[s], nil
	})
}

func TestDealOrderAndPlayerTurn(t *testing.T) {
	t.Parallel()

	deck := stacked(t, card(blackjack.RankTen), card(blackjack.RankNine), card(blackjack.RankSix), card(blackjack.RankSeven))
	state := NewEngine(deck, blackjack.DealerPolicy{}, defaultOracle(), nil).Deal()

	if state.Phase != PhasePlayerTurn {
		t.Fatalf("phase = %s, want player_turn", state.Phase)
	}
	if state.Player.Total() != 16 || state.Dealer.Total() != 16 {
		t.Fatalf("player %v dealer %v", state.Player.Strings(), state.Dealer.Strings())
	}
	if state.Dealer[0].Rank != blackjack.RankNine {
		t.Fatalf("upcard = %s, want 9", state.Dealer[0])
	}
	if state.HoleRevealed || len(state.VisibleDealer()) != 1 {
		t.Fatal("expected hole card hidden")
	}
}

func TestPlayerNaturalResolvesWithoutDecisions(t *testing.T) {
	t.Parallel()

	var tracker accuracy.Tracker
	deck := stacked(t, card(blackjack.RankAce), card(blackjack.RankKing), card(blackjack.RankKing), card(blackjack.RankQueen))
	engine := NewEngine(deck, blackjack.DealerPolicy{}, defaultOracle(), &tracker)
	state := engine.Deal()

	if !state.Over() || state.Outcome != blackjack.OutcomePlayerBlackjack {
		t.Fatalf("state = %+v, want resolved player blackjack", state)
	}
	if state.Outcome.Label() != "WIN (blackjack)" {
		t.Fatalf("label = %q", state.Outcome.Label())
	}
	if !state.HoleRevealed {
		t.Fatal("expected hole revealed on natural")
	}
	if tracker.Stats().Decisions() != 0 {
		t.Fatalf("decisions = %d, want 0", tracker.Stats().Decisions())
	}
	if _, _, err := engine.Act(context.Background(), state, chart.ActionHit); apperrors.CodeOf(err) != apperrors.CodeRoundOver {
		t.Fatalf("act after natural code = %s, want ROUND_OVER", apperrors.CodeOf(err))
	}
}

func TestDealerNaturalResolves(t *testing.T) {
	t.Parallel()

	deck := stacked(t, card(blackjack.RankTen), card(blackjack.RankAce), card(blackjack.RankNine), card(blackjack.RankJack))
	state := NewEngine(deck, blackjack.DealerPolicy{}, defaultOracle(), nil).Deal()
	if state.Outcome != blackjack.OutcomeDealerBlackjack {
		t.Fatalf("outcome = %s, want dealer_blackjack", state.Outcome)
	}
}

func TestStandAgainstChartCountsIncorrect(t *testing.T) {
	t.Parallel()

	var tracker accuracy.Tracker
	// Player 10+6 against dealer 10 up, 8 hole: hard 16 vs 10, chart says hit.
	deck := stacked(t, card(blackjack.RankTen), card(blackjack.RankKing), card(blackjack.RankSix), card(blackjack.RankEight))
	engine := NewEngine(deck, blackjack.DealerPolicy{}, defaultOracle(), &tracker)
	state := engine.Deal()

	point, err := engine.DecisionPoint(context.Background(), state)
	if err != nil {
		t.Fatalf("decision point: %v", err)
	}
	if point.Situation != (chart.Situation{Kind: chart.HandHard, PlayerTotal: 16, DealerUpcard: "10"}) || point.Recommended != chart.ActionHit {
		t.Fatalf("point = %+v", point)
	}

	next, decision, err := engine.Decide(context.Background(), state, point, chart.ActionStand)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decision.Correct() || !decision.Counted() {
		t.Fatalf("decision = %+v, want counted and incorrect", decision)
	}
	if got := tracker.Stats(); got != (accuracy.Stats{Counted: 1}) {
		t.Fatalf("stats = %+v, want counted 1 correct 0", got)
	}
	if next.Outcome != blackjack.OutcomeDealerHigher {
		t.Fatalf("outcome = %s, want dealer_higher", next.Outcome)
	}
	if !next.HoleRevealed || len(next.Dealer) != 2 {
		t.Fatalf("dealer = %v revealed=%v", next.Dealer.Strings(), next.HoleRevealed)
	}
}

func TestSoftTwelveWithoutRowIsSkipped(t *testing.T) {
	t.Parallel()

	var tracker accuracy.Tracker
	deck := stacked(t,
		card(blackjack.RankAce), card(blackjack.RankSix), card(blackjack.RankAce), card(blackjack.RankTen),
		card(blackjack.RankFive),
	)
	engine := NewEngine(deck, blackjack.DealerPolicy{}, defaultOracle(), &tracker)
	state := engine.Deal()

	next, decision, err := engine.Act(context.Background(), state, chart.ActionHit)
	if err != nil {
		t.Fatalf("act: %v", err)
	}
	if decision.Situation != (chart.Situation{Kind: chart.HandSoft, PlayerTotal: 12, DealerUpcard: "6"}) {
		t.Fatalf("situation = %+v", decision.Situation)
	}
	if decision.WasCorrect() != nil {
		t.Fatal("expected skipped decision")
	}
	if got := tracker.Stats(); got != (accuracy.Stats{Skipped: 1}) {
		t.Fatalf("stats = %+v, want skipped 1", got)
	}
	if next.Phase != PhasePlayerTurn || next.Player.Total() != 17 {
		t.Fatalf("next = %v phase %s", next.Player.Strings(), next.Phase)
	}
}

func TestBustSkipsDealerTurn(t *testing.T) {
	t.Parallel()

	var dealerSteps int
	deck := stacked(t,
		card(blackjack.RankTen), card(blackjack.RankTen), card(blackjack.RankSix), card(blackjack.RankSix),
		card(blackjack.RankKing), card(blackjack.RankFive),
	)
	engine := NewEngine(deck, blackjack.DealerPolicy{}, defaultOracle(), nil,
		WithDealerObserver(func(bool, blackjack.Hand) { dealerSteps++ }))
	state := engine.Deal()

	next, _, err := engine.Act(context.Background(), state, chart.ActionHit)
	if err != nil {
		t.Fatalf("act: %v", err)
	}
	if next.Outcome != blackjack.OutcomePlayerBust || next.Outcome.Label() != "LOSE (you busted)" {
		t.Fatalf("outcome = %s", next.Outcome)
	}
	if len(next.Dealer) != 2 || dealerSteps != 0 {
		t.Fatalf("dealer played after player bust: %v steps=%d", next.Dealer.Strings(), dealerSteps)
	}
	if deck.Remaining() != 1 {
		t.Fatalf("remaining = %d, want 1", deck.Remaining())
	}
}

func TestStandRunsDealerPolicy(t *testing.T) {
	t.Parallel()

	var steps []bool
	// Dealer 10+2 draws 3 then 5 to reach 20.
	deck := stacked(t,
		card(blackjack.RankTen), card(blackjack.RankTen), card(blackjack.RankNine), card(blackjack.RankTwo),
		card(blackjack.RankThree), card(blackjack.RankFive),
	)
	engine := NewEngine(deck, blackjack.DealerPolicy{}, defaultOracle(), nil,
		WithDealerObserver(func(hit bool, _ blackjack.Hand) { steps = append(steps, hit) }))
	state := engine.Deal()

	next, _, err := engine.Act(context.Background(), state, chart.ActionStand)
	if err != nil {
		t.Fatalf("act: %v", err)
	}
	if next.Dealer.Total() != 20 || len(next.Dealer) != 4 {
		t.Fatalf("dealer = %v", next.Dealer.Strings())
	}
	if len(steps) != 3 || !steps[0] || !steps[1] || steps[2] {
		t.Fatalf("steps = %v, want [true true false]", steps)
	}
	if next.Outcome != blackjack.OutcomeDealerHigher {
		t.Fatalf("outcome = %s", next.Outcome)
	}
}

func TestRecordFailureLeavesHandUntouched(t *testing.T) {
	t.Parallel()

	deck := stacked(t,
		card(blackjack.RankTen), card(blackjack.RankTen), card(blackjack.RankTwo), card(blackjack.RankSeven),
		card(blackjack.RankFive),
	)
	failing := RecorderFunc(func(context.Context, accuracy.Decision) error {
		return errors.New("disk I/O error")
	})
	engine := NewEngine(deck, blackjack.DealerPolicy{}, defaultOracle(), failing)
	state := engine.Deal()

	next, _, err := engine.Act(context.Background(), state, chart.ActionHit)
	if apperrors.CodeOf(err) != apperrors.CodeDecisionLogFailed {
		t.Fatalf("code = %s, want DECISION_LOG_FAILED", apperrors.CodeOf(err))
	}
	if len(next.Player) != 2 || next.Phase != PhasePlayerTurn {
		t.Fatalf("state advanced despite record failure: %+v", next)
	}
	if deck.Remaining() != 1 {
		t.Fatalf("remaining = %d, want 1", deck.Remaining())
	}
}

func TestChartFailureAbortsDecision(t *testing.T) {
	t.Parallel()

	var tracker accuracy.Tracker
	deck := stacked(t, card(blackjack.RankTen), card(blackjack.RankTen), card(blackjack.RankTwo), card(blackjack.RankSeven))
	broken := chart.OracleFunc(func(context.Context, chart.Situation) (chart.Action, error) {
		return chart.ActionNone, errors.New("connection refused")
	})
	engine := NewEngine(deck, blackjack.DealerPolicy{}, broken, &tracker)
	state := engine.Deal()

	if _, _, err := engine.Act(context.Background(), state, chart.ActionStand); apperrors.CodeOf(err) != apperrors.CodeChartUnavailable {
		t.Fatalf("code = %s, want CHART_UNAVAILABLE", apperrors.CodeOf(err))
	}
	if tracker.Stats().Decisions() != 0 {
		t.Fatal("expected no decision recorded on chart failure")
	}
}

func TestDecideRejectsInvalidAndStale(t *testing.T) {
	t.Parallel()

	deck := stacked(t,
		card(blackjack.RankTen), card(blackjack.RankTen), card(blackjack.RankTwo), card(blackjack.RankSeven),
		card(blackjack.RankTwo),
	)
	engine := NewEngine(deck, blackjack.DealerPolicy{}, defaultOracle(), nil)
	state := engine.Deal()
	point, err := engine.DecisionPoint(context.Background(), state)
	if err != nil {
		t.Fatalf("decision point: %v", err)
	}

	if _, _, err := engine.Decide(context.Background(), state, point, chart.Action("D")); apperrors.CodeOf(err) != apperrors.CodeInvalidAction {
		t.Fatalf("code = %s, want INVALID_ACTION", apperrors.CodeOf(err))
	}
	if _, _, err := engine.Decide(context.Background(), state, point, chart.ActionNone); apperrors.CodeOf(err) != apperrors.CodeInvalidAction {
		t.Fatalf("none code = %s, want INVALID_ACTION", apperrors.CodeOf(err))
	}

	next, _, err := engine.Decide(context.Background(), state, point, chart.ActionHit)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if _, _, err := engine.Decide(context.Background(), next, point, chart.ActionHit); apperrors.CodeOf(err) != apperrors.CodeStaleDecision {
		t.Fatalf("code = %s, want STALE_DECISION", apperrors.CodeOf(err))
	}
}

func TestDecideDoesNotAliasCallerHands(t *testing.T) {
	t.Parallel()

	deck := stacked(t,
		card(blackjack.RankTwo), card(blackjack.RankTen), card(blackjack.RankThree), card(blackjack.RankSeven),
		card(blackjack.RankFour),
	)
	engine := NewEngine(deck, blackjack.DealerPolicy{}, defaultOracle(), nil)
	state := engine.Deal()
	state.Player = append(make(blackjack.Hand, 0, 8), state.Player...)

	next, _, err := engine.Act(context.Background(), state, chart.ActionHit)
	if err != nil {
		t.Fatalf("act: %v", err)
	}
	if len(state.Player) != 2 || len(next.Player) != 3 {
		t.Fatalf("state %d cards, next %d cards", len(state.Player), len(next.Player))
	}
	next.Player[0] = card(blackjack.RankKing)
	if state.Player[0].Rank != blackjack.RankTwo {
		t.Fatal("next state shares backing array with caller")
	}
}

func TestRecordersStopOnFirstError(t *testing.T) {
	t.Parallel()

	var calls []string
	first := RecorderFunc(func(context.Context, accuracy.Decision) error {
		calls = append(calls, "first")
		return errors.New("boom")
	})
	second := RecorderFunc(func(context.Context, accuracy.Decision) error {
		calls = append(calls, "second")
		return nil
	})
	if err := Recorders(first, nil, second).RecordDecision(context.Background(), accuracy.Decision{}); err == nil {
		t.Fatal("expected chained error")
	}
	if len(calls) != 1 {
		t.Fatalf("calls = %v, want only first", calls)
	}
}

func TestStateValidate(t *testing.T) {
	t.Parallel()

	deck := stacked(t, card(blackjack.RankTen), card(blackjack.RankTen), card(blackjack.RankTwo), card(blackjack.RankSeven))
	state := NewEngine(deck, blackjack.DealerPolicy{}, defaultOracle(), nil).Deal()
	if err := state.Validate(); err != nil {
		t.Fatalf("validate dealt state: %v", err)
	}

	bad := []State{
		{Phase: PhaseDealing},
		{Phase: PhasePlayerTurn, Player: state.Player},
		{Phase: PhaseResolved, Player: state.Player, Dealer: state.Dealer, Outcome: "nope"},
	}
	for _, s := range bad {
		if err := s.Validate(); err == nil {
			t.Fatalf("expected %+v to be invalid", s)
		}
	}
}
