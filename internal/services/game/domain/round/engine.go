package round

import (
	"context"

	apperrors "github.com/louisbranch/hitstand/internal/platform/errors"
	"github.com/louisbranch/hitstand/internal/services/game/domain/accuracy"
	"github.com/louisbranch/hitstand/internal/services/game/domain/blackjack"
	"github.com/louisbranch/hitstand/internal/services/game/domain/chart"
)

// DecisionPoint is a chart answer for one player situation. It is only
// valid for the hand it was computed from.
type DecisionPoint struct {
	Situation   chart.Situation
	Recommended chart.Action
	HandSize    int
}

// Engine plays rounds from one deck.
type Engine struct {
	deck         *blackjack.Deck
	policy       blackjack.DealerPolicy
	oracle       chart.Oracle
	recorder     Recorder
	onDealerStep func(hit bool, hand blackjack.Hand)
}

// Option configures an Engine.
type Option func(*Engine)

// WithDealerObserver reports each dealer decision during the dealer turn.
func WithDealerObserver(fn func(hit bool, hand blackjack.Hand)) Option {
	return func(e *Engine) {
		e.onDealerStep = fn
	}
}

// NewEngine builds an engine. A nil recorder drops decisions.
func NewEngine(deck *blackjack.Deck, policy blackjack.DealerPolicy, oracle chart.Oracle, recorder Recorder, opts ...Option) *Engine {
	if recorder == nil {
		recorder = Recorders()
	}
	e := &Engine{deck: deck, policy: policy, oracle: oracle, recorder: recorder}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Deal starts a round. A natural on either side resolves it immediately.
func (e *Engine) Deal() State {
	s := State{Phase: PhaseDealing}
	s.Player = append(s.Player, e.deck.Draw())
	s.Dealer = append(s.Dealer, e.deck.Draw())
	s.Player = append(s.Player, e.deck.Draw())
	s.Dealer = append(s.Dealer, e.deck.Draw())

	if s.Player.IsBlackjack() || s.Dealer.IsBlackjack() {
		return resolve(s)
	}
	s.Phase = PhasePlayerTurn
	return s
}

// DecisionPoint asks the oracle about the current player hand.
func (e *Engine) DecisionPoint(ctx context.Context, s State) (DecisionPoint, error) {
	if s.Phase != PhasePlayerTurn {
		return DecisionPoint{}, roundOver(s)
	}
	situation := chart.SituationOf(s.Player, s.Dealer)
	recommended, err := e.oracle.Recommend(ctx, situation)
	if err != nil {
		return DecisionPoint{}, apperrors.Classify(apperrors.CodeChartUnavailable, "strategy chart unavailable", err)
	}
	return DecisionPoint{Situation: situation, Recommended: recommended, HandSize: len(s.Player)}, nil
}

// Decide records the decision and applies the action. On any error the
// returned state is s unchanged.
func (e *Engine) Decide(ctx context.Context, s State, point DecisionPoint, action chart.Action) (State, accuracy.Decision, error) {
	if s.Phase != PhasePlayerTurn {
		return s, accuracy.Decision{}, roundOver(s)
	}
	if !action.Valid() {
		return s, accuracy.Decision{}, apperrors.WithMetadata(apperrors.CodeInvalidAction,
			"action must be hit or stand", map[string]string{"action": string(action)})
	}
	if point.HandSize != len(s.Player) || point.Situation != chart.SituationOf(s.Player, s.Dealer) {
		return s, accuracy.Decision{}, apperrors.New(apperrors.CodeStaleDecision, "decision point no longer matches the hand")
	}

	decision := accuracy.Decision{Situation: point.Situation, Chosen: action, Recommended: point.Recommended}
	if err := e.recorder.RecordDecision(ctx, decision); err != nil {
		return s, accuracy.Decision{}, apperrors.Classify(apperrors.CodeDecisionLogFailed, "decision could not be recorded", err)
	}

	next := s.clone()
	switch action {
	case chart.ActionHit:
		next.Player = append(next.Player, e.deck.Draw())
		if next.Player.IsBust() {
			return resolve(next), decision, nil
		}
		return next, decision, nil
	default:
		return e.playDealer(next), decision, nil
	}
}

// Act computes the decision point for s and applies action to it.
func (e *Engine) Act(ctx context.Context, s State, action chart.Action) (State, accuracy.Decision, error) {
	point, err := e.DecisionPoint(ctx, s)
	if err != nil {
		return s, accuracy.Decision{}, err
	}
	return e.Decide(ctx, s, point, action)
}

func (e *Engine) playDealer(s State) State {
	s.Phase = PhaseDealerTurn
	s.HoleRevealed = true
	s.Dealer = e.policy.Play(s.Dealer, e.deck, e.onDealerStep)
	return resolve(s)
}

func resolve(s State) State {
	s.HoleRevealed = true
	s.Outcome = blackjack.Resolve(s.Player, s.Dealer)
	s.Phase = PhaseResolved
	return s
}

func roundOver(s State) error {
	return apperrors.WithMetadata(apperrors.CodeRoundOver, "round is over", map[string]string{"phase": string(s.Phase)})
}
