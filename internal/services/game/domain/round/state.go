// Package round sequences one blackjack round: deal, player decisions,
// dealer play and resolution.
//
// The engine holds no round state of its own. Callers own a State value and
// pass it back in for every decision, which lets the terminal keep it in a
// local variable and the web service persist it between requests.
package round

import (
	"fmt"

	"github.com/louisbranch/hitstand/internal/services/game/domain/blackjack"
)

// Phase is a round lifecycle state.
type Phase string

const (
	PhaseDealing    Phase = "dealing"
	PhasePlayerTurn Phase = "player_turn"
	PhaseDealerTurn Phase = "dealer_turn"
	PhaseResolved   Phase = "resolved"
)

// State is the full in-flight round.
type State struct {
	Player       blackjack.Hand    `json:"player"`
	Dealer       blackjack.Hand    `json:"dealer"`
	Phase        Phase             `json:"phase"`
	HoleRevealed bool              `json:"holeRevealed"`
	Outcome      blackjack.Outcome `json:"outcome,omitempty"`
}

// Over reports whether the round is resolved.
func (s State) Over() bool {
	return s.Phase == PhaseResolved
}

// VisibleDealer returns the dealer cards a player may see. Before the hole
// card is revealed only the upcard is returned.
func (s State) VisibleDealer() blackjack.Hand {
	if s.HoleRevealed || len(s.Dealer) == 0 {
		return s.Dealer
	}
	return s.Dealer[:1]
}

// Validate checks a state loaded from outside the engine.
func (s State) Validate() error {
	switch s.Phase {
	case PhasePlayerTurn:
		if len(s.Player) < 2 || len(s.Dealer) != 2 {
			return fmt.Errorf("player turn with %d player and %d dealer cards", len(s.Player), len(s.Dealer))
		}
		if s.Player.IsBust() {
			return fmt.Errorf("player turn with busted hand")
		}
		if s.HoleRevealed || s.Outcome != "" {
			return fmt.Errorf("player turn with revealed hole card or outcome")
		}
	case PhaseResolved:
		if len(s.Player) < 2 || len(s.Dealer) < 2 {
			return fmt.Errorf("resolved round with %d player and %d dealer cards", len(s.Player), len(s.Dealer))
		}
		if !s.Outcome.Valid() {
			return fmt.Errorf("resolved round with outcome %q", s.Outcome)
		}
	default:
		return fmt.Errorf("phase %q cannot be resumed", s.Phase)
	}
	return nil
}

func (s State) clone() State {
	s.Player = append(blackjack.Hand(nil), s.Player...)
	s.Dealer = append(blackjack.Hand(nil), s.Dealer...)
	return s
}
