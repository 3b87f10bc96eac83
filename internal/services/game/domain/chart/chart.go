// Package chart defines the hit/stand strategy chart vocabulary and the
// oracle the round engine consults at every player decision.
//
// A chart is keyed by (hand kind, player total, dealer upcard key). A missing
// row is a normal "no opinion" answer and is reported as ActionNone with a
// nil error; only backend failures produce errors.
package chart

import (
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/hitstand/internal/platform/errors"
	"github.com/louisbranch/hitstand/internal/services/game/domain/blackjack"
)

// Action is a player action code as stored in charts and decision logs.
type Action string

const (
	// ActionNone is the chart's answer when it has no row for a situation.
	ActionNone  Action = ""
	ActionHit   Action = "H"
	ActionStand Action = "S"
)

// Valid reports whether a is hit or stand.
func (a Action) Valid() bool {
	return a == ActionHit || a == ActionStand
}

// Label returns a lowercase word for a.
func (a Action) Label() string {
	switch a {
	case ActionHit:
		return "hit"
	case ActionStand:
		return "stand"
	case ActionNone:
		return "none"
	default:
		return string(a)
	}
}

// ParseAction accepts h, hit, s or stand in any case.
func ParseAction(token string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "h", "hit":
		return ActionHit, nil
	case "s", "stand":
		return ActionStand, nil
	default:
		return ActionNone, apperrors.WithMetadata(
			apperrors.CodeInvalidAction,
			"action must be hit or stand",
			map[string]string{"token": token},
		)
	}
}

// HandKind splits player totals into soft and hard rows.
type HandKind string

const (
	HandHard HandKind = "HARD"
	HandSoft HandKind = "SOFT"
)

// Valid reports whether k is a known hand kind.
func (k HandKind) Valid() bool {
	return k == HandHard || k == HandSoft
}

// KindOf classifies a hand.
func KindOf(hand blackjack.Hand) HandKind {
	if hand.IsSoft() {
		return HandSoft
	}
	return HandHard
}

// Situation is the chart lookup key for one decision point.
type Situation struct {
	Kind         HandKind `json:"handKind"`
	PlayerTotal  int      `json:"playerTotal"`
	DealerUpcard string   `json:"dealerUpcard"`
}

// SituationOf derives the lookup key from the player's hand and the dealer's
// first card.
func SituationOf(player, dealer blackjack.Hand) Situation {
	situation := Situation{Kind: KindOf(player), PlayerTotal: player.Total()}
	if len(dealer) > 0 {
		situation.DealerUpcard = blackjack.UpcardKey(dealer[0])
	}
	return situation
}

// String renders the situation as "HARD 16 vs 10".
func (s Situation) String() string {
	return fmt.Sprintf("%s %d vs %s", s.Kind, s.PlayerTotal, s.DealerUpcard)
}

// ValidUpcard reports whether key is one UpcardKey can produce.
func ValidUpcard(key string) bool {
	for _, candidate := range blackjack.UpcardKeys {
		if candidate == key {
			return true
		}
	}
	return false
}
