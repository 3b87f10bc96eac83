package blackjack

// DealerStandTotal is the total at which the dealer stops drawing.
const DealerStandTotal = 17

// DealerPolicy is the house rule set for dealer play.
type DealerPolicy struct {
	HitsSoft17 bool
}

// ShouldHit decides a single dealer draw from the current total and softness.
func (p DealerPolicy) ShouldHit(total int, soft bool) bool {
	switch {
	case total < DealerStandTotal:
		return true
	case total > DealerStandTotal:
		return false
	default:
		return p.HitsSoft17 && soft
	}
}

// Play draws into the dealer hand until the policy stands or the hand busts.
// The step callback, when set, observes each decision before it is applied.
func (p DealerPolicy) Play(hand Hand, deck *Deck, step func(hit bool, hand Hand)) Hand {
	for {
		total, soft := hand.Totals()
		hit := total <= 21 && p.ShouldHit(total, soft)
		if step != nil {
			step(hit, hand)
		}
		if !hit {
			return hand
		}
		hand = append(hand, deck.Draw())
	}
}
