package blackjack

// Hand is the ordered cards of one participant for one round.
type Hand []Card

// Totals returns the best total and whether an Ace is still counted as 11.
func (h Hand) Totals() (total int, soft bool) {
	highAces := 0
	for _, card := range h {
		total += card.Value()
		if card.IsAce() {
			highAces++
		}
	}
	for total > 21 && highAces > 0 {
		total -= 10
		highAces--
	}
	return total, highAces > 0 && total <= 21
}

// Total returns the best total.
func (h Hand) Total() int {
	total, _ := h.Totals()
	return total
}

// IsSoft reports whether the best total counts an Ace as 11.
func (h Hand) IsSoft() bool {
	_, soft := h.Totals()
	return soft
}

// IsBlackjack reports a two-card 21.
func (h Hand) IsBlackjack() bool {
	return len(h) == 2 && h.Total() == 21
}

// IsBust reports a total over 21 after every possible downgrade.
func (h Hand) IsBust() bool {
	return h.Total() > 21
}

// Strings renders each card with Card.String.
func (h Hand) Strings() []string {
	out := make([]string, len(h))
	for i, card := range h {
		out[i] = card.String()
	}
	return out
}
