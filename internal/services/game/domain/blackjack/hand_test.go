package blackjack

import "testing"

func hand(ranks ...Rank) Hand {
	h := make(Hand, len(ranks))
	for i, rank := range ranks {
		h[i] = Card{Rank: rank, Suit: Suits[i%len(Suits)]}
	}
	return h
}

func TestHandTotals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		hand  Hand
		total int
		soft  bool
	}{
		{"empty", hand(), 0, false},
		{"hard pair", hand(RankTen, RankSix), 16, false},
		{"soft 17", hand(RankAce, RankSix), 17, true},
		{"two aces", hand(RankAce, RankAce), 12, true},
		{"soft turns hard", hand(RankAce, RankSix, RankTen), 17, false},
		{"three aces and eight", hand(RankAce, RankAce, RankAce, RankEight), 21, true},
		{"multi card soft 17", hand(RankAce, RankTwo, RankFour), 17, true},
		{"bust with downgraded ace", hand(RankAce, RankKing, RankQueen, RankTwo), 23, false},
		{"natural", hand(RankAce, RankKing), 21, true},
	}
	for _, tc := range tests {
		total, soft := tc.hand.Totals()
		if total != tc.total || soft != tc.soft {
			t.Fatalf("%s: Totals() = (%d, %v), want (%d, %v)", tc.name, total, soft, tc.total, tc.soft)
		}
	}
}

func TestHandSoftInvariantExhaustive(t *testing.T) {
	t.Parallel()

	// Every hand of up to four cards drawn from the distinct values.
	values := []Rank{RankAce, RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven, RankEight, RankNine, RankTen}
	var walk func(h Hand)
	walk = func(h Hand) {
		if len(h) > 0 {
			checkSoftInvariant(t, h)
		}
		if len(h) == 4 {
			return
		}
		for _, rank := range values {
			walk(append(append(Hand{}, h...), Card{Rank: rank}))
		}
	}
	walk(nil)
}

func checkSoftInvariant(t *testing.T, h Hand) {
	t.Helper()

	raw, aces := 0, 0
	for _, card := range h {
		if card.IsAce() {
			aces++
			raw++
		} else {
			raw += card.Value()
		}
	}
	// Two Aces can never both stay high, so at most one counts as 11.
	high := aces > 0 && raw+10 <= 21
	best := raw
	if high {
		best = raw + 10
	}

	total, soft := h.Totals()
	if total != best {
		t.Fatalf("%v: total = %d, want %d", h.Strings(), total, best)
	}
	if soft != high {
		t.Fatalf("%v: soft = %v, want %v", h.Strings(), soft, high)
	}
	if h.IsBust() != (total > 21) {
		t.Fatalf("%v: IsBust() = %v with total %d", h.Strings(), h.IsBust(), total)
	}
}

func TestHandTotalNeverDropsMoreThanDowngrade(t *testing.T) {
	t.Parallel()

	h := Hand{}
	for _, rank := range []Rank{RankAce, RankFive, RankAce, RankNine, RankThree, RankAce} {
		before := h.Total()
		h = append(h, Card{Rank: rank})
		if after := h.Total(); after < before-10 {
			t.Fatalf("total dropped from %d to %d after %s", before, after, rank.Label())
		}
	}
}

func TestHandPredicates(t *testing.T) {
	t.Parallel()

	if !hand(RankAce, RankJack).IsBlackjack() {
		t.Fatal("expected A+J to be blackjack")
	}
	if hand(RankSeven, RankSeven, RankSeven).IsBlackjack() {
		t.Fatal("expected three-card 21 not to be blackjack")
	}
	if !hand(RankTen, RankSix, RankSix).IsBust() {
		t.Fatal("expected 22 to bust")
	}
	if hand(RankAce, RankAce, RankTen).IsBust() {
		t.Fatal("expected A+A+10 not to bust")
	}
}
