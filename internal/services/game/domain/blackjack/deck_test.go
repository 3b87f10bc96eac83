package blackjack

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewDeckBuildsFullShoe(t *testing.T) {
	t.Parallel()

	deck, err := NewDeck(2, 0, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("new deck: %v", err)
	}
	if deck.Remaining() != 104 {
		t.Fatalf("remaining = %d, want 104", deck.Remaining())
	}

	counts := map[Card]int{}
	for _, card := range deck.State().Cards {
		counts[card]++
	}
	if len(counts) != 52 {
		t.Fatalf("distinct cards = %d, want 52", len(counts))
	}
	for card, n := range counts {
		if n != 2 {
			t.Fatalf("card %s appears %d times, want 2", card, n)
		}
	}
}

func TestNewDeckValidates(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	if _, err := NewDeck(0, 0, rng); !errors.Is(err, ErrInvalidDeckCount) {
		t.Fatalf("zero decks error = %v", err)
	}
	if _, err := NewDeck(1, 52, rng); !errors.Is(err, ErrInvalidReshuffle) {
		t.Fatalf("threshold at shoe size error = %v", err)
	}
	if _, err := NewDeck(1, -1, rng); !errors.Is(err, ErrInvalidReshuffle) {
		t.Fatalf("negative threshold error = %v", err)
	}
	if _, err := NewDeck(1, 0, nil); !errors.Is(err, ErrMissingRand) {
		t.Fatalf("nil rng error = %v", err)
	}
}

func TestSeededDecksMatch(t *testing.T) {
	t.Parallel()

	a, _ := NewDeck(1, 0, rand.New(rand.NewSource(42)))
	b, _ := NewDeck(1, 0, rand.New(rand.NewSource(42)))
	for i := 0; i < CardsPerDeck; i++ {
		if x, y := a.Draw(), b.Draw(); x != y {
			t.Fatalf("draw %d: %s != %s", i, x, y)
		}
	}
}

func TestDrawTakesLastCard(t *testing.T) {
	t.Parallel()

	state := DeckState{NumDecks: 1, Cards: []Card{{RankTwo, SuitClubs}, {RankKing, SuitHearts}}}
	deck, err := RestoreDeck(state, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got := deck.Draw(); got != state.Cards[len(state.Cards)-1] {
		t.Fatalf("Draw() = %s, want K♥", got)
	}
	if got := deck.State().Cards; len(got) != 1 || got[0] != (Card{RankTwo, SuitClubs}) {
		t.Fatalf("remaining cards = %v, want [2♣]", got)
	}

	stacked := stackedDeck(t, 1, 0, Card{RankTwo, SuitClubs}, Card{RankKing, SuitHearts})
	if got := stacked.Draw(); got != (Card{RankTwo, SuitClubs}) {
		t.Fatalf("stacked Draw() = %s, want 2♣", got)
	}
}

func TestDrawRebuildsWhenEmpty(t *testing.T) {
	t.Parallel()

	deck := stackedDeck(t, 1, 0, Card{RankFive, SuitDiamonds})
	deck.Draw()
	if deck.Remaining() != 0 {
		t.Fatalf("remaining = %d, want 0", deck.Remaining())
	}
	deck.Draw()
	if deck.Remaining() != CardsPerDeck-1 {
		t.Fatalf("remaining after rebuild = %d, want %d", deck.Remaining(), CardsPerDeck-1)
	}
}

func TestDrawRebuildsBelowThreshold(t *testing.T) {
	t.Parallel()

	deck := stackedDeck(t, 2, 67, fillCards(66)...)
	deck.Draw()
	if deck.Remaining() != 2*CardsPerDeck-1 {
		t.Fatalf("remaining = %d, want %d", deck.Remaining(), 2*CardsPerDeck-1)
	}

	deck = stackedDeck(t, 2, 67, fillCards(67)...)
	deck.Draw()
	if deck.Remaining() != 66 {
		t.Fatalf("remaining at threshold = %d, want 66", deck.Remaining())
	}
}

func TestDrawShrinksOrRebuilds(t *testing.T) {
	t.Parallel()

	deck, err := NewDeck(1, 10, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("new deck: %v", err)
	}
	for i := 0; i < 500; i++ {
		before := deck.Remaining()
		deck.Draw()
		after := deck.Remaining()
		if after != before-1 && after != deck.Size()-1 {
			t.Fatalf("draw %d: remaining %d -> %d", i, before, after)
		}
	}
}

func TestEnsureRemaining(t *testing.T) {
	t.Parallel()

	deck := stackedDeck(t, 1, 0, fillCards(10)...)
	if deck.EnsureRemaining(10) {
		t.Fatal("expected no rebuild with exactly enough cards")
	}
	if !deck.EnsureRemaining(11) {
		t.Fatal("expected rebuild when short")
	}
	if deck.Remaining() != CardsPerDeck {
		t.Fatalf("remaining = %d, want %d", deck.Remaining(), CardsPerDeck)
	}
}

func TestRestoreDeckKeepsOrder(t *testing.T) {
	t.Parallel()

	deck, _ := NewDeck(1, 5, rand.New(rand.NewSource(3)))
	deck.Draw()
	state := deck.State()

	restored, err := RestoreDeck(state, rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatalf("restore deck: %v", err)
	}
	for restored.Remaining() > 10 {
		if a, b := deck.Draw(), restored.Draw(); a != b {
			t.Fatalf("restored draw %s != %s", b, a)
		}
	}
}

func TestRestoreDeckRejectsOversizedState(t *testing.T) {
	t.Parallel()

	state := DeckState{NumDecks: 1, Cards: fillCards(53)}
	if _, err := RestoreDeck(state, rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected oversized state error")
	}
}

// stackedDeck returns a deck whose draws yield cards in the given order.
func stackedDeck(t *testing.T, numDecks, reshuffleBelow int, cards ...Card) *Deck {
	t.Helper()
	stack := make([]Card, len(cards))
	for i, card := range cards {
		stack[len(cards)-1-i] = card
	}
	deck, err := RestoreDeck(DeckState{NumDecks: numDecks, ReshuffleBelow: reshuffleBelow, Cards: stack}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("restore stacked deck: %v", err)
	}
	return deck
}

func fillCards(n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = Card{Rank: Ranks[i%len(Ranks)], Suit: Suits[i%len(Suits)]}
	}
	return cards
}
