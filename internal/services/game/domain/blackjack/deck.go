package blackjack

import (
	"errors"
	"fmt"
	"math/rand"
)

// CardsPerDeck is the size of one standard deck.
const CardsPerDeck = 52

var (
	// ErrInvalidDeckCount indicates a shoe built from fewer than one deck.
	ErrInvalidDeckCount = errors.New("number of decks must be at least 1")
	// ErrInvalidReshuffle indicates a low-water mark that would rebuild on every draw.
	ErrInvalidReshuffle = errors.New("reshuffle threshold must be between 0 and the shoe size")
	// ErrMissingRand indicates a deck built without a random source.
	ErrMissingRand = errors.New("random source is required")
)

// Deck is a shuffled shoe of one or more decks. It is not safe for
// concurrent use; each round owner holds its own.
type Deck struct {
	numDecks       int
	reshuffleBelow int
	rng            *rand.Rand
	cards          []Card
}

// DeckState is the serializable form of a Deck. Cards are listed bottom to
// top, so the last entry is the next card drawn.
type DeckState struct {
	NumDecks       int    `json:"numDecks"`
	ReshuffleBelow int    `json:"reshuffleBelow"`
	Cards          []Card `json:"cards"`
}

// NewDeck builds and shuffles numDecks×52 cards. Draw rebuilds the shoe once
// fewer than reshuffleBelow cards remain; zero rebuilds only when empty.
func NewDeck(numDecks, reshuffleBelow int, rng *rand.Rand) (*Deck, error) {
	if err := validateDeck(numDecks, reshuffleBelow, rng); err != nil {
		return nil, err
	}
	d := &Deck{numDecks: numDecks, reshuffleBelow: reshuffleBelow, rng: rng}
	d.rebuild()
	return d, nil
}

// RestoreDeck rehydrates a deck from state. The random source is used for
// later rebuilds only; the restored order is kept as is.
func RestoreDeck(state DeckState, rng *rand.Rand) (*Deck, error) {
	if err := validateDeck(state.NumDecks, state.ReshuffleBelow, rng); err != nil {
		return nil, err
	}
	if len(state.Cards) > state.NumDecks*CardsPerDeck {
		return nil, fmt.Errorf("restore deck: %d cards exceed %d-deck shoe", len(state.Cards), state.NumDecks)
	}
	cards := make([]Card, len(state.Cards))
	copy(cards, state.Cards)
	return &Deck{
		numDecks:       state.NumDecks,
		reshuffleBelow: state.ReshuffleBelow,
		rng:            rng,
		cards:          cards,
	}, nil
}

func validateDeck(numDecks, reshuffleBelow int, rng *rand.Rand) error {
	if numDecks < 1 {
		return ErrInvalidDeckCount
	}
	if reshuffleBelow < 0 || reshuffleBelow >= numDecks*CardsPerDeck {
		return fmt.Errorf("%w: %d for %d cards", ErrInvalidReshuffle, reshuffleBelow, numDecks*CardsPerDeck)
	}
	if rng == nil {
		return ErrMissingRand
	}
	return nil
}

// Size returns the number of cards in a freshly built shoe.
func (d *Deck) Size() int {
	return d.numDecks * CardsPerDeck
}

// Remaining returns the number of undrawn cards.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Draw removes and returns the top card, rebuilding the shoe first when it is
// empty or below the reshuffle threshold.
func (d *Deck) Draw() Card {
	if len(d.cards) == 0 || len(d.cards) < d.reshuffleBelow {
		d.rebuild()
	}
	last := len(d.cards) - 1
	card := d.cards[last]
	d.cards = d.cards[:last]
	return card
}

// EnsureRemaining rebuilds the shoe when fewer than n cards remain. It
// reports whether a rebuild happened.
func (d *Deck) EnsureRemaining(n int) bool {
	if len(d.cards) >= n {
		return false
	}
	d.rebuild()
	return true
}

// State snapshots the deck for persistence.
func (d *Deck) State() DeckState {
	cards := make([]Card, len(d.cards))
	copy(cards, d.cards)
	return DeckState{
		NumDecks:       d.numDecks,
		ReshuffleBelow: d.reshuffleBelow,
		Cards:          cards,
	}
}

func (d *Deck) rebuild() {
	cards := make([]Card, 0, d.Size())
	for i := 0; i < d.numDecks; i++ {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				cards = append(cards, Card{Rank: rank, Suit: suit})
			}
		}
	}
	d.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	d.cards = cards
}
