package blackjack

import (
	"errors"
	"fmt"
	"strings"
)

// Suit identifies one of the four French suits.
type Suit uint8

const (
	SuitSpades Suit = iota
	SuitHearts
	SuitDiamonds
	SuitClubs
)

// Suits lists suits in shoe build order.
var Suits = [...]Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}

var suitGlyphs = [...]string{"♠", "♥", "♦", "♣"}

// Glyph returns the suit symbol.
func (s Suit) Glyph() string {
	if int(s) < len(suitGlyphs) {
		return suitGlyphs[s]
	}
	return "?"
}

// Rank identifies a card rank from Ace through King.
type Rank uint8

const (
	RankAce Rank = iota + 1
	RankTwo
	RankThree
	RankFour
	RankFive
	RankSix
	RankSeven
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
)

// Ranks lists ranks in shoe build order.
var Ranks = [...]Rank{
	RankAce, RankTwo, RankThree, RankFour, RankFive, RankSix, RankSeven,
	RankEight, RankNine, RankTen, RankJack, RankQueen, RankKing,
}

var rankLabels = [...]string{"", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// Label returns the printed rank, for example "A", "7" or "Q".
func (r Rank) Label() string {
	if r >= RankAce && r <= RankKing {
		return rankLabels[r]
	}
	return "?"
}

// Value returns the rank's count before any Ace downgrade.
func (r Rank) Value() int {
	switch {
	case r == RankAce:
		return 11
	case r >= RankTen:
		return 10
	default:
		return int(r)
	}
}

var (
	// ErrInvalidCard indicates a card string that is not "<rank><suit>".
	ErrInvalidCard = errors.New("invalid card")
)

// Card is one playing card. Equal cards from different decks of a shoe are
// still separate cards.
type Card struct {
	Rank Rank
	Suit Suit
}

// Value returns the card's count with an Ace as 11.
func (c Card) Value() int {
	return c.Rank.Value()
}

// IsAce reports whether the card is an Ace.
func (c Card) IsAce() bool {
	return c.Rank == RankAce
}

// String renders the card as rank label plus suit glyph, e.g. "10♥".
func (c Card) String() string {
	return c.Rank.Label() + c.Suit.Glyph()
}

// MarshalText implements encoding.TextMarshaler.
func (c Card) MarshalText() ([]byte, error) {
	if c.Rank < RankAce || c.Rank > RankKing || int(c.Suit) >= len(suitGlyphs) {
		return nil, fmt.Errorf("%w: rank=%d suit=%d", ErrInvalidCard, c.Rank, c.Suit)
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses the String form of a card.
func ParseCard(value string) (Card, error) {
	for i, glyph := range suitGlyphs {
		label, ok := strings.CutSuffix(value, glyph)
		if !ok {
			continue
		}
		for r := RankAce; r <= RankKing; r++ {
			if rankLabels[r] == label {
				return Card{Rank: r, Suit: Suit(i)}, nil
			}
		}
		break
	}
	return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, value)
}

// UpcardKey normalizes a dealer upcard for chart lookups: every ten-valued
// rank maps to "10", an Ace to "A", and the rest to their label.
func UpcardKey(c Card) string {
	if c.Rank >= RankTen {
		return "10"
	}
	return c.Rank.Label()
}

// UpcardKeys lists every key UpcardKey can produce, in chart column order.
var UpcardKeys = [...]string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "A"}
