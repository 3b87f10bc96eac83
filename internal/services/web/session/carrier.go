// Package session holds the server-side state of a web play session.
//
// A Carrier is the JSON document stored per play session. It records the
// shoe, the round in progress and the last decision, so every request can
// rebuild its engine from storage alone.
package session

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/louisbranch/hitstand/internal/services/game/domain/accuracy"
	"github.com/louisbranch/hitstand/internal/services/game/domain/blackjack"
	"github.com/louisbranch/hitstand/internal/services/game/domain/round"
)

// Carrier is the persisted state of one browser session.
type Carrier struct {
	Deck         blackjack.DeckState `json:"deck"`
	Round        *round.State        `json:"round,omitempty"`
	LastDecision *accuracy.Decision  `json:"lastDecision,omitempty"`
}

// InProgress reports whether the carrier holds a round awaiting a decision.
func (c Carrier) InProgress() bool {
	return c.Round != nil && !c.Round.Over()
}

// Encode serializes the carrier for storage.
func Encode(c Carrier) (json.RawMessage, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode session carrier: %w", err)
	}
	return payload, nil
}

// Decode parses a stored carrier and checks its round.
func Decode(payload []byte) (Carrier, error) {
	var c Carrier
	if err := json.Unmarshal(payload, &c); err != nil {
		return Carrier{}, fmt.Errorf("decode session carrier: %w", err)
	}
	if c.Round != nil {
		if err := c.Round.Validate(); err != nil {
			return Carrier{}, fmt.Errorf("decode session carrier: %w", err)
		}
	}
	return c, nil
}

// Restore rebuilds the carrier's deck. rng is used only for reshuffles.
func (c Carrier) Restore(rng *rand.Rand) (*blackjack.Deck, error) {
	return blackjack.RestoreDeck(c.Deck, rng)
}
