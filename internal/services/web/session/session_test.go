package session

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/louisbranch/hitstand/internal/services/game/domain/accuracy"
	"github.com/louisbranch/hitstand/internal/services/game/domain/blackjack"
	"github.com/louisbranch/hitstand/internal/services/game/domain/chart"
	"github.com/louisbranch/hitstand/internal/services/game/domain/round"
)

func card(r blackjack.Rank, s blackjack.Suit) blackjack.Card {
	return blackjack.Card{Rank: r, Suit: s}
}

func TestCarrierRoundTrip(t *testing.T) {
	t.Parallel()

	state := round.State{
		Player: blackjack.Hand{card(blackjack.RankTen, blackjack.SuitSpades), card(blackjack.RankSix, blackjack.SuitHearts)},
		Dealer: blackjack.Hand{card(blackjack.RankKing, blackjack.SuitClubs), card(blackjack.RankEight, blackjack.SuitDiamonds)},
		Phase:  round.PhasePlayerTurn,
	}
	decision := accuracy.Decision{
		Situation:   chart.Situation{Kind: chart.HandHard, PlayerTotal: 16, DealerUpcard: "10"},
		Chosen:      chart.ActionStand,
		Recommended: chart.ActionHit,
	}
	in := Carrier{
		Deck:         blackjack.DeckState{NumDecks: 1, ReshuffleBelow: 10, Cards: []blackjack.Card{card(blackjack.RankAce, blackjack.SuitSpades)}},
		Round:        &state,
		LastDecision: &decision,
	}

	payload, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := Decode(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.InProgress() {
		t.Fatal("expected round in progress")
	}
	if len(out.Round.Player) != 2 || out.Round.Player[1] != state.Player[1] {
		t.Fatalf("player = %v, want %v", out.Round.Player, state.Player)
	}
	if *out.LastDecision != decision {
		t.Fatalf("last decision = %+v, want %+v", *out.LastDecision, decision)
	}

	deck, err := out.Restore(rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if deck.Remaining() != 1 {
		t.Fatalf("remaining = %d, want 1", deck.Remaining())
	}
}

func TestDecodeRejectsInvalidRound(t *testing.T) {
	t.Parallel()

	for _, payload := range []string{
		`not json`,
		`{"deck":{"numDecks":1,"reshuffleBelow":0,"cards":[]},"round":{"player":[],"dealer":[],"phase":"player_turn"}}`,
		`{"deck":{"numDecks":1,"reshuffleBelow":0,"cards":[]},"round":{"player":["10♠","6♥"],"dealer":["K♣","8♦"],"phase":"dealer_turn"}}`,
	} {
		if _, err := Decode([]byte(payload)); err == nil {
			t.Fatalf("expected error for %s", payload)
		}
	}
}

func TestEmptyCarrierIsNotInProgress(t *testing.T) {
	t.Parallel()

	if (Carrier{}).InProgress() {
		t.Fatal("empty carrier should not be in progress")
	}
	resolved := round.State{Phase: round.PhaseResolved}
	if (Carrier{Round: &resolved}).InProgress() {
		t.Fatal("resolved round should not be in progress")
	}
}

func TestLockerSerializesSameKey(t *testing.T) {
	t.Parallel()

	locker := NewLocker()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locker.Lock("sess-1")
			defer unlock()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Fatalf("max concurrent holders = %d, want 1", maxSeen)
	}
	if locker.Len() != 0 {
		t.Fatalf("locker kept %d entries after release", locker.Len())
	}
}

func TestLockerAllowsDistinctKeys(t *testing.T) {
	t.Parallel()

	locker := NewLocker()
	unlockA := locker.Lock("a")
	done := make(chan struct{})
	go func() {
		unlock := locker.Lock("b")
		unlock()
		close(done)
	}()
	<-done
	unlockA()
}
