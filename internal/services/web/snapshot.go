package web

import (
	"github.com/louisbranch/hitstand/internal/services/game/domain/accuracy"
	"github.com/louisbranch/hitstand/internal/services/game/domain/blackjack"
	"github.com/louisbranch/hitstand/internal/services/game/domain/chart"
	"github.com/louisbranch/hitstand/internal/services/web/session"
)

// hiddenCard stands in for the dealer's hole card until it is revealed.
const hiddenCard = "??"

// Snapshot is the table as the browser may see it.
type Snapshot struct {
	PlayerCards          []string          `json:"playerCards"`
	DealerCards          []string          `json:"dealerCards"`
	HideDealerSecondCard bool              `json:"hideDealerSecondCard"`
	PlayerTotal          int               `json:"playerTotal"`
	HandKind             chart.HandKind    `json:"handKind"`
	DealerUpcardKey      string            `json:"dealerUpcardKey"`
	DealerTotal          *int              `json:"dealerTotal"`
	RoundOver            bool              `json:"roundOver"`
	Outcome              blackjack.Outcome `json:"outcome,omitempty"`
	OutcomeLabel         string            `json:"outcomeLabel,omitempty"`
	SessionAccuracy      accuracy.Stats    `json:"sessionAccuracy"`
	AllTimeAccuracy      accuracy.Stats    `json:"allTimeAccuracy"`
	LastDecision         *chart.Action     `json:"lastDecision"`
	RecommendedAction    *chart.Action     `json:"recommendedAction"`
	LastSituation        string            `json:"lastSituation,omitempty"`
	WasCorrect           *bool             `json:"wasCorrect"`
}

// newSnapshot masks the hole card while the player is still deciding.
func newSnapshot(c session.Carrier, sessionStats, allTime accuracy.Stats) Snapshot {
	snap := Snapshot{
		PlayerCards:     []string{},
		DealerCards:     []string{},
		HandKind:        chart.HandHard,
		SessionAccuracy: sessionStats,
		AllTimeAccuracy: allTime,
	}
	if c.Round == nil {
		return snap
	}
	s := *c.Round

	snap.PlayerCards = s.Player.Strings()
	snap.PlayerTotal = s.Player.Total()
	snap.HandKind = chart.KindOf(s.Player)
	if len(s.Dealer) > 0 {
		snap.DealerUpcardKey = blackjack.UpcardKey(s.Dealer[0])
	}
	if s.HoleRevealed {
		snap.DealerCards = s.Dealer.Strings()
		total := s.Dealer.Total()
		snap.DealerTotal = &total
	} else {
		for _, card := range s.VisibleDealer() {
			snap.DealerCards = append(snap.DealerCards, card.String())
		}
		if len(s.Dealer) > 1 {
			snap.DealerCards = append(snap.DealerCards, hiddenCard)
		}
		snap.HideDealerSecondCard = true
	}
	snap.RoundOver = s.Over()
	if snap.RoundOver {
		snap.Outcome = s.Outcome
		snap.OutcomeLabel = s.Outcome.Label()
	}
	if d := c.LastDecision; d != nil {
		chosen := d.Chosen
		snap.LastDecision = &chosen
		if d.Counted() {
			recommended := d.Recommended
			snap.RecommendedAction = &recommended
		}
		snap.LastSituation = d.Situation.String()
		snap.WasCorrect = d.WasCorrect()
	}
	return snap
}
