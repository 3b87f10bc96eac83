package blackjack

// Outcome is the resolved result of a round.
type Outcome string

const (
	OutcomePlayerBust      Outcome = "player_bust"
	OutcomeDealerBust      Outcome = "dealer_bust"
	OutcomePlayerBlackjack Outcome = "player_blackjack"
	OutcomeDealerBlackjack Outcome = "dealer_blackjack"
	OutcomePlayerHigher    Outcome = "player_higher"
	OutcomeDealerHigher    Outcome = "dealer_higher"
	OutcomePush            Outcome = "push"
)

// Result is the player-facing class of an outcome.
type Result string

const (
	ResultWin  Result = "win"
	ResultLose Result = "lose"
	ResultPush Result = "push"
)

var outcomeLabels = map[Outcome]string{
	OutcomePlayerBust:      "LOSE (you busted)",
	OutcomeDealerBust:      "WIN (dealer busted)",
	OutcomePlayerBlackjack: "WIN (blackjack)",
	OutcomeDealerBlackjack: "LOSE (dealer blackjack)",
	OutcomePlayerHigher:    "WIN",
	OutcomeDealerHigher:    "LOSE",
	OutcomePush:            "PUSH (tie)",
}

// Label returns the fixed result string shown to players. Labels are not
// localized.
func (o Outcome) Label() string {
	return outcomeLabels[o]
}

// Valid reports whether o is a known outcome.
func (o Outcome) Valid() bool {
	_, ok := outcomeLabels[o]
	return ok
}

// Result classifies the outcome from the player's side.
func (o Outcome) Result() Result {
	switch o {
	case OutcomeDealerBust, OutcomePlayerBlackjack, OutcomePlayerHigher:
		return ResultWin
	case OutcomePlayerBust, OutcomeDealerBlackjack, OutcomeDealerHigher:
		return ResultLose
	case OutcomePush:
		return ResultPush
	default:
		return ""
	}
}

// Resolve applies the fixed precedence: player bust, dealer bust, a single
// natural, then the higher total. Equal totals push, including two naturals.
func Resolve(player, dealer Hand) Outcome {
	switch {
	case player.IsBust():
		return OutcomePlayerBust
	case dealer.IsBust():
		return OutcomeDealerBust
	case player.IsBlackjack() && !dealer.IsBlackjack():
		return OutcomePlayerBlackjack
	case dealer.IsBlackjack() && !player.IsBlackjack():
		return OutcomeDealerBlackjack
	}
	playerTotal, dealerTotal := player.Total(), dealer.Total()
	switch {
	case playerTotal > dealerTotal:
		return OutcomePlayerHigher
	case playerTotal < dealerTotal:
		return OutcomeDealerHigher
	default:
		return OutcomePush
	}
}
