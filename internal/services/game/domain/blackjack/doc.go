// Package blackjack models cards, shoes, hands and the fixed rules of a
// single player-versus-dealer round.
//
// Everything here is pure value logic with no I/O. Randomness enters only
// through the *rand.Rand handed to a Deck, so seeded sources reproduce the
// same shuffles.
//
// # Totals
//
// Hand totals start with every Ace counted as 11. While the total exceeds 21
// and an Ace is still counted high, one Ace is downgraded to 1. A hand is soft
// when at least one Ace is still counted as 11 after that loop and the total
// is 21 or less. Totals are always derived from the current cards.
package blackjack
