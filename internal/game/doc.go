// Package game implements the rules of LeHer, a two player card-exchange game.
//
// Each player is dealt one card from a deck holding CardSets copies of Cards
// distinct ranks (1 is the lowest rank, Cards the highest). Player 1 acts first
// and may offer to swap cards with player 2. Player 2 then may swap with the top
// of the deck. A swap into the highest rank is refused, and the higher card wins
// with ties going to player 2.
//
// A strategy is a threshold: the highest rank a player will still try to get
// rid of. Thresholds range over [0, Cards]; 0 never exchanges and Cards always
// exchanges.
//
// # Basic Usage
//
//	cfg := game.DefaultConfig() // 4 sets of 13 ranks
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//	won := cfg.P1Wins(game.Deal{P1: 5, P2: 9, Deck: 3}, game.Thresholds{P1: 6, P2: 7})
package game
