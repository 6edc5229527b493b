package game

import (
	"errors"
	"fmt"
)

// MaxDeck bounds the deck size so that ordered triple counts fit in an int64.
const MaxDeck = 1 << 20

// ErrInvalidConfig is returned for deck configurations or thresholds the
// analysis cannot be run with.
var ErrInvalidConfig = errors.New("invalid game config")

// Config describes the deck a game is played with.
type Config struct {
	CardSets int `json:"card_sets" yaml:"card_sets"`
	Cards    int `json:"cards" yaml:"cards"`
}

// DefaultConfig returns the standard deck: four suits of thirteen ranks.
func DefaultConfig() Config {
	return Config{CardSets: 4, Cards: 13}
}

// Validate ensures three cards can be dealt without replacement.
func (c Config) Validate() error {
	if c.CardSets < 1 {
		return fmt.Errorf("%w: card sets must be >= 1 (got %d)", ErrInvalidConfig, c.CardSets)
	}
	if c.Cards < 1 {
		return fmt.Errorf("%w: cards must be >= 1 (got %d)", ErrInvalidConfig, c.Cards)
	}
	if c.Cards > MaxDeck || c.CardSets > MaxDeck/c.Cards {
		return fmt.Errorf("%w: deck of %d x %d cards exceeds %d", ErrInvalidConfig, c.CardSets, c.Cards, MaxDeck)
	}
	if c.Deck() < 3 {
		return fmt.Errorf("%w: deck needs at least 3 cards (got %d)", ErrInvalidConfig, c.Deck())
	}
	return nil
}

// Deck returns the number of cards in play.
func (c Config) Deck() int {
	return c.CardSets * c.Cards
}

// Triples returns the number of ordered ways to deal P1's card, P2's card and
// the deck card.
func (c Config) Triples() int64 {
	n := int64(c.Deck())
	return n * (n - 1) * (n - 2)
}

// Strategies returns how many thresholds each player can pick from.
func (c Config) Strategies() int {
	return c.Cards + 1
}

// CheckThresholds reports whether both thresholds lie in [0, Cards].
func (c Config) CheckThresholds(t Thresholds) error {
	if t.P1 < 0 || t.P1 > c.Cards {
		return fmt.Errorf("%w: p1 threshold %d outside [0, %d]", ErrInvalidConfig, t.P1, c.Cards)
	}
	if t.P2 < 0 || t.P2 > c.Cards {
		return fmt.Errorf("%w: p2 threshold %d outside [0, %d]", ErrInvalidConfig, t.P2, c.Cards)
	}
	return nil
}

// Rank maps a card label in [1, Deck] onto its rank in [1, Cards].
func (c Config) Rank(label int) int {
	r := label % c.Cards
	if r == 0 {
		return c.Cards
	}
	return r
}

func (c Config) String() string {
	return fmt.Sprintf("%dx%d", c.CardSets, c.Cards)
}
