package estimate

import (
	"github.com/lox/leher/internal/game"
	"github.com/lox/leher/internal/rational"
)

// Enumerate plays every rank triple through game.Config.P1Wins, weighting each
// by the number of ordered card deals with those ranks. It runs in O(cards³)
// per cell.
type Enumerate struct {
	cfg game.Config
}

// NewEnumerate validates cfg and returns an enumerating estimator.
func NewEnumerate(cfg game.Config) (*Enumerate, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Enumerate{cfg: cfg}, nil
}

// Name returns "enumerate".
func (e *Enumerate) Name() string { return "enumerate" }

// Config returns the deck configuration.
func (e *Enumerate) Config() game.Config { return e.cfg }

// Estimate returns the win probability over Triples() deals.
func (e *Enumerate) Estimate(t game.Thresholds) (rational.Rational, error) {
	if err := e.cfg.CheckThresholds(t); err != nil {
		return rational.Rational{}, err
	}

	s := int64(e.cfg.CardSets)
	var wins int64
	for r1 := 1; r1 <= e.cfg.Cards; r1++ {
		for r2 := 1; r2 <= e.cfg.Cards; r2++ {
			w2 := s
			if r2 == r1 {
				w2--
			}
			if w2 <= 0 {
				continue
			}
			for r3 := 1; r3 <= e.cfg.Cards; r3++ {
				w3 := s
				if r3 == r1 {
					w3--
				}
				if r3 == r2 {
					w3--
				}
				if w3 <= 0 {
					continue
				}
				if e.cfg.P1Wins(game.Deal{P1: r1, P2: r2, Deck: r3}, t) {
					wins += s * w2 * w3
				}
			}
		}
	}
	return rational.MustNew(wins, e.cfg.Triples()), nil
}
