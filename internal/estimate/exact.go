package estimate

import (
	"fmt"
	"strings"

	"github.com/lox/leher/internal/game"
	"github.com/lox/leher/internal/rational"
)

// Formula selects how Exact sums winning deals. Both formulas count the same
// deals and agree exactly.
type Formula uint8

const (
	// Linear sums one closed-form term per player 1 rank.
	Linear Formula = iota
	// Quadratic sums one term per pair of player ranks.
	Quadratic
)

func (f Formula) String() string {
	switch f {
	case Linear:
		return "linear"
	case Quadratic:
		return "quadratic"
	default:
		return "unknown"
	}
}

// ParseFormula maps a formula name onto a Formula.
func ParseFormula(s string) (Formula, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear":
		return Linear, nil
	case "quadratic":
		return Quadratic, nil
	default:
		return Linear, fmt.Errorf("unknown formula %q", s)
	}
}

// Exact counts ordered (P1 card, P2 card, deck card) deals won by player 1 and
// divides by the number of such deals.
type Exact struct {
	cfg     game.Config
	formula Formula
}

// NewExact validates cfg and returns an exact estimator.
func NewExact(cfg game.Config, formula Formula) (*Exact, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if formula > Quadratic {
		return nil, fmt.Errorf("invalid formula %d", formula)
	}
	return &Exact{cfg: cfg, formula: formula}, nil
}

// Name returns "exact/<formula>".
func (e *Exact) Name() string { return "exact/" + e.formula.String() }

// Config returns the deck configuration.
func (e *Exact) Config() game.Config { return e.cfg }

// Estimate returns the exact win probability over Triples() deals. The
// fraction is not reduced.
func (e *Exact) Estimate(t game.Thresholds) (rational.Rational, error) {
	wins, err := e.Wins(t)
	if err != nil {
		return rational.Rational{}, err
	}
	return rational.MustNew(wins, e.cfg.Triples()), nil
}

// Wins returns the number of ordered deals player 1 wins.
func (e *Exact) Wins(t game.Thresholds) (int64, error) {
	if err := e.cfg.CheckThresholds(t); err != nil {
		return 0, err
	}
	if e.formula == Quadratic {
		return quadraticWins(e.cfg, t), nil
	}
	return linearWins(e.cfg, t), nil
}

// quadraticWins sums over player ranks (p1, p2) the number of deck cards that
// let player 1 win, times the ways to deal p1 and p2.
func quadraticWins(cfg game.Config, t game.Thresholds) int64 {
	s, k := int64(cfg.CardSets), int64(cfg.Cards)
	n := s * k
	a, b := int64(t.P1), int64(t.P2)
	var wins int64

	// Player 1 swaps up, player 2 then needs to draw below p2 or hit the
	// refused top rank. One lower card is player 1's.
	for p1 := int64(1); p1 <= a; p1++ {
		for p2 := p1 + 1; p2 < k; p2++ {
			wins += s * s * (s*(p2-1) - 1 + s)
		}
	}

	// Player 1 keeps, player 2 draws.
	for p1 := a + 1; p1 <= k; p1++ {
		for p2 := int64(1); p2 <= b; p2++ {
			ways := s
			if p1 == p2 {
				ways *= s - 1
			} else {
				ways *= s
			}

			switch {
			case p1 > p2 && p1 == k:
				// Deck below p1 except p2's card, or a refused top card
				// where player 1 already holds one.
				ways *= s*(p1-1) + s - 2
			case p1 > p2:
				ways *= s*(p1-1) + s - 1
			default:
				ways *= s * (p1 - 1)
			}
			wins += ways
		}
	}

	// Nobody exchanges; any deck card will do.
	for p1 := a + 1; p1 <= k; p1++ {
		for p2 := b + 1; p2 < p1; p2++ {
			wins += s * s * (n - 2)
		}
	}
	return wins
}

// linearWins is quadraticWins with the inner sums over p2 in closed form.
func linearWins(cfg game.Config, t game.Thresholds) int64 {
	s, k := int64(cfg.CardSets), int64(cfg.Cards)
	n := s * k
	a, b := int64(t.P1), int64(t.P2)
	var wins int64

	// sum over p2 in (p1, k) of s*p2 - 1. The series term count times the
	// sum of its ends is always even.
	for p1 := int64(1); p1 <= a && p1 < k-1; p1++ {
		count := k - p1 - 1
		wins += s * s * (s*(count*(p1+k)/2) - count)
	}

	var keep int64
	for p1 := a + 1; p1 <= k; p1++ {
		// p2 in (p1, b]
		if p1 < b {
			keep += (b - p1) * s * s * (p1 - 1)
		}
		// p2 == p1
		if p1 <= b {
			keep += (s - 1) * s * (p1 - 1)
		}
		// p2 in [1, min(b, p1-1)]
		lower := min(b, p1-1)
		if p1 == k {
			keep += lower * s * (s*(p1-1) + s - 2)
		} else {
			keep += lower * s * (s*(p1-1) + s - 1)
		}
	}
	wins += keep * s

	var above int64
	for p1 := a + 1; p1 <= k; p1++ {
		if d := p1 - b - 1; d > 0 {
			above += d
		}
	}
	wins += above * s * s * (n - 2)
	return wins
}
