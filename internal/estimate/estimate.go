// Package estimate computes the probability that player 1 wins for a pair of
// thresholds.
//
// Three estimators share one interface:
//
//   - Exact counts winning deals in closed form and returns a rational.
//   - Enumerate walks every rank triple through the game rules; it is slow but
//     independent of the closed-form algebra, so tests use it as an oracle.
//   - MonteCarlo samples random deals and returns a frequency.
//
// Estimators are safe for concurrent use.
package estimate

import (
	"strconv"

	"github.com/lox/leher/internal/game"
)

// Scalar is the part of a cell value presentation code needs.
type Scalar interface {
	Float64() float64
	String() string
}

// Value is a cell value with a total order over values of the same kind.
type Value[V any] interface {
	Scalar
	Compare(V) int
}

// Estimator produces one win probability per threshold pair.
type Estimator[V Value[V]] interface {
	// Name identifies the estimator in logs and exports.
	Name() string
	// Config returns the deck the estimator was built for.
	Config() game.Config
	// Estimate returns the probability that player 1 wins when the players
	// exchange up to t.P1 and t.P2.
	Estimate(t game.Thresholds) (V, error)
}

// Probability is a sampled win frequency.
type Probability float64

// Compare orders probabilities numerically.
func (p Probability) Compare(o Probability) int {
	switch {
	case p < o:
		return -1
	case p > o:
		return 1
	}
	return 0
}

// Float64 returns p.
func (p Probability) Float64() float64 { return float64(p) }

func (p Probability) String() string {
	return strconv.FormatFloat(float64(p), 'f', -1, 64)
}
