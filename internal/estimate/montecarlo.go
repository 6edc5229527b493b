package estimate

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/lox/leher/internal/game"
	"github.com/lox/leher/internal/randutil"
)

// DefaultTrials is the sample count used when none is configured.
const DefaultTrials = 100_000

// MonteCarlo estimates win probabilities from random deals. Each cell draws
// from its own stream of the base seed, so results are reproducible whatever
// order cells are computed in.
type MonteCarlo struct {
	cfg    game.Config
	trials int
	seed   int64
}

// NewMonteCarlo validates cfg and trials and returns a sampling estimator.
func NewMonteCarlo(cfg game.Config, trials int, seed int64) (*MonteCarlo, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if trials <= 0 {
		return nil, fmt.Errorf("%w: trials must be > 0 (got %d)", game.ErrInvalidConfig, trials)
	}
	return &MonteCarlo{cfg: cfg, trials: trials, seed: seed}, nil
}

// Name returns "montecarlo".
func (m *MonteCarlo) Name() string { return "montecarlo" }

// Config returns the deck configuration.
func (m *MonteCarlo) Config() game.Config { return m.cfg }

// Trials returns the number of deals sampled per cell.
func (m *MonteCarlo) Trials() int { return m.trials }

// Seed returns the base seed.
func (m *MonteCarlo) Seed() int64 { return m.seed }

// Estimate samples Trials() deals for the cell.
func (m *MonteCarlo) Estimate(t game.Thresholds) (Probability, error) {
	if err := m.cfg.CheckThresholds(t); err != nil {
		return 0, err
	}
	rng := randutil.Stream(m.seed, t.P1, t.P2)
	wins := Sample(m.cfg, t, m.trials, rng)
	return Probability(float64(wins) / float64(m.trials)), nil
}

// Sample plays trials random deals and returns how many player 1 won.
func Sample(cfg game.Config, t game.Thresholds, trials int, rng *rand.Rand) int {
	wins := 0
	for i := 0; i < trials; i++ {
		if cfg.P1Wins(DrawDeal(cfg, rng), t) {
			wins++
		}
	}
	return wins
}

// DrawDeal deals three distinct cards uniformly and returns their ranks.
func DrawDeal(cfg game.Config, rng *rand.Rand) game.Deal {
	labels := DrawDistinct(cfg.Deck(), rng)
	return game.Deal{
		P1:   cfg.Rank(labels[0]),
		P2:   cfg.Rank(labels[1]),
		Deck: cfg.Rank(labels[2]),
	}
}

// DrawDistinct draws three distinct labels from [1, n] uniformly without
// replacement, by sequential reduction: the i-th draw is uniform over the n-i
// labels still in the deck, then shifted up past every earlier draw it meets
// in ascending order. Skipping past earlier draws in draw order instead can
// land on a taken label and bias the sample.
func DrawDistinct(n int, rng *rand.Rand) [3]int {
	var drawn, sorted [3]int
	for i := 0; i < 3; i++ {
		x := rng.IntN(n-i) + 1
		j := 0
		for ; j < i && sorted[j] <= x; j++ {
			x++
		}
		copy(sorted[j+1:i+1], sorted[j:i])
		sorted[j] = x
		drawn[i] = x
	}
	return drawn
}
