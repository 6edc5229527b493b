// Package convergence measures how quickly the Monte Carlo estimate of one
// cell approaches its exact value as the number of trials grows.
package convergence

import (
	"context"
	"fmt"
	"io"
	"math"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/leher/internal/estimate"
	"github.com/lox/leher/internal/game"
	"github.com/lox/leher/internal/randutil"
	"github.com/lox/leher/internal/rational"
	"github.com/lox/leher/internal/statistics"
)

// DefaultTrialCounts are the sample sizes studied when none are given.
var DefaultTrialCounts = []int{1_000, 10_000, 100_000, 1_000_000}

// DefaultRepeats is the number of independent runs per sample size.
const DefaultRepeats = 10

// Config describes a study.
type Config struct {
	Game        game.Config
	Thresholds  game.Thresholds
	TrialCounts []int
	Repeats     int
	Seed        int64
	Workers     int
	Logger      *log.Logger
}

// Level summarizes the runs at one sample size.
type Level struct {
	Trials       int     `json:"trials" yaml:"trials"`
	MeanEstimate float64 `json:"mean_estimate" yaml:"mean_estimate"`
	MeanError    float64 `json:"mean_error" yaml:"mean_error"`
	MedianError  float64 `json:"median_error" yaml:"median_error"`
	MaxError     float64 `json:"max_error" yaml:"max_error"`
	// StdError is the standard error of the mean estimate across runs.
	StdError float64 `json:"std_error" yaml:"std_error"`
}

// Report is the outcome of a study.
type Report struct {
	Game       game.Config       `json:"game" yaml:"game"`
	Thresholds game.Thresholds   `json:"thresholds" yaml:"thresholds"`
	Exact      rational.Rational `json:"-" yaml:"-"`
	Repeats    int               `json:"repeats" yaml:"repeats"`
	Levels     []Level           `json:"levels" yaml:"levels"`
}

func (c *Config) setDefaults() {
	if len(c.TrialCounts) == 0 {
		c.TrialCounts = DefaultTrialCounts
	}
	if c.Repeats == 0 {
		c.Repeats = DefaultRepeats
	}
	if c.Workers <= 0 {
		c.Workers = min(runtime.NumCPU(), 8)
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
}

// Validate checks the study parameters.
func (c Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return err
	}
	if err := c.Game.CheckThresholds(c.Thresholds); err != nil {
		return err
	}
	if c.Repeats < 0 {
		return fmt.Errorf("%w: repeats must be positive, got %d", game.ErrInvalidConfig, c.Repeats)
	}
	for _, n := range c.TrialCounts {
		if n <= 0 {
			return fmt.Errorf("%w: trial counts must be positive, got %d", game.ErrInvalidConfig, n)
		}
	}
	return nil
}

// Run samples the cell Repeats times at every trial count and compares each
// frequency against the exact probability. Runs are seeded from Seed, the
// level and the repeat, so the report does not depend on Workers.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.setDefaults()

	exact, err := estimate.NewExact(cfg.Game, estimate.Linear)
	if err != nil {
		return nil, err
	}
	want, err := exact.Estimate(cfg.Thresholds)
	if err != nil {
		return nil, err
	}
	target := want.Float64()

	report := &Report{
		Game:       cfg.Game,
		Thresholds: cfg.Thresholds,
		Exact:      want,
		Repeats:    cfg.Repeats,
		Levels:     make([]Level, len(cfg.TrialCounts)),
	}

	for li, trials := range cfg.TrialCounts {
		estimates := make([]float64, cfg.Repeats)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Workers)
		for rep := 0; rep < cfg.Repeats; rep++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				rng := randutil.Stream(cfg.Seed, li, rep)
				wins := estimate.Sample(cfg.Game, cfg.Thresholds, trials, rng)
				estimates[rep] = float64(wins) / float64(trials)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		var est, errs statistics.Sample
		for _, p := range estimates {
			est.Add(p)
			errs.Add(math.Abs(p - target))
		}
		report.Levels[li] = Level{
			Trials:       trials,
			MeanEstimate: est.Mean(),
			MeanError:    errs.Mean(),
			MedianError:  errs.Median(),
			MaxError:     errs.Max,
			StdError:     est.StdError(),
		}
		cfg.Logger.Debug("level complete",
			"trials", trials,
			"median_error", report.Levels[li].MedianError)
	}
	return report, nil
}
