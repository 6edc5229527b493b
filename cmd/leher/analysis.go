package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/leher/internal/config"
	"github.com/lox/leher/internal/engine"
)

// AnalysisFlags select the deck and estimator. Flags left at zero keep the
// value from the config file, or its default.
type AnalysisFlags struct {
	Config    string `help:"HCL analysis file" type:"path" default:"leher.hcl" env:"LEHER_CONFIG"`
	Cards     int    `help:"Distinct ranks in the deck" env:"LEHER_CARDS"`
	CardSets  int    `help:"Copies of every rank" env:"LEHER_CARD_SETS"`
	Estimator string `help:"Estimator (exact, enumerate, montecarlo)" env:"LEHER_ESTIMATOR"`
	Formula   string `help:"Exact formula (linear, quadratic)"`
	Trials    int    `help:"Monte Carlo deals per cell"`
	Seed      int64  `help:"Monte Carlo seed"`
	Workers   int    `help:"Rows computed concurrently (0 uses the CPU count)" env:"LEHER_WORKERS"`
	Display   string `help:"Cell display (fraction, decimal, edge)"`
}

// Load reads the config file, applies flag overrides and validates the
// result.
func (f *AnalysisFlags) Load() (*config.Analysis, error) {
	a, err := config.Load(f.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if f.Cards != 0 {
		a.Game.Cards = f.Cards
	}
	if f.CardSets != 0 {
		a.Game.CardSets = f.CardSets
	}
	if f.Estimator != "" {
		a.Estimator.Kind = f.Estimator
	}
	if f.Formula != "" {
		a.Estimator.Formula = f.Formula
	}
	if f.Trials != 0 {
		a.Estimator.Trials = f.Trials
	}
	if f.Seed != 0 {
		a.Estimator.Seed = f.Seed
	}
	if f.Workers != 0 {
		a.Estimator.Workers = f.Workers
	}
	if f.Display != "" {
		a.Output.Display = f.Display
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// solve loads the analysis and builds its engine.
func (f *AnalysisFlags) solve(ctx context.Context, logger *log.Logger) (engine.View, *config.Analysis, error) {
	a, err := f.Load()
	if err != nil {
		return nil, nil, err
	}
	method, err := a.Method()
	if err != nil {
		return nil, nil, err
	}

	v, err := engine.Solve(ctx, a.GameConfig(), method, engine.Options{
		Workers: a.Estimator.Workers,
		Logger:  logger,
	})
	if err != nil {
		return nil, nil, err
	}

	stats := v.Stats()
	rows, cols := v.DominantStrategies()
	logger.Info("Solved",
		"game", a.GameConfig(),
		"estimator", stats.Estimator,
		"p1", rows,
		"p2", cols,
		"passes", stats.Passes,
		"elapsed", stats.Elapsed.Round(time.Millisecond))
	return v, a, nil
}
