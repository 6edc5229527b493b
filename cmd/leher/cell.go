package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/log"

	"github.com/lox/leher/internal/estimate"
	"github.com/lox/leher/internal/game"
	"github.com/lox/leher/internal/report"
)

// Estimators slower than linear are skipped above these rank counts.
const (
	enumerateLimit = 400
	quadraticLimit = 20_000
)

type CellCmd struct {
	P1 int `arg:"" name:"p1" help:"Highest rank player 1 exchanges"`
	P2 int `arg:"" name:"p2" help:"Highest rank player 2 exchanges"`

	AnalysisFlags `embed:""`
}

type cellResult struct {
	name  string
	value estimate.Scalar
}

func (c *CellCmd) Run(ctx context.Context, g *Globals, logger *log.Logger) error {
	a, err := c.Load()
	if err != nil {
		return err
	}
	cfg := a.GameConfig()
	th := game.Thresholds{P1: c.P1, P2: c.P2}
	if err := cfg.CheckThresholds(th); err != nil {
		return err
	}
	opts, err := a.ReportOptions()
	if err != nil {
		return err
	}

	results, err := compareEstimators(cfg, th, a.Estimator.Trials, a.Estimator.Seed, logger)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	profile, err := report.ColorProfile(g.Color, os.Stdout)
	if err != nil {
		return err
	}
	styles := report.NewStyles(os.Stdout, profile)

	fmt.Println(styles.Header.Render(fmt.Sprintf("%s deck, P1 keeps above %d, P2 keeps above %d", cfg, c.P1, c.P2)))
	exact := results[0].value.Float64()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Estimator\tValue\tFloat\tError")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%.6f\t%.2e\n",
			r.name, report.Format(r.value, opts), r.value.Float64(), math.Abs(r.value.Float64()-exact))
	}
	return w.Flush()
}

// compareEstimators evaluates th with every estimator cheap enough for cfg.
// The linear exact value always comes first.
func compareEstimators(cfg game.Config, th game.Thresholds, trials int, seed int64, logger *log.Logger) ([]cellResult, error) {
	formulas := []estimate.Formula{estimate.Linear}
	if cfg.Cards <= quadraticLimit {
		formulas = append(formulas, estimate.Quadratic)
	} else {
		logger.Debug("Skipping quadratic formula", "cards", cfg.Cards, "limit", quadraticLimit)
	}

	var results []cellResult
	for _, f := range formulas {
		est, err := estimate.NewExact(cfg, f)
		if err != nil {
			return nil, err
		}
		v, err := est.Estimate(th)
		if err != nil {
			return nil, err
		}
		results = append(results, cellResult{est.Name(), v})
	}

	if cfg.Cards <= enumerateLimit {
		est, err := estimate.NewEnumerate(cfg)
		if err != nil {
			return nil, err
		}
		v, err := est.Estimate(th)
		if err != nil {
			return nil, err
		}
		results = append(results, cellResult{est.Name(), v})
	} else {
		logger.Debug("Skipping enumeration", "cards", cfg.Cards, "limit", enumerateLimit)
	}

	mc, err := estimate.NewMonteCarlo(cfg, trials, seed)
	if err != nil {
		return nil, err
	}
	sampled, err := mc.Estimate(th)
	if err != nil {
		return nil, err
	}
	return append(results, cellResult{fmt.Sprintf("%s (%d deals)", mc.Name(), mc.Trials()), sampled}), nil
}
