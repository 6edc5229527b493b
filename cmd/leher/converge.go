package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/log"

	"github.com/lox/leher/internal/convergence"
	"github.com/lox/leher/internal/game"
	"github.com/lox/leher/internal/report"
)

type ConvergeCmd struct {
	P1 int `arg:"" name:"p1" help:"Highest rank player 1 exchanges"`
	P2 int `arg:"" name:"p2" help:"Highest rank player 2 exchanges"`

	AnalysisFlags `embed:""`

	Repeats int   `help:"Independent runs per trial count" default:"10"`
	Levels  []int `help:"Trial counts to study" default:"1000,10000,100000,1000000" sep:","`
}

func (c *ConvergeCmd) Run(ctx context.Context, g *Globals, logger *log.Logger) error {
	a, err := c.Load()
	if err != nil {
		return err
	}

	rep, err := convergence.Run(ctx, convergence.Config{
		Game:        a.GameConfig(),
		Thresholds:  game.Thresholds{P1: c.P1, P2: c.P2},
		TrialCounts: c.Levels,
		Repeats:     c.Repeats,
		Seed:        a.Estimator.Seed,
		Workers:     a.Estimator.Workers,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	profile, err := report.ColorProfile(g.Color, os.Stdout)
	if err != nil {
		return err
	}
	styles := report.NewStyles(os.Stdout, profile)
	fmt.Println(styles.Header.Render(fmt.Sprintf("%s deck, cell (%d,%d), exact %s = %.6f, %d runs per level",
		rep.Game, c.P1, c.P2, rep.Exact.Simplify(), rep.Exact.Float64(), rep.Repeats)))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Trials\tMean\tMean error\tMedian error\tMax error\tStd error")
	for _, l := range rep.Levels {
		fmt.Fprintf(w, "%d\t%.6f\t%.2e\t%.2e\t%.2e\t%.2e\n",
			l.Trials, l.MeanEstimate, l.MeanError, l.MedianError, l.MaxError, l.StdError)
	}
	return w.Flush()
}
