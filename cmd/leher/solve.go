package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/leher/internal/report"
)

type SolveCmd struct {
	AnalysisFlags `embed:""`

	Styled bool `help:"Render the full matrix as a styled table"`
	Excel  bool `help:"Print the space separated layout instead of the readable one"`
}

func (c *SolveCmd) Run(ctx context.Context, g *Globals, logger *log.Logger) error {
	v, a, err := c.solve(ctx, logger)
	if err != nil {
		return err
	}
	opts, err := a.ReportOptions()
	if err != nil {
		return err
	}
	rows, cols := v.DominantStrategies()

	switch {
	case c.Styled:
		profile, err := report.ColorProfile(g.Color, os.Stdout)
		if err != nil {
			return err
		}
		fmt.Println(report.Styled(v, rows, cols, opts, report.NewStyles(os.Stdout, profile)))
		return report.WriteStrategies(os.Stdout, rows, cols)
	case c.Excel:
		return report.WriteExcelReport(os.Stdout, v, rows, cols, opts)
	default:
		return report.WriteReport(os.Stdout, v, rows, cols, opts)
	}
}
