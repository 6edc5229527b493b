package main

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/leher/internal/tui"
)

type ViewCmd struct {
	AnalysisFlags `embed:""`
}

func (c *ViewCmd) Run(ctx context.Context, logger *log.Logger) error {
	v, a, err := c.solve(ctx, logger)
	if err != nil {
		return err
	}
	opts, err := a.ReportOptions()
	if err != nil {
		return err
	}
	return tui.Run(v, opts, logger)
}
