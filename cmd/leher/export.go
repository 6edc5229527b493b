package main

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/leher/internal/export"
)

type ExportCmd struct {
	AnalysisFlags `embed:""`

	Dir    string   `help:"Output directory (overrides the config file)" type:"path"`
	Format []string `help:"Formats to write (json, yaml, text, excel)" sep:","`
}

func (c *ExportCmd) Run(ctx context.Context, logger *log.Logger) error {
	v, a, err := c.solve(ctx, logger)
	if err != nil {
		return err
	}
	if c.Dir != "" {
		a.Output.Directory = c.Dir
	}
	if len(c.Format) > 0 {
		a.Output.Formats = c.Format
	}

	formats, err := a.Formats()
	if err != nil {
		return err
	}
	opts, err := a.ReportOptions()
	if err != nil {
		return err
	}

	paths, err := export.WriteFiles(v, export.Options{
		Dir:     a.Output.Directory,
		Formats: formats,
		Report:  opts,
	})
	for _, p := range paths {
		logger.Info("Wrote", "path", p)
	}
	return err
}
