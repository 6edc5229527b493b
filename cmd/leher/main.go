// Command leher analyzes the card-exchange game LeHer: it builds player 1's
// win probability for every pair of exchange thresholds and removes strictly
// dominated strategies.
package main

import (
	"context"
	"os"

	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Debug     bool   `help:"Enable debug logging" env:"LEHER_DEBUG"`
	LogFormat string `help:"Log format (text, json)" enum:"text,json" default:"text" env:"LEHER_LOG_FORMAT"`
	Color     string `help:"Colorize output (auto, always, never)" enum:"auto,always,never" default:"auto" env:"LEHER_COLOR"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Solve    SolveCmd         `cmd:"" help:"Build the matrix and print it with the surviving strategies"`
	Cell     CellCmd          `cmd:"" help:"Compare every estimator on one threshold pair"`
	Export   ExportCmd        `cmd:"" help:"Write the analysis to JSON, YAML and text files"`
	Converge ConvergeCmd      `cmd:"" help:"Measure Monte Carlo error against the exact value"`
	View     ViewCmd          `cmd:"" help:"Browse the matrix interactively"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("leher"),
		kong.Description("Strategy analysis for the card-exchange game LeHer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	logger := newLogger(&cli.Globals, os.Stderr)
	ctx, stop := signalContext(logger)
	defer stop()

	kctx.BindTo(ctx, (*context.Context)(nil))
	err := kctx.Run(&cli.Globals, logger)
	if err != nil {
		logger.Error("command failed", "command", kctx.Command(), "error", err)
		stop()
		os.Exit(1)
	}
}
