// Package config loads analysis settings from HCL files.
//
// A file can hold three optional blocks:
//
//	game {
//	  cards     = 13
//	  card_sets = 4
//	}
//
//	estimator {
//	  kind    = "montecarlo"
//	  formula = "linear"
//	  trials  = 100000
//	  seed    = 7
//	  workers = 4
//	}
//
//	output {
//	  formats   = ["json", "text"]
//	  display   = "decimal"
//	  directory = "out"
//	}
//
// Missing blocks, and attributes that are missing or zero, take the values of
// Default.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/leher/internal/engine"
	"github.com/lox/leher/internal/estimate"
	"github.com/lox/leher/internal/export"
	"github.com/lox/leher/internal/game"
	"github.com/lox/leher/internal/report"
)

// Analysis is the complete analysis configuration.
type Analysis struct {
	Game      *GameSettings      `hcl:"game,block"`
	Estimator *EstimatorSettings `hcl:"estimator,block"`
	Output    *OutputSettings    `hcl:"output,block"`
}

// GameSettings describes the deck.
type GameSettings struct {
	Cards    int `hcl:"cards,optional"`
	CardSets int `hcl:"card_sets,optional"`
}

// EstimatorSettings selects how cells are computed.
type EstimatorSettings struct {
	Kind    string `hcl:"kind,optional"`
	Formula string `hcl:"formula,optional"`
	Trials  int    `hcl:"trials,optional"`
	Seed    int64  `hcl:"seed,optional"`
	Workers int    `hcl:"workers,optional"`
}

// OutputSettings controls rendering and export.
type OutputSettings struct {
	Formats   []string `hcl:"formats,optional"`
	Display   string   `hcl:"display,optional"`
	Directory string   `hcl:"directory,optional"`
}

// Default returns the standard deck solved exactly, rendered as fractions.
func Default() *Analysis {
	cfg := game.DefaultConfig()
	return &Analysis{
		Game: &GameSettings{Cards: cfg.Cards, CardSets: cfg.CardSets},
		Estimator: &EstimatorSettings{
			Kind:    string(engine.KindExact),
			Formula: estimate.Linear.String(),
			Trials:  estimate.DefaultTrials,
			Seed:    1,
		},
		Output: &OutputSettings{
			Formats:   formatNames(export.Formats),
			Display:   string(report.Fraction),
			Directory: ".",
		},
	}
}

// Load reads filename. A missing file yields Default.
func Load(filename string) (*Analysis, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse decodes src as HCL; filename is used in diagnostics.
func Parse(src []byte, filename string) (*Analysis, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Analysis, error) {
	var a Analysis
	if diags := gohcl.DecodeBody(file.Body, nil, &a); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	a.applyDefaults()
	return &a, nil
}

func (a *Analysis) applyDefaults() {
	def := Default()
	if a.Game == nil {
		a.Game = def.Game
	}
	if a.Game.Cards == 0 {
		a.Game.Cards = def.Game.Cards
	}
	if a.Game.CardSets == 0 {
		a.Game.CardSets = def.Game.CardSets
	}

	if a.Estimator == nil {
		a.Estimator = def.Estimator
	}
	if a.Estimator.Kind == "" {
		a.Estimator.Kind = def.Estimator.Kind
	}
	if a.Estimator.Formula == "" {
		a.Estimator.Formula = def.Estimator.Formula
	}
	if a.Estimator.Trials == 0 {
		a.Estimator.Trials = def.Estimator.Trials
	}
	if a.Estimator.Seed == 0 {
		a.Estimator.Seed = def.Estimator.Seed
	}

	if a.Output == nil {
		a.Output = def.Output
	}
	if len(a.Output.Formats) == 0 {
		a.Output.Formats = def.Output.Formats
	}
	if a.Output.Display == "" {
		a.Output.Display = def.Output.Display
	}
	if a.Output.Directory == "" {
		a.Output.Directory = def.Output.Directory
	}
}

// Validate checks every setting.
func (a *Analysis) Validate() error {
	if err := a.GameConfig().Validate(); err != nil {
		return err
	}
	if _, err := a.Method(); err != nil {
		return err
	}
	if a.Estimator.Trials <= 0 {
		return fmt.Errorf("%w: trials must be positive, got %d", game.ErrInvalidConfig, a.Estimator.Trials)
	}
	if a.Estimator.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", a.Estimator.Workers)
	}
	if _, err := a.ReportOptions(); err != nil {
		return err
	}
	if _, err := a.Formats(); err != nil {
		return err
	}
	return nil
}

// GameConfig returns the deck settings.
func (a *Analysis) GameConfig() game.Config {
	return game.Config{CardSets: a.Game.CardSets, Cards: a.Game.Cards}
}

// Method returns the estimator settings.
func (a *Analysis) Method() (engine.Method, error) {
	kind, err := engine.ParseKind(a.Estimator.Kind)
	if err != nil {
		return engine.Method{}, err
	}
	formula, err := estimate.ParseFormula(a.Estimator.Formula)
	if err != nil {
		return engine.Method{}, err
	}
	return engine.Method{
		Kind:    kind,
		Formula: formula,
		Trials:  a.Estimator.Trials,
		Seed:    a.Estimator.Seed,
	}, nil
}

// ReportOptions returns the display settings.
func (a *Analysis) ReportOptions() (report.Options, error) {
	d, err := report.ParseDisplay(a.Output.Display)
	if err != nil {
		return report.Options{}, err
	}
	return report.Options{Display: d}, nil
}

// Formats returns the export formats.
func (a *Analysis) Formats() ([]export.Format, error) {
	out := make([]export.Format, 0, len(a.Output.Formats))
	for _, s := range a.Output.Formats {
		f, err := export.ParseFormat(s)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func formatNames(fs []export.Format) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = string(f)
	}
	return out
}
