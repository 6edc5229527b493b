package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/leher/internal/engine"
	"github.com/lox/leher/internal/estimate"
	"github.com/lox/leher/internal/export"
	"github.com/lox/leher/internal/game"
	"github.com/lox/leher/internal/report"
)

func TestDefaultIsValid(t *testing.T) {
	a := Default()
	require.NoError(t, a.Validate())
	assert.Equal(t, game.DefaultConfig(), a.GameConfig())

	m, err := a.Method()
	require.NoError(t, err)
	assert.Equal(t, engine.KindExact, m.Kind)
	assert.Equal(t, estimate.Linear, m.Formula)

	formats, err := a.Formats()
	require.NoError(t, err)
	assert.Equal(t, export.Formats, formats)
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	a, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), a)

	a, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), a)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leher.hcl")
	src := `
game {
  cards     = 10
  card_sets = 3
}

estimator {
  kind    = "montecarlo"
  trials  = 5000
  seed    = 7
  workers = 2
}

output {
  formats   = ["json", "excel"]
  display   = "edge"
  directory = "results"
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	a, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, a.Validate())

	assert.Equal(t, game.Config{CardSets: 3, Cards: 10}, a.GameConfig())
	m, err := a.Method()
	require.NoError(t, err)
	assert.Equal(t, engine.Method{Kind: engine.KindMonteCarlo, Formula: estimate.Linear, Trials: 5000, Seed: 7}, m)
	assert.Equal(t, 2, a.Estimator.Workers)

	opts, err := a.ReportOptions()
	require.NoError(t, err)
	assert.Equal(t, report.Edge, opts.Display)

	formats, err := a.Formats()
	require.NoError(t, err)
	assert.Equal(t, []export.Format{export.JSON, export.Excel}, formats)
	assert.Equal(t, "results", a.Output.Directory)
}

func TestParseAppliesDefaults(t *testing.T) {
	a, err := Parse([]byte(`game { cards = 6 }`), "partial.hcl")
	require.NoError(t, err)

	assert.Equal(t, game.Config{CardSets: 4, Cards: 6}, a.GameConfig())
	assert.Equal(t, "exact", a.Estimator.Kind)
	assert.Equal(t, estimate.DefaultTrials, a.Estimator.Trials)
	assert.Equal(t, "fraction", a.Output.Display)
	assert.Equal(t, ".", a.Output.Directory)
	assert.Len(t, a.Output.Formats, len(export.Formats))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`game {`), "broken.hcl")
	assert.Error(t, err)

	_, err = Parse([]byte(`game { decks = 2 }`), "unknown.hcl")
	assert.Error(t, err, "unknown attributes are rejected")

	_, err = Parse([]byte(`game { cards = "many" }`), "type.hcl")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"tiny deck", `game {
  cards     = 1
  card_sets = 1
}`},
		{"unknown estimator", `estimator { kind = "oracle" }`},
		{"unknown formula", `estimator { formula = "cubic" }`},
		{"negative trials", `estimator { trials = -3 }`},
		{"negative workers", `estimator { workers = -1 }`},
		{"unknown display", `output { display = "percent" }`},
		{"unknown format", `output { formats = ["csv"] }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse([]byte(tt.src), tt.name+".hcl")
			require.NoError(t, err)
			assert.Error(t, a.Validate())
		})
	}
}
