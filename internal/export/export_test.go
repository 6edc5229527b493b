package export

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/lox/leher/internal/engine"
	"github.com/lox/leher/internal/estimate"
	"github.com/lox/leher/internal/game"
	"github.com/lox/leher/internal/report"
)

func solve(t *testing.T, cfg game.Config, m engine.Method) engine.View {
	t.Helper()
	v, err := engine.Solve(context.Background(), cfg, m, engine.Options{Workers: 2})
	require.NoError(t, err)
	return v
}

func TestFileName(t *testing.T) {
	cfg := game.DefaultConfig()
	assert.Equal(t, "LeHerMatrix_13cards4cardSets.json", FileName(cfg, JSON))
	assert.Equal(t, "LeHerMatrix_13cards4cardSets.yaml", FileName(cfg, YAML))
	assert.Equal(t, "LeHerMatrix_13cards4cardSets.txt", FileName(cfg, Excel))
	assert.Equal(t, "LeHerMatrixReadable_13cards4cardSets.txt", FileName(cfg, Text))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": JSON, "YAML": YAML, "yml": YAML, "txt": Text, "excel": Excel} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestNewDocument(t *testing.T) {
	mClock := quartz.NewMock(t)
	v := solve(t, game.DefaultConfig(), engine.Method{Kind: engine.KindExact})

	doc := NewDocument(v, mClock)
	_, err := uuid.Parse(doc.RunID)
	require.NoError(t, err)
	assert.True(t, doc.GeneratedAt.Equal(mClock.Now()))
	assert.Equal(t, "exact/linear", doc.Estimator)
	assert.Equal(t, []int{6, 7}, doc.Strategies.P1)
	assert.Equal(t, []int{7, 8}, doc.Strategies.P2)
	assert.Equal(t, 2, doc.Passes)
	require.Len(t, doc.Cells, 14)
	assert.Equal(t, "8/17", doc.Cells[0][0].Value)
	assert.InDelta(t, 8.0/17, doc.Cells[0][0].Float, 1e-12)

	other := NewDocument(v, mClock)
	assert.NotEqual(t, doc.RunID, other.RunID)
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	mClock := quartz.NewMock(t)
	v := solve(t, game.DefaultConfig(), engine.Method{Kind: engine.KindExact})

	paths, err := WriteFiles(v, Options{Dir: dir, Clock: mClock, Report: report.Options{Display: report.Fraction}})
	require.NoError(t, err)
	require.Len(t, paths, len(Formats))

	raw, err := os.ReadFile(filepath.Join(dir, "LeHerMatrix_13cards4cardSets.json"))
	require.NoError(t, err)
	var fromJSON Document
	require.NoError(t, json.Unmarshal(raw, &fromJSON))

	raw, err = os.ReadFile(filepath.Join(dir, "LeHerMatrix_13cards4cardSets.yaml"))
	require.NoError(t, err)
	var fromYAML Document
	require.NoError(t, yaml.Unmarshal(raw, &fromYAML))

	assert.Equal(t, fromJSON.RunID, fromYAML.RunID, "one run id per call")
	assert.Equal(t, game.DefaultConfig(), fromYAML.Config)
	assert.Equal(t, []int{6, 7}, fromYAML.Strategies.P1)
	assert.Equal(t, "2828/5525", fromYAML.Cells[6][7].Value)
	assert.True(t, fromJSON.GeneratedAt.Equal(mClock.Now()))

	excel, err := os.ReadFile(filepath.Join(dir, "LeHerMatrix_13cards4cardSets.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(excel), " 0 1 2 3 4 5 6 7 8 9 10 11 12 13 "+report.P2ExcelCaption+"\n0 8/17 "))
	assert.True(t, strings.HasSuffix(string(excel), " 7 8 "+report.P2ExcelCaption+"\n6 2828/5525 218/425\n7 2838/5525 2828/5525\n"+report.P1ExcelCaption+"\n"))

	text, err := os.ReadFile(filepath.Join(dir, "LeHerMatrixReadable_13cards4cardSets.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(text), report.P2Caption)
	assert.Contains(t, string(text), report.P2ExcelCaption)
	assert.True(t, strings.HasSuffix(string(text), "P1 Dominant Strategies: 6 7\nP2 Dominant Strategies: 7 8\n"))
}

func TestWriteSampledValues(t *testing.T) {
	cfg := game.Config{CardSets: 1, Cards: 4}
	v := solve(t, cfg, engine.Method{Kind: engine.KindMonteCarlo, Trials: 1000, Seed: 1})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, NewDocument(v, nil), v, report.Options{}))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "montecarlo", doc.Estimator)
	for _, row := range doc.Cells {
		for _, c := range row {
			assert.Equal(t, estimate.Probability(c.Float).String(), c.Value)
		}
	}
}

func TestWriteFilesSubset(t *testing.T) {
	dir := t.TempDir()
	v := solve(t, game.Config{CardSets: 1, Cards: 3}, engine.Method{Kind: engine.KindEnumerate})

	paths, err := WriteFiles(v, Options{Dir: dir, Formats: []Format{Excel}})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "LeHerMatrix_3cards1cardSets.txt")}, paths)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
