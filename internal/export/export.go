// Package export writes analysis results to files: JSON and YAML documents
// for other tools, and the readable and spreadsheet text layouts.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/lox/leher/internal/engine"
	"github.com/lox/leher/internal/estimate"
	"github.com/lox/leher/internal/fileutil"
	"github.com/lox/leher/internal/game"
	"github.com/lox/leher/internal/rational"
	"github.com/lox/leher/internal/report"
)

const documentVersion = 1

// Format is an output file format.
type Format string

const (
	JSON  Format = "json"
	YAML  Format = "yaml"
	Text  Format = "text"
	Excel Format = "excel"
)

// Formats lists every format in the order they are written.
var Formats = []Format{JSON, YAML, Text, Excel}

// ParseFormat maps a format name onto a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case JSON, YAML, Text, Excel:
		return f, nil
	case "yml":
		return YAML, nil
	case "txt":
		return Text, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json, yaml, text or excel)", s)
	}
}

// FileName returns the file a format is written to for cfg.
func FileName(cfg game.Config, f Format) string {
	suffix := fmt.Sprintf("_%dcards%dcardSets", cfg.Cards, cfg.CardSets)
	switch f {
	case Text:
		return "LeHerMatrixReadable" + suffix + ".txt"
	case Excel:
		return "LeHerMatrix" + suffix + ".txt"
	default:
		return "LeHerMatrix" + suffix + "." + string(f)
	}
}

// Cell is one matrix value.
type Cell struct {
	Value string  `json:"value" yaml:"value"`
	Float float64 `json:"float" yaml:"float"`
}

// Strategies lists the thresholds that survived elimination.
type Strategies struct {
	P1 []int `json:"p1" yaml:"p1"`
	P2 []int `json:"p2" yaml:"p2"`
}

// Document is the machine readable form of a run.
type Document struct {
	Version        int         `json:"version" yaml:"version"`
	RunID          string      `json:"run_id" yaml:"run_id"`
	GeneratedAt    time.Time   `json:"generated_at" yaml:"generated_at"`
	Config         game.Config `json:"config" yaml:"config"`
	Estimator      string      `json:"estimator" yaml:"estimator"`
	ElapsedSeconds float64     `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	Cells          [][]Cell    `json:"cells" yaml:"cells"`
	Strategies     Strategies  `json:"strategies" yaml:"strategies"`
	Passes         int         `json:"passes" yaml:"passes"`
}

// NewDocument captures v under a fresh run id, stamped with clock.
func NewDocument(v engine.View, clock quartz.Clock) *Document {
	if clock == nil {
		clock = quartz.NewReal()
	}
	res := v.Result()
	stats := v.Stats()

	cells := make([][]Cell, v.Size())
	for p1 := range cells {
		cells[p1] = make([]Cell, v.Size())
		for p2 := range cells[p1] {
			s := v.Scalar(p1, p2)
			cells[p1][p2] = Cell{Value: cellValue(s), Float: s.Float64()}
		}
	}

	return &Document{
		Version:        documentVersion,
		RunID:          uuid.New().String(),
		GeneratedAt:    clock.Now().UTC(),
		Config:         v.Config(),
		Estimator:      stats.Estimator,
		ElapsedSeconds: stats.Elapsed.Seconds(),
		Cells:          cells,
		Strategies:     Strategies{P1: res.Rows, P2: res.Cols},
		Passes:         res.Passes,
	}
}

func cellValue(s estimate.Scalar) string {
	if r, ok := s.(rational.Rational); ok {
		return r.Simplify().String()
	}
	return s.String()
}

// Write renders v in format f. doc is used by the JSON and YAML formats and
// opts by the text layouts.
func Write(w io.Writer, f Format, doc *Document, v engine.View, opts report.Options) error {
	rows, cols := v.DominantStrategies()
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case Excel:
		return report.WriteExcelReport(w, v, rows, cols, opts)
	case Text:
		if err := report.WriteExcelReport(w, v, rows, cols, opts); err != nil {
			return err
		}
		fmt.Fprintln(w)
		return report.WriteReport(w, v, rows, cols, opts)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// Options controls WriteFiles.
type Options struct {
	Dir     string
	Formats []Format
	Report  report.Options
	Clock   quartz.Clock
}

// WriteFiles writes one file per format into opts.Dir and returns their
// paths. Every file of one call shares a run id.
func WriteFiles(v engine.View, opts Options) ([]string, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	if err := fileutil.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	formats := opts.Formats
	if len(formats) == 0 {
		formats = Formats
	}

	doc := NewDocument(v, opts.Clock)
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := filepath.Join(dir, FileName(v.Config(), f))
		err := fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
			return Write(w, f, doc, v, opts.Report)
		})
		if err != nil {
			return paths, fmt.Errorf("write %s: %w", f, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
