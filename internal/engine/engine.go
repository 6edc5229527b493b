// Package engine builds the probability matrix for a game, runs dominance
// elimination over it and answers queries about the result.
package engine

import (
	"context"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/leher/internal/dominance"
	"github.com/lox/leher/internal/estimate"
	"github.com/lox/leher/internal/game"
	"github.com/lox/leher/internal/matrix"
)

// Options controls a build. Zero values are usable.
type Options struct {
	Workers int
	Logger  *log.Logger
	Clock   quartz.Clock
}

// Stats describes how a build went.
type Stats struct {
	Estimator string        `json:"estimator" yaml:"estimator"`
	Cells     int           `json:"cells" yaml:"cells"`
	Passes    int           `json:"passes" yaml:"passes"`
	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Elapsed   time.Duration `json:"elapsed" yaml:"elapsed"`
}

// View is the part of an engine that does not depend on the value type.
type View interface {
	Config() game.Config
	Size() int
	Scalar(p1, p2 int) estimate.Scalar
	DominantStrategies() (rows, cols []int)
	Result() dominance.Result
	Stats() Stats
}

// Engine holds a built matrix and its surviving strategies. It is read-only
// after Build returns and safe for concurrent use.
type Engine[V estimate.Value[V]] struct {
	cfg    game.Config
	matrix *matrix.Matrix[V]
	result dominance.Result
	stats  Stats
}

var _ View = (*Engine[estimate.Probability])(nil)

// Build validates cfg, fills the matrix with est and eliminates dominated
// strategies.
func Build[V estimate.Value[V]](ctx context.Context, cfg game.Config, est estimate.Estimator[V], opts Options) (*Engine[V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if est.Config() != cfg {
		return nil, fmt.Errorf("%w: estimator %s is for %s, not %s", game.ErrInvalidConfig, est.Name(), est.Config(), cfg)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := opts.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	start := clock.Now()
	logger.Debug("building matrix", "config", cfg, "estimator", est.Name(), "workers", opts.Workers)

	m, err := matrix.Build[V](ctx, est, matrix.Options{Workers: opts.Workers, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("build matrix: %w", err)
	}
	res := dominance.Eliminate(m)

	e := &Engine[V]{
		cfg:    cfg,
		matrix: m,
		result: res,
		stats: Stats{
			Estimator: est.Name(),
			Cells:     m.Rows() * m.Cols(),
			Passes:    res.Passes,
			StartedAt: start,
			Elapsed:   clock.Since(start),
		},
	}
	logger.Debug("elimination complete",
		"rows", res.Rows,
		"cols", res.Cols,
		"passes", res.Passes,
		"elapsed", e.stats.Elapsed)
	return e, nil
}

// ValueAt returns player 1's win probability for thresholds (p1, p2).
func (e *Engine[V]) ValueAt(p1, p2 int) (V, error) {
	if err := e.cfg.CheckThresholds(game.Thresholds{P1: p1, P2: p2}); err != nil {
		var zero V
		return zero, err
	}
	return e.matrix.At(p1, p2), nil
}

// DominantStrategies returns copies of the surviving thresholds for player 1
// and player 2.
func (e *Engine[V]) DominantStrategies() (rows, cols []int) {
	return slices.Clone(e.result.Rows), slices.Clone(e.result.Cols)
}

// Result returns a copy of the elimination result.
func (e *Engine[V]) Result() dominance.Result {
	return dominance.Result{
		Rows:   slices.Clone(e.result.Rows),
		Cols:   slices.Clone(e.result.Cols),
		Passes: e.result.Passes,
	}
}

// Matrix returns the built matrix.
func (e *Engine[V]) Matrix() *matrix.Matrix[V] { return e.matrix }

// Config returns the deck the engine was built for.
func (e *Engine[V]) Config() game.Config { return e.cfg }

// Stats returns build metadata.
func (e *Engine[V]) Stats() Stats { return e.stats }

// Size returns the number of thresholds per player.
func (e *Engine[V]) Size() int { return e.matrix.Size() }

// Scalar returns cell (p1, p2) without its value type.
func (e *Engine[V]) Scalar(p1, p2 int) estimate.Scalar { return e.matrix.Scalar(p1, p2) }
