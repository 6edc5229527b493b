// Package matrix holds player 1's win probability for every pair of thresholds.
package matrix

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/leher/internal/estimate"
	"github.com/lox/leher/internal/game"
)

// Options controls how a matrix is built.
type Options struct {
	// Workers caps the number of cells computed concurrently. Zero uses the
	// number of CPUs, capped at 8.
	Workers int
	Logger  *log.Logger
}

// Matrix is a read-only square grid indexed [p1 threshold][p2 threshold].
type Matrix[V estimate.Value[V]] struct {
	size  int
	cells []V
}

// Build runs the estimator once per cell. Cells are independent and are
// computed concurrently, one task per row.
func Build[V estimate.Value[V]](ctx context.Context, est estimate.Estimator[V], opts Options) (*Matrix[V], error) {
	cfg := est.Config()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = min(runtime.NumCPU(), 8)
	}

	size := cfg.Strategies()
	m := &Matrix[V]{size: size, cells: make([]V, size*size)}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for row := 0; row < size; row++ {
		g.Go(func() error {
			for col := 0; col < size; col++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				v, err := est.Estimate(game.Thresholds{P1: row, P2: col})
				if err != nil {
					return fmt.Errorf("cell (%d,%d): %w", row, col, err)
				}
				m.cells[row*size+col] = v
			}
			logger.Debug("row complete", "estimator", est.Name(), "row", row)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

// FromRows builds a matrix from explicit values. Every row must have len(rows)
// entries.
func FromRows[V estimate.Value[V]](rows [][]V) (*Matrix[V], error) {
	size := len(rows)
	if size == 0 {
		return nil, errors.New("matrix needs at least one row")
	}
	m := &Matrix[V]{size: size, cells: make([]V, 0, size*size)}
	for i, r := range rows {
		if len(r) != size {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(r), size)
		}
		m.cells = append(m.cells, r...)
	}
	return m, nil
}

// Size returns the number of thresholds per player.
func (m *Matrix[V]) Size() int { return m.size }

// Rows returns the number of player 1 strategies.
func (m *Matrix[V]) Rows() int { return m.size }

// Cols returns the number of player 2 strategies.
func (m *Matrix[V]) Cols() int { return m.size }

// At returns the value for thresholds (p1, p2). It panics when either index
// is out of range.
func (m *Matrix[V]) At(p1, p2 int) V {
	if p1 < 0 || p1 >= m.size || p2 < 0 || p2 >= m.size {
		panic(fmt.Sprintf("matrix: index (%d,%d) out of range [0,%d)", p1, p2, m.size))
	}
	return m.cells[p1*m.size+p2]
}

// Sub returns the values at the given rows and columns, in the order given.
func (m *Matrix[V]) Sub(rows, cols []int) [][]V {
	out := make([][]V, len(rows))
	for i, r := range rows {
		out[i] = make([]V, len(cols))
		for j, c := range cols {
			out[i][j] = m.At(r, c)
		}
	}
	return out
}

// Scalar returns At(p1, p2) for code that does not care about the value type.
func (m *Matrix[V]) Scalar(p1, p2 int) estimate.Scalar {
	return m.At(p1, p2)
}

// Compare orders cell (r1, c1) against cell (r2, c2).
func (m *Matrix[V]) Compare(r1, c1, r2, c2 int) int {
	return m.At(r1, c1).Compare(m.At(r2, c2))
}

// Equal reports whether both matrices hold the same values.
func (m *Matrix[V]) Equal(o *Matrix[V]) bool {
	if m.size != o.size {
		return false
	}
	for i := range m.cells {
		if m.cells[i].Compare(o.cells[i]) != 0 {
			return false
		}
	}
	return true
}
