package engine

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/leher/internal/estimate"
	"github.com/lox/leher/internal/game"
	"github.com/lox/leher/internal/rational"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

// tickingEstimator advances a mock clock once per cell.
type tickingEstimator struct {
	estimate.Estimator[rational.Rational]
	clock *quartz.Mock
	step  time.Duration
}

func (e tickingEstimator) Estimate(t game.Thresholds) (rational.Rational, error) {
	e.clock.Advance(e.step)
	return e.Estimator.Estimate(t)
}

func TestBuildStandardGame(t *testing.T) {
	cfg := game.DefaultConfig()
	est, err := estimate.NewExact(cfg, estimate.Linear)
	require.NoError(t, err)

	e, err := Build[rational.Rational](context.Background(), cfg, est, Options{Workers: 4, Logger: testLogger()})
	require.NoError(t, err)

	rows, cols := e.DominantStrategies()
	assert.Equal(t, []int{6, 7}, rows)
	assert.Equal(t, []int{7, 8}, cols)

	v, err := e.ValueAt(6, 8)
	require.NoError(t, err)
	assert.Equal(t, "218/425", v.Simplify().String())

	stats := e.Stats()
	assert.Equal(t, "exact/linear", stats.Estimator)
	assert.Equal(t, 196, stats.Cells)
	assert.Equal(t, 2, stats.Passes)
	assert.Equal(t, cfg, e.Config())
	assert.Equal(t, 14, e.Size())
}

func TestDominantStrategiesReturnsCopies(t *testing.T) {
	cfg := game.DefaultConfig()
	est, _ := estimate.NewExact(cfg, estimate.Linear)
	e, err := Build[rational.Rational](context.Background(), cfg, est, Options{})
	require.NoError(t, err)

	rows, cols := e.DominantStrategies()
	rows[0], cols[0] = 99, 99
	res := e.Result()
	res.Rows[1] = 99

	again, againCols := e.DominantStrategies()
	assert.Equal(t, []int{6, 7}, again)
	assert.Equal(t, []int{7, 8}, againCols)
}

func TestValueAtRejectsOutOfRange(t *testing.T) {
	cfg := game.Config{CardSets: 1, Cards: 3}
	est, _ := estimate.NewExact(cfg, estimate.Quadratic)
	e, err := Build[rational.Rational](context.Background(), cfg, est, Options{})
	require.NoError(t, err)

	for _, th := range [][2]int{{-1, 0}, {0, 4}, {4, 4}} {
		_, err := e.ValueAt(th[0], th[1])
		assert.ErrorIs(t, err, game.ErrInvalidConfig, "thresholds %v", th)
	}
}

func TestBuildRejectsMismatchedEstimator(t *testing.T) {
	est, _ := estimate.NewExact(game.Config{CardSets: 2, Cards: 5}, estimate.Linear)
	_, err := Build[rational.Rational](context.Background(), game.DefaultConfig(), est, Options{})
	assert.ErrorIs(t, err, game.ErrInvalidConfig)

	_, err = Build[rational.Rational](context.Background(), game.Config{CardSets: 1, Cards: 1}, est, Options{})
	assert.ErrorIs(t, err, game.ErrInvalidConfig)
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := game.DefaultConfig()
	est, _ := estimate.NewExact(cfg, estimate.Linear)
	_, err := Build[rational.Rational](ctx, cfg, est, Options{})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestStatsUseInjectedClock(t *testing.T) {
	mClock := quartz.NewMock(t)
	start := mClock.Now()

	cfg := game.Config{CardSets: 1, Cards: 3}
	inner, _ := estimate.NewExact(cfg, estimate.Linear)
	est := tickingEstimator{Estimator: inner, clock: mClock, step: time.Millisecond}

	e, err := Build[rational.Rational](context.Background(), cfg, est, Options{Workers: 1, Clock: mClock})
	require.NoError(t, err)

	stats := e.Stats()
	assert.True(t, stats.StartedAt.Equal(start))
	assert.Equal(t, 16*time.Millisecond, stats.Elapsed)
}

func TestSolveEveryKind(t *testing.T) {
	cfg := game.Config{CardSets: 2, Cards: 5}
	for _, m := range []Method{
		{Kind: KindExact, Formula: estimate.Quadratic},
		{Kind: KindEnumerate},
		{Kind: KindMonteCarlo, Trials: 50_000, Seed: 7},
	} {
		t.Run(string(m.Kind), func(t *testing.T) {
			v, err := Solve(context.Background(), cfg, m, Options{Logger: testLogger()})
			require.NoError(t, err)
			require.NotNil(t, v)
			assert.Equal(t, 6, v.Size())

			rows, cols := v.DominantStrategies()
			assert.NotEmpty(t, rows)
			assert.NotEmpty(t, cols)
			if m.Kind != KindMonteCarlo {
				assert.Equal(t, []int{2}, rows)
				assert.Equal(t, []int{2}, cols)
				assert.Equal(t, "4/9", v.Scalar(0, 0).(rational.Rational).Simplify().String())
			}
		})
	}
}

func TestSolveErrors(t *testing.T) {
	v, err := Solve(context.Background(), game.Config{CardSets: 1, Cards: 2}, Method{Kind: KindExact}, Options{})
	assert.ErrorIs(t, err, game.ErrInvalidConfig)
	assert.Nil(t, v)

	_, err = Solve(context.Background(), game.DefaultConfig(), Method{Kind: KindMonteCarlo, Trials: -1}, Options{})
	assert.ErrorIs(t, err, game.ErrInvalidConfig)

	_, err = Solve(context.Background(), game.DefaultConfig(), Method{Kind: "guess"}, Options{})
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"": KindExact, "Exact": KindExact, "enumerate": KindEnumerate, " montecarlo": KindMonteCarlo} {
		got, err := ParseKind(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseKind("bayes")
	assert.Error(t, err)
}
