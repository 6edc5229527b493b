package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/lox/leher/internal/estimate"
	"github.com/lox/leher/internal/game"
	"github.com/lox/leher/internal/rational"
)

// Kind names an estimator.
type Kind string

const (
	KindExact      Kind = "exact"
	KindEnumerate  Kind = "enumerate"
	KindMonteCarlo Kind = "montecarlo"
)

// Kinds lists every estimator kind.
var Kinds = []Kind{KindExact, KindEnumerate, KindMonteCarlo}

// ParseKind maps an estimator name onto a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case "":
		return KindExact, nil
	case KindExact, KindEnumerate, KindMonteCarlo:
		return k, nil
	default:
		return "", fmt.Errorf("unknown estimator %q", s)
	}
}

// Method selects an estimator and its parameters. Formula applies to exact
// only; Trials and Seed to montecarlo only.
type Method struct {
	Kind    Kind
	Formula estimate.Formula
	Trials  int
	Seed    int64
}

// Solve builds an engine with the estimator described by m.
func Solve(ctx context.Context, cfg game.Config, m Method, opts Options) (View, error) {
	switch m.Kind {
	case KindExact, "":
		est, err := estimate.NewExact(cfg, m.Formula)
		if err != nil {
			return nil, err
		}
		return asView[rational.Rational](Build[rational.Rational](ctx, cfg, est, opts))
	case KindEnumerate:
		est, err := estimate.NewEnumerate(cfg)
		if err != nil {
			return nil, err
		}
		return asView[rational.Rational](Build[rational.Rational](ctx, cfg, est, opts))
	case KindMonteCarlo:
		trials := m.Trials
		if trials == 0 {
			trials = estimate.DefaultTrials
		}
		est, err := estimate.NewMonteCarlo(cfg, trials, m.Seed)
		if err != nil {
			return nil, err
		}
		return asView[estimate.Probability](Build[estimate.Probability](ctx, cfg, est, opts))
	default:
		return nil, fmt.Errorf("unknown estimator %q", m.Kind)
	}
}

func asView[V estimate.Value[V]](e *Engine[V], err error) (View, error) {
	if err != nil {
		return nil, err
	}
	return e, nil
}
