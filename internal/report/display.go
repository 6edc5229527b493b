// Package report renders probability matrices and surviving strategies as
// text: a readable table, a space separated layout that spreadsheets import
// cleanly, and a styled terminal table.
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lox/leher/internal/estimate"
	"github.com/lox/leher/internal/rational"
)

// DefaultPlaces is the number of decimal places used when Options.Places is
// zero.
const DefaultPlaces = 4

// Display selects how a cell value is written.
type Display string

const (
	// Fraction writes exact values in lowest terms and sampled values as
	// decimals.
	Fraction Display = "fraction"
	// Decimal writes every value rounded to a fixed number of places.
	Decimal Display = "decimal"
	// Edge writes player 1's advantage 2p-1, exactly when the value is exact.
	Edge Display = "edge"
)

// Displays lists every display mode.
var Displays = []Display{Fraction, Decimal, Edge}

// ParseDisplay maps a display name onto a Display.
func ParseDisplay(s string) (Display, error) {
	d := Display(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case "":
		return Fraction, nil
	case Fraction, Decimal, Edge:
		return d, nil
	default:
		return "", fmt.Errorf("unknown display %q (want fraction, decimal or edge)", s)
	}
}

// Next cycles through the display modes. The empty display formats as
// Fraction and cycles like it.
func (d Display) Next() Display {
	switch d {
	case Fraction, "":
		return Decimal
	case Decimal:
		return Edge
	default:
		return Fraction
	}
}

// Options controls value formatting.
type Options struct {
	Display Display
	Places  int
}

func (o Options) places() int32 {
	if o.Places <= 0 {
		return DefaultPlaces
	}
	return int32(o.Places)
}

// Format renders one cell value.
func Format(v estimate.Scalar, opts Options) string {
	places := opts.places()
	if r, ok := v.(rational.Rational); ok {
		switch opts.Display {
		case Decimal:
			return ratio(r, places)
		case Edge:
			return r.Scale(2).Sub(rational.FromInt(1)).Simplify().String()
		default:
			return r.Simplify().String()
		}
	}

	d := decimal.NewFromFloat(v.Float64())
	if opts.Display == Edge {
		d = d.Mul(decimal.NewFromInt(2)).Sub(decimal.NewFromInt(1))
	}
	return d.StringFixed(places)
}

func ratio(r rational.Rational, places int32) string {
	num := decimal.NewFromInt(r.Num())
	den := decimal.NewFromInt(r.Den())
	return num.DivRound(den, places).StringFixed(places)
}
