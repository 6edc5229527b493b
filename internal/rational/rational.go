// Package rational provides an exact fraction type for win probabilities.
//
// Dominance decisions compare matrix cells, so values are ordered by exact
// cross-multiplication. Products are taken at 128 bits so no pair of int64
// fractions can overflow during a comparison.
package rational

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

// ErrDivisionByZero is returned when a fraction is built with a zero denominator.
var ErrDivisionByZero = errors.New("rational: zero denominator")

// Rational is an immutable fraction with a positive denominator. The zero
// value is 0/1.
type Rational struct {
	num int64
	den int64 // stored minus one so the zero value is valid
}

// New builds num/den, folding the sign into the numerator.
func New(num, den int64) (Rational, error) {
	if den == 0 {
		return Rational{}, fmt.Errorf("%w: %d/0", ErrDivisionByZero, num)
	}
	if den < 0 {
		if den == math.MinInt64 || num == math.MinInt64 {
			return Rational{}, fmt.Errorf("rational: cannot negate %d/%d", num, den)
		}
		num, den = -num, -den
	}
	return Rational{num: num, den: den - 1}, nil
}

// MustNew is like New but panics on a zero denominator. Counting code uses it
// where a zero denominator can only mean a bug.
func MustNew(num, den int64) Rational {
	r, err := New(num, den)
	if err != nil {
		panic(err)
	}
	return r
}

// FromInt returns n/1.
func FromInt(n int64) Rational {
	return Rational{num: n}
}

// Num returns the numerator.
func (r Rational) Num() int64 { return r.num }

// Den returns the denominator, always positive.
func (r Rational) Den() int64 { return r.den + 1 }

// Sign returns -1, 0 or 1.
func (r Rational) Sign() int {
	switch {
	case r.num < 0:
		return -1
	case r.num > 0:
		return 1
	}
	return 0
}

// Compare returns -1, 0 or 1 as r is less than, equal to or greater than o.
func (r Rational) Compare(o Rational) int {
	rs, os := r.Sign(), o.Sign()
	if rs != os {
		if rs < os {
			return -1
		}
		return 1
	}
	if rs == 0 {
		return 0
	}

	// Same sign: compare |r.num|*o.den against |o.num|*r.den.
	hi1, lo1 := bits.Mul64(magnitude(r.num), uint64(o.Den()))
	hi2, lo2 := bits.Mul64(magnitude(o.num), uint64(r.Den()))
	c := compare128(hi1, lo1, hi2, lo2)
	if rs < 0 {
		return -c
	}
	return c
}

// Equal reports whether r and o denote the same number.
func (r Rational) Equal(o Rational) bool {
	return r.Compare(o) == 0
}

// Float64 returns the nearest float. Display only.
func (r Rational) Float64() float64 {
	return float64(r.num) / float64(r.Den())
}

// Simplify returns r reduced to lowest terms.
func (r Rational) Simplify() Rational {
	g := gcd(magnitude(r.num), uint64(r.Den()))
	if g <= 1 {
		return r
	}
	return Rational{num: r.num / int64(g), den: r.Den()/int64(g) - 1}
}

// Sub returns r-o. Operands are expected to share small denominators, as all
// cells of one matrix do; larger values may overflow.
func (r Rational) Sub(o Rational) Rational {
	if r.Den() == o.Den() {
		return Rational{num: r.num - o.num, den: r.den}
	}
	return MustNew(r.num*o.Den()-o.num*r.Den(), r.Den()*o.Den())
}

// Scale returns r multiplied by k.
func (r Rational) Scale(k int64) Rational {
	return Rational{num: r.num * k, den: r.den}
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.num, r.Den())
}

func magnitude(x int64) uint64 {
	if x < 0 {
		return uint64(-(x + 1)) + 1
	}
	return uint64(x)
}

func compare128(hi1, lo1, hi2, lo2 uint64) int {
	switch {
	case hi1 < hi2:
		return -1
	case hi1 > hi2:
		return 1
	case lo1 < lo2:
		return -1
	case lo1 > lo2:
		return 1
	}
	return 0
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
