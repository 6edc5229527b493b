// Package dominance removes strictly dominated strategies from a two player
// zero-sum payoff matrix.
//
// Rows belong to the player maximizing the payoff and columns to the player
// minimizing it. Elimination alternates a row pass and a column pass until a
// column pass removes nothing.
package dominance

import "slices"

// Payoffs is a matrix whose cells can be ordered against each other.
type Payoffs interface {
	Rows() int
	Cols() int
	// Compare orders cell (r1, c1) against cell (r2, c2).
	Compare(r1, c1, r2, c2 int) int
}

// Result holds the surviving strategies, ascending, and the number of passes
// it took to reach them.
type Result struct {
	Rows   []int `json:"rows" yaml:"rows"`
	Cols   []int `json:"cols" yaml:"cols"`
	Passes int   `json:"passes" yaml:"passes"`
}

// Eliminate starts from every row and column and refines until a pass leaves
// the column set unchanged.
//
// Only the column set is checked. A row pass that follows an unchanged column
// set cannot remove anything new: a row that survived against its peers over
// the same columns still survives against a subset of those peers. The final
// row set is therefore stable too.
func Eliminate(p Payoffs) Result {
	rows := indices(p.Rows())
	cols := indices(p.Cols())

	passes := 0
	for {
		passes++
		var next []int
		rows, next = Pass(p, rows, cols)
		if len(next) == len(cols) {
			return Result{Rows: rows, Cols: next, Passes: passes}
		}
		cols = next
	}
}

// Pass runs one refinement step: drop dominated rows over cols, then drop
// dominated columns over the rows that are left.
func Pass(p Payoffs, rows, cols []int) (newRows, newCols []int) {
	newRows = make([]int, 0, len(rows))
	for _, r := range rows {
		if !rowDominated(p, r, rows, cols) {
			newRows = append(newRows, r)
		}
	}

	newCols = make([]int, 0, len(cols))
	for _, c := range cols {
		if !colDominated(p, c, cols, newRows) {
			newCols = append(newCols, c)
		}
	}
	return newRows, newCols
}

// RowDominates reports whether row by strictly dominates row r over cols: by
// is at least as large in every column and larger in at least one.
func RowDominates(p Payoffs, by, r int, cols []int) bool {
	strict := false
	for _, c := range cols {
		switch p.Compare(r, c, by, c) {
		case 1:
			return false
		case -1:
			strict = true
		}
	}
	return strict
}

// ColDominates reports whether column by strictly dominates column c over
// rows: by is at most as large in every row and smaller in at least one.
func ColDominates(p Payoffs, by, c int, rows []int) bool {
	strict := false
	for _, r := range rows {
		switch p.Compare(r, c, r, by) {
		case -1:
			return false
		case 1:
			strict = true
		}
	}
	return strict
}

func rowDominated(p Payoffs, r int, rows, cols []int) bool {
	return slices.ContainsFunc(rows, func(by int) bool {
		return by != r && RowDominates(p, by, r, cols)
	})
}

func colDominated(p Payoffs, c int, cols, rows []int) bool {
	return slices.ContainsFunc(cols, func(by int) bool {
		return by != c && ColDominates(p, by, c, rows)
	})
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
