package report

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/lox/leher/internal/estimate"
)

// Axis captions written next to the threshold labels.
const (
	P2Caption      = "Max Value P2 Will Keep"
	P1Caption      = "Max Value P1 Will Keep"
	P2ExcelCaption = "MaxValueP2WillKeep"
	P1ExcelCaption = "MaxValueP1WillKeep"
)

// Grid is a square matrix of cell values indexed [p1][p2].
type Grid interface {
	Size() int
	Scalar(p1, p2 int) estimate.Scalar
}

// All returns every threshold of g in order.
func All(g Grid) []int {
	out := make([]int, g.Size())
	for i := range out {
		out[i] = i
	}
	return out
}

// WriteReadable writes the cells at rows × cols as an aligned table with a
// header of player 2 thresholds and a leading column of player 1 thresholds.
func WriteReadable(w io.Writer, g Grid, rows, cols []int, opts Options) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	fmt.Fprint(tw, "\t\t")
	for _, c := range cols {
		fmt.Fprintf(tw, "%d\t", c)
	}
	fmt.Fprintln(tw, P2Caption)

	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t|\t", r)
		for _, c := range cols {
			fmt.Fprintf(tw, "%s\t", Format(g.Scalar(r, c), opts))
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	// The separator sits between the header and the first row, sized to the
	// widest row.
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	width := 0
	for _, l := range lines[1:] {
		width = max(width, len(strings.TrimRight(l, " ")))
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(strings.TrimRight(lines[0], " ") + "\n")
	bw.WriteString(strings.Repeat("-", max(width, 8)) + "\n")
	for _, l := range lines[1:] {
		bw.WriteString(strings.TrimRight(l, " ") + "\n")
	}
	bw.WriteString(P1Caption + "\n")
	return bw.Flush()
}

// WriteExcel writes the cells at rows × cols separated by single spaces. The
// first line holds the player 2 thresholds and each following line starts with
// a player 1 threshold.
func WriteExcel(w io.Writer, g Grid, rows, cols []int, opts Options) error {
	bw := bufio.NewWriter(w)
	for _, c := range cols {
		bw.WriteString(" " + strconv.Itoa(c))
	}
	bw.WriteString(" " + P2ExcelCaption + "\n")

	for _, r := range rows {
		bw.WriteString(strconv.Itoa(r))
		for _, c := range cols {
			bw.WriteString(" " + Format(g.Scalar(r, c), opts))
		}
		bw.WriteString("\n")
	}
	bw.WriteString(P1ExcelCaption + "\n")
	return bw.Flush()
}

// WriteStrategies writes one line per player listing the surviving
// thresholds.
func WriteStrategies(w io.Writer, rows, cols []int) error {
	_, err := fmt.Fprintf(w, "P1 Dominant Strategies: %s\nP2 Dominant Strategies: %s\n", join(rows), join(cols))
	return err
}

// WriteReport writes the full matrix, the surviving sub-matrix and the
// surviving strategies in readable form.
func WriteReport(w io.Writer, g Grid, rows, cols []int, opts Options) error {
	if err := WriteReadable(w, g, All(g), All(g), opts); err != nil {
		return err
	}
	fmt.Fprintln(w)
	if err := WriteReadable(w, g, rows, cols, opts); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return WriteStrategies(w, rows, cols)
}

// WriteExcelReport writes the full matrix followed by the surviving
// sub-matrix in spreadsheet form.
func WriteExcelReport(w io.Writer, g Grid, rows, cols []int, opts Options) error {
	if err := WriteExcel(w, g, All(g), All(g), opts); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return WriteExcel(w, g, rows, cols, opts)
}

func join(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}
