package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
)

// ColorProfile maps a --color setting onto a terminal color profile for w.
func ColorProfile(mode string, w io.Writer) (termenv.Profile, error) {
	switch strings.ToLower(mode) {
	case "", "auto":
		return termenv.NewOutput(w).EnvColorProfile(), nil
	case "always":
		return termenv.ANSI256, nil
	case "never":
		return termenv.Ascii, nil
	default:
		return termenv.Ascii, fmt.Errorf("unknown color mode %q (want auto, always or never)", mode)
	}
}

// Styles holds the lipgloss styles used by Styled.
type Styles struct {
	Header   lipgloss.Style
	Label    lipgloss.Style
	Cell     lipgloss.Style
	Survivor lipgloss.Style
	Border   lipgloss.Style
}

// NewStyles builds styles bound to a renderer for the given profile.
func NewStyles(w io.Writer, profile termenv.Profile) Styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	return Styles{
		Header:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Padding(0, 1),
		Label:    r.NewStyle().Foreground(lipgloss.Color("12")).Padding(0, 1),
		Cell:     r.NewStyle().Padding(0, 1),
		Survivor: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")).Padding(0, 1),
		Border:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Styled renders the full matrix as a bordered table. Cells where both
// thresholds survived elimination are highlighted.
func Styled(g Grid, rows, cols []int, opts Options, styles Styles) string {
	headers := []string{"P1\\P2"}
	for c := 0; c < g.Size(); c++ {
		headers = append(headers, strconv.Itoa(c))
	}

	data := make([][]string, g.Size())
	for r := range data {
		line := []string{strconv.Itoa(r)}
		for c := 0; c < g.Size(); c++ {
			line = append(line, Format(g.Scalar(r, c), opts))
		}
		data[r] = line
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Border).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.Header
			case col == 0:
				return styles.Label
			case slices.Contains(rows, row) && slices.Contains(cols, col-1):
				return styles.Survivor
			default:
				return styles.Cell
			}
		})
	return t.String()
}
