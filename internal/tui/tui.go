// Package tui shows a built matrix in an interactive terminal table.
package tui

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/leher/internal/engine"
	"github.com/lox/leher/internal/report"
)

// SurvivorMark is appended to values and labels of surviving strategies.
const SurvivorMark = "*"

const chromeHeight = 7 // title, status, help and borders

// Model is the bubbletea model for the matrix viewer.
type Model struct {
	view   engine.View
	table  table.Model
	opts   report.Options
	logger *log.Logger

	rows, cols    []int // surviving strategies
	survivorsOnly bool
	height        int
	quitting      bool
}

// NewModel creates a viewer for v.
func NewModel(v engine.View, opts report.Options, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Display == "" {
		opts.Display = report.Fraction
	}
	rows, cols := v.DominantStrategies()
	m := &Model{
		view:   v,
		opts:   opts,
		logger: logger.WithPrefix("tui"),
		rows:   rows,
		cols:   cols,
		height: v.Size() + 2,
		table: table.New(
			table.WithFocused(true),
			table.WithStyles(tableStyles()),
		),
	}
	m.refresh()
	return m
}

// Run shows the viewer until the user quits.
func Run(v engine.View, opts report.Options, logger *log.Logger) error {
	_, err := tea.NewProgram(NewModel(v, opts, logger), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-chromeHeight, 3)
		m.refresh()
		m.logger.Debug("Updating dimensions", "width", msg.Width, "height", msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "t":
			m.opts.Display = m.opts.Display.Next()
			m.refresh()
			return m, nil
		case "d":
			m.survivorsOnly = !m.survivorsOnly
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	cfg := m.view.Config()
	title := HeaderStyle.Render(fmt.Sprintf("LeHer %d cards x %d sets · %s", cfg.Cards, cfg.CardSets, m.view.Stats().Estimator))

	scope := "all strategies"
	if m.survivorsOnly {
		scope = "surviving strategies"
	}
	status := StatusStyle.Render(fmt.Sprintf("P1 keeps %s · P2 keeps %s · %s · %s",
		joinInts(m.rows), joinInts(m.cols), m.opts.Display, scope))
	help := HelpStyle.Render("↑/↓ move · t display · d survivors only · q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		FrameStyle.Render(m.table.View()),
		status,
		help,
	)
}

// Display returns the current display mode.
func (m *Model) Display() report.Display { return m.opts.Display }

// SurvivorsOnly reports whether dominated strategies are hidden.
func (m *Model) SurvivorsOnly() bool { return m.survivorsOnly }

// Rows returns the table rows as shown.
func (m *Model) Rows() []table.Row { return m.table.Rows() }

func (m *Model) refresh() {
	rowIdx, colIdx := report.All(m.view), report.All(m.view)
	if m.survivorsOnly {
		rowIdx, colIdx = m.rows, m.cols
	}

	width := len(`P1\P2`)
	data := make([]table.Row, len(rowIdx))
	for i, r := range rowIdx {
		row := table.Row{m.label(r, m.rows)}
		for _, c := range colIdx {
			v := report.Format(m.view.Scalar(r, c), m.opts)
			if slices.Contains(m.rows, r) && slices.Contains(m.cols, c) {
				v += SurvivorMark
			}
			width = max(width, len(v))
			row = append(row, v)
		}
		data[i] = row
	}

	columns := []table.Column{{Title: `P1\P2`, Width: len(`P1\P2`)}}
	for _, c := range colIdx {
		columns = append(columns, table.Column{Title: m.label(c, m.cols), Width: width})
	}

	// Rows wider than the columns cannot be rendered, so clear them first.
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(data)
	m.table.SetCursor(m.table.Cursor())
	m.table.SetHeight(min(m.height, len(data)+1))
}

func (m *Model) label(i int, survivors []int) string {
	s := strconv.Itoa(i)
	if slices.Contains(survivors, i) {
		s += SurvivorMark
	}
	return s
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, " ")
}
