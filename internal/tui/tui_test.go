package tui

import (
	"context"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/leher/internal/engine"
	"github.com/lox/leher/internal/game"
	"github.com/lox/leher/internal/report"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewer(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}) // Quiet logger for tests

	v, err := engine.Solve(context.Background(), game.DefaultConfig(), engine.Method{Kind: engine.KindExact}, engine.Options{})
	require.NoError(t, err)

	t.Run("shows the full matrix with survivors marked", func(t *testing.T) {
		m := NewModel(v, report.Options{}, logger)

		rows := m.Rows()
		require.Len(t, rows, 14)
		require.Len(t, rows[0], 15)
		assert.Equal(t, "0", rows[0][0])
		assert.Equal(t, "8/17", rows[0][1])
		assert.Equal(t, "6*", rows[6][0])
		assert.Equal(t, "2828/5525*", rows[6][8])
		assert.Equal(t, "218/425*", rows[6][9])

		out := m.View()
		assert.Contains(t, out, `P1\P2`)
		assert.Contains(t, out, "P1 keeps 6 7")
		assert.Contains(t, out, "P2 keeps 7 8")
	})

	t.Run("t cycles the display mode", func(t *testing.T) {
		m := NewModel(v, report.Options{}, logger)
		assert.Equal(t, report.Fraction, m.Display())

		_, cmd := m.Update(key("t"))
		assert.Nil(t, cmd)
		assert.Equal(t, report.Decimal, m.Display())
		assert.Equal(t, "0.4706", m.Rows()[0][1])

		m.Update(key("t"))
		assert.Equal(t, report.Edge, m.Display())
		assert.Equal(t, "-1/17", m.Rows()[0][1])

		m.Update(key("t"))
		assert.Equal(t, report.Fraction, m.Display())
	})

	t.Run("d toggles surviving strategies only", func(t *testing.T) {
		m := NewModel(v, report.Options{}, logger)

		m.Update(key("d"))
		assert.True(t, m.SurvivorsOnly())
		rows := m.Rows()
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"6*", "2828/5525*", "218/425*"}, []string(rows[0]))
		assert.Equal(t, []string{"7*", "2838/5525*", "2828/5525*"}, []string(rows[1]))
		assert.Contains(t, m.View(), "surviving strategies")

		m.Update(key("d"))
		assert.False(t, m.SurvivorsOnly())
		assert.Len(t, m.Rows(), 14)
	})

	t.Run("window resize keeps every row", func(t *testing.T) {
		m := NewModel(v, report.Options{}, logger)
		_, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 12})
		assert.Nil(t, cmd)
		assert.Len(t, m.Rows(), 14)
		assert.NotEmpty(t, m.View())
	})

	t.Run("q quits", func(t *testing.T) {
		m := NewModel(v, report.Options{}, logger)
		_, cmd := m.Update(key("q"))
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, m.View())
	})
}
