// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, msgs ...tea.Msg) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(model)
	}
	return m, cmd
}

func TestModel_Shortcuts(t *testing.T) {
	tests := []struct {
		key  string
		want Answer
	}{
		{"y", Yes},
		{"Y", Yes},
		{"a", YesToAll},
		{"n", No},
		{"l", NoToAll},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, cmd := press(t, newModel("Delete endpoint?", "src-mysql"), runes(tt.key))
			assert.True(t, m.done)
			assert.Equal(t, tt.want, m.answer)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestModel_DefaultIsNo(t *testing.T) {
	m, _ := press(t, newModel("q", ""), tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.done)
	assert.Equal(t, No, m.answer)
}

func TestModel_CursorMovement(t *testing.T) {
	left := tea.KeyMsg{Type: tea.KeyLeft}
	right := tea.KeyMsg{Type: tea.KeyRight}
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	m, _ := press(t, newModel("q", ""), left, left, left, enter)
	assert.Equal(t, Yes, m.answer, "cursor stops at the first choice")

	m, _ = press(t, newModel("q", ""), right, right, right, enter)
	assert.Equal(t, NoToAll, m.answer, "cursor stops at the last choice")

	m, _ = press(t, newModel("q", ""), left, enter)
	assert.Equal(t, YesToAll, m.answer)
}

func TestModel_Abort(t *testing.T) {
	m, cmd := press(t, newModel("q", ""), tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.aborted)
	assert.False(t, m.done)
	require.NotNil(t, cmd)
}

func TestModel_IgnoresOtherMessages(t *testing.T) {
	m, cmd := press(t, newModel("q", ""), tea.WindowSizeMsg{Width: 80}, runes("z"))
	assert.False(t, m.done)
	assert.Nil(t, cmd)
}

func TestModel_View(t *testing.T) {
	m := newModel("Delete endpoint?", "arn:aws:dms:ep")
	view := m.View()
	assert.Contains(t, view, "Delete endpoint?")
	assert.Contains(t, view, "arn:aws:dms:ep")
	for _, c := range choices {
		assert.Contains(t, view, c.Label())
	}

	m, _ = press(t, m, runes("y"))
	assert.Empty(t, m.View())
}

func TestGate_Force(t *testing.T) {
	asked := false
	g := NewGateFunc(true, func(string, string) (Answer, error) {
		asked = true
		return No, nil
	})

	for i := 0; i < 3; i++ {
		ok, err := g.Allow("q", "t")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.False(t, asked, "force never prompts")
}

func TestGate_Answers(t *testing.T) {
	tests := []struct {
		name    string
		answers []Answer
		want    []bool
		asks    int
	}{
		{"yes then no", []Answer{Yes, No}, []bool{true, false}, 2},
		{"yes to all sticks", []Answer{YesToAll}, []bool{true, true, true}, 1},
		{"no to all sticks", []Answer{Yes, NoToAll}, []bool{true, false, false, false}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asks := 0
			g := NewGateFunc(false, func(string, string) (Answer, error) {
				a := tt.answers[asks]
				asks++
				return a, nil
			})

			for i, want := range tt.want {
				ok, err := g.Allow("q", "t")
				require.NoError(t, err)
				assert.Equal(t, want, ok, "item %d", i)
			}
			assert.Equal(t, tt.asks, asks)
		})
	}
}

func TestGate_Interrupted(t *testing.T) {
	asks := 0
	g := NewGateFunc(false, func(string, string) (Answer, error) {
		asks++
		return NoToAll, ErrInterrupted
	})

	ok, err := g.Allow("q", "t")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrInterrupted)

	ok, err = g.Allow("q", "t")
	assert.False(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, 1, asks)
}

func TestNewGate_NotInteractive(t *testing.T) {
	g := NewGate(false, strings.NewReader("y\n"), &bytes.Buffer{})

	ok, err := g.Allow("Delete?", "x")
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrNotInteractive))

	g = NewGate(true, strings.NewReader(""), &bytes.Buffer{})
	ok, err = g.Allow("Delete?", "x")
	assert.True(t, ok)
	assert.NoError(t, err)
}

func TestInteractive(t *testing.T) {
	assert.False(t, Interactive(strings.NewReader("")))
	assert.False(t, Interactive(&bytes.Buffer{}))
}

func TestAnswer_Label(t *testing.T) {
	assert.Equal(t, "[Y] Yes", Yes.Label())
	assert.Equal(t, "[A] Yes to All", YesToAll.Label())
	assert.Equal(t, "[N] No", No.Label())
	assert.Equal(t, "[L] No to All", NoToAll.Label())
}
