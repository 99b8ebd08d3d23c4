// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrInterrupted is returned when the user aborts the prompt with ctrl+c.
var ErrInterrupted = errors.New("confirmation interrupted")

type keyMap struct {
	Yes      key.Binding
	YesToAll key.Binding
	No       key.Binding
	NoToAll  key.Binding
	Left     key.Binding
	Right    key.Binding
	Choose   key.Binding
	Abort    key.Binding
}

var keys = keyMap{
	Yes:      key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	YesToAll: key.NewBinding(key.WithKeys("a", "A"), key.WithHelp("a", "yes to all")),
	No:       key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "no")),
	NoToAll:  key.NewBinding(key.WithKeys("l", "L"), key.WithHelp("l", "no to all")),
	Left:     key.NewBinding(key.WithKeys("left", "h", "shift+tab")),
	Right:    key.NewBinding(key.WithKeys("right", "tab")),
	Choose:   key.NewBinding(key.WithKeys("enter", " ")),
	Abort:    key.NewBinding(key.WithKeys("ctrl+c", "esc")),
}

var choices = []Answer{Yes, YesToAll, No, NoToAll}

var (
	questionStyle = lipgloss.NewStyle().Bold(true)
	targetStyle   = lipgloss.NewStyle().Faint(true)
	activeStyle   = lipgloss.NewStyle().Reverse(true).Padding(0, 1)
	choiceStyle   = lipgloss.NewStyle().Padding(0, 1)
)

type model struct {
	question string
	target   string
	cursor   int
	answer   Answer
	done     bool
	aborted  bool
}

func newModel(question, target string) model {
	// No is the default so that a stray enter never mutates anything.
	return model{question: question, target: target, cursor: 2}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(k, keys.Abort):
		m.aborted = true
		return m, tea.Quit
	case key.Matches(k, keys.Yes):
		return m.choose(Yes)
	case key.Matches(k, keys.YesToAll):
		return m.choose(YesToAll)
	case key.Matches(k, keys.No):
		return m.choose(No)
	case key.Matches(k, keys.NoToAll):
		return m.choose(NoToAll)
	case key.Matches(k, keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(k, keys.Right):
		if m.cursor < len(choices)-1 {
			m.cursor++
		}
	case key.Matches(k, keys.Choose):
		return m.choose(choices[m.cursor])
	}
	return m, nil
}

func (m model) choose(a Answer) (tea.Model, tea.Cmd) {
	m.answer = a
	m.done = true
	return m, tea.Quit
}

func (m model) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(questionStyle.Render(m.question))
	if m.target != "" {
		b.WriteString(" " + targetStyle.Render(m.target))
	}
	b.WriteString("\n")

	for i, c := range choices {
		style := choiceStyle
		if i == m.cursor {
			style = activeStyle
		}
		b.WriteString(style.Render(c.Label()))
	}
	b.WriteString("\n")
	return b.String()
}

// Ask shows the confirmation prompt on out, reading keys from in.
func Ask(in io.Reader, out io.Writer, question, target string) (Answer, error) {
	p := tea.NewProgram(newModel(question, target), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return No, fmt.Errorf("running confirmation prompt: %w", err)
	}

	m, ok := final.(model)
	if !ok {
		return No, fmt.Errorf("unexpected prompt model %T", final)
	}
	if m.aborted {
		return NoToAll, ErrInterrupted
	}
	return m.answer, nil
}
