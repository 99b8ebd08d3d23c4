// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"errors"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/awsctl/awsctl/internal/log"
)

// Answer is the user's response to a confirmation prompt.
type Answer int

const (
	No Answer = iota
	Yes
	YesToAll
	NoToAll
)

// Label is the button text for a.
func (a Answer) Label() string {
	switch a {
	case Yes:
		return "[Y] Yes"
	case YesToAll:
		return "[A] Yes to All"
	case NoToAll:
		return "[L] No to All"
	default:
		return "[N] No"
	}
}

// ErrNotInteractive is returned when confirmation is needed but stdin is not a
// terminal.
var ErrNotInteractive = errors.New("confirmation required but input is not a terminal; use --force to proceed")

// AskFunc asks one question about one target.
type AskFunc func(question, target string) (Answer, error)

// Gate decides whether each mutating item of an invocation may proceed. A
// forced gate never asks.
type Gate struct {
	force  bool
	ask    AskFunc
	sticky *Answer
}

// NewGate returns a Gate. When force is set every item proceeds. Otherwise,
// if in is a terminal, the TUI prompt is shown on out; if not, every item
// fails with ErrNotInteractive.
func NewGate(force bool, in io.Reader, out io.Writer) *Gate {
	g := &Gate{force: force}
	if force {
		return g
	}
	if !Interactive(in) {
		g.ask = func(string, string) (Answer, error) { return No, ErrNotInteractive }
		return g
	}
	g.ask = func(question, target string) (Answer, error) {
		return Ask(in, out, question, target)
	}
	return g
}

// NewGateFunc returns a Gate backed by ask.
func NewGateFunc(force bool, ask AskFunc) *Gate {
	return &Gate{force: force, ask: ask}
}

// Allow reports whether the item described by question and target may
// proceed.
func (g *Gate) Allow(question, target string) (bool, error) {
	if g.force {
		log.Debugf("confirmation skipped: force")
		return true, nil
	}
	if g.sticky != nil {
		log.Debugf("confirmation sticky: answer=%d", *g.sticky)
		return *g.sticky == YesToAll, nil
	}

	answer, err := g.ask(question, target)
	if err != nil {
		if errors.Is(err, ErrInterrupted) {
			a := NoToAll
			g.sticky = &a
		}
		return false, err
	}
	log.Debugf("confirmation answered: answer=%d", answer)

	switch answer {
	case YesToAll, NoToAll:
		g.sticky = &answer
		return answer == YesToAll, nil
	case Yes:
		return true, nil
	default:
		return false, nil
	}
}

// Interactive reports whether r is a terminal.
func Interactive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
