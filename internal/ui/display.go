package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// DefaultTermWidth is used when stdout is not a terminal.
const DefaultTermWidth = 120

// DisplayContext carries terminal information for rendering decisions.
type DisplayContext struct {
	TermWidth int
	IsTTY     bool
}

// NewDisplayContext detects terminal capabilities from stdout.
func NewDisplayContext() DisplayContext {
	ctx := DisplayContext{
		TermWidth: DefaultTermWidth,
		IsTTY:     isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}

	if ctx.IsTTY {
		if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
			ctx.TermWidth = w
		}
	}

	return ctx
}
