package tui

import (
	"os"

	"github.com/charmbracelet/x/term"
)

// getTerminalWidth returns the current terminal width, defaulting to 80.
func getTerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}

// TerminalWidth is getTerminalWidth for callers printing outside the TUI.
func TerminalWidth() int {
	return getTerminalWidth()
}

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd())
}
