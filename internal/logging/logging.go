// Package logging routes diagnostic output. Messages go to stderr by default
// and to a file while the terminal UI owns the screen.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

var mu sync.Mutex

// LogError logs err with a short context prefix. Nil errors are ignored.
func LogError(context string, err error) {
	if err != nil {
		log.Printf("%s: %v", context, err)
	}
}

// LogPanic logs a recovered panic value. Nil values are ignored.
func LogPanic(context string, r interface{}) {
	if r != nil {
		log.Printf("%s: panic: %v", context, r)
	}
}

// Setup sends the standard logger to path until the returned function is
// called, which restores stderr.
func Setup(path string) (func(), error) {
	mu.Lock()
	defer mu.Unlock()

	f, err := tea.LogToFile(path, "focusday")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return func() {
		mu.Lock()
		defer mu.Unlock()
		restore(os.Stderr)
		_ = f.Close()
	}, nil
}

// Discard silences the standard logger until the returned function is called.
func Discard() func() {
	mu.Lock()
	defer mu.Unlock()
	prevOut, prevPrefix, prevFlags := log.Writer(), log.Prefix(), log.Flags()
	log.SetOutput(io.Discard)
	return func() {
		mu.Lock()
		defer mu.Unlock()
		log.SetOutput(prevOut)
		log.SetPrefix(prevPrefix)
		log.SetFlags(prevFlags)
	}
}

func restore(w io.Writer) {
	log.SetOutput(w)
	log.SetPrefix("")
	log.SetFlags(log.LstdFlags)
}
