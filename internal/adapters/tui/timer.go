package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/focusday/internal/ports"
)

// Timer implements the ports.TimerUI interface using Bubbletea.
type Timer struct {
	opts    Options
	program *tea.Program
	cancel  context.CancelFunc
	mu      sync.RWMutex
	wg      sync.WaitGroup
}

// NewTimer creates a new TUI timer adapter.
func NewTimer(opts Options) *Timer {
	return &Timer{opts: opts}
}

// Run starts the interface and blocks until the user quits or ctx ends.
func (t *Timer) Run(ctx context.Context) error {
	if t.opts.Timer == nil {
		return fmt.Errorf("tui: no timer configured")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	t.mu.Lock()
	t.program = tea.NewProgram(NewModel(t.opts), tea.WithAltScreen())
	t.cancel = cancel
	program := t.program
	t.mu.Unlock()

	// Handle context cancellation
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		<-ctx.Done()
		program.Quit()
	}()

	_, err := program.Run()

	cancel()
	t.wg.Wait()

	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// Stop gracefully stops the interface.
func (t *Timer) Stop() {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.cancel != nil {
		t.cancel()
	}
	if t.program != nil {
		t.program.Quit()
	}
}

// Ensure Timer implements ports.TimerUI.
var _ ports.TimerUI = (*Timer)(nil)
