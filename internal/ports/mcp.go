package ports

import (
	"context"
	"time"

	"github.com/xvierd/focusday/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// StateProvider exposes the timer, the settings and the session history to
// the MCP server.
// This is a driven port (implemented by services layer).
type StateProvider interface {
	// TimerState returns a snapshot of the countdown and the settings in use.
	TimerState(ctx context.Context) (domain.TimerState, domain.TimerSettings)

	// DayProgress computes the day progress at now with the stored boundaries.
	DayProgress(ctx context.Context, now time.Time) (domain.DayProgress, domain.TimerSettings, error)

	// Settings returns the stored settings.
	Settings(ctx context.Context) (domain.TimerSettings, error)

	// RecentSessions returns up to limit sessions, newest first. limit <= 0
	// returns all of them.
	RecentSessions(ctx context.Context, limit int) ([]domain.TimerSession, error)

	// Execute applies cmd and returns the resulting state.
	Execute(ctx context.Context, cmd TimerCommand) (domain.TimerState, error)

	// SwitchMode changes the timer mode and returns the resulting state.
	SwitchMode(ctx context.Context, mode domain.TimerMode) (domain.TimerState, error)

	// EditSetting applies one field edit, stores the result and pushes it to
	// the timer. The bool is false when raw was rejected.
	EditSetting(ctx context.Context, field domain.SettingsField, raw string) (domain.TimerSettings, bool, error)
}
