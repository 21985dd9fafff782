package ports

import (
	"context"
	"time"

	"github.com/xvierd/focusday/internal/domain"
)

//go:generate mockgen -destination=mocks/mock_session_sink.go -package=mocks github.com/xvierd/focusday/internal/ports SessionSink

// SessionSink receives every completed pomodoro.
// This is a driven port (implemented by the session log).
type SessionSink interface {
	RecordSession(ctx context.Context, session domain.TimerSession) error
}

// SessionLog is the ordered, append-only history of completed pomodoros.
type SessionLog interface {
	SessionSink

	// List returns all sessions in completion order.
	List(ctx context.Context) ([]domain.TimerSession, error)

	// Since returns the sessions completed at or after since.
	Since(ctx context.Context, since time.Time) ([]domain.TimerSession, error)

	// Clear removes every session.
	Clear(ctx context.Context) error
}

// SettingsStore loads and saves timer settings.
type SettingsStore interface {
	// Load returns the stored settings, or the defaults when none are stored
	// or the stored value cannot be read.
	Load(ctx context.Context) (domain.TimerSettings, error)

	// Save validates and stores s.
	Save(ctx context.Context, s domain.TimerSettings) error
}
