package ports

import (
	"context"

	"github.com/xvierd/focusday/internal/domain"
)

// TimerCommand represents a user action on the timer.
type TimerCommand string

const (
	// CmdStart starts or resumes the countdown.
	CmdStart TimerCommand = "start"

	// CmdPause pauses the countdown.
	CmdPause TimerCommand = "pause"

	// CmdToggle starts a stopped countdown or pauses a running one.
	CmdToggle TimerCommand = "toggle"

	// CmdReset reloads the current mode's full length.
	CmdReset TimerCommand = "reset"
)

// PomodoroTimer is the command surface of the pomodoro state machine.
// This is a driving port (called by the TUI, the MCP server and the CLI).
type PomodoroTimer interface {
	Start()
	Pause()
	Toggle()
	Reset()
	SetMode(mode domain.TimerMode)
	Tick()
	State() domain.TimerState
	Settings() domain.TimerSettings
	UpdateSettings(s domain.TimerSettings) error
}

// TimerUI is an interactive timer front end.
type TimerUI interface {
	// Run blocks until the user quits or ctx is cancelled.
	Run(ctx context.Context) error

	// Stop asks a running UI to quit.
	Stop()
}
