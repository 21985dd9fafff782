package domain

import "fmt"

// LongBreakEvery is how many completed pomodoros earn a long break.
const LongBreakEvery = 4

// TimerState is the runtime state of the pomodoro timer. It lives in memory
// only.
type TimerState struct {
	Mode               TimerMode `json:"mode"`
	SecondsRemaining   int       `json:"seconds_remaining"`
	IsRunning          bool      `json:"is_running"`
	CompletedPomodoros int       `json:"completed_pomodoros"`
}

// InitialTimerState is a stopped pomodoro with a full countdown.
func InitialTimerState(settings TimerSettings) TimerState {
	return TimerState{
		Mode:             ModePomodoro,
		SecondsRemaining: settings.Seconds(ModePomodoro),
	}
}

// Clock formats the remaining time as MM:SS. Minutes are not capped at 59.
func (s TimerState) Clock() string {
	return fmt.Sprintf("%02d:%02d", s.SecondsRemaining/60, s.SecondsRemaining%60)
}

// Progress returns the elapsed fraction (0..1) of the current interval.
func (s TimerState) Progress(settings TimerSettings) float64 {
	total := settings.Seconds(s.Mode)
	if total <= 0 {
		return 0
	}
	p := float64(total-s.SecondsRemaining) / float64(total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// NextModeAfter returns the mode that follows a completed interval. count is
// the number of pomodoros completed including the one that just finished.
func NextModeAfter(completed TimerMode, count int) TimerMode {
	if completed != ModePomodoro {
		return ModePomodoro
	}
	if count > 0 && count%LongBreakEvery == 0 {
		return ModeLongBreak
	}
	return ModeShortBreak
}

// Transition describes one completed interval.
type Transition struct {
	Completed TimerMode
	Next      TimerMode
	// Session is set when a pomodoro completed.
	Session *TimerSession
	State   TimerState
}

// CompletionMessage returns the notification title and body for a completed
// interval of mode.
func CompletionMessage(mode TimerMode) (title, body string) {
	if mode == ModePomodoro {
		return "Work session completed!", "Time to take a break!"
	}
	return "Break completed!", "Time to focus!"
}
