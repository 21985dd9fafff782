package domain

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

// TimerMode is the interval the timer is counting down.
type TimerMode string

const (
	ModePomodoro   TimerMode = "pomodoro"
	ModeShortBreak TimerMode = "shortBreak"
	ModeLongBreak  TimerMode = "longBreak"
)

// ValidModes lists all timer modes in tab order.
var ValidModes = []TimerMode{
	ModePomodoro,
	ModeShortBreak,
	ModeLongBreak,
}

// modeAliases maps the names users tend to type to a mode.
var modeAliases = map[string]TimerMode{
	"pomodoro":    ModePomodoro,
	"focus":       ModePomodoro,
	"work":        ModePomodoro,
	"shortbreak":  ModeShortBreak,
	"short_break": ModeShortBreak,
	"short-break": ModeShortBreak,
	"short":       ModeShortBreak,
	"longbreak":   ModeLongBreak,
	"long_break":  ModeLongBreak,
	"long-break":  ModeLongBreak,
	"long":        ModeLongBreak,
}

// Valid reports whether m is one of the three timer modes.
func (m TimerMode) Valid() bool {
	for _, valid := range ValidModes {
		if m == valid {
			return true
		}
	}
	return false
}

// Label returns a human-readable label.
func (m TimerMode) Label() string {
	switch m {
	case ModePomodoro:
		return "Pomodoro"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// IsBreak returns true for both break modes.
func (m TimerMode) IsBreak() bool {
	return m == ModeShortBreak || m == ModeLongBreak
}

// Next returns the mode after m in tab order, wrapping around.
func (m TimerMode) Next() TimerMode {
	for i, mode := range ValidModes {
		if mode == m {
			return ValidModes[(i+1)%len(ValidModes)]
		}
	}
	return ModePomodoro
}

// Prev returns the mode before m in tab order, wrapping around.
func (m TimerMode) Prev() TimerMode {
	for i, mode := range ValidModes {
		if mode == m {
			return ValidModes[(i+len(ValidModes)-1)%len(ValidModes)]
		}
	}
	return ModePomodoro
}

// ParseMode resolves user input to a mode. Exact ids and common aliases win;
// otherwise the closest fuzzy match against the aliases is used.
func ParseMode(s string) (TimerMode, error) {
	input := strings.ToLower(strings.TrimSpace(s))
	if input == "" {
		return "", fmt.Errorf("%w: empty", ErrUnknownMode)
	}
	if m := TimerMode(s); m.Valid() {
		return m, nil
	}
	if m, ok := modeAliases[input]; ok {
		return m, nil
	}

	names := make([]string, 0, len(modeAliases))
	for name := range modeAliases {
		names = append(names, name)
	}
	matches := fuzzy.Find(input, names)
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %q (want pomodoro, shortBreak or longBreak)", ErrUnknownMode, s)
	}
	return modeAliases[matches[0].Str], nil
}
