package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SettingsField names one editable field of TimerSettings.
type SettingsField string

const (
	FieldPomodoro   SettingsField = "pomodoro"
	FieldShortBreak SettingsField = "shortBreak"
	FieldLongBreak  SettingsField = "longBreak"
	FieldWakeUpTime SettingsField = "wakeUpTime"
	FieldBedTime    SettingsField = "bedTime"
)

// SettingsFields lists the editable fields in form order.
var SettingsFields = []SettingsField{
	FieldPomodoro,
	FieldShortBreak,
	FieldLongBreak,
	FieldWakeUpTime,
	FieldBedTime,
}

// Label returns the form label of the field.
func (f SettingsField) Label() string {
	switch f {
	case FieldPomodoro:
		return "Pomodoro (minutes)"
	case FieldShortBreak:
		return "Short Break (minutes)"
	case FieldLongBreak:
		return "Long Break (minutes)"
	case FieldWakeUpTime:
		return "Wake Up Time"
	case FieldBedTime:
		return "Bed Time"
	default:
		return string(f)
	}
}

// TimerSettings holds the interval lengths and the active day boundaries.
type TimerSettings struct {
	Pomodoro   int       `json:"pomodoro" yaml:"pomodoro"`
	ShortBreak int       `json:"shortBreak" yaml:"shortBreak"`
	LongBreak  int       `json:"longBreak" yaml:"longBreak"`
	WakeUpTime TimeOfDay `json:"wakeUpTime" yaml:"wakeUpTime"`
	BedTime    TimeOfDay `json:"bedTime" yaml:"bedTime"`
}

// DefaultTimerSettings returns 25/5/15 minute intervals and a 07:00-23:00 day.
func DefaultTimerSettings() TimerSettings {
	return TimerSettings{
		Pomodoro:   25,
		ShortBreak: 5,
		LongBreak:  15,
		WakeUpTime: TimeOfDay{Hours: 7},
		BedTime:    TimeOfDay{Hours: 23},
	}
}

// Validate checks that every interval is at least one minute and both
// boundaries are in range.
func (s TimerSettings) Validate() error {
	if s.Pomodoro < 1 {
		return fmt.Errorf("%w: pomodoro must be at least 1 minute, got %d", ErrInvalidSettings, s.Pomodoro)
	}
	if s.ShortBreak < 1 {
		return fmt.Errorf("%w: short break must be at least 1 minute, got %d", ErrInvalidSettings, s.ShortBreak)
	}
	if s.LongBreak < 1 {
		return fmt.Errorf("%w: long break must be at least 1 minute, got %d", ErrInvalidSettings, s.LongBreak)
	}
	if _, err := NewTimeOfDay(s.WakeUpTime.Hours, s.WakeUpTime.Minutes); err != nil {
		return fmt.Errorf("%w: wake up time: %v", ErrInvalidSettings, err)
	}
	if _, err := NewTimeOfDay(s.BedTime.Hours, s.BedTime.Minutes); err != nil {
		return fmt.Errorf("%w: bed time: %v", ErrInvalidSettings, err)
	}
	return nil
}

// Minutes returns the configured length of mode. Unknown modes fall back to
// the pomodoro length.
func (s TimerSettings) Minutes(mode TimerMode) int {
	switch mode {
	case ModeShortBreak:
		return s.ShortBreak
	case ModeLongBreak:
		return s.LongBreak
	default:
		return s.Pomodoro
	}
}

// Seconds returns the length of mode in seconds.
func (s TimerSettings) Seconds(mode TimerMode) int {
	return s.Minutes(mode) * 60
}

// Duration returns the length of mode as a time.Duration.
func (s TimerSettings) Duration(mode TimerMode) time.Duration {
	return time.Duration(s.Minutes(mode)) * time.Minute
}

// Value returns the form representation of field.
func (s TimerSettings) Value(field SettingsField) string {
	switch field {
	case FieldPomodoro:
		return strconv.Itoa(s.Pomodoro)
	case FieldShortBreak:
		return strconv.Itoa(s.ShortBreak)
	case FieldLongBreak:
		return strconv.Itoa(s.LongBreak)
	case FieldWakeUpTime:
		return s.WakeUpTime.String()
	case FieldBedTime:
		return s.BedTime.String()
	default:
		return ""
	}
}

// ApplySettingsEdit returns s with field set to raw. Durations must be whole
// numbers of at least one minute and times must be HH:MM; an edit that does
// not meet that is dropped and s is returned unchanged. The bool reports
// whether the edit was applied.
func ApplySettingsEdit(s TimerSettings, field SettingsField, raw string) (TimerSettings, bool) {
	raw = strings.TrimSpace(raw)
	switch field {
	case FieldPomodoro, FieldShortBreak, FieldLongBreak:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return s, false
		}
		switch field {
		case FieldPomodoro:
			s.Pomodoro = n
		case FieldShortBreak:
			s.ShortBreak = n
		default:
			s.LongBreak = n
		}
		return s, true
	case FieldWakeUpTime, FieldBedTime:
		t, err := ParseTimeOfDay(raw)
		if err != nil {
			return s, false
		}
		if field == FieldWakeUpTime {
			s.WakeUpTime = t
		} else {
			s.BedTime = t
		}
		return s, true
	default:
		return s, false
	}
}

// ParseSettingsField resolves a field name as used on the command line.
func ParseSettingsField(name string) (SettingsField, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pomodoro":
		return FieldPomodoro, nil
	case "shortbreak", "short-break", "short_break":
		return FieldShortBreak, nil
	case "longbreak", "long-break", "long_break":
		return FieldLongBreak, nil
	case "wakeuptime", "wake", "wake-up", "wake_up_time":
		return FieldWakeUpTime, nil
	case "bedtime", "bed", "bed-time", "bed_time":
		return FieldBedTime, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}
