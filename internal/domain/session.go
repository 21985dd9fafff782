package domain

import (
	"time"

	"github.com/google/uuid"
)

// TimerSession records one completed pomodoro. Sessions are only created when
// a pomodoro countdown reaches zero and are never modified afterwards.
type TimerSession struct {
	ID              string    `json:"id,omitempty" yaml:"id"`
	Timestamp       time.Time `json:"timestamp" yaml:"timestamp"`
	DurationMinutes int       `json:"duration" yaml:"duration"`
	Mode            TimerMode `json:"mode" yaml:"mode"`
	Branch          string    `json:"branch,omitempty" yaml:"branch,omitempty"`
}

// NewTimerSession creates the record of a pomodoro of the given length that
// completed at completedAt.
func NewTimerSession(completedAt time.Time, minutes int) TimerSession {
	return TimerSession{
		ID:              uuid.New().String(),
		Timestamp:       completedAt,
		DurationMinutes: minutes,
		Mode:            ModePomodoro,
	}
}

// Duration returns the length of the session.
func (s TimerSession) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// SessionStats aggregates completed sessions over a period.
type SessionStats struct {
	Sessions     int           `json:"sessions"`
	TotalFocus   time.Duration `json:"-"`
	FocusMinutes int           `json:"focus_minutes"`
}

// Summarize totals sessions.
func Summarize(sessions []TimerSession) SessionStats {
	var stats SessionStats
	for _, s := range sessions {
		stats.Sessions++
		stats.FocusMinutes += s.DurationMinutes
	}
	stats.TotalFocus = time.Duration(stats.FocusMinutes) * time.Minute
	return stats
}

// SessionsSince returns the sessions whose timestamp is not before since,
// keeping log order.
func SessionsSince(sessions []TimerSession, since time.Time) []TimerSession {
	var out []TimerSession
	for _, s := range sessions {
		if !s.Timestamp.Before(since) {
			out = append(out, s)
		}
	}
	return out
}

// SessionsOnDay returns the sessions that completed on the local calendar day
// of day.
func SessionsOnDay(sessions []TimerSession, day time.Time) []TimerSession {
	start := StartOfDay(day)
	end := start.AddDate(0, 0, 1)
	var out []TimerSession
	for _, s := range sessions {
		ts := s.Timestamp.In(day.Location())
		if !ts.Before(start) && ts.Before(end) {
			out = append(out, s)
		}
	}
	return out
}

// StartOfDay returns midnight of t in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
