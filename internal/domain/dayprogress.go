package domain

// DayStatus tells where the current time falls relative to the active day.
type DayStatus string

const (
	DayBeforeWake DayStatus = "before-wake"
	DayActive     DayStatus = "active"
	DayAfterBed   DayStatus = "after-bed"
)

// Label returns the status line shown under the day progress bar.
func (s DayStatus) Label() string {
	switch s {
	case DayBeforeWake:
		return "Before wake up time"
	case DayActive:
		return "Active day in progress"
	case DayAfterBed:
		return "After bed time"
	default:
		return "Unknown"
	}
}

// DayProgress is the result of ComputeDayProgress.
type DayProgress struct {
	Percentage       float64   `json:"percentage"`
	Status           DayStatus `json:"status"`
	ActiveMinutes    int       `json:"active_minutes"`
	MinutesSinceWake int       `json:"minutes_since_wake"`
}

// ActiveDayMinutes returns the length of the wake..bed window. A bed time at
// or before the wake time means the window crosses midnight; wake == bed is a
// full 24 hour window.
func ActiveDayMinutes(wake, bed TimeOfDay) int {
	w, b := wake.MinutesSinceMidnight(), bed.MinutesSinceMidnight()
	active := b - w
	if b <= w {
		active = MinutesPerDay - w + b
	}
	if active <= 0 {
		active += MinutesPerDay
	}
	return active
}

// ComputeDayProgress reports how far now is through the active day.
func ComputeDayProgress(now, wake, bed TimeOfDay) DayProgress {
	n := now.MinutesSinceMidnight()
	w := wake.MinutesSinceMidnight()
	b := bed.MinutesSinceMidnight()

	overnight := b <= w
	active := ActiveDayMinutes(wake, bed)

	var inside bool
	if overnight {
		inside = n >= w || n < b
	} else {
		inside = n >= w && n < b
	}

	if inside {
		since := n - w
		if n < w {
			since = MinutesPerDay - w + n
		}
		return DayProgress{
			Percentage:       100 * float64(since) / float64(active),
			Status:           DayActive,
			ActiveMinutes:    active,
			MinutesSinceWake: since,
		}
	}

	if (!overnight && n >= b) || (overnight && n >= b && n < w) {
		return DayProgress{Percentage: 100, Status: DayAfterBed, ActiveMinutes: active}
	}
	return DayProgress{Percentage: 0, Status: DayBeforeWake, ActiveMinutes: active}
}
