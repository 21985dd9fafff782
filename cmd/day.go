package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/focusday/internal/domain"
)

// now is the clock used by the commands.
var now = time.Now

// dayCmd represents the day command
var dayCmd = &cobra.Command{
	Use:     "day",
	Aliases: []string{"status"},
	Short:   "Show day progress and today's sessions",
	Long: `Show how far the current time is through the active day between your
wake up time and bed time, plus the pomodoros completed today.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)
		t := now()

		progress, settings, err := app.state.DayProgress(ctx, t)
		if err != nil {
			return fmt.Errorf("failed to compute day progress: %w", err)
		}
		today, err := app.sessions.Today(ctx, t)
		if err != nil {
			return fmt.Errorf("failed to load sessions: %w", err)
		}
		stats := domain.Summarize(today)

		if jsonOutput {
			return outputDayJSON(cmd.OutOrStdout(), t, progress, settings, stats)
		}
		printDayText(cmd.OutOrStdout(), t, progress, settings, stats, app.config.Clock.TwelveHour)
		return nil
	},
}

// outputDayJSON outputs the day progress in JSON format
func outputDayJSON(w io.Writer, t time.Time, progress domain.DayProgress, settings domain.TimerSettings, stats domain.SessionStats) error {
	result := map[string]interface{}{
		"now":                domain.TimeOfDayFrom(t).String(),
		"date":               t.Format("2006-01-02"),
		"wake_up_time":       settings.WakeUpTime.String(),
		"bed_time":           settings.BedTime.String(),
		"percentage":         progress.Percentage,
		"status":             string(progress.Status),
		"active_minutes":     progress.ActiveMinutes,
		"minutes_since_wake": progress.MinutesSinceWake,
		"today": map[string]interface{}{
			"sessions":      stats.Sessions,
			"focus_minutes": stats.FocusMinutes,
		},
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal day progress: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}

// printDayText prints the day progress in plain text format
func printDayText(w io.Writer, t time.Time, progress domain.DayProgress, settings domain.TimerSettings, stats domain.SessionStats, twelveHour bool) {
	wake, bed := settings.WakeUpTime.String(), settings.BedTime.String()
	clock := t.Format("15:04:05")
	if twelveHour {
		wake, bed = settings.WakeUpTime.Format12h(), settings.BedTime.Format12h()
		clock = t.Format("3:04:05 PM")
	}

	fmt.Fprintf(w, "%s  %s\n", clock, t.Format("Monday, January 2, 2006"))
	fmt.Fprintf(w, "Wake up %s · Bed %s\n", wake, bed)
	fmt.Fprintf(w, "%s %.1f%% of active day completed\n", textBar(progress.Percentage/100, 30), progress.Percentage)
	fmt.Fprintln(w, progress.Status.Label())
	fmt.Fprintf(w, "Today: %d sessions, %s focused\n", stats.Sessions, formatMinutes(stats.TotalFocus))
}

// textBar renders fraction as a fixed width bar.
func textBar(fraction float64, width int) string {
	filled := int(fraction*float64(width) + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return "[" + string(bar) + "]"
}
