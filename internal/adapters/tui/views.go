package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/focusday/internal/domain"
)

const historyRows = 12

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string
	switch m.screen {
	case screenSettings:
		sections = m.viewSettings()
	case screenHistory:
		sections = m.viewHistory()
	default:
		sections = m.viewTimer()
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// modeColor returns the color of the current mode.
func (m Model) modeColor() lipgloss.Color {
	if m.state.Mode.IsBreak() {
		return lipgloss.Color(m.theme.ColorBreak)
	}
	return lipgloss.Color(m.theme.ColorPomodoro)
}

// timerColor returns the clock color, accounting for pause state.
func (m Model) timerColor() lipgloss.Color {
	if !m.state.IsRunning && m.state.SecondsRemaining < m.settings.Seconds(m.state.Mode) {
		return lipgloss.Color(m.theme.ColorPaused)
	}
	return m.modeColor()
}

func (m Model) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle)).MarginBottom(1)
}

func (m Model) helpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorHelp))
}

func (m Model) viewTimer() []string {
	helpStyle := m.helpStyle()
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorPaused))

	sections := []string{m.titleStyle().Render("focusday")}
	sections = append(sections, m.viewModeTabs())

	sections = append(sections, "")
	sections = append(sections, renderBigClock(m.state.Clock(), m.timerColor(), m.width))
	sections = append(sections, "")
	sections = append(sections, m.progress.ViewAs(m.state.Progress(m.settings)))
	sections = append(sections, statusStyle.Render(m.statusLine()))

	if m.bannerTicks > 0 {
		bannerStyle := lipgloss.NewStyle().Bold(true).Foreground(m.modeColor())
		sections = append(sections, "")
		sections = append(sections, bannerStyle.Render(m.banner))
		sections = append(sections, helpStyle.Render(m.bannerBody))
	}

	sections = append(sections, "")
	sections = append(sections, m.viewDay()...)

	sections = append(sections, m.viewMessages()...)

	sections = append(sections, "")
	sections = append(sections, m.help.View(m.keys))
	return sections
}

func (m Model) viewModeTabs() string {
	tabs := make([]string, 0, len(domain.ValidModes))
	for _, mode := range domain.ValidModes {
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color(m.theme.ColorHelp))
		if mode == m.state.Mode {
			style = style.Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(m.modeColor())
		}
		tabs = append(tabs, style.Render(mode.Label()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) statusLine() string {
	full := m.settings.Seconds(m.state.Mode)
	status := "Ready"
	switch {
	case m.state.IsRunning:
		status = "Running"
	case m.state.SecondsRemaining < full:
		status = "Paused"
	}

	line := fmt.Sprintf("%s · %d/%d min · #%d", status,
		(full-m.state.SecondsRemaining)/60, m.settings.Minutes(m.state.Mode), m.state.CompletedPomodoros)
	if !m.state.Mode.IsBreak() {
		untilLong := domain.LongBreakEvery - m.state.CompletedPomodoros%domain.LongBreakEvery
		line += fmt.Sprintf(" · long break in %d", untilLong)
	}
	return line
}

// formatTimeOfDay renders t in the configured 12 or 24 hour style.
func (m Model) formatTimeOfDay(t domain.TimeOfDay) string {
	if m.twelveHour {
		return t.Format12h()
	}
	return t.String()
}

func (m Model) viewDay() []string {
	helpStyle := m.helpStyle()
	clockStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorTitle))

	layout := "15:04:05"
	if m.twelveHour {
		layout = "3:04:05 PM"
	}

	wake, bed := m.settings.WakeUpTime, m.settings.BedTime
	day := domain.ComputeDayProgress(domain.TimeOfDayFrom(m.now), wake, bed)
	today := domain.Summarize(domain.SessionsOnDay(m.history, m.now))

	return []string{
		clockStyle.Render(m.now.Format(layout)),
		helpStyle.Render(m.now.Format("Monday, January 2, 2006")),
		helpStyle.Render(fmt.Sprintf("Wake up %s · Bed %s", m.formatTimeOfDay(wake), m.formatTimeOfDay(bed))),
		m.dayBar.ViewAs(day.Percentage / 100),
		helpStyle.Render(fmt.Sprintf("%.1f%% of active day completed", day.Percentage)),
		helpStyle.Render(day.Status.Label()),
		helpStyle.Render(fmt.Sprintf("Today: %d sessions, %d min focused", today.Sessions, today.FocusMinutes)),
	}
}

func (m Model) viewMessages() []string {
	var out []string
	if m.flash != "" {
		flashStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.ColorBreak))
		out = append(out, "", flashStyle.Render(m.flash))
	}
	if m.lastError != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorPomodoro))
		out = append(out, "", errStyle.Render("Error: "+m.lastError.Error()))
	}
	return out
}

func (m Model) viewSettings() []string {
	helpStyle := m.helpStyle()
	labelStyle := lipgloss.NewStyle().Width(24).Foreground(lipgloss.Color(m.theme.ColorHelp))
	focusStyle := labelStyle.Bold(true).Foreground(lipgloss.Color(m.theme.ColorPomodoro))

	sections := []string{m.titleStyle().Render("Settings")}
	for i, field := range domain.SettingsFields {
		style := labelStyle
		marker := "  "
		if i == m.form.focus {
			style = focusStyle
			marker = "› "
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, style.Render(marker+field.Label()), m.form.inputs[i].View())
		sections = append(sections, row)
	}

	sections = append(sections, m.viewMessages()...)
	sections = append(sections, "")
	sections = append(sections, helpStyle.Render("Durations in whole minutes, times as HH:MM. Invalid values are ignored."))
	sections = append(sections, helpStyle.Render("enter save · tab/↓ next · shift+tab/↑ previous · esc cancel"))
	return sections
}

func (m Model) viewHistory() []string {
	helpStyle := m.helpStyle()
	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ColorTitle))

	stats := domain.Summarize(m.history)
	sections := []string{m.titleStyle().Render("Session history")}
	sections = append(sections, helpStyle.Render(fmt.Sprintf("%d completed sessions, %d min focused", stats.Sessions, stats.FocusMinutes)))
	sections = append(sections, "")

	if len(m.history) == 0 {
		sections = append(sections, helpStyle.Render("No completed sessions yet."))
	}

	var rows []string
	for i := len(m.history) - 1; i >= 0 && len(rows) < historyRows; i-- {
		s := m.history[i]
		row := fmt.Sprintf("%s  %-10s %3d min", s.Timestamp.Local().Format("2006-01-02 15:04"), s.Mode.Label(), s.DurationMinutes)
		if s.Branch != "" {
			row += "  " + s.Branch
		}
		rows = append(rows, rowStyle.Render(row))
	}
	if len(rows) > 0 {
		sections = append(sections, lipgloss.JoinVertical(lipgloss.Left, rows...))
	}
	if more := len(m.history) - len(rows); more > 0 {
		sections = append(sections, helpStyle.Render(fmt.Sprintf("… and %d more", more)))
	}

	sections = append(sections, m.viewMessages()...)
	sections = append(sections, "")
	if m.confirmClear {
		sections = append(sections, helpStyle.Bold(true).Render("Clear all sessions? [y] confirm  [any key] cancel"))
	} else {
		sections = append(sections, helpStyle.Render("[x] clear  [esc] back  [q]uit"))
	}
	return sections
}
