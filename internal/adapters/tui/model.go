// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"context"
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/focusday/internal/config"
	"github.com/xvierd/focusday/internal/domain"
	"github.com/xvierd/focusday/internal/logging"
	"github.com/xvierd/focusday/internal/ports"
)

const (
	// bannerTicks is how long a completion banner stays up.
	bannerTicks = 5
	// flashTicks is how long a confirmation like "Settings saved" stays up.
	flashTicks = 3
)

type screen int

const (
	screenTimer screen = iota
	screenSettings
	screenHistory
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// tickMsg is sent on every timer tick.
type tickMsg time.Time

// historyMsg carries the session log loaded asynchronously.
type historyMsg struct {
	sessions []domain.TimerSession
	err      error
}

// Options wires the model to the application.
type Options struct {
	// Timer is the pomodoro state machine the UI drives. Required.
	Timer ports.PomodoroTimer

	// SaveSettings stores edited settings and pushes them to Timer. When nil
	// the settings are only pushed to Timer.
	SaveSettings func(ctx context.Context, s domain.TimerSettings) error

	// Sessions backs the history screen and the today counter. Optional.
	Sessions ports.SessionLog

	Theme        *config.ThemeConfig
	TwelveHour   bool
	TickInterval time.Duration

	// Now overrides the wall clock.
	Now func() time.Time
}

// Model represents the TUI state.
type Model struct {
	timer        ports.PomodoroTimer
	saveSettings func(context.Context, domain.TimerSettings) error
	sessions     ports.SessionLog
	theme        config.ThemeConfig
	twelveHour   bool
	interval     time.Duration

	state    domain.TimerState
	settings domain.TimerSettings
	now      time.Time
	history  []domain.TimerSession

	screen       screen
	form         settingsForm
	confirmClear bool

	banner      string
	bannerBody  string
	bannerTicks int
	flash       string
	flashTicks  int
	lastError   error

	keys     keyMap
	help     help.Model
	progress progress.Model
	dayBar   progress.Model
	width    int
	height   int
}

// NewModel creates a new TUI model.
func NewModel(opts Options) Model {
	theme := resolveTheme(opts.Theme)
	interval := opts.TickInterval
	if interval <= 0 {
		interval = time.Second
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	m := Model{
		timer:        opts.Timer,
		saveSettings: opts.SaveSettings,
		sessions:     opts.Sessions,
		theme:        theme,
		twelveHour:   opts.TwelveHour,
		interval:     interval,
		now:          now(),
		keys:         defaultKeyMap(),
		help:         help.New(),
		dayBar:       progress.New(progress.WithGradient(theme.DayGradientA, theme.DayGradientB)),
	}
	m.refresh()
	m.progress = m.intervalBar()
	return m
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.interval), m.loadHistoryCmd())
}

// refresh copies the timer state into the model.
func (m *Model) refresh() {
	m.state = m.timer.State()
	m.settings = m.timer.Settings()
}

func (m Model) intervalBar() progress.Model {
	var bar progress.Model
	if m.state.Mode.IsBreak() {
		bar = progress.New(progress.WithGradient(m.theme.BreakGradientA, m.theme.BreakGradientB))
	} else {
		bar = progress.New(progress.WithGradient(m.theme.PomodoroGradientA, m.theme.PomodoroGradientB))
	}
	bar.Width = m.barWidth()
	return bar
}

func (m Model) barWidth() int {
	w := m.width - 8
	if w > 60 {
		w = 60
	}
	if w < 10 {
		w = 10
	}
	return w
}

func (m *Model) setFlash(msg string) {
	m.flash = msg
	m.flashTicks = flashTicks
	m.lastError = nil
}

// loadHistoryCmd returns a tea.Cmd that reads the session log.
func (m Model) loadHistoryCmd() tea.Cmd {
	if m.sessions == nil {
		return nil
	}
	sessions := m.sessions
	return func() tea.Msg {
		list, err := sessions.List(context.Background())
		return historyMsg{sessions: list, err: err}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = m.barWidth()
		m.dayBar.Width = m.barWidth()
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case historyMsg:
		if msg.err != nil {
			logging.LogError("loading session history", msg.err)
			m.lastError = msg.err
			return m, nil
		}
		m.history = msg.sessions
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenSettings:
			return m.updateSettings(msg)
		case screenHistory:
			return m.updateHistory(msg)
		default:
			return m.updateTimer(msg)
		}
	}

	if m.screen == screenSettings {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

// handleTick advances the timer one step and detects a finished interval.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.now = now

	before := m.timer.State()
	m.timer.Tick()
	m.refresh()

	cmds := []tea.Cmd{tickCmd(m.interval)}
	if completed, ok := completedMode(before, m.state); ok {
		m.banner, m.bannerBody = domain.CompletionMessage(completed)
		m.bannerTicks = bannerTicks
		m.progress = m.intervalBar()
		if completed == domain.ModePomodoro {
			cmds = append(cmds, m.loadHistoryCmd())
		}
	} else if m.bannerTicks > 0 {
		m.bannerTicks--
	}

	if m.flashTicks > 0 {
		m.flashTicks--
		if m.flashTicks == 0 {
			m.flash = ""
		}
	}

	return m, tea.Batch(cmds...)
}

// completedMode reports the mode that finished between two snapshots taken
// around a single Tick.
func completedMode(before, after domain.TimerState) (domain.TimerMode, bool) {
	if before.IsRunning && before.SecondsRemaining <= 1 && !after.IsRunning {
		return before.Mode, true
	}
	return "", false
}

func (m Model) updateTimer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.timer.Toggle()
		m.bannerTicks = 0
	case key.Matches(msg, m.keys.Reset):
		m.timer.Reset()
	case key.Matches(msg, m.keys.Pomodoro):
		m.switchMode(domain.ModePomodoro)
	case key.Matches(msg, m.keys.ShortBreak):
		m.switchMode(domain.ModeShortBreak)
	case key.Matches(msg, m.keys.LongBreak):
		m.switchMode(domain.ModeLongBreak)
	case key.Matches(msg, m.keys.NextMode):
		m.switchMode(m.state.Mode.Next())
	case key.Matches(msg, m.keys.PrevMode):
		m.switchMode(m.state.Mode.Prev())
	case key.Matches(msg, m.keys.Settings):
		m.screen = screenSettings
		m.form = newSettingsForm(m.timer.Settings())
		return m, m.form.focusCmd()
	case key.Matches(msg, m.keys.History):
		m.screen = screenHistory
		m.confirmClear = false
		return m, m.loadHistoryCmd()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	m.refresh()
	return m, nil
}

func (m *Model) switchMode(mode domain.TimerMode) {
	m.timer.SetMode(mode)
	m.bannerTicks = 0
	m.refresh()
	m.progress = m.intervalBar()
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.screen = screenTimer
		return m, nil
	case key.Matches(msg, m.keys.Save):
		return m.saveForm()
	case key.Matches(msg, m.keys.Down):
		m.form.next()
		return m, m.form.focusCmd()
	case key.Matches(msg, m.keys.Up):
		m.form.prev()
		return m, m.form.focusCmd()
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

// saveForm stores the form. Fields that do not parse keep their previous
// value.
func (m Model) saveForm() (tea.Model, tea.Cmd) {
	previous := m.timer.Settings()
	updated := m.form.apply(previous)

	var err error
	if m.saveSettings != nil {
		err = m.saveSettings(context.Background(), updated)
	} else {
		err = m.timer.UpdateSettings(updated)
	}
	if err != nil {
		logging.LogError("saving settings", err)
		m.lastError = err
		return m, nil
	}

	// An untouched idle countdown shows the new length right away.
	state := m.timer.State()
	if !state.IsRunning && state.SecondsRemaining == previous.Seconds(state.Mode) {
		m.timer.Reset()
	}

	m.refresh()
	m.screen = screenTimer
	m.setFlash("Settings saved")
	return m, nil
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmClear {
		m.confirmClear = false
		if msg.String() == "y" || msg.String() == "Y" {
			return m.clearHistory()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.History):
		m.screen = screenTimer
	case key.Matches(msg, m.keys.Clear):
		if len(m.history) > 0 && m.sessions != nil {
			m.confirmClear = true
		}
	}
	return m, nil
}

func (m Model) clearHistory() (tea.Model, tea.Cmd) {
	if err := m.sessions.Clear(context.Background()); err != nil {
		logging.LogError("clearing sessions", err)
		m.lastError = err
		return m, nil
	}
	m.history = nil
	m.setFlash("Sessions cleared")
	return m, nil
}

// tickCmd creates a command that sends a tick message.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
