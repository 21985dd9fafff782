package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/focusday/internal/config"
	"github.com/xvierd/focusday/internal/domain"
	"github.com/xvierd/focusday/internal/services"
)

// fakeSessionLog is an in-memory ports.SessionLog.
type fakeSessionLog struct {
	mu       sync.Mutex
	sessions []domain.TimerSession
	clearErr error
}

func (f *fakeSessionLog) RecordSession(ctx context.Context, s domain.TimerSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = append(f.sessions, s)
	return nil
}

func (f *fakeSessionLog) List(ctx context.Context) ([]domain.TimerSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.TimerSession(nil), f.sessions...), nil
}

func (f *fakeSessionLog) Since(ctx context.Context, since time.Time) ([]domain.TimerSession, error) {
	list, _ := f.List(ctx)
	return domain.SessionsSince(list, since), nil
}

func (f *fakeSessionLog) Clear(ctx context.Context) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = nil
	return nil
}

var testNow = time.Date(2026, 6, 15, 15, 0, 0, 0, time.Local)

func newTestModel(t *testing.T) (Model, *services.PomodoroMachine, *fakeSessionLog) {
	t.Helper()
	log := &fakeSessionLog{}
	machine := services.NewPomodoroMachine(domain.DefaultTimerSettings(), nil, log)
	machine.SetClock(func() time.Time { return testNow })
	m := NewModel(Options{
		Timer:      machine,
		Sessions:   log,
		TwelveHour: true,
		Now:        func() time.Time { return testNow },
	})
	m.width = 100
	m.height = 40
	return m, machine, log
}

func TestRenderBigClock(t *testing.T) {
	color := lipgloss.Color("#FFFFFF")

	narrow := renderBigClock("25:00", color, 20)
	if !strings.Contains(narrow, "25:00") {
		t.Errorf("narrow clock = %q, want plain text", narrow)
	}

	wide := renderBigClock("25:00", color, 80)
	if lines := strings.Split(wide, "\n"); len(lines) != glyphRows {
		t.Errorf("wide clock has %d lines, want %d", len(lines), glyphRows)
	}
	if !strings.Contains(wide, "┏━┓") {
		t.Errorf("wide clock = %q, want glyphs", wide)
	}

	if got := renderBigClock("-1:00", color, 80); !strings.Contains(got, "-1:00") {
		t.Errorf("unknown glyph should fall back to text, got %q", got)
	}
}

func TestGlyphWidths(t *testing.T) {
	for ch, g := range glyphs {
		want := len([]rune(g[0]))
		for i, row := range g {
			if n := len([]rune(row)); n != want {
				t.Errorf("glyph %q row %d is %d wide, want %d", ch, i, n, want)
			}
		}
	}
}

func TestNewModel(t *testing.T) {
	m, machine, _ := newTestModel(t)

	if m.state != machine.State() {
		t.Errorf("state = %+v, want %+v", m.state, machine.State())
	}
	if m.settings != machine.Settings() {
		t.Error("NewModel() should copy the timer settings")
	}
	if m.interval != time.Second {
		t.Errorf("interval = %v, want 1s", m.interval)
	}
	if !m.now.Equal(testNow) {
		t.Errorf("now = %v, want %v", m.now, testNow)
	}
	if m.Init() == nil {
		t.Error("Init() should start ticking")
	}
}

func TestModel_View_Loading(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.width = 0
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() = %q, want Loading...", got)
	}
}

func TestModel_View_Timer(t *testing.T) {
	m, _, log := newTestModel(t)
	_ = log.RecordSession(context.Background(), domain.NewTimerSession(testNow.Add(-time.Hour), 25))
	m.history, _ = log.List(context.Background())

	view := m.View()

	for _, want := range []string{
		"focusday",
		"Pomodoro",
		"Short Break",
		"Long Break",
		"Ready",
		"3:00:00 PM",
		"Monday, June 15, 2026",
		"Wake up 7:00 AM · Bed 11:00 PM",
		"50.0% of active day completed",
		"Active day in progress",
		"Today: 1 sessions, 25 min focused",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_View_DayStatus(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{5, "Before wake up time"},
		{23, "After bed time"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			m, _, _ := newTestModel(t)
			m.twelveHour = false
			m.now = time.Date(2026, 6, 15, tt.hour, 30, 0, 0, time.Local)

			view := m.View()
			if !strings.Contains(view, tt.want) {
				t.Errorf("View() missing %q", tt.want)
			}
			if !strings.Contains(view, "Wake up 07:00 · Bed 23:00") {
				t.Error("24 hour view should show 07:00 and 23:00")
			}
		})
	}
}

func TestModel_View_Banner(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.banner, m.bannerBody = domain.CompletionMessage(domain.ModePomodoro)
	m.bannerTicks = 2

	view := m.View()
	if !strings.Contains(view, "Work session completed!") || !strings.Contains(view, "Time to take a break!") {
		t.Error("View() should show the completion banner")
	}

	m.bannerTicks = 0
	if strings.Contains(m.View(), "Work session completed!") {
		t.Error("banner should be hidden once it expires")
	}
}

func TestCompletedMode(t *testing.T) {
	tests := []struct {
		name   string
		before domain.TimerState
		after  domain.TimerState
		want   domain.TimerMode
		ok     bool
	}{
		{
			"pomodoro finished",
			domain.TimerState{Mode: domain.ModePomodoro, SecondsRemaining: 1, IsRunning: true},
			domain.TimerState{Mode: domain.ModeShortBreak, SecondsRemaining: 300, CompletedPomodoros: 1},
			domain.ModePomodoro, true,
		},
		{
			"break finished",
			domain.TimerState{Mode: domain.ModeLongBreak, SecondsRemaining: 1, IsRunning: true},
			domain.TimerState{Mode: domain.ModePomodoro, SecondsRemaining: 1500},
			domain.ModeLongBreak, true,
		},
		{
			"plain tick",
			domain.TimerState{Mode: domain.ModePomodoro, SecondsRemaining: 10, IsRunning: true},
			domain.TimerState{Mode: domain.ModePomodoro, SecondsRemaining: 9, IsRunning: true},
			"", false,
		},
		{
			"stopped",
			domain.TimerState{Mode: domain.ModePomodoro, SecondsRemaining: 1},
			domain.TimerState{Mode: domain.ModePomodoro, SecondsRemaining: 1},
			"", false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := completedMode(tt.before, tt.after)
			if got != tt.want || ok != tt.ok {
				t.Errorf("completedMode() = %v, %v, want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestResolveTheme(t *testing.T) {
	defaults := config.DefaultThemeConfig()

	if got := resolveTheme(nil); got != defaults {
		t.Error("resolveTheme(nil) should return the defaults")
	}

	got := resolveTheme(&config.ThemeConfig{ColorPomodoro: "#123456"})
	if got.ColorPomodoro != "#123456" {
		t.Errorf("ColorPomodoro = %v, want #123456", got.ColorPomodoro)
	}
	if got.ColorBreak != defaults.ColorBreak {
		t.Errorf("ColorBreak = %v, want default %v", got.ColorBreak, defaults.ColorBreak)
	}
}

func TestModel_HistoryLoadError(t *testing.T) {
	m, _, _ := newTestModel(t)
	result, _ := m.Update(historyMsg{err: errors.New("disk on fire")})
	updated := result.(Model)

	if updated.lastError == nil {
		t.Fatal("history load error should be kept")
	}
	if !strings.Contains(updated.View(), "disk on fire") {
		t.Error("View() should show the error")
	}
}
