package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/focusday/internal/domain"
	"github.com/xvierd/focusday/internal/ports"
	"github.com/xvierd/focusday/internal/ports/mocks"
)

var fixedNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newTestMachine(t *testing.T, settings domain.TimerSettings) (*PomodoroMachine, *mocks.MockNotifier, *mocks.MockSessionSink) {
	t.Helper()
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	sink := mocks.NewMockSessionSink(ctrl)
	m := NewPomodoroMachine(settings, notifier, sink)
	m.SetClock(func() time.Time { return fixedNow })
	return m, notifier, sink
}

func tickN(m *PomodoroMachine, n int) {
	for i := 0; i < n; i++ {
		m.Tick()
	}
}

func shortSettings() domain.TimerSettings {
	s := domain.DefaultTimerSettings()
	s.Pomodoro, s.ShortBreak, s.LongBreak = 1, 1, 2
	return s
}

func TestPomodoroMachine_InitialState(t *testing.T) {
	m := NewPomodoroMachine(domain.DefaultTimerSettings(), nil, nil)

	assert.Equal(t, domain.TimerState{
		Mode:             domain.ModePomodoro,
		SecondsRemaining: 1500,
	}, m.State())
}

func TestPomodoroMachine_InvalidInitialSettings(t *testing.T) {
	bad := domain.DefaultTimerSettings()
	bad.Pomodoro = 0

	m := NewPomodoroMachine(bad, nil, nil)

	assert.Equal(t, domain.DefaultTimerSettings(), m.Settings())
	assert.Equal(t, 1500, m.State().SecondsRemaining)
}

func TestPomodoroMachine_FirstPomodoroCompletes(t *testing.T) {
	m, notifier, sink := newTestMachine(t, domain.DefaultTimerSettings())

	gomock.InOrder(
		notifier.EXPECT().Notify("Work session completed!", "Time to take a break!").Return(nil),
		notifier.EXPECT().PlaySound().Return(nil),
		sink.EXPECT().RecordSession(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ interface{}, s domain.TimerSession) error {
				assert.Equal(t, fixedNow, s.Timestamp)
				assert.Equal(t, 25, s.DurationMinutes)
				assert.Equal(t, domain.ModePomodoro, s.Mode)
				assert.NotEmpty(t, s.ID)
				return nil
			}),
	)

	var transitions []domain.Transition
	m.OnTransition(func(tr domain.Transition) { transitions = append(transitions, tr) })

	m.Start()
	tickN(m, 1499)
	assert.Equal(t, 1, m.State().SecondsRemaining)
	assert.Empty(t, transitions)

	m.Tick()

	state := m.State()
	assert.Equal(t, domain.ModeShortBreak, state.Mode)
	assert.Equal(t, 5*60, state.SecondsRemaining)
	assert.False(t, state.IsRunning)
	assert.Equal(t, 1, state.CompletedPomodoros)

	require.Len(t, transitions, 1)
	assert.Equal(t, domain.ModePomodoro, transitions[0].Completed)
	assert.Equal(t, domain.ModeShortBreak, transitions[0].Next)
	require.NotNil(t, transitions[0].Session)
	assert.Equal(t, state, transitions[0].State)

	// Stopped after completion: further ticks change nothing.
	tickN(m, 10)
	assert.Equal(t, state, m.State())
}

func TestPomodoroMachine_FourthPomodoroEarnsLongBreak(t *testing.T) {
	settings := shortSettings()
	m, notifier, sink := newTestMachine(t, settings)

	notifier.EXPECT().Notify("Work session completed!", "Time to take a break!").Return(nil).Times(4)
	notifier.EXPECT().Notify("Break completed!", "Time to focus!").Return(nil).Times(3)
	notifier.EXPECT().PlaySound().Return(nil).Times(7)
	sink.EXPECT().RecordSession(gomock.Any(), gomock.Any()).Return(nil).Times(4)

	var modes []domain.TimerMode
	m.OnTransition(func(tr domain.Transition) { modes = append(modes, tr.Next) })

	for i := 0; i < 7; i++ {
		m.Start()
		tickN(m, m.State().SecondsRemaining)
	}

	assert.Equal(t, []domain.TimerMode{
		domain.ModeShortBreak, domain.ModePomodoro,
		domain.ModeShortBreak, domain.ModePomodoro,
		domain.ModeShortBreak, domain.ModePomodoro,
		domain.ModeLongBreak,
	}, modes)

	state := m.State()
	assert.Equal(t, 4, state.CompletedPomodoros)
	assert.Equal(t, domain.ModeLongBreak, state.Mode)
	assert.Equal(t, settings.LongBreak*60, state.SecondsRemaining)
}

func TestPomodoroMachine_LongBreakReturnsToPomodoro(t *testing.T) {
	m, notifier, _ := newTestMachine(t, shortSettings())
	notifier.EXPECT().Notify("Break completed!", "Time to focus!").Return(nil)
	notifier.EXPECT().PlaySound().Return(nil)

	m.SetMode(domain.ModeLongBreak)
	m.Start()
	tickN(m, 120)

	state := m.State()
	assert.Equal(t, domain.ModePomodoro, state.Mode)
	assert.Equal(t, 60, state.SecondsRemaining)
	assert.Equal(t, 0, state.CompletedPomodoros)
}

func TestPomodoroMachine_TickWhileStopped(t *testing.T) {
	m, _, _ := newTestMachine(t, domain.DefaultTimerSettings())
	before := m.State()

	tickN(m, 100)

	assert.Equal(t, before, m.State())
}

func TestPomodoroMachine_PauseIsIdempotent(t *testing.T) {
	once, _, _ := newTestMachine(t, domain.DefaultTimerSettings())
	twice, _, _ := newTestMachine(t, domain.DefaultTimerSettings())

	for _, m := range []*PomodoroMachine{once, twice} {
		m.Start()
		tickN(m, 42)
	}
	once.Pause()
	twice.Pause()
	twice.Pause()

	assert.Equal(t, once.State(), twice.State())
	assert.False(t, twice.State().IsRunning)
	assert.Equal(t, 1500-42, twice.State().SecondsRemaining)
}

func TestPomodoroMachine_ResetKeepsModeAndCount(t *testing.T) {
	m, notifier, sink := newTestMachine(t, shortSettings())
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	notifier.EXPECT().PlaySound().Return(nil).AnyTimes()
	sink.EXPECT().RecordSession(gomock.Any(), gomock.Any()).Return(nil)

	m.Start()
	tickN(m, 60)
	m.Start()
	tickN(m, 25)
	before := m.State()
	require.Equal(t, domain.ModeShortBreak, before.Mode)
	require.True(t, before.IsRunning)

	m.Reset()

	after := m.State()
	assert.Equal(t, before.Mode, after.Mode)
	assert.Equal(t, before.CompletedPomodoros, after.CompletedPomodoros)
	assert.Equal(t, 60, after.SecondsRemaining)
	assert.False(t, after.IsRunning)
}

func TestPomodoroMachine_StartTwiceIsNoop(t *testing.T) {
	m, _, _ := newTestMachine(t, domain.DefaultTimerSettings())
	m.Start()
	tickN(m, 3)
	before := m.State()

	m.Start()

	assert.Equal(t, before, m.State())
}

func TestPomodoroMachine_SetMode(t *testing.T) {
	m, _, _ := newTestMachine(t, domain.DefaultTimerSettings())
	m.Start()
	tickN(m, 10)

	m.SetMode(domain.ModeLongBreak)
	assert.Equal(t, domain.TimerState{Mode: domain.ModeLongBreak, SecondsRemaining: 900}, m.State())

	m.SetMode(domain.TimerMode("siesta"))
	assert.Equal(t, domain.ModeLongBreak, m.State().Mode, "unknown modes are ignored")

	m.SetMode(domain.ModePomodoro)
	assert.Equal(t, 1500, m.State().SecondsRemaining)
}

func TestPomodoroMachine_Toggle(t *testing.T) {
	m, _, _ := newTestMachine(t, domain.DefaultTimerSettings())

	m.Toggle()
	assert.True(t, m.State().IsRunning)
	m.Toggle()
	assert.False(t, m.State().IsRunning)
}

func TestPomodoroMachine_UpdateSettings(t *testing.T) {
	t.Run("countdown is not rescaled", func(t *testing.T) {
		m, _, _ := newTestMachine(t, domain.DefaultTimerSettings())
		m.Start()
		tickN(m, 100)

		updated := domain.DefaultTimerSettings()
		updated.Pomodoro = 50
		require.NoError(t, m.UpdateSettings(updated))

		assert.Equal(t, 1400, m.State().SecondsRemaining)
		assert.True(t, m.State().IsRunning)
		assert.Equal(t, 50, m.Settings().Pomodoro)

		m.Reset()
		assert.Equal(t, 3000, m.State().SecondsRemaining)
	})

	t.Run("paused countdown is not rescaled", func(t *testing.T) {
		m, _, _ := newTestMachine(t, domain.DefaultTimerSettings())

		updated := domain.DefaultTimerSettings()
		updated.Pomodoro = 10
		require.NoError(t, m.UpdateSettings(updated))

		assert.Equal(t, 1500, m.State().SecondsRemaining)
	})

	t.Run("invalid settings are rejected", func(t *testing.T) {
		m, _, _ := newTestMachine(t, domain.DefaultTimerSettings())

		bad := domain.DefaultTimerSettings()
		bad.ShortBreak = -1
		err := m.UpdateSettings(bad)

		assert.ErrorIs(t, err, domain.ErrInvalidSettings)
		assert.Equal(t, domain.DefaultTimerSettings(), m.Settings())
	})

	t.Run("completion uses new lengths", func(t *testing.T) {
		m, notifier, sink := newTestMachine(t, shortSettings())
		notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil)
		notifier.EXPECT().PlaySound().Return(nil)
		sink.EXPECT().RecordSession(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ interface{}, s domain.TimerSession) error {
				assert.Equal(t, 3, s.DurationMinutes)
				return nil
			})

		m.Start()
		updated := shortSettings()
		updated.Pomodoro, updated.ShortBreak = 3, 4
		require.NoError(t, m.UpdateSettings(updated))
		tickN(m, 60)

		assert.Equal(t, domain.ModeShortBreak, m.State().Mode)
		assert.Equal(t, 240, m.State().SecondsRemaining)
	})
}

func TestPomodoroMachine_SideEffectFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(n *mocks.MockNotifier, s *mocks.MockSessionSink)
	}{
		{
			name: "every callback errors",
			setup: func(n *mocks.MockNotifier, s *mocks.MockSessionSink) {
				n.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(errors.New("no daemon"))
				n.EXPECT().PlaySound().Return(errors.New("no speaker"))
				s.EXPECT().RecordSession(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
			},
		},
		{
			name: "every callback panics",
			setup: func(n *mocks.MockNotifier, s *mocks.MockSessionSink) {
				n.EXPECT().Notify(gomock.Any(), gomock.Any()).Do(func(string, string) { panic("notify") })
				n.EXPECT().PlaySound().Do(func() { panic("sound") })
				s.EXPECT().RecordSession(gomock.Any(), gomock.Any()).Do(func(interface{}, domain.TimerSession) { panic("sink") })
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, notifier, sink := newTestMachine(t, shortSettings())
			tt.setup(notifier, sink)
			hookCalled := false
			m.OnTransition(func(domain.Transition) { hookCalled = true })

			m.Start()
			tickN(m, 60)

			state := m.State()
			assert.Equal(t, domain.ModeShortBreak, state.Mode)
			assert.Equal(t, 60, state.SecondsRemaining)
			assert.Equal(t, 1, state.CompletedPomodoros)
			assert.False(t, state.IsRunning)
			assert.True(t, hookCalled)
		})
	}
}

func TestPomodoroMachine_NilCollaborators(t *testing.T) {
	m := NewPomodoroMachine(shortSettings(), nil, nil)

	m.Start()
	tickN(m, 60)

	assert.Equal(t, domain.ModeShortBreak, m.State().Mode)
}

func TestPomodoroMachine_HookMayCallMachine(t *testing.T) {
	m := NewPomodoroMachine(shortSettings(), nil, nil)
	m.OnTransition(func(domain.Transition) { m.Start() })

	m.Start()
	tickN(m, 60)

	assert.True(t, m.State().IsRunning, "auto-start from the hook")
	assert.Equal(t, domain.ModeShortBreak, m.State().Mode)
}

func TestExecute(t *testing.T) {
	m := NewPomodoroMachine(domain.DefaultTimerSettings(), nil, nil)

	require.NoError(t, Execute(m, ports.CmdStart))
	assert.True(t, m.State().IsRunning)

	require.NoError(t, Execute(m, ports.CmdPause))
	assert.False(t, m.State().IsRunning)

	require.NoError(t, Execute(m, ports.CmdToggle))
	assert.True(t, m.State().IsRunning)
	m.Tick()

	require.NoError(t, Execute(m, ports.CmdReset))
	assert.Equal(t, 1500, m.State().SecondsRemaining)
	assert.False(t, m.State().IsRunning)

	err := Execute(m, ports.TimerCommand("skip"))
	assert.ErrorIs(t, err, domain.ErrUnknownCommand)
}
