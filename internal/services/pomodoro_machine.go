package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/xvierd/focusday/internal/domain"
	"github.com/xvierd/focusday/internal/logging"
	"github.com/xvierd/focusday/internal/ports"
)

// PomodoroMachine is the pomodoro state machine. It owns the timer state and
// advances it once per Tick. Every method is safe for concurrent use.
//
// When a countdown reaches zero the machine finishes the transition to the
// next interval under its lock, then notifies, plays the sound and records
// the session. Side effect failures are logged and never undo a transition.
type PomodoroMachine struct {
	mu       sync.Mutex
	state    domain.TimerState
	settings domain.TimerSettings

	notifier ports.Notifier
	sink     ports.SessionSink
	now      func() time.Time
	hooks    []func(domain.Transition)
}

// Ensure PomodoroMachine implements ports.PomodoroTimer.
var _ ports.PomodoroTimer = (*PomodoroMachine)(nil)

// NewPomodoroMachine creates a stopped machine at the start of a pomodoro.
// Invalid settings are replaced by the defaults. notifier and sink may be nil.
func NewPomodoroMachine(settings domain.TimerSettings, notifier ports.Notifier, sink ports.SessionSink) *PomodoroMachine {
	if err := settings.Validate(); err != nil {
		logging.LogError("pomodoro machine: using default settings", err)
		settings = domain.DefaultTimerSettings()
	}
	return &PomodoroMachine{
		state:    domain.InitialTimerState(settings),
		settings: settings,
		notifier: notifier,
		sink:     sink,
		now:      time.Now,
	}
}

// SetClock replaces the clock used to timestamp sessions.
func (m *PomodoroMachine) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// OnTransition registers fn to be called after every completed interval,
// once the side effects have run.
func (m *PomodoroMachine) OnTransition(fn func(domain.Transition)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, fn)
}

// State returns a copy of the current state.
func (m *PomodoroMachine) State() domain.TimerState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Settings returns a copy of the settings in use.
func (m *PomodoroMachine) Settings() domain.TimerSettings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// Start runs the countdown. It does nothing if the timer is already running
// or has nothing left to count.
func (m *PomodoroMachine) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.IsRunning || m.state.SecondsRemaining == 0 {
		return
	}
	m.state.IsRunning = true
}

// Pause stops the countdown.
func (m *PomodoroMachine) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.IsRunning = false
}

// Toggle starts a stopped timer or pauses a running one.
func (m *PomodoroMachine) Toggle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.IsRunning {
		m.state.IsRunning = false
		return
	}
	m.state.IsRunning = m.state.SecondsRemaining > 0
}

// Reset reloads the full length of the current mode and stops the timer.
// The mode and the completed count are kept.
func (m *PomodoroMachine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.SecondsRemaining = m.settings.Seconds(m.state.Mode)
	m.state.IsRunning = false
}

// SetMode switches to mode, reloads its length and stops the timer. It may
// be called at any time. Unknown modes are ignored.
func (m *PomodoroMachine) SetMode(mode domain.TimerMode) {
	if !mode.Valid() {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Mode = mode
	m.state.SecondsRemaining = m.settings.Seconds(mode)
	m.state.IsRunning = false
}

// UpdateSettings replaces the settings. The countdown in progress keeps its
// length; the new lengths apply from the next reset, mode switch or
// completion.
func (m *PomodoroMachine) UpdateSettings(s domain.TimerSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s
	return nil
}

// Tick advances a running countdown by one second. When it reaches zero the
// completion runs before Tick returns.
func (m *PomodoroMachine) Tick() {
	m.mu.Lock()
	if !m.state.IsRunning || m.state.SecondsRemaining <= 0 {
		m.mu.Unlock()
		return
	}
	m.state.SecondsRemaining--
	if m.state.SecondsRemaining > 0 {
		m.mu.Unlock()
		return
	}

	tr := m.completeLocked()
	notifier, sink := m.notifier, m.sink
	hooks := append([]func(domain.Transition){}, m.hooks...)
	m.mu.Unlock()

	m.runSideEffects(tr, notifier, sink)
	for _, fn := range hooks {
		guard("transition hook", func() error {
			fn(tr)
			return nil
		})
	}
}

// completeLocked moves to the interval after the one that just finished.
// m.mu must be held.
func (m *PomodoroMachine) completeLocked() domain.Transition {
	completed := m.state.Mode
	m.state.IsRunning = false

	var session *domain.TimerSession
	if completed == domain.ModePomodoro {
		m.state.CompletedPomodoros++
		s := domain.NewTimerSession(m.now(), m.settings.Pomodoro)
		session = &s
	}

	next := domain.NextModeAfter(completed, m.state.CompletedPomodoros)
	m.state.Mode = next
	m.state.SecondsRemaining = m.settings.Seconds(next)

	return domain.Transition{
		Completed: completed,
		Next:      next,
		Session:   session,
		State:     m.state,
	}
}

func (m *PomodoroMachine) runSideEffects(tr domain.Transition, notifier ports.Notifier, sink ports.SessionSink) {
	if notifier != nil {
		title, body := domain.CompletionMessage(tr.Completed)
		guard("notification", func() error { return notifier.Notify(title, body) })
		guard("completion sound", notifier.PlaySound)
	}
	if sink != nil && tr.Session != nil {
		session := *tr.Session
		guard("recording session", func() error {
			return sink.RecordSession(context.Background(), session)
		})
	}
}

// guard runs fn, logging its error or a panic.
func guard(what string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			logging.LogPanic(what, r)
		}
	}()
	if err := fn(); err != nil {
		logging.LogError(what, err)
	}
}

// Execute applies a timer command.
func Execute(t ports.PomodoroTimer, cmd ports.TimerCommand) error {
	switch cmd {
	case ports.CmdStart:
		t.Start()
	case ports.CmdPause:
		t.Pause()
	case ports.CmdReset:
		t.Reset()
	case ports.CmdToggle:
		t.Toggle()
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownCommand, cmd)
	}
	return nil
}
