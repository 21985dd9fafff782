package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xvierd/focusday/internal/domain"
	"github.com/xvierd/focusday/internal/logging"
	"github.com/xvierd/focusday/internal/ports"
)

// StateService implements the StateProvider interface on top of the
// running machine and the stored settings and sessions.
type StateService struct {
	machine  *PomodoroMachine
	settings *SettingsService
	sessions *SessionLogService
}

// Ensure StateService implements StateProvider.
var _ ports.StateProvider = (*StateService)(nil)

// NewStateService creates a new state service.
func NewStateService(machine *PomodoroMachine, settings *SettingsService, sessions *SessionLogService) *StateService {
	return &StateService{
		machine:  machine,
		settings: settings,
		sessions: sessions,
	}
}

// TimerState implements ports.StateProvider.
func (s *StateService) TimerState(ctx context.Context) (domain.TimerState, domain.TimerSettings) {
	return s.machine.State(), s.machine.Settings()
}

// DayProgress implements ports.StateProvider.
func (s *StateService) DayProgress(ctx context.Context, now time.Time) (domain.DayProgress, domain.TimerSettings, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return domain.DayProgress{}, settings, err
	}
	progress := domain.ComputeDayProgress(domain.TimeOfDayFrom(now), settings.WakeUpTime, settings.BedTime)
	return progress, settings, nil
}

// Settings implements ports.StateProvider.
func (s *StateService) Settings(ctx context.Context) (domain.TimerSettings, error) {
	return s.settings.Load(ctx)
}

// RecentSessions implements ports.StateProvider.
func (s *StateService) RecentSessions(ctx context.Context, limit int) ([]domain.TimerSession, error) {
	return s.sessions.Recent(ctx, limit)
}

// Execute implements ports.StateProvider.
func (s *StateService) Execute(ctx context.Context, cmd ports.TimerCommand) (domain.TimerState, error) {
	if err := Execute(s.machine, cmd); err != nil {
		return s.machine.State(), err
	}
	return s.machine.State(), nil
}

// SwitchMode implements ports.StateProvider.
func (s *StateService) SwitchMode(ctx context.Context, mode domain.TimerMode) (domain.TimerState, error) {
	if !mode.Valid() {
		return s.machine.State(), fmt.Errorf("%w: %q", domain.ErrUnknownMode, mode)
	}
	s.machine.SetMode(mode)
	return s.machine.State(), nil
}

// EditSetting implements ports.StateProvider.
func (s *StateService) EditSetting(ctx context.Context, field domain.SettingsField, raw string) (domain.TimerSettings, bool, error) {
	settings, applied, err := s.settings.Edit(ctx, field, raw)
	if err != nil || !applied {
		return settings, applied, err
	}
	if err := s.machine.UpdateSettings(settings); err != nil {
		return settings, true, fmt.Errorf("failed to apply settings: %w", err)
	}
	return settings, true, nil
}

// SaveSettings stores settings and pushes them to the machine.
func (s *StateService) SaveSettings(ctx context.Context, settings domain.TimerSettings) error {
	if err := s.settings.Save(ctx, settings); err != nil {
		return err
	}
	return s.machine.UpdateSettings(settings)
}

// ReloadSettings pushes the stored settings to the machine. Failures keep the
// settings the machine already has.
func (s *StateService) ReloadSettings(ctx context.Context) domain.TimerSettings {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		logging.LogError("reloading settings", err)
		return s.machine.Settings()
	}
	if err := s.machine.UpdateSettings(settings); err != nil {
		logging.LogError("reloading settings", err)
	}
	return s.machine.Settings()
}
