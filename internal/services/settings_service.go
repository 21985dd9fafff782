package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xvierd/focusday/internal/domain"
	"github.com/xvierd/focusday/internal/logging"
	"github.com/xvierd/focusday/internal/ports"
)

// SettingsService persists TimerSettings as JSON in the key-value store.
type SettingsService struct {
	store ports.KeyValueStore
}

// Ensure SettingsService implements ports.SettingsStore.
var _ ports.SettingsStore = (*SettingsService)(nil)

// NewSettingsService creates a new settings service.
func NewSettingsService(store ports.KeyValueStore) *SettingsService {
	return &SettingsService{store: store}
}

// Load returns the stored settings. Missing, unreadable or invalid data
// yields the defaults; only storage failures are returned as errors.
func (s *SettingsService) Load(ctx context.Context) (domain.TimerSettings, error) {
	raw, ok, err := s.store.Get(ctx, ports.KeySettings)
	if err != nil {
		return domain.DefaultTimerSettings(), fmt.Errorf("failed to load settings: %w", err)
	}
	if !ok {
		return domain.DefaultTimerSettings(), nil
	}

	settings := domain.DefaultTimerSettings()
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		logging.LogError("ignoring stored settings", err)
		return domain.DefaultTimerSettings(), nil
	}
	if err := settings.Validate(); err != nil {
		logging.LogError("ignoring stored settings", err)
		return domain.DefaultTimerSettings(), nil
	}
	return settings, nil
}

// Save validates and stores settings.
func (s *SettingsService) Save(ctx context.Context, settings domain.TimerSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.store.Set(ctx, ports.KeySettings, string(data)); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Edit applies a single field edit and saves the result. Edits that do not
// parse are ignored: the stored settings are returned unchanged with applied
// set to false.
func (s *SettingsService) Edit(ctx context.Context, field domain.SettingsField, raw string) (settings domain.TimerSettings, applied bool, err error) {
	current, err := s.Load(ctx)
	if err != nil {
		return current, false, err
	}
	updated, ok := domain.ApplySettingsEdit(current, field, raw)
	if !ok {
		return current, false, nil
	}
	if err := s.Save(ctx, updated); err != nil {
		return current, false, err
	}
	return updated, true, nil
}

// Reset removes the stored settings so the defaults apply again.
func (s *SettingsService) Reset(ctx context.Context) error {
	if err := s.store.Remove(ctx, ports.KeySettings); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	return nil
}
