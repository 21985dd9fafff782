// Package notification provides desktop notification utilities.
package notification

import (
	"github.com/gen2brain/beeep"
	"github.com/xvierd/focusday/internal/config"
	"github.com/xvierd/focusday/internal/ports"
)

// Notifier handles desktop notifications and the completion beep.
type Notifier struct {
	cfg *config.NotificationConfig

	notify func(title, message string, icon any) error
	beep   func(freq float64, duration int) error
}

// Ensure Notifier implements ports.Notifier.
var _ ports.Notifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	beeep.AppName = "focusday"
	return &Notifier{
		cfg:    cfg,
		notify: beeep.Notify,
		beep:   beeep.Beep,
	}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, body string) error {
	if !n.IsEnabled() {
		return nil
	}
	return n.notify(title, body, "")
}

// PlaySound beeps if sound is enabled.
func (n *Notifier) PlaySound() error {
	if !n.SoundEnabled() {
		return nil
	}
	return n.beep(beeep.DefaultFreq, beeep.DefaultDuration)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}

// SoundEnabled returns true if the completion sound is enabled.
func (n *Notifier) SoundEnabled() bool {
	return n.cfg != nil && n.cfg.Sound
}
