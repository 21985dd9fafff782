package notification

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xvierd/focusday/internal/config"
)

type recorder struct {
	notifications []string
	beeps         int
	err           error
}

func newTestNotifier(cfg *config.NotificationConfig, rec *recorder) *Notifier {
	n := New(cfg)
	n.notify = func(title, message string, icon any) error {
		rec.notifications = append(rec.notifications, title+"|"+message)
		return rec.err
	}
	n.beep = func(freq float64, duration int) error {
		rec.beeps++
		return rec.err
	}
	return n
}

func TestNotifier_Enabled(t *testing.T) {
	rec := &recorder{}
	n := newTestNotifier(&config.NotificationConfig{Enabled: true, Sound: true}, rec)

	assert.NoError(t, n.Notify("Work session completed!", "Time to take a break!"))
	assert.NoError(t, n.PlaySound())

	assert.Equal(t, []string{"Work session completed!|Time to take a break!"}, rec.notifications)
	assert.Equal(t, 1, rec.beeps)
}

func TestNotifier_Disabled(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *config.NotificationConfig
		wantNotes int
		wantBeeps int
	}{
		{"nil config", nil, 0, 0},
		{"all off", &config.NotificationConfig{}, 0, 0},
		{"sound only", &config.NotificationConfig{Sound: true}, 0, 1},
		{"notifications only", &config.NotificationConfig{Enabled: true}, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			n := newTestNotifier(tt.cfg, rec)

			assert.NoError(t, n.Notify("Break completed!", "Time to focus!"))
			assert.NoError(t, n.PlaySound())

			assert.Len(t, rec.notifications, tt.wantNotes)
			assert.Equal(t, tt.wantBeeps, rec.beeps)
		})
	}
}

func TestNotifier_PropagatesErrors(t *testing.T) {
	rec := &recorder{err: errors.New("no notification daemon")}
	n := newTestNotifier(&config.NotificationConfig{Enabled: true, Sound: true}, rec)

	assert.Error(t, n.Notify("t", "b"))
	assert.Error(t, n.PlaySound())
}
