package ports

//go:generate mockgen -destination=mocks/mock_notifier.go -package=mocks github.com/xvierd/focusday/internal/ports Notifier

// Notifier delivers completion alerts.
// This is a driven port (implemented by adapters). Both calls are best-effort:
// callers log errors and carry on.
type Notifier interface {
	// Notify shows a desktop notification.
	Notify(title, body string) error

	// PlaySound plays the completion sound.
	PlaySound() error
}
