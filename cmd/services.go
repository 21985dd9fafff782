package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/xvierd/focusday/internal/adapters/git"
	"github.com/xvierd/focusday/internal/adapters/notification"
	"github.com/xvierd/focusday/internal/adapters/storage"
	"github.com/xvierd/focusday/internal/config"
	"github.com/xvierd/focusday/internal/ports"
	"github.com/xvierd/focusday/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config   *config.Config
	dbPath   string
	storage  ports.KeyValueStore
	notifier *notification.Notifier
	git      ports.GitDetector
	settings *services.SettingsService
	sessions *services.SessionLogService
	machine  *services.PomodoroMachine
	state    *services.StateService
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// loadConfig reads the config file, falling back to the defaults.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// resolveDBPath returns the --db flag or the configured database path.
func resolveDBPath(cfg *config.Config) string {
	if dbPath != "" {
		return dbPath
	}
	return config.GetDBPath(cfg)
}

// initializeServices sets up all the required services and adapters.
func initializeServices(ctx context.Context) error {
	if err := cleanupServices(); err != nil {
		return fmt.Errorf("failed to close previous storage: %w", err)
	}
	app = appDeps{config: loadConfig()}
	app.dbPath = resolveDBPath(app.config)

	// Ensure directory exists
	if err := os.MkdirAll(getDir(app.dbPath), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	var err error
	app.storage, err = storage.New(app.dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.notifier = notification.New(&app.config.Notifications)
	app.git = git.NewDetector()

	app.settings = services.NewSettingsService(app.storage)
	app.sessions = services.NewSessionLogService(app.storage)
	if cwd, err := os.Getwd(); err == nil {
		app.sessions.SetGitDetector(app.git, cwd)
	}

	settings, err := app.settings.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	app.machine = services.NewPomodoroMachine(settings, app.notifier, app.sessions)
	app.state = services.NewStateService(app.machine, app.settings, app.sessions)
	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.storage == nil {
		return nil
	}
	err := app.storage.Close()
	app.storage = nil
	return err
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// getDir returns the directory part of path.
func getDir(path string) string {
	lastSep := -1
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			lastSep = i
			break
		}
	}
	switch {
	case lastSep < 0:
		return "."
	case lastSep == 0:
		return path[:1]
	}
	return path[:lastSep]
}
