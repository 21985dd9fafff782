// Package cmd provides the CLI commands for focusday.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/focusday/internal/adapters/tui"
	"github.com/xvierd/focusday/internal/config"
	"github.com/xvierd/focusday/internal/logging"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath     string
	jsonOutput bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "focusday",
	Short: "focusday - a Pomodoro timer that shows how much of your day is left",
	Long: `focusday is a terminal Pomodoro timer. Next to the countdown it shows
a live clock and how far you are through your active day, between your
wake up time and your bed time.

Run "focusday" with no arguments to open the timer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices(commandContext(cmd))
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(commandContext(cmd), false)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (default: ~/.focusday/focusday.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("focusday\nVersion: {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(resetCmd)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// runTUI opens the full-screen timer. Log output goes to the log file while
// the interface owns the terminal.
func runTUI(ctx context.Context, startRunning bool) error {
	if startRunning {
		app.machine.Start()
	}

	closeLog, err := logging.Setup(config.GetLogPath(app.config))
	if err != nil {
		closeLog = logging.Discard()
	}
	defer closeLog()

	ctx, cancel := setupSignalHandler(ctx)
	defer cancel()

	ui := tui.NewTimer(tui.Options{
		Timer:        app.machine,
		SaveSettings: app.state.SaveSettings,
		Sessions:     app.sessions,
		Theme:        &app.config.Theme,
		TwelveHour:   app.config.Clock.TwelveHour,
		TickInterval: time.Duration(app.config.Timer.TickInterval),
	})
	return ui.Run(ctx)
}

// formatMinutes formats a duration as 25m, 1h or 1h30m.
func formatMinutes(d time.Duration) string {
	if d >= time.Hour {
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm", int(d.Minutes()))
}

// onOff renders a boolean setting.
func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
