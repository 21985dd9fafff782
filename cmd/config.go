package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/focusday/internal/config"
)

var (
	configNotifications string
	configSound         string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the application configuration",
	Long: `Show the config file location and its values. Desktop notifications and
the completion sound can be switched with --notifications and --sound.
Timer lengths and the active day live in "focusday settings".`,
	Example: `  focusday config --notifications off
  focusday config --sound on`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.config
		changed := false

		if cmd.Flags().Changed("notifications") {
			v, err := parseOnOff(configNotifications)
			if err != nil {
				return fmt.Errorf("invalid --notifications: %w", err)
			}
			cfg.Notifications.Enabled = v
			changed = true
		}
		if cmd.Flags().Changed("sound") {
			v, err := parseOnOff(configSound)
			if err != nil {
				return fmt.Errorf("invalid --sound: %w", err)
			}
			cfg.Notifications.Sound = v
			changed = true
		}

		if changed {
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration saved.")
		}

		return printConfig(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	configCmd.Flags().StringVar(&configNotifications, "notifications", "", "Desktop notifications: on or off")
	configCmd.Flags().StringVar(&configSound, "sound", "", "Completion sound: on or off")
}

func printConfig(w io.Writer, cfg *config.Config) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	clock := "24-hour"
	if cfg.Clock.TwelveHour {
		clock = "12-hour"
	}

	fmt.Fprintf(w, "Config file:    %s\n", path)
	fmt.Fprintf(w, "Database:       %s\n", app.dbPath)
	fmt.Fprintf(w, "Log file:       %s\n", config.GetLogPath(cfg))
	fmt.Fprintf(w, "Notifications:  %s\n", onOff(cfg.Notifications.Enabled))
	fmt.Fprintf(w, "Sound:          %s\n", onOff(cfg.Notifications.Sound))
	fmt.Fprintf(w, "Clock:          %s\n", clock)
	fmt.Fprintf(w, "Tick interval:  %s\n", cfg.Timer.TickInterval)
	return nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("%q is not on or off", s)
}
