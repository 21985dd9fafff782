package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/focusday/internal/domain"
)

// settingsFlags maps the flags of "settings set" to the fields they edit.
var settingsFlags = []struct {
	name  string
	field domain.SettingsField
	usage string
}{
	{"pomodoro", domain.FieldPomodoro, "Pomodoro length in minutes"},
	{"short-break", domain.FieldShortBreak, "Short break length in minutes"},
	{"long-break", domain.FieldLongBreak, "Long break length in minutes"},
	{"wake", domain.FieldWakeUpTime, "Wake up time (HH:MM)"},
	{"bed", domain.FieldBedTime, "Bed time (HH:MM)"},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the timer settings",
	Long:  `Show the interval lengths and the active day boundaries.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := app.settings.Load(commandContext(cmd))
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		if jsonOutput {
			return outputSettingsJSON(cmd.OutOrStdout(), settings)
		}
		printSettings(cmd.OutOrStdout(), settings)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change timer settings",
	Long: `Change one or more settings. Durations are whole minutes (at least 1),
times are HH:MM. Values that do not parse are ignored and the previous value
is kept.`,
	Example: `  focusday settings set --pomodoro 50 --short-break 10
  focusday settings set --wake 06:30 --bed 22:30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		changed := 0
		for _, f := range settingsFlags {
			if !cmd.Flags().Changed(f.name) {
				continue
			}
			changed++
			raw, _ := cmd.Flags().GetString(f.name)
			_, applied, err := app.state.EditSetting(ctx, f.field, raw)
			if err != nil {
				return fmt.Errorf("failed to update %s: %w", f.field.Label(), err)
			}
			if !applied {
				fmt.Fprintf(cmd.ErrOrStderr(), "Ignored invalid value %q for %s\n", raw, f.field.Label())
			}
		}
		if changed == 0 {
			return fmt.Errorf("nothing to change; see --help for the available flags")
		}

		settings, err := app.settings.Load(ctx)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Settings saved")
		printSettings(cmd.OutOrStdout(), settings)
		return nil
	},
}

func init() {
	for _, f := range settingsFlags {
		settingsSetCmd.Flags().String(f.name, "", f.usage)
	}
	settingsCmd.AddCommand(settingsSetCmd)
}

func printSettings(w io.Writer, s domain.TimerSettings) {
	for _, field := range domain.SettingsFields {
		fmt.Fprintf(w, "  %-22s %s\n", field.Label()+":", s.Value(field))
	}
	fmt.Fprintf(w, "  %-22s %s\n", "Active day:", formatMinutes(time.Duration(domain.ActiveDayMinutes(s.WakeUpTime, s.BedTime))*time.Minute))
}

func outputSettingsJSON(w io.Writer, s domain.TimerSettings) error {
	jsonData, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}
