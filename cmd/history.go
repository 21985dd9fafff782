package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xvierd/focusday/internal/domain"
)

var (
	historyLimit      int
	historyClearForce bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed pomodoros",
	Long:  `List completed pomodoro sessions, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		all, err := app.sessions.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to load sessions: %w", err)
		}
		sessions, err := app.sessions.Recent(ctx, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to load sessions: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			jsonData, err := json.MarshalIndent(sessions, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal sessions: %w", err)
			}
			fmt.Fprintln(out, string(jsonData))
			return nil
		}

		if len(all) == 0 {
			fmt.Fprintln(out, "No completed sessions yet.")
			return nil
		}

		stats := domain.Summarize(all)
		fmt.Fprintf(out, "%d completed sessions, %s focused\n\n", stats.Sessions, formatMinutes(stats.TotalFocus))
		for _, s := range sessions {
			line := fmt.Sprintf("  %s  %-10s %3d min", s.Timestamp.Local().Format("2006-01-02 15:04"), s.Mode.Label(), s.DurationMinutes)
			if s.Branch != "" {
				line += "  " + s.Branch
			}
			fmt.Fprintln(out, line)
		}
		if more := len(all) - len(sessions); more > 0 {
			fmt.Fprintf(out, "  … and %d more (use --limit 0 to list all)\n", more)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !historyClearForce {
			fmt.Fprint(cmd.OutOrStdout(), "Clear all sessions? Type 'yes' to confirm: ")
			reader := bufio.NewReader(cmd.InOrStdin())
			input, _ := reader.ReadString('\n')
			if strings.TrimSpace(strings.ToLower(input)) != "yes" {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
		}

		if err := app.sessions.Clear(commandContext(cmd)); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Sessions cleared")
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of sessions to show (0 for all)")
	historyClearCmd.Flags().BoolVarP(&historyClearForce, "force", "f", false, "Skip confirmation prompt")
	historyCmd.AddCommand(historyClearCmd)
}
