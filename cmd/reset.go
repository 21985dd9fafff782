package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all sessions and settings (wipes the database)",
	Long: `Permanently deletes the focusday database, removing your settings and
session history. This cannot be undone. Use --force to skip the confirmation prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		path := app.dbPath

		if !resetForce {
			fmt.Fprintf(out, "This will permanently delete: %s\n", path)
			fmt.Fprint(out, "Are you sure? Type 'yes' to confirm: ")
			reader := bufio.NewReader(cmd.InOrStdin())
			input, _ := reader.ReadString('\n')
			input = strings.TrimSpace(strings.ToLower(input))
			if input != "yes" {
				fmt.Fprintln(out, "Aborted.")
				return nil
			}
		}

		// The store was opened by the pre-run hook.
		if err := cleanupServices(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}

		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintln(out, "Nothing to reset, the database does not exist.")
				return nil
			}
			return fmt.Errorf("failed to delete database: %w", err)
		}

		fmt.Fprintln(out, "Database deleted. Fresh start.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip confirmation prompt")
}
