package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/focusday/internal/adapters/tui"
	"github.com/xvierd/focusday/internal/domain"
	"github.com/xvierd/focusday/internal/services"
)

var (
	startMode     string
	startHeadless bool
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a countdown",
	Long: `Start the timer right away. The mode defaults to pomodoro; names can be
abbreviated ("short", "lb").

Without a terminal, or with --headless, one interval runs in the foreground
and the command exits when it completes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := commandContext(cmd)

		if startMode != "" {
			mode, err := domain.ParseMode(startMode)
			if err != nil {
				return err
			}
			app.machine.SetMode(mode)
		}

		if startHeadless || !tui.IsInteractive() {
			ctx, cancel := setupSignalHandler(ctx)
			defer cancel()
			return runHeadless(ctx, cmd.OutOrStdout(), app.machine, time.Duration(app.config.Timer.TickInterval))
		}
		return runTUI(ctx, true)
	},
}

func init() {
	startCmd.Flags().StringVarP(&startMode, "mode", "m", "", "Mode to start: pomodoro, shortBreak or longBreak")
	startCmd.Flags().BoolVar(&startHeadless, "headless", false, "Run without the full-screen interface")
}

// runHeadless runs one interval with a Driver, printing the remaining time
// once a minute, and returns when it completes or ctx ends.
func runHeadless(ctx context.Context, out io.Writer, machine *services.PomodoroMachine, interval time.Duration) error {
	done := make(chan domain.Transition, 1)
	machine.OnTransition(func(tr domain.Transition) {
		select {
		case done <- tr:
		default:
		}
	})

	state := machine.State()
	fmt.Fprintf(out, "%s started: %s\n", state.Mode.Label(), formatMinutes(machine.Settings().Duration(state.Mode)))
	machine.Start()

	driver := services.NewDriver(machine, interval)
	driver.Start(ctx)
	defer driver.Stop()

	report := time.NewTicker(interval * 60)
	defer report.Stop()

	for {
		select {
		case tr := <-done:
			title, body := domain.CompletionMessage(tr.Completed)
			fmt.Fprintf(out, "%s %s\n", title, body)
			fmt.Fprintf(out, "Next: %s (%d completed)\n", tr.Next.Label(), tr.State.CompletedPomodoros)
			return nil
		case <-report.C:
			fmt.Fprintf(out, "%s remaining\n", machine.State().Clock())
		case <-ctx.Done():
			machine.Pause()
			fmt.Fprintf(out, "Stopped with %s remaining.\n", machine.State().Clock())
			return nil
		}
	}
}
