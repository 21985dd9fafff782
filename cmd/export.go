package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/xvierd/focusday/internal/adapters/export"
)

var (
	exportFormat string
	exportPeriod string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export session history",
	Long: `Export your completed pomodoros as markdown, CSV, YAML or PDF.
PDF output needs --output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(commandContext(cmd), cmd.OutOrStdout())
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "md", "Output format: md, csv, yaml or pdf")
	exportCmd.Flags().StringVar(&exportPeriod, "period", "week", "Time period: today, week, month, or all")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this file instead of stdout")
}

func runExport(ctx context.Context, stdout io.Writer) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	t := now()
	since, err := export.PeriodStart(exportPeriod, t)
	if err != nil {
		return err
	}
	if format == export.FormatPDF && exportOutput == "" {
		return fmt.Errorf("pdf export needs --output, e.g. --output sessions%s", format.Extension())
	}

	sessions, err := app.sessions.Since(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to fetch sessions: %w", err)
	}
	report := export.NewReport(t, exportPeriod, sessions)

	if exportOutput == "" {
		return export.Write(stdout, format, report)
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := export.Write(f, format, report); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	fmt.Fprintf(stdout, "Exported %d sessions to %s\n", len(sessions), exportOutput)
	return nil
}
