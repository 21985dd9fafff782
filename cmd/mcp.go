package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/focusday/internal/adapters/mcp"
	"github.com/xvierd/focusday/internal/config"
	"github.com/xvierd/focusday/internal/logging"
	"github.com/xvierd/focusday/internal/services"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server owns a timer of its own that keeps ticking while the server runs, and
provides tools to drive it, read the day progress and settings, and list sessions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol.
		fmt.Fprintln(os.Stderr, "Starting MCP server on stdio. Press Ctrl+C to stop.")

		closeLog, err := logging.Setup(config.GetLogPath(app.config))
		if err != nil {
			closeLog = logging.Discard()
		}
		defer closeLog()

		ctx, cancel := setupSignalHandler(commandContext(cmd))
		defer cancel()

		driver := services.NewDriver(app.machine, time.Duration(app.config.Timer.TickInterval))
		driver.Start(ctx)
		defer driver.Stop()

		server := mcp.NewServer(app.state)
		defer func() { _ = server.Stop() }()
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}
