// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/focusday/internal/domain"
	"github.com/xvierd/focusday/internal/ports"
)

const defaultSessionLimit = 10

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server        *server.MCPServer
	stateProvider ports.StateProvider
	now           func() time.Time
	mu            sync.Mutex
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(stateProvider ports.StateProvider) *Server {
	s := &Server{
		stateProvider: stateProvider,
		now:           time.Now,
	}

	s.server = server.NewMCPServer(
		"focusday",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_timer_state",
			mcp.WithDescription("Get the pomodoro timer state: mode, remaining time, running flag and completed pomodoros"),
		),
		s.handleGetTimerState,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_day_progress",
			mcp.WithDescription("Get how far the current time is through the active day between wake up time and bed time"),
		),
		s.handleGetDayProgress,
	)

	s.server.AddTool(
		mcp.NewTool(
			"get_settings",
			mcp.WithDescription("Get the interval lengths and the active day boundaries"),
		),
		s.handleGetSettings,
	)

	s.server.AddTool(
		mcp.NewTool(
			"update_setting",
			mcp.WithDescription("Change one timer setting. Durations are whole minutes, times are HH:MM"),
			mcp.WithString(
				"field",
				mcp.Required(),
				mcp.Description("The setting to change"),
				mcp.Enum("pomodoro", "shortBreak", "longBreak", "wakeUpTime", "bedTime"),
			),
			mcp.WithString(
				"value",
				mcp.Required(),
				mcp.Description("The new value, e.g. 25 or 07:30"),
			),
		),
		s.handleUpdateSetting,
	)

	s.server.AddTool(
		mcp.NewTool(
			"list_sessions",
			mcp.WithDescription("List completed pomodoro sessions, newest first"),
			mcp.WithNumber(
				"limit",
				mcp.Description("Maximum number of sessions to return (default: 10)"),
			),
		),
		s.handleListSessions,
	)

	s.server.AddTool(
		mcp.NewTool(
			"start_timer",
			mcp.WithDescription("Start or resume the countdown in the current mode"),
		),
		s.handleStartTimer,
	)

	s.server.AddTool(
		mcp.NewTool(
			"pause_timer",
			mcp.WithDescription("Pause the countdown"),
		),
		s.handlePauseTimer,
	)

	s.server.AddTool(
		mcp.NewTool(
			"reset_timer",
			mcp.WithDescription("Stop the countdown and reload the full length of the current mode"),
		),
		s.handleResetTimer,
	)

	s.server.AddTool(
		mcp.NewTool(
			"set_mode",
			mcp.WithDescription("Switch the timer to another mode. The countdown stops and reloads"),
			mcp.WithString(
				"mode",
				mcp.Required(),
				mcp.Description("The mode to switch to"),
				mcp.Enum("pomodoro", "shortBreak", "longBreak"),
			),
		),
		s.handleSetMode,
	)
}

// Start begins serving MCP requests via stdio until ctx is cancelled or
// Stop is called.
func (s *Server) Start(ctx context.Context) error {
	return s.serve(ctx, os.Stdin, os.Stdout)
}

// serve reads requests from in and writes responses to out. Cancellation
// is a normal shutdown and returns nil.
func (s *Server) serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	runCtx := s.ctx
	s.mu.Unlock()

	err := server.NewStdioServer(s.server).Listen(runCtx, in, out)
	if err != nil && errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

func timerStateResult(state domain.TimerState, settings domain.TimerSettings) map[string]interface{} {
	return map[string]interface{}{
		"mode":                string(state.Mode),
		"mode_label":          state.Mode.Label(),
		"seconds_remaining":   state.SecondsRemaining,
		"clock":               state.Clock(),
		"is_running":          state.IsRunning,
		"completed_pomodoros": state.CompletedPomodoros,
		"progress":            state.Progress(settings),
		"length_minutes":      settings.Minutes(state.Mode),
	}
}

func textResult(v interface{}, what string) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", what, err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleGetTimerState handles the get_timer_state tool.
func (s *Server) handleGetTimerState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, settings := s.stateProvider.TimerState(ctx)
	return textResult(timerStateResult(state, settings), "timer state")
}

// handleGetDayProgress handles the get_day_progress tool.
func (s *Server) handleGetDayProgress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := s.now()
	progress, settings, err := s.stateProvider.DayProgress(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get day progress: %w", err)
	}

	result := map[string]interface{}{
		"percentage":         progress.Percentage,
		"status":             string(progress.Status),
		"status_label":       progress.Status.Label(),
		"active_minutes":     progress.ActiveMinutes,
		"minutes_since_wake": progress.MinutesSinceWake,
		"wake_up_time":       settings.WakeUpTime.String(),
		"bed_time":           settings.BedTime.String(),
		"now":                domain.TimeOfDayFrom(now).String(),
	}

	return textResult(result, "day progress")
}

// handleGetSettings handles the get_settings tool.
func (s *Server) handleGetSettings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	settings, err := s.stateProvider.Settings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return textResult(settings, "settings")
}

// handleUpdateSetting handles the update_setting tool.
func (s *Server) handleUpdateSetting(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("field")
	if err != nil {
		return mcp.NewToolResultError("field is required"), nil
	}
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil
	}

	field, err := domain.ParseSettingsField(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	settings, applied, err := s.stateProvider.EditSetting(ctx, field, value)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update setting: %v", err)), nil
	}
	if !applied {
		return mcp.NewToolResultError(fmt.Sprintf("invalid value %q for %s", value, field.Label())), nil
	}

	result := map[string]interface{}{
		"updated":  string(field),
		"settings": settings,
	}
	return textResult(result, "settings")
}

// handleListSessions handles the list_sessions tool.
func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := defaultSessionLimit
	// JSON numbers arrive as float64; some clients send them as strings.
	if l := request.GetFloat("limit", 0); l > 0 {
		limit = int(l)
	} else if raw := request.GetString("limit", ""); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	sessions, err := s.stateProvider.RecentSessions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sessionList := make([]map[string]interface{}, 0, len(sessions))
	for _, session := range sessions {
		entry := map[string]interface{}{
			"id":        session.ID,
			"timestamp": session.Timestamp.Format("2006-01-02T15:04:05"),
			"duration":  session.DurationMinutes,
			"mode":      string(session.Mode),
		}
		if session.Branch != "" {
			entry["git_branch"] = session.Branch
		}
		sessionList = append(sessionList, entry)
	}

	stats := domain.Summarize(sessions)
	result := map[string]interface{}{
		"sessions":         sessionList,
		"total_count":      len(sessionList),
		"total_focus_time": stats.TotalFocus.String(),
	}

	return textResult(result, "sessions")
}

func (s *Server) runCommand(ctx context.Context, cmd ports.TimerCommand) (*mcp.CallToolResult, error) {
	state, err := s.stateProvider.Execute(ctx, cmd)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to %s timer: %v", cmd, err)), nil
	}
	_, settings := s.stateProvider.TimerState(ctx)
	return textResult(timerStateResult(state, settings), "timer state")
}

// handleStartTimer handles the start_timer tool.
func (s *Server) handleStartTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runCommand(ctx, ports.CmdStart)
}

// handlePauseTimer handles the pause_timer tool.
func (s *Server) handlePauseTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runCommand(ctx, ports.CmdPause)
}

// handleResetTimer handles the reset_timer tool.
func (s *Server) handleResetTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runCommand(ctx, ports.CmdReset)
}

// handleSetMode handles the set_mode tool.
func (s *Server) handleSetMode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("mode")
	if err != nil {
		return mcp.NewToolResultError("mode is required"), nil
	}

	mode, err := domain.ParseMode(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	state, err := s.stateProvider.SwitchMode(ctx, mode)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set mode: %v", err)), nil
	}
	_, settings := s.stateProvider.TimerState(ctx)
	return textResult(timerStateResult(state, settings), "timer state")
}
