package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/focusday/internal/adapters/storage"
	"github.com/xvierd/focusday/internal/domain"
	"github.com/xvierd/focusday/internal/services"
)

var testNow = time.Date(2026, 6, 15, 15, 0, 0, 0, time.Local)

// executeCmd is a helper to execute a cobra command in tests
func executeCmd(cmd *cobra.Command, args ...string) (stdout string, stderr string, err error) {
	bufOut := new(bytes.Buffer)
	bufErr := new(bytes.Buffer)

	cmd.SetOut(bufOut)
	cmd.SetErr(bufErr)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return bufOut.String(), bufErr.String(), err
}

// resetFlags puts every flag of cmd and its children back to its default so
// one test's flags do not leak into the next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// setupCmdTest points the config and database at a temp directory and fixes
// the clock. It returns the database path.
func setupCmdTest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("FOCUSDAY_HOME", home)

	resetFlags(rootCmd)
	rootCmd.SetIn(strings.NewReader(""))
	now = func() time.Time { return testNow }

	t.Cleanup(func() {
		_ = cleanupServices()
		resetFlags(rootCmd)
		now = time.Now
	})
	return filepath.Join(home, "focusday.db")
}

// seedSessions records sessions in the database at path.
func seedSessions(t *testing.T, path string, sessions ...domain.TimerSession) {
	t.Helper()
	store, err := storage.New(path)
	require.NoError(t, err)
	defer store.Close()

	log := services.NewSessionLogService(store)
	for _, s := range sessions {
		require.NoError(t, log.RecordSession(context.Background(), s))
	}
}

func session(at time.Time, minutes int, branch string) domain.TimerSession {
	s := domain.NewTimerSession(at, minutes)
	s.Branch = branch
	return s
}

// TestRootCmd_BareExecution verifies the root command exists. The bare
// command opens the full-screen timer, which needs a terminal.
func TestRootCmd_BareExecution(t *testing.T) {
	if rootCmd == nil {
		t.Fatal("rootCmd should not be nil")
	}

	if rootCmd.Use != "focusday" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "focusday")
	}
}

// TestRootCmd_Help tests the --help flag
func TestRootCmd_Help(t *testing.T) {
	setupCmdTest(t)

	stdout, _, err := executeCmd(rootCmd, "--help")
	if err != nil {
		t.Fatalf("help command failed: %v", err)
	}

	if !strings.Contains(stdout, "focusday") {
		t.Error("help output should contain 'focusday'")
	}
}

// TestRootCmd_Flags tests that global flags are registered
func TestRootCmd_Flags(t *testing.T) {
	if rootCmd.PersistentFlags().Lookup("db") == nil {
		t.Error("--db flag should be registered")
	}
	if rootCmd.PersistentFlags().Lookup("json") == nil {
		t.Error("--json flag should be registered")
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	want := []string{"start", "day", "settings", "history", "export", "config", "mcp", "reset"}
	for _, name := range want {
		t.Run(name, func(t *testing.T) {
			found, _, err := rootCmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, found.Name())
		})
	}

	found, _, err := rootCmd.Find([]string{"status"})
	require.NoError(t, err)
	assert.Equal(t, "day", found.Name())
}

// TestFormatMinutes tests the formatMinutes helper function
func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		name     string
		duration int64 // minutes
		want     string
	}{
		{"zero", 0, "0m"},
		{"25 minutes", 25, "25m"},
		{"60 minutes", 60, "1h"},
		{"90 minutes", 90, "1h30m"},
		{"120 minutes", 120, "2h"},
		{"16 hours", 960, "16h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := time.Duration(tt.duration) * time.Minute
			got := formatMinutes(d)
			if got != tt.want {
				t.Errorf("formatMinutes(%v) = %q, want %q", d, got, tt.want)
			}
		})
	}
}

func TestGetDir(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/home/user/.focusday/focusday.db", "/home/user/.focusday"},
		{"focusday.db", "."},
		{"/focusday.db", "/"},
		{`C:\data\focusday.db`, `C:\data`},
	}
	for _, tt := range tests {
		if got := getDir(tt.path); got != tt.want {
			t.Errorf("getDir(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDBFlagOverridesConfig(t *testing.T) {
	setupCmdTest(t)
	custom := filepath.Join(t.TempDir(), "nested", "custom.db")

	stdout, _, err := executeCmd(rootCmd, "--db", custom, "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Database:       "+custom)
	assert.FileExists(t, custom)
}
