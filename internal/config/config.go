// Package config provides configuration management for focusday.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	appDirName   = ".focusday"
	dbFileName   = "focusday.db"
	defaultLog   = "focusday.log"
	homeEnv      = "FOCUSDAY_HOME"
	dataDirToken = "~/" + appDirName
)

// Config holds all configuration for focusday.
type Config struct {
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Timer         TimerConfig        `mapstructure:"timer"`
	Clock         ClockConfig        `mapstructure:"clock"`
	Log           LogConfig          `mapstructure:"log"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// ThemeConfig holds the colours of the terminal UI.
type ThemeConfig struct {
	ColorPomodoro     string `mapstructure:"color_pomodoro"`
	ColorBreak        string `mapstructure:"color_break"`
	ColorPaused       string `mapstructure:"color_paused"`
	ColorTitle        string `mapstructure:"color_title"`
	ColorHelp         string `mapstructure:"color_help"`
	PomodoroGradientA string `mapstructure:"pomodoro_gradient_start"`
	PomodoroGradientB string `mapstructure:"pomodoro_gradient_end"`
	BreakGradientA    string `mapstructure:"break_gradient_start"`
	BreakGradientB    string `mapstructure:"break_gradient_end"`
	DayGradientA      string `mapstructure:"day_gradient_start"`
	DayGradientB      string `mapstructure:"day_gradient_end"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorPomodoro:     "#E4572E",
		ColorBreak:        "#4ECDC4",
		ColorPaused:       "#6B7280",
		ColorTitle:        "#9CA3AF",
		ColorHelp:         "#95A5A6",
		PomodoroGradientA: "#E4572E",
		PomodoroGradientB: "#F3A712",
		BreakGradientA:    "#4ECDC4",
		BreakGradientB:    "#2ECC71",
		DayGradientA:      "#6366F1",
		DayGradientB:      "#A78BFA",
	}
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// TimerConfig holds settings of the headless tick driver.
type TimerConfig struct {
	TickInterval Duration `mapstructure:"tick_interval"`
}

// ClockConfig controls how times of day are displayed.
type ClockConfig struct {
	TwelveHour bool `mapstructure:"twelve_hour"`
}

// LogConfig holds the log destination used while the terminal UI runs.
type LogConfig struct {
	File string `mapstructure:"file"`
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Storage: StorageConfig{
			DataDir: dataDirToken,
		},
		Timer: TimerConfig{
			TickInterval: Duration(time.Second),
		},
		Clock: ClockConfig{
			TwelveHour: true,
		},
		Log: LogConfig{
			File: defaultLog,
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the config file, creating it with the
// defaults on first run.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := newViper(configPath)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Timer.TickInterval <= 0 {
		cfg.Timer.TickInterval = Duration(time.Second)
	}

	dataDir, err := expandDataDir(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	cfg.Storage.DataDir = dataDir

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper(configPath)

	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("notifications.sound", cfg.Notifications.Sound)
	v.Set("storage.data_dir", collapseDataDir(cfg.Storage.DataDir))
	v.Set("timer.tick_interval", cfg.Timer.TickInterval.String())
	v.Set("clock.twelve_hour", cfg.Clock.TwelveHour)
	v.Set("log.file", cfg.Log.File)
	v.Set("theme.color_pomodoro", cfg.Theme.ColorPomodoro)
	v.Set("theme.color_break", cfg.Theme.ColorBreak)
	v.Set("theme.color_paused", cfg.Theme.ColorPaused)
	v.Set("theme.color_title", cfg.Theme.ColorTitle)
	v.Set("theme.color_help", cfg.Theme.ColorHelp)
	v.Set("theme.pomodoro_gradient_start", cfg.Theme.PomodoroGradientA)
	v.Set("theme.pomodoro_gradient_end", cfg.Theme.PomodoroGradientB)
	v.Set("theme.break_gradient_start", cfg.Theme.BreakGradientA)
	v.Set("theme.break_gradient_end", cfg.Theme.BreakGradientB)
	v.Set("theme.day_gradient_start", cfg.Theme.DayGradientA)
	v.Set("theme.day_gradient_end", cfg.Theme.DayGradientB)

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetConfigPath returns the path to the config file. FOCUSDAY_HOME replaces
// ~/.focusday when set.
func GetConfigPath() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, dbFileName)
}

// GetLogPath returns the log file path. Relative names live in the data
// directory.
func GetLogPath(cfg *Config) string {
	name := cfg.Log.File
	if name == "" {
		name = defaultLog
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(cfg.Storage.DataDir, name)
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	return v
}

func appDir() (string, error) {
	if dir := os.Getenv(homeEnv); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, appDirName), nil
}

// expandDataDir resolves "~/.focusday", "~/" prefixes and the empty string.
func expandDataDir(dir string) (string, error) {
	if dir == "" || dir == dataDirToken {
		return appDir()
	}
	if strings.HasPrefix(dir, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(homeDir, dir[2:]), nil
	}
	return dir, nil
}

func collapseDataDir(dir string) string {
	if def, err := appDir(); err == nil && dir == def {
		return dataDirToken
	}
	return dir
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("notifications.enabled", true)
	v.SetDefault("notifications.sound", true)
	v.SetDefault("storage.data_dir", dataDirToken)
	v.SetDefault("timer.tick_interval", "1s")
	v.SetDefault("clock.twelve_hour", true)
	v.SetDefault("log.file", defaultLog)

	// Theme defaults
	defaults := DefaultThemeConfig()
	v.SetDefault("theme.color_pomodoro", defaults.ColorPomodoro)
	v.SetDefault("theme.color_break", defaults.ColorBreak)
	v.SetDefault("theme.color_paused", defaults.ColorPaused)
	v.SetDefault("theme.color_title", defaults.ColorTitle)
	v.SetDefault("theme.color_help", defaults.ColorHelp)
	v.SetDefault("theme.pomodoro_gradient_start", defaults.PomodoroGradientA)
	v.SetDefault("theme.pomodoro_gradient_end", defaults.PomodoroGradientB)
	v.SetDefault("theme.break_gradient_start", defaults.BreakGradientA)
	v.SetDefault("theme.break_gradient_end", defaults.BreakGradientB)
	v.SetDefault("theme.day_gradient_start", defaults.DayGradientA)
	v.SetDefault("theme.day_gradient_end", defaults.DayGradientB)
}
