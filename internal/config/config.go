// Package config provides configuration management for the timer.
// Values come from a TOML file, POMODORO_* environment variables and
// finally command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/xvierd/pomodoro-cli/internal/domain"
	"github.com/xvierd/pomodoro-cli/internal/methodology"
	"github.com/xvierd/pomodoro-cli/internal/tracing"
)

// Display modes.
const (
	DisplayFullscreen = "fullscreen"
	DisplayInline     = "inline"
	DisplayPlain      = "plain"
)

// EnvPrefix prefixes every environment override, e.g. POMODORO_SESSION_FOCUS.
const EnvPrefix = "POMODORO"

// Config holds all configuration for the timer.
type Config struct {
	Methodology string         `mapstructure:"methodology"`
	Session     SessionConfig  `mapstructure:"session"`
	Display     DisplayConfig  `mapstructure:"display"`
	Theme       ThemeConfig    `mapstructure:"theme"`
	Log         LogConfig      `mapstructure:"log"`
	Tracing     tracing.Config `mapstructure:"tracing"`
}

// SessionConfig overrides the methodology preset. A key absent from the
// file and environment leaves the preset value; a key that is present is
// kept even when zero, so Validate can reject it.
type SessionConfig struct {
	Focus            time.Duration `mapstructure:"-"`
	ShortBreak       time.Duration `mapstructure:"-"`
	LongBreak        time.Duration `mapstructure:"-"`
	CyclesBeforeLong int           `mapstructure:"-"`
	TotalCycles      int           `mapstructure:"-"`
	Tick             time.Duration `mapstructure:"-"`

	explicit map[string]bool
}

// DisplayConfig selects how the countdown is rendered.
type DisplayConfig struct {
	Mode string `mapstructure:"mode"`
}

// LogConfig holds debug log settings.
type LogConfig struct {
	Debug bool   `mapstructure:"debug"`
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// ThemeConfig holds colors and icons for the display.
type ThemeConfig struct {
	ColorFocus         string `mapstructure:"color_focus"`
	ColorBreak         string `mapstructure:"color_break"`
	ColorTitle         string `mapstructure:"color_title"`
	ColorHelp          string `mapstructure:"color_help"`
	FocusGradientStart string `mapstructure:"focus_gradient_start"`
	FocusGradientEnd   string `mapstructure:"focus_gradient_end"`
	BreakGradientStart string `mapstructure:"break_gradient_start"`
	BreakGradientEnd   string `mapstructure:"break_gradient_end"`
	IconApp            string `mapstructure:"icon_app"`
	IconFocusDone      string `mapstructure:"icon_focus_done"`
	IconBreakDone      string `mapstructure:"icon_break_done"`
	IconSessionDone    string `mapstructure:"icon_session_done"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorFocus:         "#7C6FE0",
		ColorBreak:         "#4ECDC4",
		ColorTitle:         "#6B7280",
		ColorHelp:          "#95A5A6",
		FocusGradientStart: "#7C6FE0",
		FocusGradientEnd:   "#A78BFA",
		BreakGradientStart: "#4ECDC4",
		BreakGradientEnd:   "#2ECC71",
		IconApp:            "🍅",
		IconFocusDone:      "✅",
		IconBreakDone:      "☕",
		IconSessionDone:    "🎉",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Methodology: string(domain.MethodologyPomodoro),
		Session: SessionConfig{
			Tick: time.Second,
		},
		Display: DisplayConfig{
			Mode: DisplayFullscreen,
		},
		Theme: DefaultThemeConfig(),
		Log: LogConfig{
			Level: "info",
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// Load reads the configuration file at path. An empty path means the
// default location; a missing file yields the defaults plus env overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &domain.ConfigurationError{Field: "config file", Value: path, Reason: err.Error()}
	}
	session, err := decodeSession(v)
	if err != nil {
		return nil, err
	}
	cfg.Session = session
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(filepath.Dir(path), "debug.log")
	}
	if cfg.Tracing.Exporter == "file" && cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = filepath.Join(filepath.Dir(path), "traces.json")
	}

	return &cfg, nil
}

// newViper builds an isolated viper instance with defaults and env bindings.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// Session overrides have no defaults, so AutomaticEnv alone would not
	// see them during Unmarshal.
	for _, key := range []string{
		"session.focus",
		"session.short_break",
		"session.long_break",
		"session.cycles_before_long",
		"session.total_cycles",
	} {
		_ = v.BindEnv(key)
	}
	return v
}

// decodeSession reads the [session] table key by key so that a key set to
// zero can be told apart from a missing one.
func decodeSession(v *viper.Viper) (SessionConfig, error) {
	s := SessionConfig{explicit: make(map[string]bool)}

	durations := []struct {
		key   string
		field string
		dst   *time.Duration
	}{
		{"focus", "focus duration", &s.Focus},
		{"short_break", "short break duration", &s.ShortBreak},
		{"long_break", "long break duration", &s.LongBreak},
		{"tick", "tick", &s.Tick},
	}
	for _, d := range durations {
		key := "session." + d.key
		if !v.IsSet(key) {
			continue
		}
		raw := v.Get(key)
		val, err := cast.ToDurationE(raw)
		if err != nil {
			return SessionConfig{}, &domain.ConfigurationError{Field: d.field, Value: raw, Reason: "must be a duration such as 25m"}
		}
		*d.dst = val
		s.explicit[d.key] = true
	}

	counts := []struct {
		key   string
		field string
		dst   *int
	}{
		{"cycles_before_long", "cycles before long break", &s.CyclesBeforeLong},
		{"total_cycles", "total cycles", &s.TotalCycles},
	}
	for _, c := range counts {
		key := "session." + c.key
		if !v.IsSet(key) {
			continue
		}
		raw := v.Get(key)
		val, err := cast.ToIntE(raw)
		if err != nil {
			return SessionConfig{}, &domain.ConfigurationError{Field: c.field, Value: raw, Reason: "must be a whole number"}
		}
		*c.dst = val
		s.explicit[c.key] = true
	}
	return s, nil
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("methodology", defaults.Methodology)
	v.SetDefault("session.tick", defaults.Session.Tick.String())
	v.SetDefault("display.mode", defaults.Display.Mode)
	v.SetDefault("log.debug", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)

	theme := defaults.Theme
	v.SetDefault("theme.color_focus", theme.ColorFocus)
	v.SetDefault("theme.color_break", theme.ColorBreak)
	v.SetDefault("theme.color_title", theme.ColorTitle)
	v.SetDefault("theme.color_help", theme.ColorHelp)
	v.SetDefault("theme.focus_gradient_start", theme.FocusGradientStart)
	v.SetDefault("theme.focus_gradient_end", theme.FocusGradientEnd)
	v.SetDefault("theme.break_gradient_start", theme.BreakGradientStart)
	v.SetDefault("theme.break_gradient_end", theme.BreakGradientEnd)
	v.SetDefault("theme.icon_app", theme.IconApp)
	v.SetDefault("theme.icon_focus_done", theme.IconFocusDone)
	v.SetDefault("theme.icon_break_done", theme.IconBreakDone)
	v.SetDefault("theme.icon_session_done", theme.IconSessionDone)
}

// Validate checks the non-session fields. Session values are validated
// when the domain Configuration is built.
func (c *Config) Validate() error {
	if _, err := domain.ResolveMethodology(c.Methodology); err != nil {
		return &domain.ConfigurationError{Field: "methodology", Value: c.Methodology, Reason: "must be one of pomodoro, deepwork, maketime"}
	}
	if err := ValidateDisplayMode(c.Display.Mode); err != nil {
		return err
	}
	if c.Session.Tick <= 0 {
		return &domain.ConfigurationError{Field: "tick", Value: c.Session.Tick, Reason: "must be positive"}
	}
	return nil
}

// ValidateDisplayMode rejects unknown display modes.
func ValidateDisplayMode(mode string) error {
	switch mode {
	case DisplayFullscreen, DisplayInline, DisplayPlain:
		return nil
	}
	return &domain.ConfigurationError{Field: "display mode", Value: mode, Reason: "must be one of fullscreen, inline, plain"}
}

// Mode returns the methodology named in the configuration.
func (c *Config) Mode() methodology.Mode {
	m, err := domain.ResolveMethodology(c.Methodology)
	if err != nil {
		m = domain.MethodologyPomodoro
	}
	return methodology.ForMethodology(m)
}

// ToDomainConfig returns the methodology preset overlaid with the session
// values set in the file or environment. The result is not validated.
func (c *Config) ToDomainConfig() domain.Configuration {
	return c.Session.Apply(c.Mode().Defaults())
}

// Apply overlays the session values read from the file or environment onto
// base. Values set directly on the struct are applied when non-zero.
func (s SessionConfig) Apply(base domain.Configuration) domain.Configuration {
	if s.Focus != 0 || s.explicit["focus"] {
		base.FocusDuration = s.Focus
	}
	if s.ShortBreak != 0 || s.explicit["short_break"] {
		base.ShortBreakDuration = s.ShortBreak
	}
	if s.LongBreak != 0 || s.explicit["long_break"] {
		base.LongBreakDuration = s.LongBreak
	}
	if s.CyclesBeforeLong != 0 || s.explicit["cycles_before_long"] {
		base.CyclesBeforeLongBreak = s.CyclesBeforeLong
	}
	if s.TotalCycles != 0 || s.explicit["total_cycles"] {
		base.TotalCycles = s.TotalCycles
	}
	return base
}

// Save writes the configuration to path as TOML.
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")

	v.Set("methodology", cfg.Methodology)
	if cfg.Session.Focus != 0 {
		v.Set("session.focus", cfg.Session.Focus.String())
	}
	if cfg.Session.ShortBreak != 0 {
		v.Set("session.short_break", cfg.Session.ShortBreak.String())
	}
	if cfg.Session.LongBreak != 0 {
		v.Set("session.long_break", cfg.Session.LongBreak.String())
	}
	if cfg.Session.CyclesBeforeLong != 0 {
		v.Set("session.cycles_before_long", cfg.Session.CyclesBeforeLong)
	}
	if cfg.Session.TotalCycles != 0 {
		v.Set("session.total_cycles", cfg.Session.TotalCycles)
	}
	v.Set("session.tick", cfg.Session.Tick.String())
	v.Set("display.mode", cfg.Display.Mode)
	v.Set("log.debug", cfg.Log.Debug)
	v.Set("log.level", cfg.Log.Level)
	v.Set("tracing.exporter", cfg.Tracing.Exporter)
	v.Set("tracing.otlp_endpoint", cfg.Tracing.OTLPEndpoint)
	v.Set("tracing.service_name", cfg.Tracing.ServiceName)

	theme := cfg.Theme
	v.Set("theme.color_focus", theme.ColorFocus)
	v.Set("theme.color_break", theme.ColorBreak)
	v.Set("theme.color_title", theme.ColorTitle)
	v.Set("theme.color_help", theme.ColorHelp)
	v.Set("theme.focus_gradient_start", theme.FocusGradientStart)
	v.Set("theme.focus_gradient_end", theme.FocusGradientEnd)
	v.Set("theme.break_gradient_start", theme.BreakGradientStart)
	v.Set("theme.break_gradient_end", theme.BreakGradientEnd)
	v.Set("theme.icon_app", theme.IconApp)
	v.Set("theme.icon_focus_done", theme.IconFocusDone)
	v.Set("theme.icon_break_done", theme.IconBreakDone)
	v.Set("theme.icon_session_done", theme.IconSessionDone)

	return v.WriteConfigAs(path)
}

// GetConfigPath returns the path to the default config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pomodoro", "config.toml"), nil
}
