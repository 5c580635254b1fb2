// Package domain contains the core entities of the Pomodoro timer: the
// session configuration, the intervals a session is made of, and the
// planner that turns one into the other. Nothing here touches the terminal,
// the clock or the filesystem.
package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfiguration is wrapped by every ConfigurationError.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ConfigurationError reports a configuration value that cannot drive a session.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// Configuration holds the durations and counts that parameterize a session.
// Build it with NewConfiguration or call Validate before planning.
type Configuration struct {
	FocusDuration         time.Duration
	ShortBreakDuration    time.Duration
	LongBreakDuration     time.Duration
	CyclesBeforeLongBreak int
	TotalCycles           int
}

// DefaultConfiguration returns the standard pomodoro configuration.
func DefaultConfiguration() Configuration {
	return Configuration{
		FocusDuration:         25 * time.Minute,
		ShortBreakDuration:    5 * time.Minute,
		LongBreakDuration:     15 * time.Minute,
		CyclesBeforeLongBreak: 4,
		TotalCycles:           4,
	}
}

// NewConfiguration validates the given values and returns a Configuration.
func NewConfiguration(focus, shortBreak, longBreak time.Duration, cyclesBeforeLong, totalCycles int) (Configuration, error) {
	cfg := Configuration{
		FocusDuration:         focus,
		ShortBreakDuration:    shortBreak,
		LongBreakDuration:     longBreak,
		CyclesBeforeLongBreak: cyclesBeforeLong,
		TotalCycles:           totalCycles,
	}
	if err := cfg.Validate(); err != nil {
		return Configuration{}, err
	}
	return cfg, nil
}

// Validate returns a *ConfigurationError for the first invalid field.
func (c Configuration) Validate() error {
	durations := []struct {
		field string
		value time.Duration
	}{
		{"focus duration", c.FocusDuration},
		{"short break duration", c.ShortBreakDuration},
		{"long break duration", c.LongBreakDuration},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return &ConfigurationError{Field: d.field, Value: d.value, Reason: "must be positive"}
		}
	}

	if c.CyclesBeforeLongBreak < 1 {
		return &ConfigurationError{Field: "cycles before long break", Value: c.CyclesBeforeLongBreak, Reason: "must be at least 1"}
	}
	if c.TotalCycles < 1 {
		return &ConfigurationError{Field: "total cycles", Value: c.TotalCycles, Reason: "must be at least 1"}
	}
	return nil
}

// BreakFor returns the break that follows the given 1-based focus cycle.
// A long break replaces the short one every CyclesBeforeLongBreak cycles.
func (c Configuration) BreakFor(cycle int) (IntervalKind, time.Duration) {
	if c.CyclesBeforeLongBreak > 0 && cycle%c.CyclesBeforeLongBreak == 0 {
		return IntervalLongBreak, c.LongBreakDuration
	}
	return IntervalShortBreak, c.ShortBreakDuration
}
