package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfiguration(t *testing.T) {
	cfg := DefaultConfiguration()

	assert.Equal(t, 25*time.Minute, cfg.FocusDuration)
	assert.Equal(t, 5*time.Minute, cfg.ShortBreakDuration)
	assert.Equal(t, 15*time.Minute, cfg.LongBreakDuration)
	assert.Equal(t, 4, cfg.CyclesBeforeLongBreak)
	assert.Equal(t, 4, cfg.TotalCycles)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfiguration(t *testing.T) {
	tests := []struct {
		name      string
		focus     time.Duration
		short     time.Duration
		long      time.Duration
		every     int
		total     int
		wantField string
	}{
		{"valid", 25 * time.Minute, 5 * time.Minute, 15 * time.Minute, 4, 4, ""},
		{"zero focus", 0, 5 * time.Minute, 15 * time.Minute, 4, 4, "focus duration"},
		{"negative short break", 25 * time.Minute, -time.Second, 15 * time.Minute, 4, 4, "short break duration"},
		{"zero long break", 25 * time.Minute, 5 * time.Minute, 0, 4, 4, "long break duration"},
		{"zero cycles before long", 25 * time.Minute, 5 * time.Minute, 15 * time.Minute, 0, 4, "cycles before long break"},
		{"negative total cycles", 25 * time.Minute, 5 * time.Minute, 15 * time.Minute, 4, -1, "total cycles"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfiguration(tt.focus, tt.short, tt.long, tt.every, tt.total)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.total, cfg.TotalCycles)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration))

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantField, cfgErr.Field)
			assert.Equal(t, Configuration{}, cfg)
		})
	}
}

func TestConfigurationError_Message(t *testing.T) {
	err := &ConfigurationError{Field: "total cycles", Value: 0, Reason: "must be at least 1"}
	assert.Equal(t, "invalid total cycles 0: must be at least 1", err.Error())
}

func TestConfiguration_BreakFor(t *testing.T) {
	cfg := DefaultConfiguration()

	kind, d := cfg.BreakFor(3)
	assert.Equal(t, IntervalShortBreak, kind)
	assert.Equal(t, 5*time.Minute, d)

	kind, d = cfg.BreakFor(8)
	assert.Equal(t, IntervalLongBreak, kind)
	assert.Equal(t, 15*time.Minute, d)
}

func TestResolveMethodology(t *testing.T) {
	tests := []struct {
		input   string
		want    Methodology
		wantErr bool
	}{
		{"", MethodologyPomodoro, false},
		{"pomodoro", MethodologyPomodoro, false},
		{"DeepWork", MethodologyDeepWork, false},
		{"deep", MethodologyDeepWork, false},
		{"pomo", MethodologyPomodoro, false},
		{"make", MethodologyMakeTime, false},
		{"zzz", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ResolveMethodology(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMethodology_Label(t *testing.T) {
	assert.Equal(t, "Pomodoro", MethodologyPomodoro.Label())
	assert.Equal(t, "Deep Work", MethodologyDeepWork.Label())
	assert.Equal(t, "Make Time", MethodologyMakeTime.Label())
	assert.Equal(t, "Unknown", Methodology("x").Label())
}
