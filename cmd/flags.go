package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomodoro-cli/internal/config"
	"github.com/xvierd/pomodoro-cli/internal/domain"
	"github.com/xvierd/pomodoro-cli/internal/methodology"
)

// sessionFlags holds the session-shaping flags shared by run and plan.
type sessionFlags struct {
	focus     int
	breakMin  int
	longBreak int
	longEvery int
	cycles    int
	mode      string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVarP(&f.focus, "focus", "f", 25, "focus minutes")
	fs.IntVarP(&f.breakMin, "break", "b", 5, "short break minutes")
	fs.IntVarP(&f.longBreak, "long-break", "l", 15, "long break minutes")
	fs.IntVarP(&f.longEvery, "long-every", "e", 4, "cycles before a long break")
	fs.IntVarP(&f.cycles, "cycles", "c", 4, "total focus cycles")
	fs.StringVarP(&f.mode, "mode", "m", "", "methodology preset: pomodoro, deepwork, maketime")
}

// resolve builds the session configuration. Explicit flags win over the
// --mode preset, which wins over the config file and environment, which win
// over the preset named in the config file. The result is not validated.
func (f *sessionFlags) resolve(cmd *cobra.Command, cfg *config.Config) (domain.Configuration, methodology.Mode, error) {
	mode := cfg.Mode()
	resolved := cfg.ToDomainConfig()

	fs := cmd.Flags()
	if fs.Changed("mode") {
		m, err := domain.ResolveMethodology(f.mode)
		if err != nil {
			return domain.Configuration{}, nil, &domain.ConfigurationError{
				Field:  "mode",
				Value:  f.mode,
				Reason: "must be one of pomodoro, deepwork, maketime",
			}
		}
		mode = methodology.ForMethodology(m)
		resolved = mode.Defaults()
	}

	if fs.Changed("focus") {
		resolved.FocusDuration = minutes(f.focus)
	}
	if fs.Changed("break") {
		resolved.ShortBreakDuration = minutes(f.breakMin)
	}
	if fs.Changed("long-break") {
		resolved.LongBreakDuration = minutes(f.longBreak)
	}
	if fs.Changed("long-every") {
		resolved.CyclesBeforeLongBreak = f.longEvery
	}
	if fs.Changed("cycles") {
		resolved.TotalCycles = f.cycles
	}
	return resolved, mode, nil
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
