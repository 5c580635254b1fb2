// Package methodology encapsulates the duration presets of each productivity
// methodology. The CLI and the TUI query the Mode interface for defaults and
// titles instead of scattering methodology checks everywhere.
package methodology

import (
	"time"

	"github.com/xvierd/pomodoro-cli/internal/domain"
)

// Mode defines the interface for methodology-specific behavior.
type Mode interface {
	// Name returns the methodology identifier.
	Name() domain.Methodology

	// Defaults returns the session configuration this methodology starts from.
	Defaults() domain.Configuration

	// Title returns the heading shown above the countdown.
	Title() string

	// Description returns a one-line summary for help output.
	Description() string
}

// ForMethodology returns the Mode implementation for the given methodology.
func ForMethodology(m domain.Methodology) Mode {
	switch m {
	case domain.MethodologyDeepWork:
		return &deepWorkMode{}
	case domain.MethodologyMakeTime:
		return &makeTimeMode{}
	default:
		return &pomodoroMode{}
	}
}

// All returns every mode in display order.
func All() []Mode {
	modes := make([]Mode, len(domain.ValidMethodologies))
	for i, m := range domain.ValidMethodologies {
		modes[i] = ForMethodology(m)
	}
	return modes
}

// --- Pomodoro Mode ---

type pomodoroMode struct{}

func (p *pomodoroMode) Name() domain.Methodology { return domain.MethodologyPomodoro }
func (p *pomodoroMode) Title() string            { return "Pomodoro" }
func (p *pomodoroMode) Description() string {
	return "25 minute focus blocks, short breaks, a long break every 4 cycles"
}

func (p *pomodoroMode) Defaults() domain.Configuration {
	return domain.DefaultConfiguration()
}

// --- Deep Work Mode ---

type deepWorkMode struct{}

func (d *deepWorkMode) Name() domain.Methodology { return domain.MethodologyDeepWork }
func (d *deepWorkMode) Title() string            { return "Deep Work" }
func (d *deepWorkMode) Description() string {
	return "90 minute deep focus blocks with 20 minute recovery breaks"
}

func (d *deepWorkMode) Defaults() domain.Configuration {
	return domain.Configuration{
		FocusDuration:         90 * time.Minute,
		ShortBreakDuration:    20 * time.Minute,
		LongBreakDuration:     20 * time.Minute,
		CyclesBeforeLongBreak: 4,
		TotalCycles:           4,
	}
}

// --- Make Time Mode ---

type makeTimeMode struct{}

func (mt *makeTimeMode) Name() domain.Methodology { return domain.MethodologyMakeTime }
func (mt *makeTimeMode) Title() string            { return "Make Time" }
func (mt *makeTimeMode) Description() string {
	return "60 minute highlight blocks with 15 minute breaks"
}

func (mt *makeTimeMode) Defaults() domain.Configuration {
	return domain.Configuration{
		FocusDuration:         60 * time.Minute,
		ShortBreakDuration:    15 * time.Minute,
		LongBreakDuration:     15 * time.Minute,
		CyclesBeforeLongBreak: 4,
		TotalCycles:           4,
	}
}
