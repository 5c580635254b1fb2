package methodology

import (
	"testing"
	"time"

	"github.com/xvierd/pomodoro-cli/internal/domain"
)

func TestDefaultsAreValid(t *testing.T) {
	for _, mode := range All() {
		if err := mode.Defaults().Validate(); err != nil {
			t.Errorf("Defaults() for %s: %v", mode.Name(), err)
		}
	}
}

func TestDeepWorkDefaults(t *testing.T) {
	cfg := ForMethodology(domain.MethodologyDeepWork).Defaults()
	if cfg.FocusDuration != 90*time.Minute {
		t.Errorf("expected 90m focus, got %v", cfg.FocusDuration)
	}
	if cfg.ShortBreakDuration != cfg.LongBreakDuration {
		t.Errorf("deep work uses a single break length, got %v and %v", cfg.ShortBreakDuration, cfg.LongBreakDuration)
	}
}

func TestUnknownFallsBackToPomodoro(t *testing.T) {
	mode := ForMethodology(domain.Methodology("unknown"))
	if mode.Name() != domain.MethodologyPomodoro {
		t.Errorf("expected pomodoro fallback, got %s", mode.Name())
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		methodology domain.Methodology
		expected    string
	}{
		{domain.MethodologyPomodoro, "Pomodoro"},
		{domain.MethodologyDeepWork, "Deep Work"},
		{domain.MethodologyMakeTime, "Make Time"},
	}
	for _, tt := range tests {
		mode := ForMethodology(tt.methodology)
		if mode.Title() != tt.expected {
			t.Errorf("Title() for %s: expected %q, got %q", tt.methodology, tt.expected, mode.Title())
		}
	}
}

func TestDescription(t *testing.T) {
	for _, mode := range All() {
		if mode.Description() == "" {
			t.Errorf("Description() for %s should not be empty", mode.Name())
		}
	}
}
