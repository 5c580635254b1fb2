package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func kinds(s Session) []IntervalKind {
	out := make([]IntervalKind, len(s.Intervals))
	for i, iv := range s.Intervals {
		out[i] = iv.Kind
	}
	return out
}

func TestPlan_DefaultConfiguration(t *testing.T) {
	session := Plan(DefaultConfiguration())

	// Cycle 4 is the last one, so its long break never happens.
	assert.Equal(t, []IntervalKind{
		IntervalFocus, IntervalShortBreak,
		IntervalFocus, IntervalShortBreak,
		IntervalFocus, IntervalShortBreak,
		IntervalFocus,
	}, kinds(session))
	assert.Equal(t, 4, session.FocusCount())
	assert.Equal(t, 4*25*time.Minute+3*5*time.Minute, session.TotalDuration())
}

func TestPlan_SingleCycle(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.TotalCycles = 1

	session := Plan(cfg)

	require.Len(t, session.Intervals, 1)
	assert.Equal(t, Interval{Kind: IntervalFocus, Duration: 25 * time.Minute, Index: 1, Cycle: 1}, session.Intervals[0])
}

func TestPlan_LongBreakInserted(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.CyclesBeforeLongBreak = 2
	cfg.TotalCycles = 5

	session := Plan(cfg)

	assert.Equal(t, []IntervalKind{
		IntervalFocus, IntervalShortBreak,
		IntervalFocus, IntervalLongBreak,
		IntervalFocus, IntervalShortBreak,
		IntervalFocus, IntervalLongBreak,
		IntervalFocus,
	}, kinds(session))
	assert.Equal(t, 15*time.Minute, session.Intervals[3].Duration)
	assert.Equal(t, 2, session.Intervals[3].Cycle)
}

func TestPlan_EveryCycleLong(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.CyclesBeforeLongBreak = 1
	cfg.TotalCycles = 3

	session := Plan(cfg)

	assert.Equal(t, []IntervalKind{
		IntervalFocus, IntervalLongBreak,
		IntervalFocus, IntervalLongBreak,
		IntervalFocus,
	}, kinds(session))
}

func TestPlan_AssignsSessionID(t *testing.T) {
	a := Plan(DefaultConfiguration())
	b := Plan(DefaultConfiguration())

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, a.ShortID(), 8)
}

func validConfiguration(t *rapid.T) Configuration {
	minutes := func(label string) time.Duration {
		return time.Duration(rapid.IntRange(1, 120).Draw(t, label)) * time.Minute
	}
	return Configuration{
		FocusDuration:         minutes("focus"),
		ShortBreakDuration:    minutes("short"),
		LongBreakDuration:     minutes("long"),
		CyclesBeforeLongBreak: rapid.IntRange(1, 8).Draw(t, "every"),
		TotalCycles:           rapid.IntRange(1, 24).Draw(t, "total"),
	}
}

func TestPlan_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := validConfiguration(t)
		if err := cfg.Validate(); err != nil {
			t.Fatalf("generated invalid configuration: %v", err)
		}

		session := Plan(cfg)

		if got, want := session.Len(), 2*cfg.TotalCycles-1; got != want {
			t.Fatalf("len = %d, want %d", got, want)
		}
		if last := session.Intervals[session.Len()-1]; !last.IsFocus() {
			t.Fatalf("session ends on %s", last.Kind)
		}

		for i, iv := range session.Intervals {
			if iv.Index != i+1 {
				t.Fatalf("interval %d has index %d", i, iv.Index)
			}
			if i%2 == 0 {
				if !iv.IsFocus() || iv.Duration != cfg.FocusDuration {
					t.Fatalf("interval %d = %+v, want focus", i, iv)
				}
				continue
			}

			cycle := i/2 + 1
			if iv.Cycle != cycle {
				t.Fatalf("break %d belongs to cycle %d, want %d", i, iv.Cycle, cycle)
			}
			if cycle%cfg.CyclesBeforeLongBreak == 0 {
				if iv.Kind != IntervalLongBreak || iv.Duration != cfg.LongBreakDuration {
					t.Fatalf("break after cycle %d = %+v, want long break", cycle, iv)
				}
			} else if iv.Kind != IntervalShortBreak || iv.Duration != cfg.ShortBreakDuration {
				t.Fatalf("break after cycle %d = %+v, want short break", cycle, iv)
			}
		}
	})
}

func TestIntervalKind_Label(t *testing.T) {
	tests := []struct {
		kind IntervalKind
		want string
	}{
		{IntervalFocus, "Focus"},
		{IntervalShortBreak, "Short Break"},
		{IntervalLongBreak, "Long Break"},
		{IntervalKind("nap"), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.Label())
		})
	}
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "completed", OutcomeCompleted.String())
	assert.Equal(t, "interrupted", OutcomeInterrupted.String())
	assert.Equal(t, "none", Outcome(0).String())
}
