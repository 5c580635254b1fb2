package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is the complete ordered sequence of intervals for one run.
// It is fully materialized by Plan before the countdown starts.
type Session struct {
	ID        string
	Config    Configuration
	Intervals []Interval
}

// Plan builds the session for a validated configuration.
//
// Each cycle contributes a focus interval followed by a break, except the
// last cycle which never ends on a break.
func Plan(cfg Configuration) Session {
	intervals := make([]Interval, 0, max(2*cfg.TotalCycles-1, 0))

	for cycle := 1; cycle <= cfg.TotalCycles; cycle++ {
		intervals = append(intervals, Interval{
			Kind:     IntervalFocus,
			Duration: cfg.FocusDuration,
			Index:    len(intervals) + 1,
			Cycle:    cycle,
		})
		if cycle == cfg.TotalCycles {
			break
		}

		kind, duration := cfg.BreakFor(cycle)
		intervals = append(intervals, Interval{
			Kind:     kind,
			Duration: duration,
			Index:    len(intervals) + 1,
			Cycle:    cycle,
		})
	}

	return Session{
		ID:        uuid.New().String(),
		Config:    cfg,
		Intervals: intervals,
	}
}

// Len returns the number of intervals in the session.
func (s Session) Len() int {
	return len(s.Intervals)
}

// FocusCount returns the number of focus intervals.
func (s Session) FocusCount() int {
	n := 0
	for _, iv := range s.Intervals {
		if iv.IsFocus() {
			n++
		}
	}
	return n
}

// TotalDuration returns the sum of all interval durations.
func (s Session) TotalDuration() time.Duration {
	var total time.Duration
	for _, iv := range s.Intervals {
		total += iv.Duration
	}
	return total
}

// ShortID returns the first 8 characters of the session ID.
func (s Session) ShortID() string {
	if len(s.ID) < 8 {
		return s.ID
	}
	return s.ID[:8]
}
