package domain

import "time"

// IntervalKind represents the type of a timed interval.
type IntervalKind string

const (
	IntervalFocus      IntervalKind = "focus"
	IntervalShortBreak IntervalKind = "short_break"
	IntervalLongBreak  IntervalKind = "long_break"
)

// Label returns a human-readable label for the interval kind.
func (k IntervalKind) Label() string {
	switch k {
	case IntervalFocus:
		return "Focus"
	case IntervalShortBreak:
		return "Short Break"
	case IntervalLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// IsBreak returns true for short and long breaks.
func (k IntervalKind) IsBreak() bool {
	return k == IntervalShortBreak || k == IntervalLongBreak
}

// Interval is one timed segment of a session.
// Intervals are values; the planner is the only producer.
type Interval struct {
	Kind     IntervalKind
	Duration time.Duration
	// Index is the 1-based position within the session.
	Index int
	// Cycle is the 1-based focus cycle this interval belongs to.
	Cycle int
}

// IsFocus returns true if this is a focus interval.
func (i Interval) IsFocus() bool {
	return i.Kind == IntervalFocus
}

// IsBreak returns true if this is a break interval.
func (i Interval) IsBreak() bool {
	return i.Kind.IsBreak()
}

// Outcome is the terminal result of running a session. The zero value
// means the session never ran.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeCompleted
	OutcomeInterrupted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeInterrupted:
		return "interrupted"
	case OutcomeNone:
		return "none"
	default:
		return "unknown"
	}
}
