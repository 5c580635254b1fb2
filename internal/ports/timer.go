// Package ports defines the interfaces between the countdown core and the
// infrastructure around it, following hexagonal architecture principles.
package ports

import (
	"time"

	"github.com/xvierd/pomodoro-cli/internal/domain"
)

// DisplaySink receives countdown progress from the engine.
// This is a driven port: the engine pushes events and never reads back.
type DisplaySink interface {
	// OnTick reports the time left in the running interval.
	OnTick(interval domain.Interval, remaining time.Duration)

	// OnIntervalComplete is called once an interval reaches zero.
	OnIntervalComplete(interval domain.Interval)

	// OnSessionComplete is called after the last interval completes.
	OnSessionComplete()
}

// IntervalStarter is an optional DisplaySink capability.
// Sinks implementing it are told before the first tick of each interval.
type IntervalStarter interface {
	OnIntervalStart(interval domain.Interval, session domain.Session)
}

// Clock abstracts time so the countdown can be driven deterministically in tests.
type Clock interface {
	Now() time.Time

	// After waits for the duration to elapse and then sends the current time.
	After(d time.Duration) <-chan time.Time
}

// SystemClock is the Clock backed by the time package.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
