package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/xvierd/pomodoro-cli/internal/domain"
	"github.com/xvierd/pomodoro-cli/internal/log"
	"github.com/xvierd/pomodoro-cli/internal/ports"
	"github.com/xvierd/pomodoro-cli/internal/tracing"
)

// DefaultTick is the countdown refresh granularity.
const DefaultTick = time.Second

// CountdownEngine runs the intervals of a session one after another,
// pushing remaining-time updates to a display sink.
type CountdownEngine struct {
	clock  ports.Clock
	tick   time.Duration
	logger *log.Logger
	tracer trace.Tracer
}

// EngineOption configures a CountdownEngine.
type EngineOption func(*CountdownEngine)

// WithClock replaces the system clock.
func WithClock(c ports.Clock) EngineOption {
	return func(e *CountdownEngine) { e.clock = c }
}

// WithTick sets the tick length. Non-positive values are ignored.
func WithTick(d time.Duration) EngineOption {
	return func(e *CountdownEngine) {
		if d > 0 {
			e.tick = d
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *log.Logger) EngineOption {
	return func(e *CountdownEngine) { e.logger = l }
}

// WithTracer sets the tracer used for session and interval spans.
func WithTracer(t trace.Tracer) EngineOption {
	return func(e *CountdownEngine) {
		if t != nil {
			e.tracer = t
		}
	}
}

// NewCountdownEngine creates an engine with a one second tick on the system clock.
func NewCountdownEngine(opts ...EngineOption) *CountdownEngine {
	e := &CountdownEngine{
		clock:  ports.SystemClock,
		tick:   DefaultTick,
		logger: log.Nop(),
		tracer: noop.NewTracerProvider().Tracer("noop"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tick returns the configured tick length.
func (e *CountdownEngine) Tick() time.Duration {
	return e.tick
}

// Run counts every interval of the session down to zero.
//
// Cancelling ctx interrupts the run at the next suspension point: Run returns
// OutcomeInterrupted and emits nothing further. When all intervals finish
// the sink receives OnSessionComplete and Run returns OutcomeCompleted.
func (e *CountdownEngine) Run(ctx context.Context, session domain.Session, sink ports.DisplaySink) domain.Outcome {
	ctx, span := e.tracer.Start(ctx, tracing.SpanSessionRun, trace.WithAttributes(
		attribute.String(tracing.AttrSessionID, session.ID),
		attribute.Int(tracing.AttrSessionLength, session.Len()),
	))
	defer span.End()

	starter, _ := sink.(ports.IntervalStarter)

	for _, interval := range session.Intervals {
		if ctx.Err() != nil {
			return e.interrupted(span, session, interval)
		}
		if starter != nil {
			starter.OnIntervalStart(interval, session)
		}
		e.logger.Info(log.CatEngine, "interval started",
			"session", session.ShortID(), "index", interval.Index, "kind", interval.Kind, "duration", interval.Duration)

		if outcome := e.countdown(ctx, interval, sink); outcome == domain.OutcomeInterrupted {
			return e.interrupted(span, session, interval)
		}

		sink.OnIntervalComplete(interval)
		e.logger.Info(log.CatEngine, "interval complete", "session", session.ShortID(), "index", interval.Index)
	}

	sink.OnSessionComplete()
	span.SetAttributes(attribute.String(tracing.AttrOutcome, domain.OutcomeCompleted.String()))
	span.SetStatus(codes.Ok, "")
	e.logger.Info(log.CatEngine, "session complete", "session", session.ShortID(), "intervals", session.Len())
	return domain.OutcomeCompleted
}

func (e *CountdownEngine) interrupted(span trace.Span, session domain.Session, at domain.Interval) domain.Outcome {
	span.SetAttributes(attribute.String(tracing.AttrOutcome, domain.OutcomeInterrupted.String()))
	e.logger.Info(log.CatEngine, "session interrupted", "session", session.ShortID(), "index", at.Index)
	return domain.OutcomeInterrupted
}

// countdown runs a single interval. Tick n is due at start + n*tick; when the
// loop falls behind the wait is skipped so the display catches up rather
// than drifting.
func (e *CountdownEngine) countdown(ctx context.Context, interval domain.Interval, sink ports.DisplaySink) domain.Outcome {
	ctx, span := e.tracer.Start(ctx, tracing.SpanIntervalCountdown, trace.WithAttributes(
		attribute.String(tracing.AttrIntervalKind, string(interval.Kind)),
		attribute.Int(tracing.AttrIntervalIndex, interval.Index),
		attribute.Int(tracing.AttrIntervalCycle, interval.Cycle),
		attribute.Int64(tracing.AttrIntervalLength, interval.Duration.Milliseconds()),
	))
	defer span.End()

	start := e.clock.Now()
	remaining := interval.Duration
	ticks := 0

	for remaining > 0 {
		sink.OnTick(interval, remaining)

		ticks++
		if wait := start.Add(time.Duration(ticks) * e.tick).Sub(e.clock.Now()); wait > 0 {
			select {
			case <-ctx.Done():
			case <-e.clock.After(wait):
			}
		} else {
			e.logger.Debug(log.CatEngine, "tick late, skipping wait", "index", interval.Index, "tick", ticks, "late", -wait)
		}
		if ctx.Err() != nil {
			span.SetAttributes(attribute.Int(tracing.AttrTicks, ticks))
			return domain.OutcomeInterrupted
		}
		remaining -= e.tick
	}

	span.SetAttributes(attribute.Int(tracing.AttrTicks, ticks))
	return domain.OutcomeCompleted
}
