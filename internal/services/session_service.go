// Package services holds the use cases of the timer: planning a session
// from a configuration and counting it down.
package services

import (
	"context"
	"fmt"

	"github.com/xvierd/pomodoro-cli/internal/domain"
	"github.com/xvierd/pomodoro-cli/internal/log"
	"github.com/xvierd/pomodoro-cli/internal/ports"
)

// SessionService handles one pomodoro invocation: validate, plan, run.
type SessionService struct {
	engine *CountdownEngine
	logger *log.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(engine *CountdownEngine, logger *log.Logger) *SessionService {
	return &SessionService{
		engine: engine,
		logger: logger,
	}
}

// PlanSession validates the configuration and returns the planned session.
func (s *SessionService) PlanSession(cfg domain.Configuration) (domain.Session, error) {
	if err := cfg.Validate(); err != nil {
		s.logger.ErrorErr(log.CatConfig, "configuration rejected", err)
		return domain.Session{}, fmt.Errorf("failed to plan session: %w", err)
	}
	session := domain.Plan(cfg)
	s.logger.Debug(log.CatEngine, "session planned",
		"session", session.ShortID(), "intervals", session.Len(), "total", session.TotalDuration())
	return session, nil
}

// Run plans the session and counts it down, reporting the outcome.
// An invalid configuration is returned as an error with OutcomeNone before
// anything is displayed.
func (s *SessionService) Run(ctx context.Context, cfg domain.Configuration, sink ports.DisplaySink) (domain.Outcome, error) {
	session, err := s.PlanSession(cfg)
	if err != nil {
		return domain.OutcomeNone, err
	}
	return s.RunSession(ctx, session, sink), nil
}

// RunSession counts down an already planned session.
func (s *SessionService) RunSession(ctx context.Context, session domain.Session, sink ports.DisplaySink) domain.Outcome {
	s.logger.Info(log.CatEngine, "session starting",
		"session", session.ShortID(),
		"focus", session.Config.FocusDuration,
		"short_break", session.Config.ShortBreakDuration,
		"long_break", session.Config.LongBreakDuration,
		"cycles", session.Config.TotalCycles,
		"long_every", session.Config.CyclesBeforeLongBreak)

	outcome := s.engine.Run(ctx, session, sink)

	s.logger.Info(log.CatEngine, "session finished", "session", session.ShortID(), "outcome", outcome)
	return outcome
}
