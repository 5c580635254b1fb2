package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvierd/pomodoro-cli/internal/domain"
	"github.com/xvierd/pomodoro-cli/internal/log"
)

func newTestService(t *testing.T) (*SessionService, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := log.New(&buf, log.LevelDebug)
	engine := NewCountdownEngine(WithClock(newFakeClock()), WithLogger(logger))
	return NewSessionService(engine, logger), &buf
}

func TestSessionService_Run(t *testing.T) {
	service, logs := newTestService(t)
	sink := &recordingSink{}

	outcome, err := service.Run(context.Background(), secondsConfig(2*time.Second, time.Second, time.Second, 4, 2), sink)

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCompleted, outcome)
	assert.Equal(t, 5, sink.count("tick"))
	assert.Equal(t, 1, sink.count("done"))
	assert.Contains(t, logs.String(), "session finished")
	assert.Contains(t, logs.String(), "outcome=completed")
}

func TestSessionService_RejectsInvalidConfiguration(t *testing.T) {
	service, logs := newTestService(t)
	sink := &recordingSink{}

	cfg := domain.DefaultConfiguration()
	cfg.TotalCycles = 0

	outcome, err := service.Run(context.Background(), cfg, sink)

	require.Error(t, err)
	assert.Equal(t, domain.OutcomeNone, outcome, "a session that never started was not interrupted")
	assert.True(t, errors.Is(err, domain.ErrInvalidConfiguration))
	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "total cycles", cfgErr.Field)
	assert.Empty(t, sink.events, "nothing is displayed for an invalid configuration")
	assert.Contains(t, logs.String(), "configuration rejected")
}

func TestSessionService_PlanSession(t *testing.T) {
	service, _ := newTestService(t)

	session, err := service.PlanSession(domain.DefaultConfiguration())

	require.NoError(t, err)
	assert.Equal(t, 7, session.Len())
}

func TestSessionService_Interrupted(t *testing.T) {
	service, logs := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := service.Run(ctx, domain.DefaultConfiguration(), &recordingSink{})

	require.NoError(t, err, "interruption is an outcome, not an error")
	assert.Equal(t, domain.OutcomeInterrupted, outcome)
	assert.Contains(t, logs.String(), "outcome=interrupted")
}
