package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xvierd/pomodoro-cli/internal/adapters/display"
	"github.com/xvierd/pomodoro-cli/internal/config"
	"github.com/xvierd/pomodoro-cli/internal/domain"
	"github.com/xvierd/pomodoro-cli/internal/log"
	"github.com/xvierd/pomodoro-cli/internal/services"
	"github.com/xvierd/pomodoro-cli/internal/tracing"
)

// setupConfig writes a config file with millisecond intervals so the real
// clock can be used.
func setupConfig(t *testing.T) (*config.Config, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[session]
focus = "40ms"
short_break = "20ms"
long_break = "30ms"
cycles_before_long = 2
total_cycles = 3
tick = "10ms"

[display]
mode = "plain"

[tracing]
exporter = "file"
`
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	return cfg, dir
}

// TestFullSessionLifecycle runs a complete session on the system clock from
// a config file through to the plain display, debug log and trace file.
func TestFullSessionLifecycle(t *testing.T) {
	cfg, dir := setupConfig(t)
	ctx := context.Background()

	provider, err := tracing.NewProvider(ctx, cfg.Tracing)
	if err != nil {
		t.Fatalf("failed to create tracer: %v", err)
	}

	var logs bytes.Buffer
	logger := log.New(&logs, log.LevelDebug)
	engine := services.NewCountdownEngine(
		services.WithTick(cfg.Session.Tick),
		services.WithLogger(logger),
		services.WithTracer(provider.Tracer()),
	)
	svc := services.NewSessionService(engine, logger)

	var out bytes.Buffer
	sink := display.NewLineSink(&out, cfg.Theme)

	start := time.Now()
	outcome, err := svc.Run(ctx, cfg.ToDomainConfig(), sink)
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("failed to run session: %v", err)
	}
	if outcome != domain.OutcomeCompleted {
		t.Fatalf("expected completed, got %v", outcome)
	}

	t.Run("intervals follow the long break rule", func(t *testing.T) {
		// F S F L F
		text := out.String()
		if got := strings.Count(text, "Focus done"); got != 3 {
			t.Errorf("expected 3 focus completions, got %d", got)
		}
		if got := strings.Count(text, "Break over"); got != 2 {
			t.Errorf("expected 2 break completions, got %d", got)
		}
		if !strings.Contains(text, "Long Break") {
			t.Error("expected a long break after cycle 2")
		}
		if !strings.HasSuffix(text, "All sessions done. Nice work.\n") {
			t.Errorf("unexpected ending: %q", text)
		}
	})

	t.Run("runs for the planned time", func(t *testing.T) {
		// 3*40ms + 20ms + 30ms
		if elapsed < 170*time.Millisecond {
			t.Errorf("session finished too early: %v", elapsed)
		}
	})

	t.Run("logs the outcome", func(t *testing.T) {
		if !strings.Contains(logs.String(), "outcome=completed") {
			t.Errorf("expected completed outcome in log:\n%s", logs.String())
		}
	})

	t.Run("exports spans", func(t *testing.T) {
		if err := provider.Shutdown(ctx); err != nil {
			t.Fatalf("failed to flush traces: %v", err)
		}
		data, err := os.ReadFile(filepath.Join(dir, "traces.json"))
		if err != nil {
			t.Fatalf("failed to read trace file: %v", err)
		}
		for _, name := range []string{tracing.SpanSessionRun, tracing.SpanIntervalCountdown} {
			if !strings.Contains(string(data), name) {
				t.Errorf("expected span %q in trace file", name)
			}
		}
	})
}

// TestInterruptedSession cancels a session mid-interval on the system clock.
func TestInterruptedSession(t *testing.T) {
	cfg, _ := setupConfig(t)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Millisecond)
	defer cancel()

	svc := services.NewSessionService(services.NewCountdownEngine(services.WithTick(cfg.Session.Tick)), log.Nop())

	var out bytes.Buffer
	outcome, err := svc.Run(ctx, cfg.ToDomainConfig(), display.NewLineSink(&out, cfg.Theme))

	if err != nil {
		t.Fatalf("interruption must not be an error: %v", err)
	}
	if outcome != domain.OutcomeInterrupted {
		t.Fatalf("expected interrupted, got %v", outcome)
	}
	if strings.Contains(out.String(), "Focus done") {
		t.Error("no interval should complete before the deadline")
	}
}
