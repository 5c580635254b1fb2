package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomodoro-cli/internal/config"
	"github.com/xvierd/pomodoro-cli/internal/log"
	"github.com/xvierd/pomodoro-cli/internal/ports"
	"github.com/xvierd/pomodoro-cli/internal/services"
	"github.com/xvierd/pomodoro-cli/internal/tracing"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	config     *config.Config
	configPath string
	logger     *log.Logger
	closeLog   func()
	tracer     *tracing.Provider
	engine     *services.CountdownEngine
	sessions   *services.SessionService
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// engineClock drives the countdown. Tests replace it with an instant clock.
var engineClock ports.Clock = ports.SystemClock

// initializeServices loads configuration and wires the logger, tracer and
// session service.
func initializeServices(cmd *cobra.Command) error {
	path := cfgFile
	if path == "" {
		var err error
		path, err = config.GetConfigPath()
		if err != nil {
			return err
		}
	}
	app.configPath = path

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	app.config = cfg

	if debugFlag || cfg.Log.Debug {
		level := log.ParseLevel(cfg.Log.Level)
		if debugFlag {
			level = log.LevelDebug
		}
		logger, closeLog, err := log.Open(cfg.Log.File, level)
		if err != nil {
			return err
		}
		app.logger = logger
		app.closeLog = closeLog
	}
	app.logger.Debug(log.CatConfig, "configuration loaded",
		"path", path, "methodology", cfg.Methodology, "display", cfg.Display.Mode)

	app.tracer, err = tracing.NewProvider(cmd.Context(), cfg.Tracing)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if app.tracer.Enabled() {
		app.logger.Info(log.CatTrace, "tracing enabled", "exporter", cfg.Tracing.Exporter)
	}

	app.engine = services.NewCountdownEngine(
		services.WithClock(engineClock),
		services.WithTick(cfg.Session.Tick),
		services.WithLogger(app.logger),
		services.WithTracer(app.tracer.Tracer()),
	)
	app.sessions = services.NewSessionService(app.engine, app.logger)

	return nil
}

// cleanupServices flushes spans and closes the log file.
func cleanupServices(ctx context.Context) error {
	var errs []error
	if app.tracer != nil {
		if err := app.tracer.Shutdown(ctx); err != nil {
			app.logger.ErrorErr(log.CatTrace, "tracer shutdown failed", err)
			errs = append(errs, fmt.Errorf("failed to flush traces: %w", err))
		}
	}
	if app.closeLog != nil {
		app.closeLog()
	}
	app = appDeps{}
	return errors.Join(errs...)
}

// setupSignalHandler returns a context cancelled on SIGINT or SIGTERM.
func setupSignalHandler(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
