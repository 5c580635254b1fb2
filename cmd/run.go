package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/xvierd/pomodoro-cli/internal/adapters/display"
	"github.com/xvierd/pomodoro-cli/internal/adapters/tui"
	"github.com/xvierd/pomodoro-cli/internal/config"
	"github.com/xvierd/pomodoro-cli/internal/domain"
	"github.com/xvierd/pomodoro-cli/internal/log"
	"github.com/xvierd/pomodoro-cli/internal/methodology"
)

var (
	runFlags    sessionFlags
	displayFlag string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a pomodoro session",
	Long: `Run counts down focus intervals separated by breaks. A long break replaces
the short break after every --long-every cycles; no break follows the last
focus interval.

Press q or Ctrl+C to stop. An interrupted run exits with status 130.`,
	Example: `  pomodoro run
  pomodoro run -f 50 -b 10 -c 3
  pomodoro run --mode deep --display inline`,
	Args: cobra.NoArgs,
	RunE: runSession,
}

func init() {
	runFlags.register(runCmd)
	runCmd.Flags().StringVar(&displayFlag, "display", "", "display: fullscreen, inline, plain (default from config)")
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, mode, err := runFlags.resolve(cmd, app.config)
	if err != nil {
		return err
	}
	session, err := app.sessions.PlanSession(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	displayMode, err := selectDisplay(displayFlag, app.config, out)
	if err != nil {
		return err
	}
	app.logger.Info(log.CatCLI, "run",
		"session", session.ShortID(), "mode", mode.Name(), "display", displayMode)

	ctx, stop := setupSignalHandler(cmd.Context())
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var outcome domain.Outcome
	if displayMode == config.DisplayPlain {
		outcome = runPlain(ctx, session, out)
	} else {
		outcome, err = runTUI(ctx, cancel, session, mode, displayMode, out)
		if err != nil {
			return err
		}
	}

	app.logger.Info(log.CatCLI, "run finished", "session", session.ShortID(), "outcome", outcome)
	if outcome == domain.OutcomeInterrupted {
		return ErrInterrupted
	}
	return nil
}

// runPlain counts the session down on carriage-return overwritten lines.
func runPlain(ctx context.Context, session domain.Session, out io.Writer) domain.Outcome {
	sink := display.NewLineSink(out, app.config.Theme)
	sink.Announce(session.Config)

	outcome := app.sessions.RunSession(ctx, session, sink)
	if outcome == domain.OutcomeInterrupted {
		sink.Interrupted()
	}
	return outcome
}

// runTUI counts the session down inside a bubbletea program. Quitting the
// program cancels ctx through cancel.
func runTUI(ctx context.Context, cancel context.CancelFunc, session domain.Session, mode methodology.Mode, displayMode string, out io.Writer) (domain.Outcome, error) {
	theme := app.config.Theme

	var d *tui.Display
	if displayMode == config.DisplayInline {
		d = tui.NewInline(&theme, cancel, app.logger)
	} else {
		d = tui.NewFullscreen(mode, &theme, cancel, app.logger)
	}

	// A display that fails to start cancels ctx, so the session ends at
	// once and the failure is reported by Stop.
	d.Start()
	outcome := app.sessions.RunSession(ctx, session, d)
	if err := d.Stop(); err != nil {
		return outcome, err
	}
	app.logger.Debug(log.CatUI, "display closed", "outcome", outcome, "quit_key", d.Interrupted())

	// The fullscreen view is gone once the alternate screen closes, so the
	// result is repeated on the normal screen.
	if displayMode == config.DisplayFullscreen {
		summary := display.NewLineSink(out, theme)
		if outcome == domain.OutcomeCompleted {
			summary.OnSessionComplete()
		} else {
			fmt.Fprintln(out, "Interrupted.")
		}
	}
	return outcome, nil
}

// selectDisplay picks the display mode from the flag or the config. Anything
// but plain needs a terminal on out.
func selectDisplay(flag string, cfg *config.Config, out io.Writer) (string, error) {
	mode := cfg.Display.Mode
	if flag != "" {
		if err := config.ValidateDisplayMode(flag); err != nil {
			return "", err
		}
		mode = flag
	}
	if mode != config.DisplayPlain && !isTerminal(out) {
		app.logger.Debug(log.CatUI, "output is not a terminal, using plain display", "requested", mode)
		return config.DisplayPlain, nil
	}
	return mode, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
