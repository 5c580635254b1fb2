package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomodoro-cli/internal/config"
	"github.com/xvierd/pomodoro-cli/internal/log"
	"github.com/xvierd/pomodoro-cli/internal/methodology"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.config
		mode := cfg.Mode()
		session := cfg.ToDomainConfig()
		out := cmd.OutOrStdout()

		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Config file:  %s\n", app.configPath)
		fmt.Fprintf(out, "  Methodology:  %s\n", mode.Title())
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Session:")
		fmt.Fprintf(out, "    Focus:                 %s\n", formatMinutes(session.FocusDuration))
		fmt.Fprintf(out, "    Short break:           %s\n", formatMinutes(session.ShortBreakDuration))
		fmt.Fprintf(out, "    Long break:            %s\n", formatMinutes(session.LongBreakDuration))
		fmt.Fprintf(out, "    Cycles before long:    %d\n", session.CyclesBeforeLongBreak)
		fmt.Fprintf(out, "    Total cycles:          %d\n", session.TotalCycles)
		fmt.Fprintf(out, "    Tick:                  %s\n", cfg.Session.Tick)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Display:      %s\n", cfg.Display.Mode)
		logState := "off"
		if cfg.Log.Debug || debugFlag {
			logState = cfg.Log.File
		}
		fmt.Fprintf(out, "  Debug log:    %s\n", logState)
		fmt.Fprintf(out, "  Tracing:      %s\n", cfg.Tracing.Exporter)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Presets:")
		for _, m := range methodology.All() {
			d := m.Defaults()
			fmt.Fprintf(out, "    %-10s %s focus / %s break / %s long every %d\n",
				m.Name(), formatMinutes(d.FocusDuration), formatMinutes(d.ShortBreakDuration),
				formatMinutes(d.LongBreakDuration), d.CyclesBeforeLongBreak)
			fmt.Fprintf(out, "               %s\n", m.Description())
		}
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := app.configPath
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check config file: %w", err)
		}

		if err := config.Save(config.DefaultConfig(), path); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		app.logger.Info(log.CatConfig, "config written", "path", path)
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), app.configPath)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}
