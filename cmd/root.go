// Package cmd provides the CLI commands for the pomodoro timer.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	// Version info (set at build time via ldflags)
	version = "dev"

	// Global flags
	cfgFile   string
	debugFlag bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pomodoro",
	Short: "Pomodoro - a tiny focus/break countdown timer",
	Long: `Pomodoro runs focus intervals separated by short breaks, with a long
break after every few cycles, and counts each one down in the terminal.

Durations come from the methodology preset, the config file
(~/.pomodoro/config.toml), POMODORO_* environment variables and flags, in
increasing order of precedence.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.pomodoro/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write debug logs next to the config file")

	rootCmd.SetVersionTemplate("Pomodoro CLI\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(configCmd)
}

// SetVersion sets the version string reported by --version.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command. The returned error maps to a process exit
// code through ExitCode.
func Execute() error {
	err := rootCmd.Execute()
	// Cleanup runs here rather than in a PostRun hook, which cobra skips
	// when RunE fails.
	if cerr := cleanupServices(context.Background()); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		reportError(rootCmd, err)
	}
	return err
}
