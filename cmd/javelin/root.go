// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"javelin-cli/internal/config"
	"javelin-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// configDir allows specifying a custom launcher config directory
	configDir string

	// settings holds the launcher settings loaded during initialization.
	settings *config.Settings

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "javelin [-- program args...]",
		Short: "A native launcher for Java applications",
		Long: TitleStyle.Render("javelin") + SubtitleStyle.Render(" - A native launcher for Java applications") + `

javelin reads the launch configuration bundled in a jpackage-style
application image, locates a suitable Java runtime on the host, and
starts the application inside the launcher process itself through the
Java native invocation interface.

Runtimes are discovered in priority order: the configured runtime path,
JAVA_HOME, then conventional installation roots. Candidates are checked
against the application's minimum Java version before a launch attempt.

` + SubtitleStyle.Render("Examples:") + `
  javelin                     Launch the application
  javelin -- --port 8080      Launch, forwarding arguments to main
  javelin resolve             Show which runtime would be used
  javelin config show         Show the effective launch configuration`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(args)
		},
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "launcher config directory (default is platform-specific)")

	// Add subcommands
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads the launcher settings file and ENV variables if set.
func initRootConfig() {
	if configDir != "" {
		config.SetConfigDirOverride(configDir)
	}

	loaded, err := config.LoadSettings()
	if err != nil {
		// A malformed settings file never blocks the launch; the defaults do.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
	settings = loaded

	// Apply verbose from settings if not set via flag
	if settings != nil && !verbose {
		verbose = settings.Verbose
	}
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
