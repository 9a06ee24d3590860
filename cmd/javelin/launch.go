// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"runtime"

	"javelin-cli/internal/config"
	"javelin-cli/internal/display"
	"javelin-cli/internal/issue"
	"javelin-cli/internal/launcher"
	"javelin-cli/internal/platform"

	"github.com/charmbracelet/log"
)

// loadLaunchConfig resolves the image layout around the running executable
// and loads the merged launch configuration.
func loadLaunchConfig() (*config.LaunchConfig, config.Layout, platform.Profile, error) {
	profile := platform.ProfileFor(runtime.GOOS)

	layout, err := config.CurrentLayout(runtime.GOOS)
	if err != nil {
		return nil, config.Layout{}, profile, issue.NewErrorContext().
			WithOperation("locate the application image").
			WithSuggestion("The launcher could not resolve its own executable path.").
			Wrap(err).
			Build()
	}

	cfg, err := config.Load(layout, profile, settings)
	if err != nil {
		return nil, layout, profile, issue.NewErrorContext().
			WithOperation("read the launch configuration").
			WithResource(layout.CfgPath).
			WithSuggestion("Reinstall the application; its configuration file is missing or unreadable.").
			Wrap(err).
			Build()
	}
	return cfg, layout, profile, nil
}

// runLaunch is the root command: load configuration, orchestrate the launch,
// and surface the terminal diagnostic when it fails.
func runLaunch(programArgs []string) error {
	cfg, _, profile, err := loadLaunchConfig()
	if err != nil {
		display.Show(formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}

	// Command-line arguments after "--" are appended to the configured ones.
	cfg.ProgramArgs = append(cfg.ProgramArgs, programArgs...)

	exePath, _ := os.Executable()
	result := launcher.Run(cfg, launcher.Options{
		Profile:       profile,
		Logger:        log.Default(),
		AppPath:       exePath,
		StrictOptions: settings != nil && settings.StrictOptions,
		Notify:        display.Show,
	})

	if diag := result.Diagnose(); diag != nil {
		display.Show(diag.Format(verbose))
		return &ExitError{Code: 1, Err: diag}
	}

	if verbose {
		fmt.Fprintln(os.Stderr, SuccessStyle.Render("application exited")+
			SubtitleStyle.Render(fmt.Sprintf(" (runtime: %s)", result.Candidate.LibPath)))
	}
	return nil
}
