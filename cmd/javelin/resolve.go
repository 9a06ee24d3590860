// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"javelin-cli/internal/classfile"
	"javelin-cli/internal/discovery"
	"javelin-cli/internal/launcher"
	"javelin-cli/internal/release"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// resolveCmd performs runtime discovery without creating a JVM: it reports
// which installation the launch would use, or why none qualifies.
var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Show which Java runtime would be used, without launching",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResolve()
	},
}

func runResolve() error {
	cfg, _, profile, err := loadLaunchConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}

	required := cfg.MinJavaVersion
	if introspected, ok := classfile.MinimumJavaVersion(cfg.MainClass, cfg.Classpath); ok && introspected > required {
		required = introspected
	}

	if required > 0 {
		fmt.Println(SubtitleStyle.Render("requirement: ") + ValueStyle.Render(fmt.Sprintf("Java %d or newer", required)))
	} else {
		fmt.Println(SubtitleStyle.Render("requirement: ") + ValueStyle.Render("any Java version"))
	}

	resolver := discovery.NewResolver(discovery.Strategies(cfg, profile), profile, required, nil, log.Default())
	candidate, ok := resolver.Next()
	if !ok {
		result := launcher.Result{Outcome: launcher.OutcomeNoCandidateFound, RequiredJava: required}
		if resolver.SawIncompatible() {
			result.Outcome = launcher.OutcomeCandidateIncompatible
		}
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+result.Diagnose().Format(verbose))
		return &ExitError{Code: 1, Err: result.Diagnose()}
	}

	fmt.Println(SuccessStyle.Render("runtime:     ") + ValueStyle.Render(candidate.LibPath))
	fmt.Println(SubtitleStyle.Render("found via:   ") + candidate.Strategy.String())
	if major, ok := release.Major(candidate.LibPath); ok {
		fmt.Println(SubtitleStyle.Render("version:     ") + fmt.Sprintf("Java %d", major))
	} else {
		fmt.Println(SubtitleStyle.Render("version:     ") + "unknown (no release metadata)")
	}
	return nil
}
