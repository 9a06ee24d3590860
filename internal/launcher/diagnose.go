// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"fmt"

	"javelin-cli/internal/issue"
)

// Diagnose maps a terminal failure to the operator-facing diagnostic.
// A successful result yields nil. Each outcome gets its own message so the
// operator can tell "nothing installed" apart from "installed but too old"
// apart from "found but broken".
func (r Result) Diagnose() *issue.ActionableError {
	switch r.Outcome {
	case OutcomeStarted:
		return nil

	case OutcomeConfigurationInvalid:
		return issue.NewErrorContext().
			WithOperation("read the launch configuration").
			WithSuggestion("Reinstall the application; its configuration file is incomplete or was modified.").
			Wrap(r.Err).
			Build()

	case OutcomeNoCandidateFound:
		ctx := issue.NewErrorContext().WithOperation("locate a Java runtime")
		if r.RequiredJava > 0 {
			ctx.WithSuggestion(fmt.Sprintf("Install Java %d or newer.", r.RequiredJava))
		} else {
			ctx.WithSuggestion("Install a Java runtime.")
		}
		ctx.WithSuggestion("Or point the JAVA_HOME environment variable at an existing installation.")
		return ctx.Build()

	case OutcomeCandidateIncompatible:
		return issue.NewErrorContext().
			WithOperation("locate a compatible Java runtime").
			WithSuggestion(fmt.Sprintf("A Java installation was found, but Java %d or newer is required.", r.RequiredJava)).
			WithSuggestion("Upgrade the installation, or set JAVA_HOME to a newer one.").
			Build()

	case OutcomeInitializationFailed:
		return issue.NewErrorContext().
			WithOperation("initialize the Java runtime").
			WithResource(r.Candidate.LibPath).
			WithSuggestion("The installation may be corrupt; reinstall it or select another with JAVA_HOME.").
			Wrap(r.Err).
			Build()

	case OutcomeAttachFailed:
		return issue.NewErrorContext().
			WithOperation("attach to the started Java runtime").
			WithResource(r.Candidate.LibPath).
			WithSuggestion("The runtime started but the launcher could not attach; please report this to the application developers.").
			Wrap(r.Err).
			Build()

	case OutcomeInvocationFailed:
		return issue.NewErrorContext().
			WithOperation("invoke the application's main class").
			WithResource(r.Candidate.LibPath).
			WithSuggestion("Verify the main class and classpath in the application configuration.").
			WithSuggestion("Run with --verbose for the full error chain.").
			Wrap(r.Err).
			Build()

	default:
		return issue.NewErrorContext().
			WithOperation("launch the application").
			Wrap(r.Err).
			Build()
	}
}
