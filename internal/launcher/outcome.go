// SPDX-License-Identifier: MPL-2.0

package launcher

import "javelin-cli/internal/discovery"

type (
	// Outcome is the terminal result of one orchestration run. Exactly one
	// diagnostic message is shown per outcome.
	Outcome int

	// Result is the orchestrator's answer: the terminal outcome, the
	// candidate involved (when one was attempted), the effective version
	// requirement, and the underlying error when there is one.
	Result struct {
		Outcome      Outcome
		Candidate    discovery.Candidate
		RequiredJava int
		Err          error
	}
)

const (
	// OutcomeStarted means the JVM ran the application to completion.
	OutcomeStarted Outcome = iota
	// OutcomeConfigurationInvalid means required configuration fields were
	// missing; the filesystem was never probed.
	OutcomeConfigurationInvalid
	// OutcomeNoCandidateFound means no installation was found at all.
	OutcomeNoCandidateFound
	// OutcomeCandidateIncompatible means at least one installation was
	// found but every one was rejected on version grounds.
	OutcomeCandidateIncompatible
	// OutcomeInitializationFailed means a compatible installation was found
	// but no candidate's JVM could be created.
	OutcomeInitializationFailed
	// OutcomeAttachFailed means the JVM was created but the launch thread
	// could not attach. Terminal: the consumed handle cannot be recreated.
	OutcomeAttachFailed
	// OutcomeInvocationFailed means the entry point could not be invoked.
	// Terminal for the same reason.
	OutcomeInvocationFailed
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeStarted:
		return "started"
	case OutcomeConfigurationInvalid:
		return "configuration invalid"
	case OutcomeNoCandidateFound:
		return "no candidate found"
	case OutcomeCandidateIncompatible:
		return "candidate incompatible"
	case OutcomeInitializationFailed:
		return "initialization failed"
	case OutcomeAttachFailed:
		return "attach failed"
	case OutcomeInvocationFailed:
		return "invocation failed"
	default:
		return "unknown"
	}
}

// Success reports whether the application was launched.
func (o Outcome) Success() bool { return o == OutcomeStarted }
