// SPDX-License-Identifier: MPL-2.0

// Package launcher drives one launch from validated configuration to a
// terminal outcome: validate, derive the effective version requirement,
// pull candidates from discovery, and run the JVM lifecycle. JVM creation
// failures advance to the next candidate; every failure after a successful
// creation is terminal, because a process gets exactly one JVM.
package launcher

import (
	"javelin-cli/internal/classfile"
	"javelin-cli/internal/config"
	"javelin-cli/internal/discovery"
	"javelin-cli/internal/jvm"
	"javelin-cli/internal/jvmargs"
	"javelin-cli/internal/platform"

	"github.com/charmbracelet/log"
)

type (
	// Introspector derives the minimum Java major version an entry-point
	// class was compiled for. It matches classfile.MinimumJavaVersion.
	Introspector func(className string, classpath []string) (int, bool)

	// Options configures one orchestration run. Zero-value fields fall back
	// to the production collaborators.
	Options struct {
		// Profile describes the host platform. Required.
		Profile platform.Profile

		// VM is the native invocation interface. Nil uses jvm.New().
		VM jvm.VM

		// Gate overrides the version oracle. Nil uses release metadata.
		Gate discovery.VersionGate

		// Introspect overrides class-file introspection. Nil reads the
		// entry-point class header from the classpath.
		Introspect Introspector

		// Logger receives progress diagnostics. Nil uses log.Default().
		Logger *log.Logger

		// AppPath is the launcher executable path, forwarded into the
		// -Djpackage.app-path system property.
		AppPath string

		// TotalMemoryKB is the host's total memory in kilobytes. Zero
		// queries the host.
		TotalMemoryKB uint64

		// StrictOptions rejects malformed JVM options instead of dropping
		// them.
		StrictOptions bool

		// Notify receives the sanitization notices emitted while building
		// arguments. Nil discards them.
		Notify func(string)
	}
)

// Run executes one launch and returns its terminal outcome. It never
// panics on missing configuration or a missing runtime; every failure maps
// to an Outcome the caller can diagnose.
func Run(cfg *config.LaunchConfig, opts Options) Result {
	if opts.VM == nil {
		opts.VM = jvm.New()
	}
	if opts.Introspect == nil {
		opts.Introspect = classfile.MinimumJavaVersion
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	if ok, errs := cfg.IsValid(); !ok {
		return Result{Outcome: OutcomeConfigurationInvalid, Err: errs[0]}
	}

	if opts.Profile.RequiresMainThread {
		// Thread affinity is the entry point's job (runtime.LockOSThread
		// before any goroutine starts); here it can only be stated.
		opts.Logger.Debug("platform requires the JVM lifecycle on the main thread", "os", opts.Profile.OS)
	}

	// The requirement is fixed before any filesystem probing: the configured
	// minimum and the class-file floor are merged once and never revisited.
	required := cfg.MinJavaVersion
	if introspected, ok := opts.Introspect(cfg.MainClass, cfg.Classpath); ok && introspected > required {
		required = introspected
	}
	opts.Logger.Debug("derived version requirement", "required", required, "configured", cfg.MinJavaVersion)

	totalKB := opts.TotalMemoryKB
	if totalKB == 0 && cfg.MemoryFractionSet {
		totalKB = jvmargs.TotalSystemMemoryKB()
	}
	args, notices, err := jvmargs.Build(cfg, opts.Profile, jvmargs.BuildOptions{
		AppPath:       opts.AppPath,
		TotalMemoryKB: totalKB,
		StrictOptions: opts.StrictOptions,
	})
	for _, notice := range notices {
		opts.Logger.Warn(string(notice))
		if opts.Notify != nil {
			opts.Notify(string(notice))
		}
	}
	if err != nil {
		return Result{Outcome: OutcomeConfigurationInvalid, RequiredJava: required, Err: err}
	}

	resolver := discovery.NewResolver(discovery.Strategies(cfg, opts.Profile), opts.Profile, required, opts.Gate, opts.Logger)

	var (
		lastCreateErr error
		lastCandidate discovery.Candidate
	)
	for {
		candidate, ok := resolver.Next()
		if !ok {
			break
		}

		opts.Logger.Info("creating JVM", "lib", candidate.LibPath, "strategy", candidate.Strategy)
		if err := opts.VM.Create(candidate.LibPath, jvm.InitArgs{Options: args.Options, IgnoreUnrecognized: true}); err != nil {
			// Creation leaves no live handle behind, so the next candidate
			// is still fair game.
			opts.Logger.Warn("JVM creation failed", "lib", candidate.LibPath, "err", err)
			lastCreateErr = err
			lastCandidate = candidate
			continue
		}

		return runCreated(cfg, candidate, required, args, opts)
	}

	switch {
	case lastCreateErr != nil:
		return Result{Outcome: OutcomeInitializationFailed, Candidate: lastCandidate, RequiredJava: required, Err: lastCreateErr}
	case resolver.SawIncompatible():
		return Result{Outcome: OutcomeCandidateIncompatible, RequiredJava: required}
	default:
		return Result{Outcome: OutcomeNoCandidateFound, RequiredJava: required}
	}
}

// runCreated drives a created JVM to completion. The handle is consumed no
// matter what happens next, so attach and invocation failures are terminal
// and Destroy runs exactly once on every path.
func runCreated(cfg *config.LaunchConfig, candidate discovery.Candidate, required int, args jvmargs.Arguments, opts Options) Result {
	defer func() {
		if err := opts.VM.Destroy(); err != nil {
			opts.Logger.Warn("JVM teardown failed", "err", err)
		}
	}()

	env, err := opts.VM.AttachCurrentThread()
	if err != nil {
		return Result{Outcome: OutcomeAttachFailed, Candidate: candidate, RequiredJava: required, Err: err}
	}

	opts.Logger.Info("invoking entry point", "class", cfg.MainClass, "args", len(args.ProgramArgs))
	if err := env.CallStaticVoidMain(cfg.MainClass, args.ProgramArgs); err != nil {
		return Result{Outcome: OutcomeInvocationFailed, Candidate: candidate, RequiredJava: required, Err: err}
	}

	// Destroy blocks until all Java threads exit, so a Started result means
	// the application actually ran to completion.
	return Result{Outcome: OutcomeStarted, Candidate: candidate, RequiredJava: required}
}
