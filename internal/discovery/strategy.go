// SPDX-License-Identifier: MPL-2.0

// Package discovery locates candidate Java installations on the host via an
// ordered list of resolution strategies and gates them against the version
// requirement before the orchestrator attempts a launch.
package discovery

import (
	"os"

	"javelin-cli/internal/config"
	"javelin-cli/internal/platform"
)

type (
	// StrategyKind tags the origin of a resolution strategy, kept on the
	// candidate for diagnostics.
	StrategyKind int

	// Strategy is one deferred lookup: a search root produced by a specific
	// resolution rule. Nothing touches the filesystem until Locate is called.
	Strategy struct {
		// Kind is the rule that produced this strategy.
		Kind StrategyKind
		// Root is the directory the bounded search starts from.
		Root string
	}

	// Candidate is a resolved shared-library path, tagged with the strategy
	// that produced it. Candidates are transient: one is produced per
	// resolution attempt and discarded once the orchestrator moves on.
	Candidate struct {
		// LibPath is the full path to the JVM shared library.
		LibPath string
		// Strategy is the rule that found it.
		Strategy StrategyKind
	}
)

const (
	// StrategyExplicit probes the configuration-declared runtime path, or
	// the working directory when none is declared.
	StrategyExplicit StrategyKind = iota
	// StrategyEnvHome probes the JAVA_HOME environment variable.
	StrategyEnvHome
	// StrategyCommonLocation probes a conventional installation root.
	StrategyCommonLocation
)

// String returns a human-readable strategy name.
func (k StrategyKind) String() string {
	switch k {
	case StrategyExplicit:
		return "explicit path"
	case StrategyEnvHome:
		return platform.HomeEnvVar + " environment variable"
	case StrategyCommonLocation:
		return "common install location"
	default:
		return "unknown"
	}
}

// Strategies produces the ordered strategy list for a configuration:
//
//  1. the explicit runtime path (or the working directory),
//  2. JAVA_HOME, when set and permitted,
//  3. each conventional installation root, when permitted.
//
// The list is fully ordered but lazy: no strategy walks the filesystem here.
func Strategies(cfg *config.LaunchConfig, profile platform.Profile) []Strategy {
	var strategies []Strategy

	explicitRoot := cfg.RuntimePath
	if explicitRoot == "" {
		if cwd, err := os.Getwd(); err == nil {
			explicitRoot = cwd
		}
	}
	if explicitRoot != "" {
		strategies = append(strategies, Strategy{Kind: StrategyExplicit, Root: explicitRoot})
	}

	if cfg.AllowEnvLookup {
		if home := os.Getenv(platform.HomeEnvVar); home != "" {
			strategies = append(strategies, Strategy{Kind: StrategyEnvHome, Root: home})
		}
	}

	if cfg.AllowCommonLocations {
		for _, root := range profile.ExpandedCommonRoots() {
			strategies = append(strategies, Strategy{Kind: StrategyCommonLocation, Root: root})
		}
	}

	return strategies
}

// Locate runs the strategy's bounded search and returns the candidate
// library path, or false when the root is missing or holds no match.
func (s Strategy) Locate(profile platform.Profile) (Candidate, bool) {
	path, ok := findLibrary(s.Root, profile.LibName)
	if !ok {
		return Candidate{}, false
	}
	return Candidate{LibPath: path, Strategy: s.Kind}, true
}
