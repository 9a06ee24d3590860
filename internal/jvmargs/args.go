// SPDX-License-Identifier: MPL-2.0

// Package jvmargs assembles the JVM initialization argument set from the
// launch configuration: raw options, the classpath flag, and a derived
// maximum-heap flag. Building is a pure function of its inputs; the only
// failure mode is rejecting malformed options under the strict policy.
package jvmargs

import (
	"errors"
	"fmt"
	"strings"

	"javelin-cli/internal/config"
	"javelin-cli/internal/platform"
)

// ErrMalformedOption is the sentinel error wrapped by MalformedOptionError.
var ErrMalformedOption = errors.New("malformed JVM option")

const (
	// DefaultMemoryFraction is used when the configured fraction falls
	// outside the accepted range.
	DefaultMemoryFraction = 0.2

	// Accepted open interval for the memory fraction.
	minMemoryFraction = 0.01
	maxMemoryFraction = 1.0

	maxHeapPrefix = "-Xmx"
)

// moduleOptionPrefixes are option families that must use '=' rather than a
// space before their value when passed through the invocation interface.
var moduleOptionPrefixes = []string{
	"--add-opens",
	"--add-exports",
	"--add-modules",
	"--add-reads",
	"--enable-native-access",
	"--module-path",
	"--patch-module",
	"--limit-modules",
}

// sizedOptionPrefixes are option families that expect a number immediately
// after the flag name, e.g. -Xmx512m.
var sizedOptionPrefixes = []string{
	"-Xmx",
	"-Xms",
	"-Xss",
	"-Xmn",
}

type (
	// Arguments is the finished, immutable initialization argument set plus
	// the forwarded program arguments. Never mutated after construction.
	Arguments struct {
		// Options are JVM initialization options, in final order.
		Options []string
		// ProgramArgs are forwarded to the application's main method.
		ProgramArgs []string
	}

	// Notice is a non-fatal diagnostic emitted while sanitizing options.
	Notice string

	// BuildOptions configures argument building.
	BuildOptions struct {
		// AppPath is the launcher executable path, recorded in the
		// -Djpackage.app-path system property. Empty omits the property.
		AppPath string
		// TotalMemoryKB is the host's total system memory in kilobytes,
		// consulted only when a memory fraction is configured.
		TotalMemoryKB uint64
		// StrictOptions rejects the build on a malformed sized option
		// instead of dropping it.
		StrictOptions bool
	}

	// MalformedOptionError reports a sized option with no numeric value.
	MalformedOptionError struct {
		Option string
	}
)

// Error implements the error interface.
func (e *MalformedOptionError) Error() string {
	return fmt.Sprintf("malformed JVM option %q: expected a number after the flag name", e.Option)
}

// Unwrap returns ErrMalformedOption so callers can use errors.Is.
func (e *MalformedOptionError) Unwrap() error { return ErrMalformedOption }

// Build assembles the final argument set from the launch configuration.
// It returns the arguments, any sanitization notices, and an error only when
// the strict policy rejects a malformed option.
func Build(cfg *config.LaunchConfig, profile platform.Profile, opts BuildOptions) (Arguments, []Notice, error) {
	var (
		options []string
		notices []Notice
	)

	for _, raw := range cfg.Options {
		option, notice, err := sanitizeOption(raw, opts.StrictOptions)
		if err != nil {
			return Arguments{}, notices, err
		}
		if notice != "" {
			notices = append(notices, notice)
		}
		if option != "" {
			options = append(options, option)
		}
	}

	if opts.AppPath != "" {
		options = append(options, "-Djpackage.app-path="+opts.AppPath)
	}

	if len(cfg.Classpath) > 0 {
		options = append(options, "-Djava.class.path="+strings.Join(cfg.Classpath, profile.PathListSeparator))
	}

	if cfg.MemoryFractionSet && !hasMaxHeapOption(options) && opts.TotalMemoryKB > 0 {
		heapKB := HeapSizeKB(opts.TotalMemoryKB, cfg.MemoryFraction)
		options = append(options, fmt.Sprintf("%s%dk", maxHeapPrefix, heapKB))
	}

	return Arguments{
		Options:     options,
		ProgramArgs: append([]string(nil), cfg.ProgramArgs...),
	}, notices, nil
}

// HeapSizeKB computes the maximum-heap size from total system memory and a
// configured fraction. Fractions outside the accepted open interval fall back
// to DefaultMemoryFraction.
func HeapSizeKB(totalKB uint64, fraction float64) uint64 {
	if fraction <= minMemoryFraction || fraction >= maxMemoryFraction {
		fraction = DefaultMemoryFraction
	}
	return uint64(float64(totalKB) * fraction)
}

// sanitizeOption applies light syntactic correction to one raw option.
// Module-family options are rewritten to '=' form; sized options with no
// numeric value are dropped (or rejected under the strict policy).
func sanitizeOption(raw string, strict bool) (string, Notice, error) {
	option := strings.TrimSpace(raw)
	if option == "" {
		return "", "", nil
	}

	for _, prefix := range moduleOptionPrefixes {
		if option == prefix || strings.HasPrefix(option, prefix+" ") || strings.HasPrefix(option, prefix+"=") {
			if strings.Contains(option, " ") {
				fixed := strings.ReplaceAll(option, " ", "=")
				return fixed, Notice(fmt.Sprintf("rewrote option %q to %q: module options take '=' before their value", option, fixed)), nil
			}
			return option, "", nil
		}
	}

	for _, prefix := range sizedOptionPrefixes {
		if !strings.HasPrefix(option, prefix) {
			continue
		}
		rest := option[len(prefix):]
		if rest == "" || rest[0] < '0' || rest[0] > '9' {
			if strict {
				return "", "", &MalformedOptionError{Option: option}
			}
			return "", Notice(fmt.Sprintf("dropped option %q: expected a number after %s", option, prefix)), nil
		}
		return option, "", nil
	}

	return option, "", nil
}

func hasMaxHeapOption(options []string) bool {
	for _, option := range options {
		if strings.HasPrefix(option, maxHeapPrefix) {
			return true
		}
	}
	return false
}
