// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

// ErrNotLaunchable is the sentinel error wrapped by NotLaunchableError.
var ErrNotLaunchable = errors.New("configuration is not launchable")

type (
	// LaunchConfig is the merged, immutable launch configuration handed to
	// the orchestrator. It is produced once from the application's cfg file
	// (plus overlay and launcher settings) and never mutated afterwards.
	LaunchConfig struct {
		// MainClass is the dotted name of the entry-point class.
		MainClass string

		// RuntimePath is an explicitly configured Java installation root.
		// Empty means "not configured"; discovery then starts from the
		// working directory.
		RuntimePath string

		// MinJavaVersion is the configured minimum Java major version.
		// Zero means no requirement.
		MinJavaVersion int

		// Options are the raw JVM options, in declaration order.
		Options []string

		// Classpath is the ordered list of archive/directory locations.
		Classpath []string

		// ProgramArgs are forwarded to the application's main method.
		ProgramArgs []string

		// AllowEnvLookup enables the JAVA_HOME resolution strategy.
		AllowEnvLookup bool

		// AllowCommonLocations enables probing conventional install roots.
		AllowCommonLocations bool

		// MemoryFraction is the fraction of total system memory to request
		// as the maximum heap. Meaningful only when MemoryFractionSet.
		MemoryFraction float64

		// MemoryFractionSet reports whether a memory-fraction hint exists.
		MemoryFractionSet bool
	}

	// NotLaunchableError reports the required fields missing from a
	// LaunchConfig.
	NotLaunchableError struct {
		Missing []string
	}
)

// Error implements the error interface.
func (e *NotLaunchableError) Error() string {
	return fmt.Sprintf("configuration is not launchable: missing %v", e.Missing)
}

// Unwrap returns ErrNotLaunchable so callers can use errors.Is.
func (e *NotLaunchableError) Unwrap() error { return ErrNotLaunchable }

// IsValid reports whether the configuration is launchable: both the
// entry-point class and the classpath must be present. Absence is a
// validation failure for the caller to surface, never a crash.
func (c *LaunchConfig) IsValid() (bool, []error) {
	var missing []string
	if c.MainClass == "" {
		missing = append(missing, "main class")
	}
	if len(c.Classpath) == 0 {
		missing = append(missing, "classpath")
	}
	if len(missing) > 0 {
		return false, []error{&NotLaunchableError{Missing: missing}}
	}
	return true, nil
}
