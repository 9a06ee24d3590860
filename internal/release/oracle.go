// SPDX-License-Identifier: MPL-2.0

// Package release reads the version metadata a Java installation records in
// its "release" file and answers whether an installation satisfies a minimum
// major-version requirement.
package release

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// MetadataFileName is the release-metadata file every JDK/JRE image
	// carries in its installation root.
	MetadataFileName = "release"

	// versionKey is the only key the oracle reads from the metadata file.
	versionKey = "JAVA_VERSION"

	// maxParentHops bounds the upward walk from the shared library to the
	// installation root. The library sits at most a few levels below the
	// root (e.g. lib/server/libjvm.so, bin/server/jvm.dll).
	maxParentHops = 3
)

// Result is the oracle's answer for one candidate installation.
type Result int

const (
	// Unknown means the metadata file or the version key is missing or
	// unparsable. Callers treat it as "cannot veto": it never disqualifies a
	// candidate when no requirement was declared, but it is not a positive
	// compatibility proof either.
	Unknown Result = iota
	// Compatible means the recorded major version satisfies the requirement.
	Compatible
	// Incompatible means the recorded major version is below the requirement.
	Incompatible
)

// String returns a human-readable result name.
func (r Result) String() string {
	switch r {
	case Compatible:
		return "compatible"
	case Incompatible:
		return "incompatible"
	case Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Check reports whether the installation containing the shared library at
// libPath satisfies requiredMajor. A requiredMajor of 0 means "no
// requirement", which any parsable version satisfies.
func Check(libPath string, requiredMajor int) Result {
	major, ok := Major(libPath)
	if !ok {
		return Unknown
	}
	if major >= requiredMajor {
		return Compatible
	}
	return Incompatible
}

// Major returns the major Java version recorded in the release file nearest
// above libPath, walking at most a fixed number of parent directories.
func Major(libPath string) (int, bool) {
	dir := filepath.Dir(libPath)
	for hop := 0; hop <= maxParentHops; hop++ {
		if major, ok := majorFromFile(filepath.Join(dir, MetadataFileName)); ok {
			return major, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return 0, false
}

// majorFromFile parses a release file and extracts the major version from the
// JAVA_VERSION entry, e.g. JAVA_VERSION="17.0.2" yields 17.
func majorFromFile(path string) (int, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, found := strings.Cut(line, "=")
		if !found || strings.TrimSpace(key) != versionKey {
			continue
		}
		return parseMajor(value)
	}
	return 0, false
}

// parseMajor extracts the integer before the first '.' of a possibly
// double-quoted version string.
func parseMajor(value string) (int, bool) {
	value = strings.TrimSpace(value)
	value = strings.Trim(value, `"`)
	if before, _, found := strings.Cut(value, "."); found {
		value = before
	}
	major, err := strconv.Atoi(value)
	if err != nil || major < 0 {
		return 0, false
	}
	return major, true
}
