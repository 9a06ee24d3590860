// SPDX-License-Identifier: MPL-2.0

// Package platform resolves the per-OS facts the launcher needs: the name of
// the JVM shared library, the conventional Java installation roots, and the
// classpath list separator.
package platform

import (
	"os"
	"runtime"
	"strings"
)

const (
	// Windows is the GOOS value for Windows.
	Windows = "windows"
	// Darwin is the GOOS value for macOS.
	Darwin = "darwin"

	// HomeEnvVar is the well-known environment variable naming a Java
	// installation root.
	HomeEnvVar = "JAVA_HOME"

	// UserToken is the placeholder in common-location roots that is replaced
	// with the resolved home directory.
	UserToken = "$USER$"
)

// Profile describes the platform-specific launch facts. It is resolved once at
// startup and passed explicitly to the resolver and argument builder so the
// rest of the logic stays free of GOOS branches.
type Profile struct {
	// OS is the GOOS value the profile was built for.
	OS string
	// LibName is the file name of the JVM shared library on this platform.
	LibName string
	// PathListSeparator joins classpath and module-path entries.
	PathListSeparator string
	// CommonRoots are conventional Java installation directories, in probe
	// order. Entries may contain UserToken.
	CommonRoots []string
	// RequiresMainThread reports whether the JVM lifecycle must run on the
	// process's first thread for windowing integration.
	RequiresMainThread bool
}

// CurrentProfile returns the profile for the host OS.
func CurrentProfile() Profile {
	return ProfileFor(runtime.GOOS)
}

// ProfileFor returns the profile for the given GOOS value. Unknown systems get
// the generic Unix profile.
func ProfileFor(goos string) Profile {
	switch goos {
	case Windows:
		return Profile{
			OS:                goos,
			LibName:           "jvm.dll",
			PathListSeparator: ";",
			CommonRoots: []string{
				`C:\Program Files\Java`,
				`C:\Program Files\Eclipse Adoptium`,
				`C:\Program Files (x86)\Java`,
				UserToken + `\scoop\apps`,
			},
		}
	case Darwin:
		return Profile{
			OS:                 goos,
			LibName:            "libjvm.dylib",
			PathListSeparator:  ":",
			RequiresMainThread: true,
			CommonRoots: []string{
				"/Library/Java/JavaVirtualMachines",
				UserToken + "/Library/Java/JavaVirtualMachines",
				"/opt/homebrew/opt/java",
			},
		}
	default:
		return Profile{
			OS:                goos,
			LibName:           "libjvm.so",
			PathListSeparator: ":",
			CommonRoots: []string{
				"/usr/lib/jvm",
				"/usr/java",
				"/opt/java",
				UserToken + "/.sdkman/candidates/java",
			},
		}
	}
}

// ExpandedCommonRoots returns CommonRoots with UserToken replaced by the
// user's home directory. Roots that need the token are dropped when the home
// directory cannot be resolved.
func (p Profile) ExpandedCommonRoots() []string {
	roots := make([]string, 0, len(p.CommonRoots))
	home, err := os.UserHomeDir()
	for _, root := range p.CommonRoots {
		if strings.Contains(root, UserToken) {
			if err != nil || home == "" {
				continue
			}
			root = strings.ReplaceAll(root, UserToken, home)
		}
		roots = append(roots, root)
	}
	return roots
}
