// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// maxWalkDepth bounds the search below a strategy root. JVM images keep the
// shared library within a few levels of the installation root (lib/server,
// bin/server, jre/lib/server), so deeper trees are never worth walking.
const maxWalkDepth = 5

// findLibrary searches root for a file named libName, depth-bounded and
// skipping hidden entries. When several copies exist under one root (e.g. a
// directory of JDK images), the shallowest match wins; equal depths fall back
// to the walk's lexicographic order. Returns false when the root does not
// exist or holds no match.
func findLibrary(root, libName string) (string, bool) {
	var (
		found      string
		foundDepth int
	)

	root = filepath.Clean(root)
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		depth := len(strings.Split(rel, string(filepath.Separator)))

		if d.IsDir() {
			// A deeper match could never beat one already in hand at this depth.
			if depth >= maxWalkDepth || (found != "" && depth >= foundDepth) {
				return fs.SkipDir
			}
			return nil
		}

		if d.Name() == libName && (found == "" || depth < foundDepth) {
			found = path
			foundDepth = depth
			if depth == 1 {
				return fs.SkipAll
			}
		}
		return nil
	})

	return found, found != ""
}
