// SPDX-License-Identifier: MPL-2.0

//go:build darwin || linux || freebsd

package jvm

import (
	"github.com/ebitengine/purego"
)

// loadLibrary opens the JVM shared library for symbol resolution.
func loadLibrary(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

// resolveSymbol looks up an exported symbol in a loaded library.
func resolveSymbol(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

// prepareLibrarySearch is a no-op outside Windows: unix runtimes resolve
// their dependent libraries through the fully qualified libjvm path.
func prepareLibrarySearch(string) {}
