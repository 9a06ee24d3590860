// SPDX-License-Identifier: MPL-2.0

//go:build windows

package jvm

import (
	"path/filepath"

	"golang.org/x/sys/windows"
)

// loadLibrary opens jvm.dll with the altered search path so its dependent
// DLLs resolve relative to the library's own directory.
func loadLibrary(path string) (uintptr, error) {
	handle, err := windows.LoadLibraryEx(path, 0, windows.LOAD_WITH_ALTERED_SEARCH_PATH)
	if err != nil {
		return 0, err
	}
	return uintptr(handle), nil
}

// resolveSymbol looks up an exported symbol in a loaded library.
func resolveSymbol(handle uintptr, name string) (uintptr, error) {
	addr, err := windows.GetProcAddress(windows.Handle(handle), name)
	if err != nil {
		return 0, err
	}
	return addr, nil
}

// prepareLibrarySearch points the DLL search path at the runtime's bin
// directory. jvm.dll lives in bin\server (or bin\client), and its dependent
// DLLs in bin; without this the loader cannot find them.
func prepareLibrarySearch(libPath string) {
	binDir := filepath.Dir(filepath.Dir(libPath))
	windows.SetDllDirectory(binDir)
}
