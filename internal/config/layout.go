// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"

	"javelin-cli/internal/platform"
)

// Layout locates the pieces of a jpackage-style application image relative to
// the launcher executable. The shape differs per OS:
//
//	linux:   <root>/bin/<app>, <root>/lib/app, <root>/lib/runtime
//	windows: <root>\<app>.exe, <root>\app,     <root>\runtime
//	macOS:   Contents/MacOS/<app>, Contents/app, Contents/runtime
type Layout struct {
	// BinDir is the directory containing the launcher executable.
	BinDir string
	// RootDir is the application image root.
	RootDir string
	// AppDir holds the cfg file and application jars.
	AppDir string
	// DefaultRuntimeDir is the bundled runtime location, which may not exist
	// when the application ships without one.
	DefaultRuntimeDir string
	// CfgPath is the launch configuration file path.
	CfgPath string
}

// LayoutFor computes the image layout for an executable path and GOOS value.
func LayoutFor(exePath, goos string) Layout {
	binDir := filepath.Dir(exePath)
	appName := strings.TrimSuffix(filepath.Base(exePath), filepath.Ext(exePath))

	var l Layout
	switch goos {
	case platform.Windows:
		l = Layout{
			BinDir:            binDir,
			RootDir:           binDir,
			AppDir:            filepath.Join(binDir, "app"),
			DefaultRuntimeDir: filepath.Join(binDir, "runtime"),
		}
	case platform.Darwin:
		contents := filepath.Dir(binDir)
		l = Layout{
			BinDir:            binDir,
			RootDir:           contents,
			AppDir:            filepath.Join(contents, "app"),
			DefaultRuntimeDir: filepath.Join(contents, "runtime"),
		}
	default:
		root := filepath.Dir(binDir)
		l = Layout{
			BinDir:            binDir,
			RootDir:           root,
			AppDir:            filepath.Join(root, "lib", "app"),
			DefaultRuntimeDir: filepath.Join(root, "lib", "runtime"),
		}
	}
	l.CfgPath = filepath.Join(l.AppDir, appName+".cfg")
	return l
}

// CurrentLayout computes the layout for the running executable. Failure to
// resolve the executable's own path is the one environment failure the
// launcher cannot recover from.
func CurrentLayout(goos string) (Layout, error) {
	exePath, err := os.Executable()
	if err != nil {
		return Layout{}, err
	}
	return LayoutFor(exePath, goos), nil
}
