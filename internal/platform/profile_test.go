// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"strings"
	"testing"
)

func TestProfileFor_LibNames(t *testing.T) {
	tests := []struct {
		goos    string
		libName string
		sep     string
	}{
		{Windows, "jvm.dll", ";"},
		{Darwin, "libjvm.dylib", ":"},
		{"linux", "libjvm.so", ":"},
		{"freebsd", "libjvm.so", ":"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			p := ProfileFor(tt.goos)
			if p.LibName != tt.libName {
				t.Errorf("LibName = %s, want %s", p.LibName, tt.libName)
			}
			if p.PathListSeparator != tt.sep {
				t.Errorf("PathListSeparator = %s, want %s", p.PathListSeparator, tt.sep)
			}
			if len(p.CommonRoots) == 0 {
				t.Error("CommonRoots is empty")
			}
		})
	}
}

func TestProfileFor_MainThreadRequirement(t *testing.T) {
	if !ProfileFor(Darwin).RequiresMainThread {
		t.Error("darwin profile should require the main thread")
	}
	if ProfileFor("linux").RequiresMainThread {
		t.Error("linux profile should not require the main thread")
	}
}

func TestExpandedCommonRoots_SubstitutesUserToken(t *testing.T) {
	t.Setenv("HOME", "/home/probe")

	p := ProfileFor("linux")
	for _, root := range p.ExpandedCommonRoots() {
		if strings.Contains(root, UserToken) {
			t.Errorf("root %q still contains %s", root, UserToken)
		}
	}
}
