// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte{0}, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindLibrary_Found(t *testing.T) {
	root := t.TempDir()
	want := filepath.Join(root, "lib", "server", "libjvm.so")
	writeFile(t, want)

	got, ok := findLibrary(root, "libjvm.so")
	if !ok {
		t.Fatal("findLibrary() found nothing")
	}
	if got != want {
		t.Errorf("findLibrary() = %q, want %q", got, want)
	}
}

func TestFindLibrary_MissingRoot(t *testing.T) {
	if _, ok := findLibrary(filepath.Join(t.TempDir(), "nope"), "libjvm.so"); ok {
		t.Error("findLibrary() should fail on a missing root")
	}
}

func TestFindLibrary_SkipsHiddenEntries(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".cache", "libjvm.so"))

	if _, ok := findLibrary(root, "libjvm.so"); ok {
		t.Error("findLibrary() must skip hidden directories")
	}
}

func TestFindLibrary_DepthBound(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "b", "c", "d", "e", "libjvm.so"))

	if _, ok := findLibrary(root, "libjvm.so"); ok {
		t.Error("findLibrary() must not descend beyond the depth bound")
	}
}

func TestFindLibrary_ShallowestMatchWins(t *testing.T) {
	root := t.TempDir()
	shallow := filepath.Join(root, "zzz", "libjvm.so")
	writeFile(t, filepath.Join(root, "aaa", "deep", "down", "libjvm.so"))
	writeFile(t, shallow)

	got, ok := findLibrary(root, "libjvm.so")
	if !ok {
		t.Fatal("findLibrary() found nothing")
	}
	if got != shallow {
		t.Errorf("findLibrary() = %q, want shallowest match %q", got, shallow)
	}
}

func TestFindLibrary_NameMustMatchExactly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lib", "libjvm.so.1"))

	if _, ok := findLibrary(root, "libjvm.so"); ok {
		t.Error("findLibrary() must match the exact file name")
	}
}
