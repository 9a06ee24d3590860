// SPDX-License-Identifier: MPL-2.0

package jar

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// writeJar creates a jar file in a temp dir with the given entries.
func writeJar(t *testing.T, entries map[string][]byte) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "app.jar")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpen_ListsEntries(t *testing.T) {
	path := writeJar(t, map[string][]byte{
		"com/example/Main.class": {0xCA, 0xFE, 0xBA, 0xBE},
	})

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer r.Close()

	if len(r.File) != 1 {
		t.Fatalf("len(File) = %d, want 1", len(r.File))
	}
	if r.File[0].Name != "com/example/Main.class" {
		t.Errorf("entry name = %q", r.File[0].Name)
	}
}

func TestOpen_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.jar")
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(path); err == nil {
		t.Error("Open() should fail on a non-zip file")
	}
}

func TestOpenEntry(t *testing.T) {
	want := []byte{0xCA, 0xFE, 0xBA, 0xBE, 0x00, 0x00, 0x00, 0x34}
	path := writeJar(t, map[string][]byte{
		"com/example/Main.class": want,
	})

	rc, err := OpenEntry(path, "com/example/Main.class")
	if err != nil {
		t.Fatalf("OpenEntry() error: %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("entry content = %v, want %v", got, want)
	}
}

func TestOpenEntry_Missing(t *testing.T) {
	path := writeJar(t, map[string][]byte{"a.txt": []byte("x")})

	if _, err := OpenEntry(path, "missing.class"); err == nil {
		t.Error("OpenEntry() should fail for a missing entry")
	}
}
