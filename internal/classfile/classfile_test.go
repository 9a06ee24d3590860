// SPDX-License-Identifier: MPL-2.0

package classfile

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// classHeader builds an 8-byte class-file header with the given magic and
// format major version.
func classHeader(magic uint32, major uint16) []byte {
	return []byte{
		byte(magic >> 24), byte(magic >> 16), byte(magic >> 8), byte(magic),
		0x00, 0x00, // minor
		byte(major >> 8), byte(major),
	}
}

func TestJavaMajor_Mapping(t *testing.T) {
	tests := []struct {
		name      string
		major     uint16
		wantJava  int
		wantFound bool
	}{
		{"below Java 1", 44, 0, false},
		{"Java 1", 45, 1, true},
		{"Java 8", 52, 8, true},
		{"Java 17", 61, 17, true},
		{"Java 21", 65, 21, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := JavaMajor(bytes.NewReader(classHeader(Magic, tt.major)))
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if got != tt.wantJava {
				t.Errorf("JavaMajor() = %d, want %d", got, tt.wantJava)
			}
		})
	}
}

func TestJavaMajor_RejectsBadMagic(t *testing.T) {
	if _, found := JavaMajor(bytes.NewReader(classHeader(0xDEADBEEF, 61))); found {
		t.Error("JavaMajor() should reject a non-class magic number")
	}
}

func TestJavaMajor_ShortRead(t *testing.T) {
	if _, found := JavaMajor(bytes.NewReader([]byte{0xCA, 0xFE})); found {
		t.Error("JavaMajor() should reject a truncated header")
	}
}

func TestJavaMajor_Idempotent(t *testing.T) {
	header := classHeader(Magic, 52)
	first, _ := JavaMajor(bytes.NewReader(header))
	second, _ := JavaMajor(bytes.NewReader(header))
	if first != second {
		t.Errorf("repeated introspection differs: %d vs %d", first, second)
	}
}

func TestEntryName(t *testing.T) {
	if got := EntryName("com.example.Main"); got != "com/example/Main.class" {
		t.Errorf("EntryName() = %q", got)
	}
}

func TestMinimumJavaVersion_FromDirectory(t *testing.T) {
	dir := t.TempDir()
	classDir := filepath.Join(dir, "com", "example")
	if err := os.MkdirAll(classDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(classDir, "Main.class"), classHeader(Magic, 52), 0o644); err != nil {
		t.Fatal(err)
	}

	got, found := MinimumJavaVersion("com.example.Main", []string{dir})
	if !found {
		t.Fatal("MinimumJavaVersion() found nothing")
	}
	if got != 8 {
		t.Errorf("MinimumJavaVersion() = %d, want 8", got)
	}
}

func TestMinimumJavaVersion_FromJar(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("com/example/Main.class")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(classHeader(Magic, 61)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	jarPath := filepath.Join(t.TempDir(), "app.jar")
	if err := os.WriteFile(jarPath, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	got, found := MinimumJavaVersion("com.example.Main", []string{jarPath})
	if !found {
		t.Fatal("MinimumJavaVersion() found nothing")
	}
	if got != 17 {
		t.Errorf("MinimumJavaVersion() = %d, want 17", got)
	}
}

func TestMinimumJavaVersion_FirstMatchWins(t *testing.T) {
	// First entry holds a corrupt artifact; the scan must stop there rather
	// than fall through to the healthy copy in the second entry.
	corrupt := t.TempDir()
	corruptDir := filepath.Join(corrupt, "com", "example")
	if err := os.MkdirAll(corruptDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(corruptDir, "Main.class"), []byte{0x00, 0x01}, 0o644); err != nil {
		t.Fatal(err)
	}

	healthy := t.TempDir()
	healthyDir := filepath.Join(healthy, "com", "example")
	if err := os.MkdirAll(healthyDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(healthyDir, "Main.class"), classHeader(Magic, 61), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, found := MinimumJavaVersion("com.example.Main", []string{corrupt, healthy}); found {
		t.Error("scan should stop at the first classpath entry that yields the artifact")
	}
}

func TestMinimumJavaVersion_MissingEverywhere(t *testing.T) {
	if _, found := MinimumJavaVersion("com.example.Main", []string{t.TempDir()}); found {
		t.Error("MinimumJavaVersion() should find nothing on an empty classpath")
	}
}
