// SPDX-License-Identifier: MPL-2.0

// Package classfile inspects compiled class files to derive the minimum Java
// version an application's entry point requires.
package classfile

import (
	"encoding/binary"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"javelin-cli/internal/jar"
)

const (
	// Magic is the class-file magic constant, big-endian.
	Magic = 0xCAFEBABE

	// ClassExt is the compiled-unit file extension.
	ClassExt = ".class"

	// baseMajor is the class-format major version of Java 1 (45 = JDK 1.1).
	// Java major = format major - baseMajor + 1.
	baseMajor = 45

	// maxSearchDepth bounds the directory scan for a class file inside an
	// exploded classpath entry.
	maxSearchDepth = 5
)

// EntryName returns the in-archive path of the class file for a dotted class
// name, e.g. "com.example.Main" -> "com/example/Main.class".
func EntryName(className string) string {
	return strings.ReplaceAll(className, ".", "/") + ClassExt
}

// JavaMajor reads a class-file header from r and returns the Java major
// version the class was compiled for. It returns false when the magic number
// does not match or the recorded format version predates Java 1.
func JavaMajor(r io.Reader) (int, bool) {
	var header [8]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, false
	}

	if binary.BigEndian.Uint32(header[0:4]) != Magic {
		return 0, false
	}

	// Bytes 4-5 are the minor version; only the major at 6-7 matters here.
	major := int(binary.BigEndian.Uint16(header[6:8]))
	if major < baseMajor {
		return 0, false
	}
	return major - baseMajor + 1, true
}

// MinimumJavaVersion locates the entry point's class file on the classpath
// and returns the Java major version it was compiled for.
//
// Classpath entries are tried in order; the first entry that yields the class
// file wins, even if version extraction from it then fails. This keeps the
// scan cheap: a broken artifact is not papered over by a healthier copy
// further down the classpath.
func MinimumJavaVersion(className string, classpath []string) (int, bool) {
	if className == "" {
		return 0, false
	}
	entryName := EntryName(className)

	for _, cpEntry := range classpath {
		info, err := os.Stat(cpEntry)
		if err != nil {
			continue
		}

		if info.IsDir() {
			if path, ok := findClassInDir(cpEntry, entryName); ok {
				return javaMajorOfFile(path)
			}
			continue
		}

		rc, err := jar.OpenEntry(cpEntry, entryName)
		if err != nil {
			continue
		}
		major, ok := JavaMajor(rc)
		rc.Close()
		return major, ok
	}
	return 0, false
}

// findClassInDir looks for entryName under dir: first at its direct relative
// location, then via a bounded-depth scan that skips hidden entries.
func findClassInDir(dir, entryName string) (string, bool) {
	direct := filepath.Join(dir, filepath.FromSlash(entryName))
	if info, err := os.Stat(direct); err == nil && !info.IsDir() {
		return direct, true
	}

	var found string
	root := filepath.Clean(dir)
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fs.SkipDir
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
			if depth >= maxSearchDepth {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(filepath.ToSlash(rel), entryName) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	return found, found != ""
}

func javaMajorOfFile(path string) (int, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()
	return JavaMajor(f)
}
