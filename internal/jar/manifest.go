// SPDX-License-Identifier: MPL-2.0

package jar

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ManifestPath is the fixed location of the manifest inside a jar.
const ManifestPath = "META-INF/MANIFEST.MF"

type (
	// Attributes is one manifest section's key-value pairs.
	Attributes map[string]string

	// Manifest is a parsed jar manifest: the main section plus any named
	// sections ("Name:" entries).
	Manifest struct {
		Main  Attributes
		Named map[string]Attributes
	}
)

// ReadManifest reads META-INF/MANIFEST.MF from either a jar file or an
// exploded directory at path.
func ReadManifest(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	if info.IsDir() {
		f, err := os.Open(filepath.Join(path, filepath.FromSlash(ManifestPath)))
		if err != nil {
			return nil, fmt.Errorf("read manifest: %w", err)
		}
		defer f.Close()
		return ParseManifest(f)
	}

	entry, err := OpenEntry(path, ManifestPath)
	if err != nil {
		return nil, err
	}
	defer entry.Close()
	return ParseManifest(entry)
}

// ParseManifest parses manifest text: "Key: Value" headers, continuation
// lines starting with a single space, and blank-line-separated sections. A
// section whose Name header is present becomes a named section; the first
// unnamed section is the main one.
func ParseManifest(r io.Reader) (*Manifest, error) {
	m := &Manifest{
		Main:  Attributes{},
		Named: map[string]Attributes{},
	}

	section := Attributes{}
	sectionName := ""
	currentKey := ""
	var currentValue strings.Builder

	flushHeader := func() {
		if currentKey == "" {
			return
		}
		// The Name header names the section; it is not an attribute.
		if currentKey == "Name" {
			sectionName = currentValue.String()
		} else {
			section[currentKey] = currentValue.String()
		}
		currentKey = ""
		currentValue.Reset()
	}

	flushSection := func() {
		flushHeader()
		if len(section) == 0 {
			return
		}
		if sectionName == "" {
			m.Main = section
		} else {
			m.Named[sectionName] = section
		}
		section = Attributes{}
		sectionName = ""
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if line == "" {
			flushSection()
			continue
		}

		if rest, ok := strings.CutPrefix(line, " "); ok {
			if currentKey != "" {
				currentValue.WriteString(rest)
			}
			continue
		}

		key, value, found := strings.Cut(line, ": ")
		if !found {
			return nil, fmt.Errorf("malformed manifest line: %q", line)
		}
		flushHeader()
		currentKey = key
		currentValue.WriteString(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	flushSection()

	return m, nil
}
