// SPDX-License-Identifier: MPL-2.0

// Package jar provides read-only access to application archives: opening jar
// files as zip containers and parsing their manifests.
package jar

import (
	"archive/zip"
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// Reader is an open jar file. Close must be called when done.
type Reader struct {
	*zip.Reader
	closer io.Closer
}

// Close releases the underlying file or mapping.
func (r *Reader) Close() error {
	return r.closer.Close()
}

// Open opens a jar for reading. The file is memory mapped when possible,
// which avoids pathological read latency on virtualized filesystems; plain
// buffered reading is the fallback.
func Open(path string) (*Reader, error) {
	if ra, err := mmap.Open(path); err == nil {
		zr, err := zip.NewReader(ra, int64(ra.Len()))
		if err != nil {
			ra.Close()
			return nil, fmt.Errorf("open jar %s: %w", path, err)
		}
		return &Reader{Reader: zr, closer: ra}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open jar %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat jar %s: %w", path, err)
	}
	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open jar %s: %w", path, err)
	}
	return &Reader{Reader: zr, closer: f}, nil
}

// OpenEntry returns a reader for the named entry inside the jar at path.
// The caller must close the returned ReadCloser; closing it also closes the
// jar itself.
func OpenEntry(path, name string) (io.ReadCloser, error) {
	jr, err := Open(path)
	if err != nil {
		return nil, err
	}
	entry, err := jr.Reader.Open(name)
	if err != nil {
		jr.Close()
		return nil, fmt.Errorf("open entry %s in %s: %w", name, path, err)
	}
	return &entryReadCloser{entry: entry, jar: jr}, nil
}

type entryReadCloser struct {
	entry io.ReadCloser
	jar   *Reader
}

func (e *entryReadCloser) Read(p []byte) (int, error) {
	return e.entry.Read(p)
}

func (e *entryReadCloser) Close() error {
	err := e.entry.Close()
	if cerr := e.jar.Close(); err == nil {
		err = cerr
	}
	return err
}
