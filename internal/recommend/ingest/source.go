// Reviewrec - Product Review Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reviewrec

package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// MaxLineSize bounds a single log line. Review text lines can be long.
const MaxLineSize = 16 << 20

const readBufferSize = 1 << 20

// NewScanner returns a line scanner over r sized for review logs.
func NewScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), MaxLineSize)
	return sc
}

// FileSource is a LineSource reading a review log file, plain or gzip.
type FileSource struct {
	*bufio.Scanner

	path       string
	file       *os.File
	gz         *gzip.Reader
	compressed bool
}

// Open opens path for line-by-line reading. Gzip input is detected from
// its magic bytes, so the file extension does not matter.
func Open(path string) (*FileSource, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open review log: %w", err)
	}

	br := bufio.NewReaderSize(f, readBufferSize)
	src := &FileSource{path: path, file: f}

	var r io.Reader = br
	magic, err := br.Peek(2)
	switch {
	case err == nil && magic[0] == 0x1f && magic[1] == 0x8b:
		gz, gzErr := gzip.NewReader(br)
		if gzErr != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to open gzip stream %s: %w", path, gzErr)
		}
		src.gz = gz
		src.compressed = true
		r = gz
	case err != nil && !errors.Is(err, io.EOF):
		_ = f.Close()
		return nil, fmt.Errorf("failed to read review log header: %w", err)
	}

	src.Scanner = NewScanner(r)
	return src, nil
}

// Path returns the file path.
func (s *FileSource) Path() string {
	return s.path
}

// Compressed reports whether the file is gzip-compressed.
func (s *FileSource) Compressed() bool {
	return s.compressed
}

// Close releases the decompressor and the file.
func (s *FileSource) Close() error {
	var gzErr error
	if s.gz != nil {
		gzErr = s.gz.Close()
	}
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("failed to close review log: %w", err)
	}
	if gzErr != nil {
		return fmt.Errorf("failed to close gzip stream: %w", gzErr)
	}
	return nil
}
