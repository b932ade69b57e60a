// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch drives one highlighting run over a discovered file list: a
// single background worker processes files sequentially and reports to the
// display side through a FIFO event channel.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
)

// Session is the configuration for one batch run: where to read, where to
// write, and what to highlight. Sessions are plain values; Start snapshots
// the one it is given, so editing a live configuration cannot race with a
// running batch.
type Session struct {
	// Source is the folder scanned for PDFs. Required.
	Source string

	// Dest is the output base folder. Empty means in-place annotation:
	// each output overwrites its input.
	Dest string

	// Keywords to highlight, in supplied order.
	Keywords []string
}

// Snapshot returns a copy of the session with its own keyword slice.
func (s Session) Snapshot() Session {
	s.Keywords = append([]string(nil), s.Keywords...)
	return s
}

// Validate checks the preconditions for starting a batch: a source folder
// that exists and is a directory, and at least one keyword.
func (s Session) Validate() error {
	if s.Source == "" {
		return fmt.Errorf("no source folder selected")
	}
	info, err := os.Stat(s.Source)
	if err != nil {
		return fmt.Errorf("source folder %s: %w", s.Source, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source %s is not a directory", s.Source)
	}
	if len(s.Keywords) == 0 {
		return fmt.Errorf("no keywords to highlight")
	}
	return nil
}

// DestBase returns the output base: the destination folder if set, else the
// source folder (in-place mode).
func (s Session) DestBase() string {
	if s.Dest != "" {
		return s.Dest
	}
	return s.Source
}

// DestPath computes the output path for one input file: the file's path
// relative to the source folder, mirrored under the destination base. When
// the base equals the source folder this is the input path itself.
func (s Session) DestPath(file string) (string, error) {
	rel, err := filepath.Rel(s.Source, file)
	if err != nil {
		return "", fmt.Errorf("relativizing %s: %w", file, err)
	}
	return filepath.Join(s.DestBase(), rel), nil
}
