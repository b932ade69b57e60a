// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover enumerates the PDF files under a source folder.
package discover

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// DefaultExtension identifies PDF files when no extension is configured.
const DefaultExtension = ".pdf"

// Discover recursively walks root and returns every regular file whose
// extension matches ext (case-insensitive; pass "" for DefaultExtension).
// Returned paths keep the filesystem's own spelling. Order is the walk
// order: stable across repeat calls on an unchanged tree, not sorted.
// A folder with no matches yields an empty list, not an error; the caller
// decides how to react.
func Discover(root, ext string) ([]string, error) {
	if ext == "" {
		ext = DefaultExtension
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ext) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return paths, nil
}
