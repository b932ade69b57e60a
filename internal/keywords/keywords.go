// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keywords loads and parses the keyword lists to highlight. A keyword
// is any non-empty string after trimming; order is preserved and duplicates
// are permitted. Matching is case-insensitive at search time, so lists keep
// the case they were supplied with.
package keywords

import (
	"fmt"
	"os"
	"strings"
)

// LoadFile reads a plain-text keyword file, one keyword or phrase per line.
// Blank and whitespace-only lines are dropped; line order is preserved.
func LoadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keyword file %s: %w", path, err)
	}

	var kws []string
	for _, line := range strings.Split(string(data), "\n") {
		if kw := strings.TrimSpace(line); kw != "" {
			kws = append(kws, kw)
		}
	}
	return kws, nil
}

// ParseList splits a comma-separated keyword string, trimming each piece and
// dropping empties. Empty input yields an empty list; ParseList never fails.
func ParseList(s string) []string {
	var kws []string
	for _, piece := range strings.Split(s, ",") {
		if kw := strings.TrimSpace(piece); kw != "" {
			kws = append(kws, kw)
		}
	}
	return kws
}
