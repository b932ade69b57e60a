// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keywords

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "plain lines",
			content: "alpha\nbeta\ngamma\n",
			want:    []string{"alpha", "beta", "gamma"},
		},
		{
			name:    "blank and whitespace lines dropped",
			content: "alpha\n\n   \n\t\nbeta\n",
			want:    []string{"alpha", "beta"},
		},
		{
			name:    "lines trimmed, order preserved, duplicates kept",
			content: "  zebra  \napple\nzebra\n",
			want:    []string{"zebra", "apple", "zebra"},
		},
		{
			name:    "phrases and CRLF endings",
			content: "fail safe\r\nsecond phrase\r\n",
			want:    []string{"fail safe", "second phrase"},
		},
		{
			name:    "no trailing newline",
			content: "only",
			want:    []string{"only"},
		},
		{
			name:    "empty file",
			content: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "keywords.txt")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			got, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LoadFile = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "trims and drops empties",
			input: "foo, , bar,baz ",
			want:  []string{"foo", "bar", "baz"},
		},
		{
			name:  "single keyword",
			input: "solo",
			want:  []string{"solo"},
		},
		{
			name:  "phrases with inner spaces survive",
			input: "fail safe, deep learning",
			want:  []string{"fail safe", "deep learning"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "only separators",
			input: ", ,,  ,",
			want:  nil,
		},
		{
			name:  "case preserved",
			input: "Fail-Safe,FAILSAFE",
			want:  []string{"Fail-Safe", "FAILSAFE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseList(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
