// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// JobFile is the on-disk representation of a batch configuration and,
// optionally, the summary of the run it produced. A user can save a batch to
// a file and repeat it later without re-entering folders and keywords.
type JobFile struct {
	Batch   BatchParams `yaml:"batch"`
	Summary *RunSummary `yaml:"summary,omitempty"`
}

// BatchParams stores the session in a serializable form.
type BatchParams struct {
	Source   string   `yaml:"source"`
	Dest     string   `yaml:"dest,omitempty"`
	Keywords []string `yaml:"keywords"`
}

// RunSummary stores run totals and a timestamp.
type RunSummary struct {
	Files     int       `yaml:"files"`
	Hits      int       `yaml:"hits"`
	Failed    int       `yaml:"failed"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteJobFile saves a session, and the run summary when one exists, to a
// YAML file.
func WriteJobFile(path string, s Session, summary *RunSummary) error {
	jf := JobFile{
		Batch: BatchParams{
			Source:   s.Source,
			Dest:     s.Dest,
			Keywords: s.Keywords,
		},
		Summary: summary,
	}

	data, err := yaml.Marshal(&jf)
	if err != nil {
		return fmt.Errorf("marshaling job file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadJobFile loads a previously saved job file from disk.
func ReadJobFile(path string) (*JobFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}
	var jf JobFile
	if err := yaml.Unmarshal(data, &jf); err != nil {
		return nil, fmt.Errorf("parsing job file: %w", err)
	}
	return &jf, nil
}

// ToSession converts stored batch parameters back into a Session.
func (p BatchParams) ToSession() Session {
	return Session{
		Source:   p.Source,
		Dest:     p.Dest,
		Keywords: p.Keywords,
	}
}
