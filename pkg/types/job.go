// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Status indicates the outcome of processing one document.
type Status string

const (
	StatusHighlighted Status = "highlighted"
	StatusFailed      Status = "failed"
)

// Job is one unit of work: a single input PDF, its computed output path, and
// the keyword list shared by the batch.
type Job struct {
	// Source is the input PDF path.
	Source string `json:"source" yaml:"source"`

	// Dest is the output path for the annotated copy. Equal to Source in
	// in-place mode.
	Dest string `json:"dest" yaml:"dest"`

	// Keywords is the list of strings to highlight, in supplied order.
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Result is the per-document outcome. Failures are carried as values so that
// nothing crosses the per-file boundary as a panic; one bad PDF degrades the
// result set, never the run.
type Result struct {
	// Source is the input PDF path.
	Source string `json:"source" yaml:"source"`

	// Dest is the output path, empty when nothing was written.
	Dest string `json:"dest,omitempty" yaml:"dest,omitempty"`

	// Hits is the number of highlighted regions across the whole document.
	Hits int `json:"hits" yaml:"hits"`

	// Status is highlighted or failed.
	Status Status `json:"status" yaml:"status"`

	// Err holds the error text for failed documents.
	Err string `json:"err,omitempty" yaml:"err,omitempty"`
}

// Failed reports whether the document failed processing.
func (r Result) Failed() bool {
	return r.Status == StatusFailed
}
