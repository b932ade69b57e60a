// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package highlight

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/pdf-highlighter/pkg/types"
)

// Process runs one Document Job end to end: it ensures the destination's
// parent directory chain exists, invokes the marker against a temporary
// file, and renames the result into place on success. Exactly one terminal
// status line is written to w per invocation. Any failure, including a
// panic inside the PDF library, is folded into the returned Result; it
// never aborts the batch, and no partial output is left behind.
func Process(m Marker, job types.Job, w io.Writer) types.Result {
	name := filepath.Base(job.Source)
	res := types.Result{Source: job.Source}

	fail := func(err error) types.Result {
		res.Status = types.StatusFailed
		res.Err = err.Error()
		fmt.Fprintf(w, "failed: %s (%v)\n", name, err)
		return res
	}

	if err := os.MkdirAll(filepath.Dir(job.Dest), 0o755); err != nil {
		return fail(fmt.Errorf("creating output directory: %w", err))
	}

	// Annotate into a temp file, rename on success. This also makes
	// in-place mode (dest == source) safe: the source stays readable for
	// the whole run.
	tmp := job.Dest + ".highlighting"
	hits, err := mark(m, job.Source, tmp, job.Keywords)
	if err != nil {
		os.Remove(tmp)
		return fail(err)
	}

	if err := os.Rename(tmp, job.Dest); err != nil {
		os.Remove(tmp)
		return fail(fmt.Errorf("moving output into place: %w", err))
	}

	res.Dest = job.Dest
	res.Hits = hits
	res.Status = types.StatusHighlighted
	fmt.Fprintf(w, "highlighted: %s (%d hits)\n", name, hits)
	return res
}

// mark invokes the Marker, converting a panic into an error so that no
// exception crosses the per-file boundary.
func mark(m Marker, src, dest string, keywords []string) (hits int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF processing panic: %v", r)
		}
	}()
	return m.Mark(src, dest, keywords)
}
