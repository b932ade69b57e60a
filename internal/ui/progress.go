// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ui renders the determinate batch progress indicator on a terminal.
package ui

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const barWidth = 30

// Tracker draws an in-place progress bar bounded by the discovered file
// count. Updates are monotone (a lower value than already shown is ignored)
// and clamped to the total.
type Tracker struct {
	w     io.Writer
	total int
	done  int
	last  time.Time
}

// NewTracker returns a tracker for total files writing to w.
func NewTracker(w io.Writer, total int) *Tracker {
	return &Tracker{w: w, total: total}
}

// Done returns the number of files rendered as completed.
func (t *Tracker) Done() int {
	return t.done
}

// Update advances the bar to done completed files. Redraws are throttled to
// one per 100ms to avoid flicker; the final value always renders.
func (t *Tracker) Update(done int) {
	if done < t.done {
		return
	}
	if done > t.total {
		done = t.total
	}
	t.done = done

	if done < t.total && time.Since(t.last) < 100*time.Millisecond {
		return
	}
	t.last = time.Now()
	t.render()
}

// Finish redraws the final state and terminates the bar's line.
func (t *Tracker) Finish() {
	t.render()
	fmt.Fprintln(t.w)
}

func (t *Tracker) render() {
	filled := 0
	if t.total > 0 {
		filled = t.done * barWidth / t.total
	}
	bar := strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled)
	fmt.Fprintf(t.w, "\r[%s] %d/%d", bar, t.done, t.total)
}
