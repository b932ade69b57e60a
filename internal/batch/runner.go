// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/pdf-highlighter/internal/highlight"
	"github.com/pdiddy/pdf-highlighter/pkg/types"
)

// ErrBusy is returned by Start while a previous batch is still running.
var ErrBusy = errors.New("a batch is already running")

// DefaultPollInterval is the display-side drain tick.
const DefaultPollInterval = 100 * time.Millisecond

// Event is a message from the worker to the display side. Events arrive in
// the exact order the worker produced them: per file one Log then one
// Progress, and a single terminal Done before the channel closes.
type Event interface {
	event()
}

// Log carries one human-readable status line.
type Log struct {
	Line string
}

// Progress reports the 1-based index of the file just completed. Values are
// monotonically non-decreasing within a run and never exceed the total.
type Progress struct {
	Index int
}

// Done is the terminal event with run totals.
type Done struct {
	Total  int
	Hits   int
	Failed int
}

func (Log) event()      {}
func (Progress) event() {}
func (Done) event()     {}

// Runner owns the background worker for batch runs. A Runner is Idle until
// Start succeeds and returns to Idle when the worker finishes; starting a
// second batch while one is running is rejected with ErrBusy. There is no
// cancellation: a started batch runs its fixed file list to completion.
type Runner struct {
	mu      sync.Mutex
	running bool

	// OnResult, when set, observes every per-file result from the worker
	// goroutine (used for run-history recording). It must not block for
	// long; the worker is sequential.
	OnResult func(types.Result)
}

// NewRunner returns an idle Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Running reports whether a batch is currently in flight.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Start launches the batch worker over files and returns its event channel.
// The session is snapshotted at this moment: later edits to the caller's
// copy do not affect the run. The channel is buffered for the whole run, so
// the worker never blocks on a slow display, and is closed after Done.
func (r *Runner) Start(s Session, files []string, m highlight.Marker) (<-chan Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return nil, ErrBusy
	}
	r.running = true

	snap := s.Snapshot()
	ch := make(chan Event, 2*len(files)+1)
	go r.work(snap, files, m, ch)
	return ch, nil
}

// work is the single background worker: strictly sequential, one file
// completing before the next starts, single producer on ch.
func (r *Runner) work(s Session, files []string, m highlight.Marker, ch chan<- Event) {
	defer close(ch)
	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	var hits, failed int
	for i, file := range files {
		res := r.processOne(s, file, m, ch)
		if res.Failed() {
			failed++
		} else {
			hits += res.Hits
		}
		if r.OnResult != nil {
			r.OnResult(res)
		}
		ch <- Progress{Index: i + 1}
	}
	ch <- Done{Total: len(files), Hits: hits, Failed: failed}
}

// processOne computes the destination path and runs the highlight engine for
// a single file, forwarding its status line as a Log event. A destination
// path failure is folded into a per-file failure so the rest of the queue is
// never lost.
func (r *Runner) processOne(s Session, file string, m highlight.Marker, ch chan<- Event) types.Result {
	dest, err := s.DestPath(file)
	if err != nil {
		res := types.Result{Source: file, Status: types.StatusFailed, Err: err.Error()}
		ch <- Log{Line: fmt.Sprintf("failed: %s (%v)", filepath.Base(file), err)}
		return res
	}

	var line bytes.Buffer
	res := highlight.Process(m, types.Job{Source: file, Dest: dest, Keywords: s.Keywords}, &line)
	ch <- Log{Line: strings.TrimRight(line.String(), "\n")}
	return res
}
