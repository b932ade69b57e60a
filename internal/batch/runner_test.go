// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pdiddy/pdf-highlighter/pkg/types"
)

// slowMarker implements highlight.Marker. It can fail on chosen files and
// optionally block until released, to hold a batch in the Running state.
type slowMarker struct {
	failOn  map[string]error
	hits    int
	release chan struct{}

	mu   sync.Mutex
	seen [][]string
}

func (m *slowMarker) Mark(src, dest string, keywords []string) (int, error) {
	if m.release != nil {
		<-m.release
	}
	m.mu.Lock()
	m.seen = append(m.seen, keywords)
	m.mu.Unlock()
	if err, ok := m.failOn[filepath.Base(src)]; ok {
		return 0, err
	}
	if err := os.WriteFile(dest, []byte("annotated"), 0o644); err != nil {
		return 0, err
	}
	return m.hits, nil
}

// setupFiles creates a source tree with the given PDFs and returns the
// session plus absolute file paths.
func setupFiles(t *testing.T, names ...string) (Session, []string) {
	t.Helper()
	src := t.TempDir()
	files := make([]string, len(names))
	for i, n := range names {
		p := filepath.Join(src, n)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("%PDF-1.4"), 0o644); err != nil {
			t.Fatal(err)
		}
		files[i] = p
	}
	return Session{Source: src, Keywords: []string{"kw"}}, files
}

// collect drains every event from ch, preserving order.
func collect(t *testing.T, ch <-chan Event) []Event {
	t.Helper()
	var events []Event
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-deadline:
			t.Fatal("timed out waiting for events")
		}
	}
}

func TestRunnerBatch(t *testing.T) {
	s, files := setupFiles(t, "one.pdf", "two.pdf", "three.pdf")
	marker := &slowMarker{
		hits:   2,
		failOn: map[string]error{"two.pdf": errors.New("cannot open broken file")},
	}

	var mu sync.Mutex
	var results []types.Result
	r := NewRunner()
	r.OnResult = func(res types.Result) {
		mu.Lock()
		results = append(results, res)
		mu.Unlock()
	}

	ch, err := r.Start(s, files, marker)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	events := collect(t, ch)

	// Per file one Log then one Progress, then a single Done.
	if len(events) != 7 {
		t.Fatalf("got %d events, want 7: %v", len(events), events)
	}
	var progress []int
	var logs []string
	for _, ev := range events {
		switch e := ev.(type) {
		case Log:
			logs = append(logs, e.Line)
		case Progress:
			progress = append(progress, e.Index)
		}
	}

	if want := []int{1, 2, 3}; len(progress) != 3 || progress[0] != want[0] || progress[1] != want[1] || progress[2] != want[2] {
		t.Errorf("progress = %v, want %v", progress, want)
	}
	if !strings.Contains(logs[0], "highlighted: one.pdf (2 hits)") {
		t.Errorf("log[0] = %q", logs[0])
	}
	if !strings.Contains(logs[1], "failed: two.pdf (cannot open broken file)") {
		t.Errorf("log[1] = %q", logs[1])
	}
	if !strings.Contains(logs[2], "highlighted: three.pdf (2 hits)") {
		t.Errorf("log[2] = %q", logs[2])
	}

	done, ok := events[len(events)-1].(Done)
	if !ok {
		t.Fatalf("last event %T, want Done", events[len(events)-1])
	}
	if done.Total != 3 || done.Failed != 1 || done.Hits != 4 {
		t.Errorf("done = %+v", done)
	}

	// The failed file left no output.
	if _, err := os.Stat(files[1] + ".highlighting"); err == nil {
		t.Error("temp output left behind for failed file")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(results) != 3 {
		t.Fatalf("observed %d results, want 3", len(results))
	}
	if !results[1].Failed() {
		t.Error("result for two.pdf should be failed")
	}
}

func TestRunnerBusy(t *testing.T) {
	s, files := setupFiles(t, "one.pdf")
	marker := &slowMarker{release: make(chan struct{})}

	r := NewRunner()
	ch, err := r.Start(s, files, marker)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if !r.Running() {
		t.Error("runner should report Running")
	}
	if _, err := r.Start(s, files, marker); !errors.Is(err, ErrBusy) {
		t.Errorf("second Start = %v, want ErrBusy", err)
	}

	close(marker.release)
	collect(t, ch)

	// Idle again: a new batch may start.
	marker.release = nil
	ch2, err := r.Start(s, files, marker)
	if err != nil {
		t.Fatalf("restart after completion: %v", err)
	}
	collect(t, ch2)
}

func TestRunnerSnapshotsKeywords(t *testing.T) {
	s, files := setupFiles(t, "one.pdf")
	marker := &slowMarker{release: make(chan struct{})}

	r := NewRunner()
	ch, err := r.Start(s, files, marker)
	if err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's keyword list mid-run must not reach the worker.
	s.Keywords[0] = "mutated"
	close(marker.release)
	collect(t, ch)

	marker.mu.Lock()
	defer marker.mu.Unlock()
	if len(marker.seen) != 1 || marker.seen[0][0] != "kw" {
		t.Errorf("worker observed keywords %v, want [kw]", marker.seen)
	}
}

func TestRunnerDestPathFailureLine(t *testing.T) {
	// A relative source with an absolute file makes the destination
	// computation fail before the marker runs. The failure line renders
	// like any other: base name, then the error.
	file := filepath.Join(t.TempDir(), "doc.pdf")
	s := Session{Source: "relative-src", Keywords: []string{"kw"}}

	r := NewRunner()
	ch, err := r.Start(s, []string{file}, &slowMarker{})
	if err != nil {
		t.Fatal(err)
	}
	events := collect(t, ch)

	log, ok := events[0].(Log)
	if !ok {
		t.Fatalf("first event %T, want Log", events[0])
	}
	if !strings.HasPrefix(log.Line, "failed: doc.pdf (") {
		t.Errorf("log = %q, want base-name failure line", log.Line)
	}
	done, ok := events[len(events)-1].(Done)
	if !ok || done.Failed != 1 {
		t.Errorf("done = %+v", events[len(events)-1])
	}
}

func TestDrain(t *testing.T) {
	s, files := setupFiles(t, "a.pdf", "b.pdf")
	marker := &slowMarker{hits: 1}

	r := NewRunner()
	ch, err := r.Start(s, files, marker)
	if err != nil {
		t.Fatal(err)
	}

	var log bytes.Buffer
	var progress []int
	done := Drain(ch, time.Millisecond, &log, func(i int) {
		progress = append(progress, i)
	})

	if done.Total != 2 || done.Hits != 2 || done.Failed != 0 {
		t.Errorf("done = %+v", done)
	}
	if got := strings.Count(log.String(), "highlighted:"); got != 2 {
		t.Errorf("log lines = %d, want 2\n%s", got, log.String())
	}
	for i := 1; i < len(progress); i++ {
		if progress[i] < progress[i-1] {
			t.Errorf("progress not monotone: %v", progress)
		}
	}
	if len(progress) == 0 || progress[len(progress)-1] != 2 {
		t.Errorf("final progress = %v, want last 2", progress)
	}
}
