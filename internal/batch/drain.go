// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"fmt"
	"io"
	"time"
)

// Drain consumes the worker's events on a fixed polling tick, never blocking
// between ticks: on each tick every pending event is taken, log lines are
// appended to logw, and progress (if non-nil) observes each completed index.
// Drain returns the terminal Done event once the channel is closed.
func Drain(ch <-chan Event, tick time.Duration, logw io.Writer, progress func(done int)) Done {
	if tick <= 0 {
		tick = DefaultPollInterval
	}
	t := time.NewTicker(tick)
	defer t.Stop()

	var done Done
	for range t.C {
		pending := true
		for pending {
			select {
			case ev, ok := <-ch:
				if !ok {
					return done
				}
				switch e := ev.(type) {
				case Log:
					fmt.Fprintln(logw, e.Line)
				case Progress:
					if progress != nil {
						progress(e.Index)
					}
				case Done:
					done = e
				}
			default:
				// Queue empty; wait for the next tick.
				pending = false
			}
		}
	}
	return done
}
