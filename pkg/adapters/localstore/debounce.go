package localstore

import (
	"sync"
	"time"

	"github.com/aretw0/pxnote/pkg/core"
)

// debouncer coalesces bursts of events per collection key. Editors and
// atomic renames produce several filesystem events for one logical change;
// only the last one within the window fires.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	wg      sync.WaitGroup
	stopped bool
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// add schedules fire(event) after the delay, resetting any pending timer
// for the same key.
func (d *debouncer) add(event core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if timer, ok := d.timers[event.Key]; ok {
		if timer.Stop() {
			d.wg.Done()
		}
	}

	d.wg.Add(1)
	d.timers[event.Key] = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		delete(d.timers, event.Key)
		stopped := d.stopped
		d.mu.Unlock()
		if stopped {
			return
		}
		fire(event)
	})
}

// stopAndWait rejects new events and waits for in-flight timers, up to the
// given timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
