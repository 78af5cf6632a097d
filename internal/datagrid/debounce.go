package datagrid

import (
	"sync"
	"time"
)

// SearchDebounceInterval is how long the free-text search waits after the
// last keystroke before the filter is applied.
const SearchDebounceInterval = 500 * time.Millisecond

// Debouncer coalesces rapid calls into one, running only the last function
// after the interval elapses with no further calls.
type Debouncer struct {
	Interval time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = SearchDebounceInterval
	}
	return &Debouncer{Interval: interval}
}

func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.Interval, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
