package datagrid

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerRunsOnlyLastCall(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var calls int32
	var got atomic.Value

	for _, text := range []string{"m", "mi", "mil", "milk"} {
		text := text
		d.Call(func() {
			atomic.AddInt32(&calls, 1)
			got.Store(text)
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "milk", got.Load())
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls int32
	d.Call(func() { atomic.AddInt32(&calls, 1) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestDebouncerDefaultsInterval(t *testing.T) {
	d := NewDebouncer(0)
	assert.Equal(t, SearchDebounceInterval, d.Interval)
}
