package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Reconciliation tallies outcomes of payment status reports. Applied means
// the report flipped state, duplicate means it had already been applied,
// ignored means a non-terminal status.
type Reconciliation struct {
	Applied   Counter
	Duplicate Counter
	Ignored   Counter
}

func (m *Reconciliation) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"applied":   m.Applied.Load(),
		"duplicate": m.Duplicate.Load(),
		"ignored":   m.Ignored.Load(),
	}
}
