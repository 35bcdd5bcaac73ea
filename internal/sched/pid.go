// internal/sched/pid.go

package sched

import "sync/atomic"

// PID uniquely identifies a process descriptor.
type PID int64

// PIDCounter hands out monotonically increasing PIDs atomically.
type PIDCounter struct {
	next atomic.Int64
}

// NewPIDCounter creates a counter whose first PID is start (1 if start < 1).
func NewPIDCounter(start PID) *PIDCounter {
	c := &PIDCounter{}
	c.Reset(start)
	return c
}

// Next returns the next PID and advances the counter.
func (c *PIDCounter) Next() PID {
	return PID(c.next.Add(1) - 1)
}

// Peek returns the PID the next call to Next will hand out.
func (c *PIDCounter) Peek() PID {
	return PID(c.next.Load())
}

// Reset rewinds the counter so the next PID is start.
// Only safe while no descriptors are being created.
func (c *PIDCounter) Reset(start PID) {
	if start < 1 {
		start = 1
	}
	c.next.Store(int64(start))
}
