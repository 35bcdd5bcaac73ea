package sched

import (
	"fmt"
	"log/slog"
)

// Factory builds process descriptors from a shared PID counter.
type Factory struct {
	pids   *PIDCounter
	policy OverrunPolicy
	logger *slog.Logger
}

// Option customizes a Factory.
type Option func(*Factory)

// WithPIDCounter makes the factory draw PIDs from c instead of its own counter.
func WithPIDCounter(c *PIDCounter) Option {
	return func(f *Factory) { f.pids = c }
}

// WithLogger sets the factory logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Factory) { f.logger = l }
}

// NewFactory creates a factory configured by cfg. Unless WithPIDCounter is
// given, the factory owns a fresh counter, so PIDs are only unique among
// factories sharing a counter.
func NewFactory(cfg Config, opts ...Option) *Factory {
	f := &Factory{policy: cfg.OverrunPolicy}
	for _, opt := range opts {
		opt(f)
	}
	if f.pids == nil {
		f.pids = NewPIDCounter(cfg.PIDStart)
	}
	if f.logger == nil {
		f.logger = discardLogger()
	}
	return f
}

// PIDs exposes the counter backing the factory.
func (f *Factory) PIDs() *PIDCounter { return f.pids }

// Policy returns the overrun policy applied to descriptors built by f.
func (f *Factory) Policy() OverrunPolicy { return f.policy }

// New creates a process from its arrival time, burst time and priority.
func (f *Factory) New(arrival, burst, priority int) *Process {
	p := newProcess(f, arrival, burst, priority)
	f.logger.Debug("process created", slog.Int64("pid", int64(p.pid)), slog.String("process", p.String()))
	return p
}

// FromSlice creates a process from [arrival, burst, priority].
// Elements past the third are ignored. No PID is consumed on error.
func (f *Factory) FromSlice(data []int) (*Process, error) {
	if len(data) < 3 {
		return nil, fmt.Errorf("process data needs [arrival, burst, priority], got %d element(s): %w", len(data), ErrInvalidInput)
	}
	return f.New(data[0], data[1], data[2]), nil
}
