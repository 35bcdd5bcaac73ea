package sched

import "fmt"

// Process represents one schedulable unit of work.
type Process struct {
	pid       PID
	arrival   int // stored verbatim, never validated
	burst     int
	remaining int // reset to burst whenever burst is set
	priority  int
	factory   *Factory
}

// newProcess takes the next PID from f and normalizes burst and priority.
func newProcess(f *Factory, arrival, burst, priority int) *Process {
	p := &Process{
		pid:     f.pids.Next(),
		arrival: arrival,
		factory: f,
	}
	p.SetBurstTime(burst)
	p.SetPriority(priority)
	return p
}

// PID returns the process id.
func (p *Process) PID() PID { return p.pid }

// ArrivalTime returns the simulated time the process becomes eligible.
func (p *Process) ArrivalTime() int { return p.arrival }

// BurstTime returns the total CPU time required.
func (p *Process) BurstTime() int { return p.burst }

// RemainingBurstTime returns the CPU time not yet consumed.
func (p *Process) RemainingBurstTime() int { return p.remaining }

// Priority returns the process priority.
func (p *Process) Priority() int { return p.priority }

// Done reports whether the remaining burst has been used up.
func (p *Process) Done() bool { return p.remaining <= 0 }

// SetBurstTime stores the absolute value of t as both the burst and the
// remaining burst, discarding any execution progress.
// Negative input is sign-flipped, not rejected. math.MinInt has no positive
// counterpart and is stored as math.MinInt.
func (p *Process) SetBurstTime(t int) {
	t = abs(t)
	p.burst = t
	p.remaining = t
}

// SetPriority stores the absolute value of prio.
// Negative input is sign-flipped, not rejected. math.MinInt has no positive
// counterpart and is stored as math.MinInt.
func (p *Process) SetPriority(prio int) {
	p.priority = abs(prio)
}

// DecrementRemainingBurst consumes one unit of remaining burst.
// At or below zero the owning factory's OverrunPolicy applies.
func (p *Process) DecrementRemainingBurst() error {
	if p.remaining > 0 {
		p.remaining--
		return nil
	}

	switch p.overrunPolicy() {
	case OverrunClamp:
		p.remaining = 0
		return nil
	case OverrunAllow:
		p.remaining--
		return nil
	default:
		return fmt.Errorf("process %d: decrement with remaining burst %d: %w", p.pid, p.remaining, ErrInvalidState)
	}
}

func (p *Process) overrunPolicy() OverrunPolicy {
	if p.factory == nil {
		return OverrunReject
	}
	return p.factory.policy
}

// Duplicate returns a new process with a fresh PID from the same factory and
// the same arrival, burst and priority. Execution progress is not copied.
// A process not built by a Factory has no PID source and cannot be duplicated.
func (p *Process) Duplicate() (*Process, error) {
	if p.factory == nil {
		return nil, fmt.Errorf("duplicate process %d: no pid counter: %w", p.pid, ErrInvalidState)
	}
	return newProcess(p.factory, p.arrival, p.burst, p.priority), nil
}

// String renders "pid arrival burst priority".
func (p *Process) String() string {
	return fmt.Sprintf("%d %d %d %d", p.pid, p.arrival, p.burst, p.priority)
}

// abs wraps for math.MinInt like plain negation does.
func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
