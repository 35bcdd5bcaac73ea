// internal/sched/table.go

package sched

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/emirpasic/gods/trees/redblacktree"

	"procdesc/internal/log"
)

// Table is a PID-ordered registry of live process descriptors.
type Table struct {
	mu     sync.Mutex         // protects the table state
	rbt    *redblacktree.Tree // red-black tree keyed by PID
	logger *slog.Logger
	now    func() time.Time // overridden in tests

	// trace-related
	csvFile   *os.File
	csvWriter *csv.Writer
}

// NewTable creates an empty table. A nil logger discards output.
func NewTable(logger *slog.Logger) *Table {
	if logger == nil {
		logger = discardLogger()
	}
	return &Table{
		rbt:    redblacktree.NewWith(cmp),
		logger: logger,
		now:    time.Now,
	}
}

// EnableCSVLogging opens the given file path for a CSV trace of table events.
func (t *Table) EnableCSVLogging(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)

	// write header
	_ = w.Write([]string{"timestamp", "event", "pid", "remaining", "descriptor"})
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	// a previous trace is closed and replaced
	if err := t.closeTrace(); err != nil {
		t.logger.Warn("closing previous csv trace failed", log.ErrAttr(err))
	}
	t.csvFile = f
	t.csvWriter = w
	return nil
}

// Close flushes and closes the CSV trace, if any.
func (t *Table) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.closeTrace()
}

// closeTrace flushes and closes the CSV trace. Caller holds t.mu.
func (t *Table) closeTrace() error {
	if t.csvFile == nil {
		return nil
	}
	t.csvWriter.Flush()
	err := t.csvWriter.Error()
	if cerr := t.csvFile.Close(); err == nil {
		err = cerr
	}
	t.csvFile, t.csvWriter = nil, nil
	return err
}

// Add registers p; a PID can only be registered once.
func (t *Table) Add(p *Process) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, dup := t.rbt.Get(p.pid); dup {
		return fmt.Errorf("process %d: %w", p.pid, ErrDuplicatePID)
	}
	t.rbt.Put(p.pid, p)
	t.emit(newEvent(t.now(), EventAdd, p))
	return nil
}

// Get looks up a process by PID.
func (t *Table) Get(pid PID) (*Process, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.lookup(pid)
}

// Remove drops a process; it reports whether the PID was present.
func (t *Table) Remove(pid PID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.lookup(pid)
	if !ok {
		return false
	}
	t.rbt.Remove(pid)
	t.emit(newEvent(t.now(), EventRemove, p))
	return true
}

// Len returns the number of registered processes.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.rbt.Size()
}

// Processes returns all registered processes in ascending PID order.
func (t *Table) Processes() []*Process {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]*Process, 0, t.rbt.Size())
	it := t.rbt.Iterator()
	for it.Next() {
		out = append(out, it.Value().(*Process))
	}
	return out
}

// Step consumes one unit of remaining burst of the given process.
// The step that completes the process emits Finish instead of Step.
func (t *Table) Step(pid PID) (*Process, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.lookup(pid)
	if !ok {
		return nil, fmt.Errorf("step process %d: %w", pid, ErrUnknownPID)
	}
	wasDone := p.Done()
	if err := p.DecrementRemainingBurst(); err != nil {
		t.logger.Warn("step rejected", slog.Int64("pid", int64(pid)), log.ErrAttr(err))
		return p, err
	}

	kind := EventStep
	if !wasDone && p.Done() {
		kind = EventFinish
	}
	t.emit(newEvent(t.now(), kind, p))
	return p, nil
}

// SetBurstTime resets the burst (and remaining burst) of the given process.
func (t *Table) SetBurstTime(pid PID, burst int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.lookup(pid)
	if !ok {
		return fmt.Errorf("set burst of process %d: %w", pid, ErrUnknownPID)
	}
	p.SetBurstTime(burst)
	t.emit(newEvent(t.now(), EventBurstReset, p))
	return nil
}

// SetPriority changes the priority of the given process.
func (t *Table) SetPriority(pid PID, priority int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.lookup(pid)
	if !ok {
		return fmt.Errorf("set priority of process %d: %w", pid, ErrUnknownPID)
	}
	p.SetPriority(priority)
	t.emit(newEvent(t.now(), EventPriorityUpdate, p))
	return nil
}

// Duplicate copies the given process under a fresh PID and registers the copy.
func (t *Table) Duplicate(pid PID) (*Process, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	src, ok := t.lookup(pid)
	if !ok {
		return nil, fmt.Errorf("duplicate process %d: %w", pid, ErrUnknownPID)
	}
	// a collision means the counter was reset under live descriptors;
	// check before the counter advances
	if src.factory != nil {
		if next := src.factory.pids.Peek(); t.has(next) {
			return nil, fmt.Errorf("duplicate process %d as %d: %w", pid, next, ErrDuplicatePID)
		}
	}
	dup, err := src.Duplicate()
	if err != nil {
		return nil, err
	}
	if t.has(dup.pid) {
		return nil, fmt.Errorf("duplicate process %d as %d: %w", pid, dup.pid, ErrDuplicatePID)
	}
	t.rbt.Put(dup.pid, dup)
	t.emit(newEvent(t.now(), EventDuplicate, dup))
	return dup, nil
}

func (t *Table) has(pid PID) bool {
	_, ok := t.rbt.Get(pid)
	return ok
}

func (t *Table) lookup(pid PID) (*Process, bool) {
	v, ok := t.rbt.Get(pid)
	if !ok {
		return nil, false
	}
	return v.(*Process), true
}

// emit logs the event and appends it to the CSV trace. Caller holds t.mu.
func (t *Table) emit(ev Event) {
	t.logger.Debug("process event",
		slog.String("event", ev.Kind.String()),
		slog.Int64("pid", int64(ev.PID)),
		slog.Int("remaining", ev.Remaining),
		slog.String("process", ev.Descriptor),
	)

	if t.csvWriter == nil {
		return
	}
	rec := []string{
		ev.Time.Format(time.RFC3339Nano),
		ev.Kind.String(),
		strconv.FormatInt(int64(ev.PID), 10),
		strconv.Itoa(ev.Remaining),
		ev.Descriptor,
	}
	if err := t.csvWriter.Write(rec); err != nil {
		t.logger.Warn("csv trace write failed", log.ErrAttr(err))
		return
	}
	t.csvWriter.Flush()
}

// cmp orders PIDs for the red-black tree.
func cmp(a, b any) int {
	pa, pb := a.(PID), b.(PID)
	switch {
	case pa < pb:
		return -1
	case pa > pb:
		return 1
	default:
		return 0
	}
}
