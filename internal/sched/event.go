// internal/sched/event.go

package sched

import (
	"io"
	"log/slog"
	"time"
)

// EventKind represents the type of descriptor table event
type EventKind int

const (
	EventAdd EventKind = iota
	EventRemove
	EventStep
	EventFinish
	EventBurstReset
	EventPriorityUpdate
	EventDuplicate
)

// Event is emitted by the Table on every mutation
type Event struct {
	Time       time.Time
	Kind       EventKind
	PID        PID
	Remaining  int
	Descriptor string // Process.String() at the time of the event
}

func (ek EventKind) String() string {
	switch ek {
	case EventAdd:
		return "Add"
	case EventRemove:
		return "Remove"
	case EventStep:
		return "Step"
	case EventFinish:
		return "Finish"
	case EventBurstReset:
		return "BurstReset"
	case EventPriorityUpdate:
		return "PriorityUpdate"
	case EventDuplicate:
		return "Duplicate"
	default:
		return "Unknown"
	}
}

func newEvent(now time.Time, kind EventKind, p *Process) Event {
	return Event{
		Time:       now,
		Kind:       kind,
		PID:        p.pid,
		Remaining:  p.remaining,
		Descriptor: p.String(),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
