package sched

import "errors"

var (
	// ErrInvalidInput is returned when constructor input is malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidState is returned when a descriptor cannot take the requested transition.
	ErrInvalidState = errors.New("invalid state")
	// ErrDuplicatePID is returned by Table.Add for a PID already registered.
	ErrDuplicatePID = errors.New("duplicate pid")
	// ErrUnknownPID is returned by Table operations on a PID that is not registered.
	ErrUnknownPID = errors.New("unknown pid")
)
